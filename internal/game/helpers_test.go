package game

import (
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/rummy/internal/game/card"
	"github.com/palemoky/rummy/internal/game/rule"
	"github.com/palemoky/rummy/internal/game/table"
	"github.com/palemoky/rummy/internal/testutil"
	"github.com/palemoky/rummy/internal/ui/prompt"
)

// MockRecorder 牌局事件记录 mock
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(e Event) error {
	args := m.Called(e)
	return args.Error(0)
}

// eventLog 收集事件
type eventLog struct {
	mu     sync.Mutex
	events []Event
}

func (l *eventLog) Record(e Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
	return nil
}

func (l *eventLog) kinds() []EventKind {
	l.mu.Lock()
	defer l.mu.Unlock()
	kinds := make([]EventKind, len(l.events))
	for i, e := range l.events {
		kinds[i] = e.Kind
	}
	return kinds
}

func (l *eventLog) byKind(kind EventKind) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Event
	for _, e := range l.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// seat 测试用玩家，输入来自脚本，输出被记录
type seat struct {
	*Player
	script *testutil.Script
	out    *testutil.Output
}

func newSeat(name string, answers ...string) *seat {
	script := testutil.NewScript(answers...)
	out := &testutil.Output{}
	in := prompt.NewConsole(script, out.Message)
	return &seat{Player: NewPlayer(name, in, out), script: script, out: out}
}

func (s *seat) withHand(hand ...string) *seat {
	s.Hand = cards(hand...)
	return s
}

func cards(ss ...string) card.Hand {
	out := make(card.Hand, len(ss))
	for i, s := range ss {
		out[i] = card.MustParse(s)
	}
	return out
}

// roundSetup 直接构造牌局，牌堆和弃牌堆按“底到顶”给出
type roundSetup struct {
	deck     []string
	discard  []string
	wild     string
	policy   rule.WinPolicy
	recorder Recorder
}

func newTestRound(t *testing.T, rs roundSetup, seats ...*seat) (*Round, *testutil.Output) {
	t.Helper()

	rng := rand.New(rand.NewPCG(7, 11))
	tb := table.New(card.Deck(cards(rs.deck...)), rng)
	for _, c := range cards(rs.discard...) {
		tb.Discard(c)
	}

	wild := card.MustParse("8S")
	if rs.wild != "" {
		wild = card.MustParse(rs.wild)
	}
	policy := rs.policy
	if policy == "" {
		policy = rule.PolicyTwoRuns
	}

	observer := &testutil.Output{}
	players := make([]*Player, len(seats))
	for i, s := range seats {
		players[i] = s.Player
	}

	r := &Round{
		ID:        "test-round",
		players:   players,
		table:     tb,
		wild:      wild,
		policy:    policy,
		observers: []Output{observer},
		recorder:  rs.recorder,
	}
	tb.Recycled = r.onRecycle
	return r, observer
}

// winningHand 万能点数为 8 时可以胡：纯顺 3-6♥，带万能牌的 9♣ 8♦ J♣，带王的三条 K
func winningHand() []string {
	return []string{"3H", "4H", "5H", "6H", "9C", "8D", "JC", "KS", "KD", "JK"}
}

// winningAnswers 胡牌检查阶段的输入
func winningAnswers() []string {
	return []string{
		"y",
		"2", "1 2 3 4",
		"1", "4 5 6",
		"2", "3 1 2",
	}
}

func totalCards(r *Round) int {
	deck, discard := r.Table().Snapshot()
	n := len(deck) + len(discard)
	for _, p := range r.Players() {
		n += len(p.Hand)
	}
	return n
}

func shown(label, c string) testutil.ShownCard {
	return testutil.ShownCard{Label: label, Card: card.MustParse(c)}
}
