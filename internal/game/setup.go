package game

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/palemoky/rummy/internal/apperrors"
	"github.com/palemoky/rummy/internal/game/card"
	"github.com/palemoky/rummy/internal/game/rule"
	"github.com/palemoky/rummy/internal/game/table"
)

// 默认开局参数
const (
	DefaultHandSize   = 10
	DefaultMinPlayers = 2
	DefaultMaxPlayers = 4
)

// Options 开局参数
type Options struct {
	HandSize   int
	MinPlayers int
	MaxPlayers int
	Policy     rule.WinPolicy

	// Rand 为空时使用随机种子
	Rand *rand.Rand
	// Observers 接收公开消息（摸牌、弃牌、胡牌）
	Observers []Output
	// Recorder 接收牌局事件，可为空
	Recorder Recorder
}

func (o *Options) applyDefaults() {
	if o.HandSize == 0 {
		o.HandSize = DefaultHandSize
	}
	if o.MinPlayers == 0 {
		o.MinPlayers = DefaultMinPlayers
	}
	if o.MaxPlayers == 0 {
		o.MaxPlayers = DefaultMaxPlayers
	}
	if o.Policy == "" {
		o.Policy = rule.PolicyTwoRuns
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
}

// setupError 开局错误，调用方应直接退出
func setupError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", apperrors.ErrSetup, fmt.Sprintf(format, args...))
}

// ValidateNames 校验玩家人数和昵称唯一性
func ValidateNames(names []string, minPlayers, maxPlayers int) error {
	if len(names) < minPlayers || len(names) > maxPlayers {
		return setupError("number of players must be at least %d and maximum of %d", minPlayers, maxPlayers)
	}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return setupError("player name cannot be empty")
		}
		if seen[name] {
			return setupError("player name %q already exists", name)
		}
		seen[name] = true
	}
	return nil
}

// PromptNames 询问玩家人数和昵称，人数越界或昵称重复返回 ErrSetup
func PromptNames(ctx context.Context, in Input, minPlayers, maxPlayers int) ([]string, error) {
	n, err := in.Int(ctx, "Enter total number of players: ")
	if err != nil {
		return nil, err
	}
	if n < minPlayers || n > maxPlayers {
		return nil, setupError("number of players must be at least %d and maximum of %d", minPlayers, maxPlayers)
	}

	names := make([]string, 0, n)
	for i := range n {
		name, err := in.Text(ctx, fmt.Sprintf("Enter player %d name: ", i+1))
		if err != nil {
			return nil, err
		}
		names = append(names, strings.TrimSpace(name))
	}
	if err := ValidateNames(names, minPlayers, maxPlayers); err != nil {
		return nil, err
	}
	return names, nil
}

// NewRound 洗牌、翻出弃牌堆首张和万能牌、打乱座次并发牌
func NewRound(players []*Player, opts Options) (*Round, error) {
	opts.applyDefaults()

	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	if err := ValidateNames(names, opts.MinPlayers, opts.MaxPlayers); err != nil {
		return nil, err
	}
	if need := len(players)*opts.HandSize + 2; need > card.DeckSize {
		return nil, setupError("%d players with %d cards each need %d cards, the deck has %d",
			len(players), opts.HandSize, need, card.DeckSize)
	}

	deck := card.NewDeck()
	deck.Shuffle(opts.Rand)
	tb := table.New(deck, opts.Rand)

	first, err := tb.Deal()
	if err != nil {
		return nil, err
	}
	tb.Discard(first)

	wild, err := tb.TurnWild()
	if err != nil {
		return nil, err
	}

	seats := append([]*Player(nil), players...)
	opts.Rand.Shuffle(len(seats), func(i, j int) {
		seats[i], seats[j] = seats[j], seats[i]
	})

	for _, p := range seats {
		p.Hand = make(card.Hand, 0, opts.HandSize+1)
	}
	for range opts.HandSize {
		for _, p := range seats {
			c, err := tb.Deal()
			if err != nil {
				return nil, err
			}
			p.Hand.Add(c)
		}
	}

	r := &Round{
		ID:        uuid.NewString(),
		players:   seats,
		table:     tb,
		wild:      wild,
		policy:    opts.Policy,
		observers: opts.Observers,
		recorder:  opts.Recorder,
	}
	tb.Recycled = r.onRecycle

	r.record(Event{Kind: EventStart, Cards: []card.Card{wild, first}, Detail: string(opts.Policy)})
	for _, p := range seats {
		r.record(Event{Kind: EventDeal, Player: p.Name, Cards: p.Hand.Clone()})
	}
	return r, nil
}
