package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/palemoky/rummy/internal/apperrors"
	"github.com/palemoky/rummy/internal/game/card"
	"github.com/palemoky/rummy/internal/game/rule"
	"github.com/palemoky/rummy/internal/game/table"
	"github.com/palemoky/rummy/internal/logger"
)

// Round 一局游戏，牌堆和弃牌堆只由当前回合修改
type Round struct {
	ID string

	players   []*Player
	table     *table.Table
	wild      card.Card
	policy    rule.WinPolicy
	observers []Output
	recorder  Recorder

	turn    int
	current *Player
}

// Result 胡牌结果
type Result struct {
	RoundID  string
	Winner   *Player
	Players  []string
	WildCard card.Card
	Turns    int
	Groups   []rule.Group
	Duration time.Duration
}

// Players 按座次返回玩家
func (r *Round) Players() []*Player {
	return append([]*Player(nil), r.players...)
}

// WildCard 本局翻出的万能牌
func (r *Round) WildCard() card.Card {
	return r.wild
}

// Table 牌桌，仅供展示和测试读取
func (r *Round) Table() *table.Table {
	return r.table
}

// announce 公开消息发给所有观察者
func (r *Round) announce(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	for _, o := range r.observers {
		o.Message(text)
	}
}

func (r *Round) record(e Event) {
	if r.recorder == nil {
		return
	}
	e.RoundID = r.ID
	e.Turn = r.turn
	if e.At.IsZero() {
		e.At = time.Now()
	}
	if err := r.recorder.Record(e); err != nil {
		logger.LogError("round %s: recording %s event failed: %v", r.ID, e.Kind, err)
	}
}

func (r *Round) onRecycle(moved int) {
	name := ""
	if r.current != nil {
		name = r.current.Name
	}
	logger.LogInfo("round %s: deck empty, %d discards reshuffled into a new deck", r.ID, moved)
	r.announce("The deck is empty: %d cards from the discard pile were shuffled into a new deck.", moved)
	r.record(Event{Kind: EventRecycle, Player: name, Detail: fmt.Sprintf("%d", moved)})
}

// ShowInitialHands 开局时展示所有玩家的手牌
func (r *Round) ShowInitialHands() {
	for _, p := range r.players {
		p.Out.ShowHand(p.Name, p.Hand)
	}
}

// Run 按座次轮流行动，直到有人胡牌
func (r *Round) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	for {
		for _, p := range r.players {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			groups, won, err := r.PlayTurn(ctx, p)
			if err != nil {
				return nil, fmt.Errorf("turn %d of %s: %w", r.turn, p.Name, err)
			}
			if won {
				return r.result(p, groups, time.Since(start)), nil
			}
		}
	}
}

func (r *Round) result(winner *Player, groups []rule.Group, elapsed time.Duration) *Result {
	names := make([]string, len(r.players))
	for i, p := range r.players {
		names[i] = p.Name
	}
	return &Result{
		RoundID:  r.ID,
		Winner:   winner,
		Players:  names,
		WildCard: r.wild,
		Turns:    r.turn,
		Groups:   groups,
		Duration: elapsed,
	}
}

// PlayTurn 执行一个完整回合：摸牌、整理、检查胡牌
func (r *Round) PlayTurn(ctx context.Context, p *Player) ([]rule.Group, bool, error) {
	r.turn++
	r.current = p
	defer func() { r.current = nil }()

	r.announce("%s %s turn %s", strings.Repeat("*", 20), p.Name, strings.Repeat("*", 20))
	p.Out.ShowHand(p.Name, p.Hand)
	if top, ok := r.table.Top(); ok {
		p.Out.ShowCard("Top card of discard pile", top)
	}
	p.Out.ShowCard("Wild card", r.wild)

	if err := r.drawPhase(ctx, p); err != nil {
		return nil, false, err
	}
	p.Out.ShowHand(p.Name, p.Hand)

	if err := r.arrangePhase(ctx, p); err != nil {
		return nil, false, err
	}
	return r.winCheckPhase(ctx, p)
}

// drawPhase 从弃牌堆或牌堆摸牌
func (r *Round) drawPhase(ctx context.Context, p *Player) error {
	_, available := r.table.Top()
	want := false
	if available {
		yes, err := p.In.Confirm(ctx, p.Name+", draw a card from the top of the discard pile (y/n): ")
		if err != nil {
			return err
		}
		want = yes
	}

	if ChooseDraw(available, want) == DrawFromDiscard {
		c, err := r.table.TakeDiscard()
		if err != nil {
			return err
		}
		r.announce("%s draws: %s (from the top of the discard pile)", p.Name, c)
		r.record(Event{Kind: EventTakeDiscard, Player: p.Name, Cards: []card.Card{c}})
		p.Hand.Add(c)
		return r.discardFromHand(ctx, p)
	}

	c, err := r.table.Draw()
	if err != nil {
		return err
	}
	r.announce("%s draws a card from the top of the deck", p.Name)
	p.Out.ShowCard("You drew", c)
	r.record(Event{Kind: EventDraw, Player: p.Name, Cards: []card.Card{c}})

	keep, err := p.In.Confirm(ctx, p.Name+", keep this card (y/n): ")
	if err != nil {
		return err
	}
	if !keep {
		r.table.Discard(c)
		r.announce("%s discards: %s", p.Name, c)
		r.record(Event{Kind: EventDiscard, Player: p.Name, Cards: []card.Card{c}})
		return nil
	}
	p.Hand.Add(c)
	return r.discardFromHand(ctx, p)
}

// discardFromHand 玩家从手牌（含刚摸到的牌）中弃一张
func (r *Round) discardFromHand(ctx context.Context, p *Player) error {
	p.Out.ShowHand(p.Name, p.Hand)
	idx, err := r.askIndex(ctx, p, p.Name+", which card would you like to discard from your hand (enter its number): ", len(p.Hand))
	if err != nil {
		return err
	}
	c, err := p.Hand.Remove(idx - 1)
	if err != nil {
		return err
	}
	r.table.Discard(c)
	r.announce("%s discards: %s", p.Name, c)
	r.record(Event{Kind: EventDiscard, Player: p.Name, Cards: []card.Card{c}})
	return nil
}

// askIndex 读取 1..n 之间的序号，越界时提示并重新输入
func (r *Round) askIndex(ctx context.Context, p *Player, prompt string, n int) (int, error) {
	for {
		idx, err := p.In.Int(ctx, prompt)
		if err != nil {
			return 0, err
		}
		if idx >= 1 && idx <= n {
			return idx, nil
		}
		p.Out.Message(fmt.Sprintf("Please enter a number between 1 and %d.", n))
	}
}

// askPair 读取两个 1..n 之间的序号
func (r *Round) askPair(ctx context.Context, p *Player, prompt string, n int) (int, int, error) {
	for {
		ids, err := p.In.Ints(ctx, prompt)
		if err != nil {
			return 0, 0, err
		}
		if len(ids) == 2 && inRange(ids[0], n) && inRange(ids[1], n) {
			return ids[0], ids[1], nil
		}
		p.Out.Message(fmt.Sprintf("Please enter exactly two numbers between 1 and %d.", n))
	}
}

func inRange(i, n int) bool {
	return i >= 1 && i <= n
}

// arrangePhase 整理手牌，只影响显示
func (r *Round) arrangePhase(ctx context.Context, p *Player) error {
	yes, err := p.In.Confirm(ctx, p.Name+", do you want to rearrange cards (y/n): ")
	if err != nil || !yes {
		return err
	}

	for {
		code, err := p.In.Int(ctx, arrangeMenu)
		if err != nil {
			return err
		}

		switch ParseArrangeCommand(code) {
		case ArrangeDone:
			return nil
		case ArrangeSortRank:
			p.Hand.SortByRank()
		case ArrangeSortSuit:
			p.Hand.SortBySuit()
		case ArrangeSwap:
			i, j, err := r.askPair(ctx, p, "Enter card 1 & card 2 numbers (starting at 1) separated by a space: ", len(p.Hand))
			if err != nil {
				return err
			}
			if err := p.Hand.Swap(i-1, j-1); err != nil {
				return err
			}
		default:
			p.Out.Message(fmt.Sprintf("%v: %d", apperrors.ErrUnknownCommand, code))
			continue
		}
		p.Out.ShowHand(p.Name, p.Hand)
	}
}

// winCheckPhase 在手牌副本上逐组检查是否胡牌
func (r *Round) winCheckPhase(ctx context.Context, p *Player) ([]rule.Group, bool, error) {
	yes, err := p.In.Confirm(ctx, p.Name+", want to check for win? (y/n): ")
	if err != nil || !yes {
		return nil, false, err
	}

	tracker := rule.NewWinTracker(p.Hand, r.wild.Rank, r.policy)
	for {
		code, err := p.In.Int(ctx, checkMenu)
		if err != nil {
			return nil, false, err
		}

		cmd := ParseCheckCommand(code)
		switch cmd {
		case CheckExit:
			tracker.Abort()
			return nil, false, nil
		case CheckReset:
			tracker.Reset()
			p.Out.ShowHand(p.Name, tracker.Remaining())
			continue
		case CheckSet, CheckRun:
		default:
			p.Out.Message(fmt.Sprintf("%v: %d", apperrors.ErrUnknownCommand, code))
			continue
		}

		kind := cmd.GroupType()
		res, err := r.checkGroup(ctx, p, tracker, kind)
		if err != nil {
			return nil, false, err
		}
		if !res.Valid {
			p.Out.Message(fmt.Sprintf("The given cards are not a %s: %s", kind, res.Reason))
			continue
		}

		groups := tracker.Groups()
		last := groups[len(groups)-1]
		p.Out.Message(fmt.Sprintf("Hooray... the given cards are a %s!", kind))
		p.Out.ShowHand(p.Name, tracker.Remaining())
		logger.LogInfo("round %s: %s formed a %s %v (natural=%t)", r.ID, p.Name, kind, last.Cards, last.Natural)
		r.record(Event{Kind: EventGroup, Player: p.Name, Cards: last.Cards, Detail: groupDetail(last)})

		if tracker.Won() {
			r.announce("%s won!", p.Name)
			logger.LogInfo("round %s: %s won on turn %d", r.ID, p.Name, r.turn)
			r.record(Event{Kind: EventWin, Player: p.Name, Detail: string(r.policy)})
			return groups, true, nil
		}
		if tracker.Stuck() {
			p.Out.Message(r.stuckMessage())
		}
	}
}

// checkGroup 读取序号并校验，序号格式错误时提示并重新输入
func (r *Round) checkGroup(ctx context.Context, p *Player, tracker *rule.WinTracker, kind rule.GroupType) (rule.Result, error) {
	for {
		ids, err := p.In.Ints(ctx, "Enter card numbers separated by spaces: ")
		if err != nil {
			return rule.Result{}, err
		}
		res, err := tracker.Check(kind, ids)
		if errors.Is(err, apperrors.ErrMalformedInput) {
			p.Out.Message(err.Error())
			continue
		}
		return res, err
	}
}

func (r *Round) stuckMessage() string {
	switch r.policy {
	case rule.PolicyNaturalRun:
		return "Every card is grouped, but a win needs at least one run without wild cards. Reset cards or exit."
	default:
		return "Every card is grouped, but a win needs two runs, one of them without wild cards. Reset cards or exit."
	}
}

func groupDetail(g rule.Group) string {
	if g.Natural {
		return "natural " + g.Type.String()
	}
	return g.Type.String()
}
