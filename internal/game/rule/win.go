package rule

import (
	"fmt"

	"github.com/palemoky/rummy/internal/apperrors"
	"github.com/palemoky/rummy/internal/game/card"
)

// WinPolicy 胡牌条件
type WinPolicy string

const (
	// PolicyTwoRuns 至少两组顺子，其中至少一组不含万能牌
	PolicyTwoRuns WinPolicy = "two_runs"
	// PolicyNaturalRun 只要求至少一组不含万能牌的顺子
	PolicyNaturalRun WinPolicy = "natural_run"
)

// ParseWinPolicy 解析配置中的胡牌条件
func ParseWinPolicy(s string) (WinPolicy, error) {
	switch p := WinPolicy(s); p {
	case PolicyTwoRuns, PolicyNaturalRun:
		return p, nil
	case "":
		return PolicyTwoRuns, nil
	default:
		return "", fmt.Errorf("unknown win policy %q", s)
	}
}

// WinState 检查胡牌的状态
type WinState int

const (
	StateChecking WinState = iota // 可以继续提交组合
	StateWon                      // 已胡牌，终态
	StateAborted                  // 玩家放弃本次检查
)

// Group 一次被接受的组合
type Group struct {
	Type    GroupType
	Cards   []card.Card
	Natural bool
}

// WinTracker 在手牌副本上逐组试探，真实手牌始终不变
type WinTracker struct {
	hand      []card.Card
	wild      card.Rank
	policy    WinPolicy
	remaining []card.Card
	groups    []Group
	state     WinState
}

// NewWinTracker 复制手牌开始一次胡牌检查
func NewWinTracker(hand []card.Card, wild card.Rank, policy WinPolicy) *WinTracker {
	if policy == "" {
		policy = PolicyTwoRuns
	}
	w := &WinTracker{
		hand:   append([]card.Card(nil), hand...),
		wild:   wild,
		policy: policy,
	}
	w.Reset()
	return w
}

// Reset 放弃当前进度，用真实手牌重新开始
func (w *WinTracker) Reset() {
	w.remaining = append([]card.Card(nil), w.hand...)
	w.groups = nil
	w.state = StateChecking
}

// Abort 退出本次检查
func (w *WinTracker) Abort() {
	if w.state == StateChecking {
		w.state = StateAborted
	}
}

// Check 校验剩余手牌中的一组牌，合法则移出并检查是否胡牌
// 组合不合法时返回 Result.Valid == false，剩余手牌不变
func (w *WinTracker) Check(kind GroupType, indices []int) (Result, error) {
	if w.state != StateChecking {
		return Result{}, fmt.Errorf("%w: win check already finished", apperrors.ErrUnknownCommand)
	}

	res, err := Validate(kind, w.remaining, indices, w.wild)
	if err != nil || !res.Valid {
		return res, err
	}

	cards, _ := SelectCards(w.remaining, indices)
	zeroBased := make([]int, len(indices))
	for i, idx := range indices {
		zeroBased[i] = idx - 1
	}
	w.remaining = card.RemoveAt(w.remaining, zeroBased)
	w.groups = append(w.groups, Group{Type: kind, Cards: cards, Natural: res.Natural})

	if w.satisfied() {
		w.state = StateWon
	}
	return res, nil
}

// satisfied 手牌用完且满足胡牌条件
func (w *WinTracker) satisfied() bool {
	if len(w.remaining) != 0 {
		return false
	}
	runs, natural := 0, false
	for _, g := range w.groups {
		if g.Type != Run {
			continue
		}
		runs++
		natural = natural || g.Natural
	}
	switch w.policy {
	case PolicyNaturalRun:
		return natural
	default:
		return natural && runs >= 2
	}
}

// Remaining 剩余未组合的牌
func (w *WinTracker) Remaining() []card.Card {
	return append([]card.Card(nil), w.remaining...)
}

// Groups 已接受的组合
func (w *WinTracker) Groups() []Group {
	return append([]Group(nil), w.groups...)
}

// HasNaturalRun 是否已有一组不含万能牌的顺子
func (w *WinTracker) HasNaturalRun() bool {
	for _, g := range w.groups {
		if g.Type == Run && g.Natural {
			return true
		}
	}
	return false
}

// State 当前状态
func (w *WinTracker) State() WinState {
	return w.state
}

// Won 是否已胡牌
func (w *WinTracker) Won() bool {
	return w.state == StateWon
}

// Stuck 手牌已用完但不满足胡牌条件，只能重置或退出
func (w *WinTracker) Stuck() bool {
	return w.state == StateChecking && len(w.remaining) == 0
}
