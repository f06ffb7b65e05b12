package rule

import (
	"fmt"
	"slices"

	"github.com/palemoky/rummy/internal/apperrors"
	"github.com/palemoky/rummy/internal/game/card"
)

// GroupType 定义组合类型
type GroupType int

const (
	Invalid GroupType = iota
	Set               // 同点数不同花色（三条）
	Run               // 同花色连续点数（顺子）
)

// groupTypeNames 组合名称映射表
var groupTypeNames = map[GroupType]string{
	Set: "set",
	Run: "run",
}

func (g GroupType) String() string {
	if name, ok := groupTypeNames[g]; ok {
		return name
	}
	return "invalid"
}

const (
	// MinGroupSize 组合最少需要的牌数
	MinGroupSize = 3
	// MaxSetSize 三条最多四张，每种花色一张
	MaxSetSize = 4
	// MaxRunSize 顺子不能首尾相接，最长 A 到 K
	MaxRunSize = int(card.HighestRank-card.LowestRank) + 1
)

// Result 校验结果
type Result struct {
	Valid   bool   // 是否为合法组合
	Natural bool   // 是否没有使用任何万能牌
	Wilds   int    // 使用的万能牌数量
	Reason  string // 不合法的原因
}

func invalid(format string, args ...any) Result {
	return Result{Reason: fmt.Sprintf(format, args...)}
}

// selection 按万能牌拆分后的选牌
type selection struct {
	naturals []card.Card
	wilds    []card.Card
}

func (s selection) size() int {
	return len(s.naturals) + len(s.wilds)
}

// SelectCards 把 1 起始的序号解析为手牌中的牌
// 序号越界或重复属于输入错误，返回 ErrMalformedInput
func SelectCards(hand []card.Card, indices []int) ([]card.Card, error) {
	seen := make(map[int]bool, len(indices))
	cards := make([]card.Card, 0, len(indices))
	for _, idx := range indices {
		if idx < 1 || idx > len(hand) {
			return nil, fmt.Errorf("%w: card number %d is not between 1 and %d",
				apperrors.ErrMalformedInput, idx, len(hand))
		}
		if seen[idx] {
			return nil, fmt.Errorf("%w: card number %d was given more than once",
				apperrors.ErrMalformedInput, idx)
		}
		seen[idx] = true
		cards = append(cards, hand[idx-1])
	}
	return cards, nil
}

// split 用万能牌判定把选牌拆成普通牌和万能牌
func split(cards []card.Card, wild card.Rank) selection {
	var s selection
	for _, c := range cards {
		if card.IsWild(c, wild) {
			s.wilds = append(s.wilds, c)
		} else {
			s.naturals = append(s.naturals, c)
		}
	}
	return s
}

// prepare 公共前置校验：不足三张直接判为不合法
func prepare(hand []card.Card, indices []int, wild card.Rank) (selection, *Result, error) {
	if len(indices) < MinGroupSize {
		r := invalid("a group needs at least %d cards", MinGroupSize)
		return selection{}, &r, nil
	}
	cards, err := SelectCards(hand, indices)
	if err != nil {
		return selection{}, nil, err
	}
	s := split(cards, wild)
	if len(s.naturals) == 0 {
		r := invalid("a group made only of wild cards has nothing to anchor it")
		return selection{}, &r, nil
	}
	return s, nil, nil
}

// ValidateSet 校验所选的牌是否为合法三条
func ValidateSet(hand []card.Card, indices []int, wild card.Rank) (Result, error) {
	s, early, err := prepare(hand, indices, wild)
	if err != nil || early != nil {
		return deref(early), err
	}

	if s.size() > MaxSetSize {
		return invalid("a set holds at most %d cards", MaxSetSize), nil
	}

	rank := s.naturals[0].Rank
	suits := make(map[card.Suit]bool, len(s.naturals))
	for _, c := range s.naturals {
		if c.Rank != rank {
			return invalid("%s and %s do not share a rank", s.naturals[0], c), nil
		}
		if suits[c.Suit] {
			return invalid("%s appears twice", c), nil
		}
		suits[c.Suit] = true
	}

	return Result{Valid: true, Natural: len(s.wilds) == 0, Wilds: len(s.wilds)}, nil
}

// ValidateRun 校验所选的牌是否为合法顺子
func ValidateRun(hand []card.Card, indices []int, wild card.Rank) (Result, error) {
	s, early, err := prepare(hand, indices, wild)
	if err != nil || early != nil {
		return deref(early), err
	}

	if s.size() > MaxRunSize {
		return invalid("a run holds at most %d cards", MaxRunSize), nil
	}

	suit := s.naturals[0].Suit
	for _, c := range s.naturals {
		if c.Suit != suit {
			return invalid("%s and %s are not the same suit", s.naturals[0], c), nil
		}
	}

	naturals := slices.Clone(s.naturals)
	slices.SortFunc(naturals, card.Compare)

	// 相邻两张的空缺需要用万能牌补齐
	budget := len(s.wilds)
	for i := 1; i < len(naturals); i++ {
		gap := int(naturals[i].Rank - naturals[i-1].Rank)
		switch {
		case gap <= 0:
			return invalid("%s repeats a rank", naturals[i]), nil
		case gap == 1:
			continue
		case gap-1 > budget:
			return invalid("not enough wild cards to fill between %s and %s", naturals[i-1], naturals[i]), nil
		default:
			budget -= gap - 1
		}
	}

	// 剩余的万能牌接在两端，总长度受 A 到 K 限制，已由 MaxRunSize 保证
	return Result{Valid: true, Natural: len(s.wilds) == 0, Wilds: len(s.wilds)}, nil
}

// Validate 按组合类型分派到对应的校验函数
func Validate(kind GroupType, hand []card.Card, indices []int, wild card.Rank) (Result, error) {
	switch kind {
	case Set:
		return ValidateSet(hand, indices, wild)
	case Run:
		return ValidateRun(hand, indices, wild)
	default:
		return Result{}, fmt.Errorf("%w: no validator for %s", apperrors.ErrUnknownCommand, kind)
	}
}

func deref(r *Result) Result {
	if r == nil {
		return Result{}
	}
	return *r
}
