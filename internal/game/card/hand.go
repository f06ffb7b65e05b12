package card

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Hand 玩家手牌，顺序只影响显示和按序号选牌
type Hand []Card

// Clone 复制手牌
func (h Hand) Clone() Hand {
	return slices.Clone(h)
}

// Add 加入一张牌
func (h *Hand) Add(c Card) {
	*h = append(*h, c)
}

// Remove 移除并返回第 i 张牌（0 起始）
func (h *Hand) Remove(i int) (Card, error) {
	if i < 0 || i >= len(*h) {
		return Card{}, fmt.Errorf("序号 %d 超出范围 [0, %d)", i, len(*h))
	}
	c := (*h)[i]
	*h = slices.Delete(*h, i, i+1)
	return c, nil
}

// Swap 交换两张牌的位置（0 起始）
func (h Hand) Swap(i, j int) error {
	if i < 0 || i >= len(h) || j < 0 || j >= len(h) {
		return fmt.Errorf("序号 %d, %d 超出范围 [0, %d)", i, j, len(h))
	}
	h[i], h[j] = h[j], h[i]
	return nil
}

// SortByRank 按点数从大到小排序
func (h Hand) SortByRank() {
	slices.SortStableFunc(h, func(a, b Card) int {
		return cmp.Compare(b.Rank, a.Rank)
	})
}

// SortBySuit 按 (花色, 点数) 从大到小排序
func (h Hand) SortBySuit() {
	slices.SortStableFunc(h, func(a, b Card) int {
		return Compare(b, a)
	})
}

// RemoveAt 按 0 起始序号一次性移除多张牌，从最大序号开始删除以避免位移
func RemoveAt(hand []Card, indices []int) []Card {
	order := slices.Clone(indices)
	slices.Sort(order)
	order = slices.Compact(order)

	result := slices.Clone(hand)
	for i := len(order) - 1; i >= 0; i-- {
		idx := order[i]
		if idx < 0 || idx >= len(result) {
			continue
		}
		result = slices.Delete(result, idx, idx+1)
	}
	return result
}

// String 显示整手牌
func (h Hand) String() string {
	if len(h) == 0 {
		return "Hand is empty"
	}
	names := make([]string, len(h))
	for i, c := range h {
		names[i] = c.String()
	}
	return "Hand contains [" + strings.Join(names, ", ") + "]"
}
