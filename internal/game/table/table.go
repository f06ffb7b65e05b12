// Package table 管理牌堆和弃牌堆，两者只由牌桌自身修改。
package table

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/palemoky/rummy/internal/apperrors"
	"github.com/palemoky/rummy/internal/game/card"
)

// Table 牌堆和弃牌堆，末尾为顶
type Table struct {
	deck    card.Deck
	discard []card.Card
	rng     *rand.Rand

	// Recycled 每次弃牌堆洗回牌堆时回调，可为空
	Recycled func(moved int)
}

// New 使用已洗好的牌创建牌桌
func New(deck card.Deck, rng *rand.Rand) *Table {
	return &Table{
		deck: slices.Clone(deck),
		rng:  rng,
	}
}

// Deal 从牌堆顶发一张牌
func (t *Table) Deal() (card.Card, error) {
	if len(t.deck) == 0 {
		return card.Card{}, fmt.Errorf("%w: deck is empty", apperrors.ErrDeckExhausted)
	}
	c := t.deck[len(t.deck)-1]
	t.deck = t.deck[:len(t.deck)-1]
	return c, nil
}

// TurnWild 翻出决定万能点数的牌，翻到王牌时把王牌压到牌堆底再翻下一张
func (t *Table) TurnWild() (card.Card, error) {
	c, err := t.Deal()
	if err != nil {
		return card.Card{}, err
	}
	if !c.IsJoker() {
		return c, nil
	}
	t.deck = slices.Insert(t.deck, 0, c)
	return t.Deal()
}

// Draw 从牌堆摸一张牌，牌堆为空时先把弃牌堆（顶牌除外）洗成新牌堆
func (t *Table) Draw() (card.Card, error) {
	if len(t.deck) == 0 {
		if err := t.recycle(); err != nil {
			return card.Card{}, err
		}
	}
	return t.Deal()
}

// recycle 弃牌堆除顶牌外全部洗回牌堆，顶牌留作新弃牌堆
func (t *Table) recycle() error {
	if len(t.discard) <= 1 {
		return fmt.Errorf("%w: discard pile has %d card(s)", apperrors.ErrDeckExhausted, len(t.discard))
	}
	top := t.discard[len(t.discard)-1]
	t.deck = card.Deck(slices.Clone(t.discard[:len(t.discard)-1]))
	t.deck.Shuffle(t.rng)
	t.discard = []card.Card{top}

	if t.Recycled != nil {
		t.Recycled(len(t.deck))
	}
	return nil
}

// TakeDiscard 拿走弃牌堆顶牌
func (t *Table) TakeDiscard() (card.Card, error) {
	if len(t.discard) == 0 {
		return card.Card{}, fmt.Errorf("%w: discard pile is empty", apperrors.ErrDeckExhausted)
	}
	c := t.discard[len(t.discard)-1]
	t.discard = t.discard[:len(t.discard)-1]
	return c, nil
}

// Discard 把一张牌放到弃牌堆顶
func (t *Table) Discard(c card.Card) {
	t.discard = append(t.discard, c)
}

// Top 弃牌堆顶牌
func (t *Table) Top() (card.Card, bool) {
	if len(t.discard) == 0 {
		return card.Card{}, false
	}
	return t.discard[len(t.discard)-1], true
}

// DeckLen 牌堆剩余张数
func (t *Table) DeckLen() int {
	return len(t.deck)
}

// DiscardLen 弃牌堆张数
func (t *Table) DiscardLen() int {
	return len(t.discard)
}

// Snapshot 返回牌堆和弃牌堆的副本
func (t *Table) Snapshot() (deck, discard []card.Card) {
	return slices.Clone(t.deck), slices.Clone(t.discard)
}
