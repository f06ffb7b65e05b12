//go:build !production

package testutil

import (
	"strings"
	"sync"

	"github.com/palemoky/rummy/internal/game/card"
)

// ShownCard 一次单张牌展示
type ShownCard struct {
	Label string
	Card  card.Card
}

// Output 记录所有输出，实现 game.Output
type Output struct {
	mu       sync.Mutex
	hands    [][]card.Card
	cards    []ShownCard
	messages []string
}

func (o *Output) ShowHand(_ string, hand []card.Card) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.hands = append(o.hands, append([]card.Card(nil), hand...))
}

func (o *Output) ShowCard(label string, c card.Card) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cards = append(o.cards, ShownCard{Label: label, Card: c})
}

func (o *Output) Message(text string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = append(o.messages, text)
}

// Hands 展示过的手牌
func (o *Output) Hands() [][]card.Card {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([][]card.Card(nil), o.hands...)
}

// LastHand 最后一次展示的手牌
func (o *Output) LastHand() []card.Card {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.hands) == 0 {
		return nil
	}
	return o.hands[len(o.hands)-1]
}

// Cards 展示过的单张牌
func (o *Output) Cards() []ShownCard {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]ShownCard(nil), o.cards...)
}

// Messages 收到的消息
func (o *Output) Messages() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.messages...)
}

// HasMessage 是否有包含 substr 的消息
func (o *Output) HasMessage(substr string) bool {
	for _, m := range o.Messages() {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}
