package view

import (
	"fmt"
	"io"
	"sync"

	"github.com/palemoky/rummy/internal/game/card"
	"github.com/palemoky/rummy/internal/ui/common"
)

// Console writes game output to a terminal.
type Console struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
	wild  card.Rank
}

// NewConsole creates a Console writing to w.
func NewConsole(w io.Writer, color bool) *Console {
	return &Console{w: w, color: color}
}

// SetWild marks cards of rank r (and the Joker) as wild in later output.
func (c *Console) SetWild(r card.Rank) {
	c.mu.Lock()
	c.wild = r
	c.mu.Unlock()
}

func (c *Console) ShowHand(owner string, hand []card.Card) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, RenderHand(owner, hand, c.wild, c.color))
}

func (c *Console) ShowCard(label string, cd card.Card) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.color {
		fmt.Fprintf(c.w, "%s: %s %s\n", label, CardFace(cd, c.wild, true), cd)
		return
	}
	fmt.Fprintf(c.w, "%s: %s\n", label, cd)
}

func (c *Console) Message(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, text)
}

// Error prints an error in the error style.
func (c *Console) Error(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.color {
		fmt.Fprintln(c.w, common.ErrorStyle.Render(err.Error()))
		return
	}
	fmt.Fprintln(c.w, err.Error())
}

// Print writes pre-rendered text such as the rules or the leaderboard.
func (c *Console) Print(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, s)
}
