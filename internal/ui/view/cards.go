// Package view renders cards, hands and tables for the terminal.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/rummy/internal/game/card"
	"github.com/palemoky/rummy/internal/ui/common"
)

// noWild is used before a wild card has been turned up.
const noWild card.Rank = 0

// CardFace renders a card as a short face such as "10♥". Wild cards get a
// star, and with color enabled they are highlighted.
func CardFace(c card.Card, wild card.Rank, color bool) string {
	face := c.Short()
	isWild := wild != noWild && card.IsWild(c, wild)
	if isWild {
		face += common.WildIcon
	}
	if !color {
		return face
	}

	style := common.BlackStyle
	switch {
	case c.IsJoker():
		style = common.JokerStyle
	case isWild:
		style = common.WildStyle
	case c.Suit.IsRed():
		style = common.RedStyle
	}
	return style.Padding(0, 1).Render(face)
}

// HandText is the plain description of a hand.
func HandText(owner string, hand []card.Card) string {
	if len(hand) == 0 {
		return fmt.Sprintf("Hand of %s is empty", owner)
	}
	names := make([]string, len(hand))
	for i, c := range hand {
		names[i] = c.String()
	}
	return fmt.Sprintf("Hand of %s contains [%s]", owner, strings.Join(names, ", "))
}

// RenderHand renders the hand with the 1-based numbers players use to pick
// cards.
func RenderHand(owner string, hand []card.Card, wild card.Rank, color bool) string {
	if len(hand) == 0 || !color {
		var sb strings.Builder
		sb.WriteString(HandText(owner, hand))
		for i, c := range hand {
			if i%5 == 0 {
				sb.WriteString("\n")
			} else {
				sb.WriteString("  ")
			}
			fmt.Fprintf(&sb, "%2d. %-6s", i+1, CardFace(c, wild, false))
		}
		return sb.String()
	}

	faces := make([]string, len(hand))
	for i, c := range hand {
		idx := common.IndexStyle.Render(fmt.Sprintf("%d", i+1))
		faces[i] = lipgloss.JoinVertical(lipgloss.Center, CardFace(c, wild, true), idx)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, spaced(faces)...)

	title := fmt.Sprintf("Hand of %s (%d cards)", common.TruncateName(owner, 16), len(hand))
	return common.BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, common.TitleStyle(title), row))
}

func spaced(parts []string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, p)
	}
	return out
}
