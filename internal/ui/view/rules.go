package view

import (
	"strings"

	"github.com/palemoky/rummy/internal/game/rule"
	"github.com/palemoky/rummy/internal/ui/common"
)

// RenderGameRules renders the rules for the given win policy.
func RenderGameRules(policy rule.WinPolicy, color bool) string {
	var sb strings.Builder

	sb.WriteString("[Goal]\n")
	sb.WriteString("Group every card in your hand into sets and runs.\n")
	switch policy {
	case rule.PolicyNaturalRun:
		sb.WriteString("At least one run must use no wild cards.\n\n")
	default:
		sb.WriteString("You need at least two runs, and one of them must use no wild cards.\n\n")
	}

	sb.WriteString("[Groups]\n")
	sb.WriteString("• Set: 3 or 4 cards of the same rank, each of a different suit\n")
	sb.WriteString("• Run: 3 or more cards of one suit in consecutive rank order\n")
	sb.WriteString("• Ace is low only, runs never wrap from King to Ace\n\n")

	sb.WriteString("[Wild cards]\n")
	sb.WriteString("• The Joker and every card of the turned-up rank are wild\n")
	sb.WriteString("• A wild card can stand in for any card in a set or run\n\n")

	sb.WriteString("[Turn]\n")
	sb.WriteString("1. Take the top discard, or draw from the deck and keep or discard it\n")
	sb.WriteString("2. If you kept a card, discard one from your hand\n")
	sb.WriteString("3. Rearrange your hand if you like\n")
	sb.WriteString("4. Check for a win by picking sets and runs by card number\n")

	if !color {
		return sb.String()
	}
	return common.BoxStyle.Render(sb.String())
}
