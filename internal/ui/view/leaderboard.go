package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/rummy/internal/storage"
	"github.com/palemoky/rummy/internal/ui/common"
)

// RenderLeaderboard renders the leaderboard table.
func RenderLeaderboard(entries []storage.LeaderboardEntry, color bool) string {
	if len(entries) == 0 {
		return "No rounds recorded yet"
	}

	var sb strings.Builder
	title := fmt.Sprintf("%s Leaderboard TOP %d", common.WinnerIcon, len(entries))
	if color {
		title = lipgloss.PlaceHorizontal(44, lipgloss.Center, title)
	}
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("─", 44) + "\n")
	fmt.Fprintf(&sb, "%-5s %-16s %6s %6s %7s\n", "Rank", "Player", "Wins", "Games", "Win%")
	sb.WriteString(strings.Repeat("─", 44) + "\n")

	for _, e := range entries {
		fmt.Fprintf(&sb, "%-5s %-16s %6d %6d %6.1f%%\n",
			fmt.Sprintf("%d.", e.Rank), common.TruncateName(e.Name, 16), e.Wins, e.Games, e.WinRate)
	}

	out := strings.TrimRight(sb.String(), "\n")
	if !color {
		return out
	}
	return common.BoxStyle.Render(out)
}

// RenderStats renders one player's record.
func RenderStats(s *storage.PlayerStats, rank int64) string {
	if s == nil || s.Games == 0 {
		return "No rounds recorded yet"
	}
	rankStr := "unranked"
	if rank > 0 {
		rankStr = fmt.Sprintf("#%d", rank)
	}
	return fmt.Sprintf("%s  rank %s  |  games %d  wins %d  win rate %.1f%%",
		s.Name, rankStr, s.Games, s.Wins, s.WinRate)
}
