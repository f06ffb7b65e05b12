package common

// TruncateName shortens a player name to at most maxLen runes, marking the
// cut with an ellipsis.
func TruncateName(name string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(name)
	if len(runes) > maxLen {
		return string(runes[:maxLen-1]) + "…"
	}
	return name
}
