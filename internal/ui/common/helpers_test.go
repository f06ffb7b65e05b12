package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"within limit", "Alice", 10, "Alice"},
		{"exact length", "Bartholomew", 11, "Bartholomew"},
		{"truncated", "Bartholomew", 6, "Barth…"},
		{"multibyte runes", "Zoë-Ångström", 4, "Zoë…"},
		{"empty", "", 10, ""},
		{"single rune limit", "Hello", 1, "…"},
		{"zero limit", "Hello", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, TruncateName(tt.input, tt.maxLen))
		})
	}
}
