package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/rummy/internal/game/rule"
)

func TestChooseDraw(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DrawFromDiscard, ChooseDraw(true, true))
	assert.Equal(t, DrawFromDeck, ChooseDraw(true, false))
	assert.Equal(t, DrawFromDeck, ChooseDraw(false, true))
	assert.Equal(t, DrawFromDeck, ChooseDraw(false, false))
}

func TestParseArrangeCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code     int
		expected ArrangeCommand
	}{
		{0, ArrangeDone},
		{1, ArrangeSortRank},
		{2, ArrangeSortSuit},
		{3, ArrangeSwap},
		{4, ArrangeUnknown},
		{-1, ArrangeUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseArrangeCommand(tt.code), "code %d", tt.code)
	}
}

func TestParseCheckCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code     int
		expected CheckCommand
		group    rule.GroupType
	}{
		{0, CheckExit, rule.Invalid},
		{1, CheckSet, rule.Set},
		{2, CheckRun, rule.Run},
		{3, CheckReset, rule.Invalid},
		{9, CheckUnknown, rule.Invalid},
	}
	for _, tt := range tests {
		cmd := ParseCheckCommand(tt.code)
		assert.Equal(t, tt.expected, cmd, "code %d", tt.code)
		assert.Equal(t, tt.group, cmd.GroupType(), "code %d", tt.code)
	}
}

func TestMultiRecorder(t *testing.T) {
	t.Parallel()

	a, b := &eventLog{}, &eventLog{}
	failing := RecorderFunc(func(Event) error { return errors.New("first") })
	later := RecorderFunc(func(Event) error { return errors.New("second") })

	rec := MultiRecorder(a, nil, failing, later, b)
	err := rec.Record(Event{Kind: EventDraw})

	assert.EqualError(t, err, "first")
	assert.Equal(t, []EventKind{EventDraw}, a.kinds())
	assert.Equal(t, []EventKind{EventDraw}, b.kinds(), "later recorders still run after an error")
}
