package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHand() Hand {
	return Hand{
		New(Hearts, Three),
		New(Spades, King),
		New(Clubs, Three),
		NewJoker(),
		New(Hearts, Nine),
	}
}

func TestHand_Remove(t *testing.T) {
	t.Parallel()

	h := sampleHand()
	c, err := h.Remove(1)
	require.NoError(t, err)
	assert.Equal(t, New(Spades, King), c)
	assert.Len(t, h, 4)

	_, err = h.Remove(4)
	assert.Error(t, err)
	_, err = h.Remove(-1)
	assert.Error(t, err)
}

func TestHand_Swap(t *testing.T) {
	t.Parallel()

	h := sampleHand()
	require.NoError(t, h.Swap(0, 4))
	assert.Equal(t, New(Hearts, Nine), h[0])
	assert.Equal(t, New(Hearts, Three), h[4])

	assert.Error(t, h.Swap(0, 5))
}

func TestHand_SortByRank(t *testing.T) {
	t.Parallel()

	h := sampleHand()
	h.SortByRank()
	assert.Equal(t, Hand{
		NewJoker(),
		New(Spades, King),
		New(Hearts, Nine),
		New(Hearts, Three),
		New(Clubs, Three),
	}, h)
}

func TestHand_SortBySuit(t *testing.T) {
	t.Parallel()

	h := sampleHand()
	h.SortBySuit()
	assert.Equal(t, Hand{
		NewJoker(),
		New(Spades, King),
		New(Hearts, Nine),
		New(Hearts, Three),
		New(Clubs, Three),
	}, h)
}

func TestRemoveAt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		indices  []int
		expected []Card
	}{
		{
			name:     "Ascending order",
			indices:  []int{0, 2, 4},
			expected: []Card{New(Spades, King), NewJoker()},
		},
		{
			name:     "Submitted out of order",
			indices:  []int{4, 0, 2},
			expected: []Card{New(Spades, King), NewJoker()},
		},
		{
			name:     "Adjacent indices",
			indices:  []int{1, 2, 3},
			expected: []Card{New(Hearts, Three), New(Hearts, Nine)},
		},
		{
			name:     "Everything",
			indices:  []int{3, 1, 4, 0, 2},
			expected: []Card{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			hand := sampleHand()
			result := RemoveAt(hand, tt.indices)
			assert.Equal(t, tt.expected, result)
			assert.Equal(t, sampleHand(), hand, "input hand must not change")
		})
	}
}

func TestHand_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Hand is empty", Hand{}.String())
	assert.Equal(t, "Hand contains [3 of Hearts, Joker]", Hand{New(Hearts, Three), NewJoker()}.String())
}
