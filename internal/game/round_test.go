package game

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/rummy/internal/game/card"
	"github.com/palemoky/rummy/internal/game/rule"
)

func TestPlayTurn_TakeDiscardThenDiscardFromHand(t *testing.T) {
	t.Parallel()

	ann := newSeat("ann",
		"y", // take the top discard
		"1", // discard the first card
		"n", // no rearrange
		"n", // no win check
	).withHand("2C", "3C", "4C", "5C", "6C", "7C", "9C", "10C", "JC", "QC")

	log := &eventLog{}
	r, observer := newTestRound(t, roundSetup{deck: []string{"AD"}, discard: []string{"KH", "5H"}, recorder: log}, ann)
	before := totalCards(r)

	groups, won, err := r.PlayTurn(context.Background(), ann.Player)
	require.NoError(t, err)
	assert.False(t, won)
	assert.Nil(t, groups)

	assert.Len(t, ann.Hand, 10)
	assert.Equal(t, card.MustParse("5H"), ann.Hand[len(ann.Hand)-1])
	top, ok := r.Table().Top()
	require.True(t, ok)
	assert.Equal(t, card.MustParse("2C"), top)
	assert.Equal(t, 1, r.Table().DeckLen(), "the deck is untouched")
	assert.Equal(t, before, totalCards(r))

	assert.True(t, observer.HasMessage("ann draws: 5 of Hearts (from the top of the discard pile)"))
	assert.True(t, observer.HasMessage("ann discards: 2 of Clubs"))
	assert.Equal(t, []EventKind{EventTakeDiscard, EventDiscard}, log.kinds())
	assert.Zero(t, ann.script.Remaining())
}

func TestPlayTurn_DrawFromDeckAndDecline(t *testing.T) {
	t.Parallel()

	hand := []string{"2C", "3C", "4C", "5C", "6C", "7C", "9C", "10C", "JC", "QC"}
	ann := newSeat("ann", "n", "n", "n", "n").withHand(hand...)
	r, observer := newTestRound(t, roundSetup{deck: []string{"AD", "KS"}, discard: []string{"5H"}}, ann)

	_, won, err := r.PlayTurn(context.Background(), ann.Player)
	require.NoError(t, err)
	assert.False(t, won)

	assert.Equal(t, cards(hand...), ann.Hand)
	top, _ := r.Table().Top()
	assert.Equal(t, card.MustParse("KS"), top)
	assert.Equal(t, 1, r.Table().DeckLen())

	// 摸到的牌只给本人看，公开消息不含牌面
	assert.Contains(t, ann.out.Cards(), shown("You drew", "KS"))
	assert.True(t, observer.HasMessage("ann draws a card from the top of the deck"))
	assert.False(t, observer.HasMessage("King of Spades (from"))
	assert.True(t, observer.HasMessage("ann discards: King of Spades"))
}

func TestPlayTurn_DrawKeepAndDiscard(t *testing.T) {
	t.Parallel()

	ann := newSeat("ann",
		"n",       // not the discard pile
		"y",       // keep the drawn card
		"0", "12", // out of range
		"3",
		"n", "n",
	).withHand("2C", "3C", "4C", "5C", "6C", "7C", "9C", "10C", "JC", "QC")
	r, _ := newTestRound(t, roundSetup{deck: []string{"KS"}, discard: []string{"5H"}}, ann)

	_, _, err := r.PlayTurn(context.Background(), ann.Player)
	require.NoError(t, err)

	assert.Equal(t, cards("2C", "3C", "5C", "6C", "7C", "9C", "10C", "JC", "QC", "KS"), ann.Hand)
	top, _ := r.Table().Top()
	assert.Equal(t, card.MustParse("4C"), top)
	assert.Equal(t, 2, r.Table().DiscardLen())
	assert.Equal(t, 2, countMessages(ann.out, "Please enter a number between 1 and 11."))
}

func TestPlayTurn_NoDiscardPileSkipsQuestion(t *testing.T) {
	t.Parallel()

	ann := newSeat("ann", "n", "n", "n").withHand("2C", "3C", "4C")
	r, _ := newTestRound(t, roundSetup{deck: []string{"KS"}}, ann)

	_, _, err := r.PlayTurn(context.Background(), ann.Player)
	require.NoError(t, err)

	prompts := ann.script.Prompts()
	require.NotEmpty(t, prompts)
	assert.Equal(t, "ann, keep this card (y/n): ", prompts[0])
}

func TestPlayTurn_MalformedAnswerIsAskedAgain(t *testing.T) {
	t.Parallel()

	ann := newSeat("ann", "maybe", "n", "n", "n", "n").withHand("2C", "3C", "4C")
	r, _ := newTestRound(t, roundSetup{deck: []string{"KS"}, discard: []string{"5H"}}, ann)

	_, _, err := r.PlayTurn(context.Background(), ann.Player)
	require.NoError(t, err)
	assert.True(t, ann.out.HasMessage("please answer y or n"))
	assert.Zero(t, ann.script.Remaining())
}

func TestPlayTurn_RecyclesDiscardPile(t *testing.T) {
	t.Parallel()

	ann := newSeat("ann", "n", "n", "n", "n").withHand("2C", "3C", "4C")
	log := &eventLog{}
	r, observer := newTestRound(t, roundSetup{discard: []string{"AD", "2D", "3D"}, recorder: log}, ann)
	before := totalCards(r)

	_, _, err := r.PlayTurn(context.Background(), ann.Player)
	require.NoError(t, err)

	assert.True(t, observer.HasMessage("2 cards from the discard pile were shuffled into a new deck"))
	recycled := log.byKind(EventRecycle)
	require.Len(t, recycled, 1)
	assert.Equal(t, "2", recycled[0].Detail)
	assert.Equal(t, "ann", recycled[0].Player)

	deck, discard := r.Table().Snapshot()
	assert.Len(t, deck, 1)
	assert.Len(t, discard, 2)
	assert.Equal(t, card.MustParse("3D"), discard[0], "old top stays at the bottom of the new pile")
	assert.Equal(t, before, totalCards(r))
}

func TestPlayTurn_DeckAndDiscardExhausted(t *testing.T) {
	t.Parallel()

	ann := newSeat("ann", "n").withHand("2C", "3C", "4C")
	r, _ := newTestRound(t, roundSetup{discard: []string{"AD"}}, ann)

	_, _, err := r.PlayTurn(context.Background(), ann.Player)
	assert.Error(t, err)
}

func TestPlayTurn_Rearrange(t *testing.T) {
	t.Parallel()

	ann := newSeat("ann",
		"n", // discard the drawn card
		"y",
		// sort by rank, unknown code, swap first and last
		"1", "9", "3", "1 5",
		// one number is not a pair
		"3", "1", "1 2",
		// sort by suit
		"2",
		"0",
		"n",
	).withHand("5H", "KC", "2S", "9D", "AC")
	r, _ := newTestRound(t, roundSetup{deck: []string{"3C"}}, ann)

	_, _, err := r.PlayTurn(context.Background(), ann.Player)
	require.NoError(t, err)

	assert.True(t, ann.out.HasMessage("unknown command: 9"))
	assert.True(t, ann.out.HasMessage("Please enter exactly two numbers between 1 and 5."))

	hands := ann.out.Hands()
	// 初始、摸牌后各展示一次，然后每个有效菜单操作展示一次
	require.Len(t, hands, 6)
	assert.Equal(t, cards("KC", "9D", "5H", "2S", "AC"), card.Hand(hands[2]))
	assert.Equal(t, cards("AC", "9D", "5H", "2S", "KC"), card.Hand(hands[3]))
	assert.Equal(t, cards("2S", "5H", "9D", "KC", "AC"), ann.Hand)
}

func TestPlayTurn_WinCheckWins(t *testing.T) {
	t.Parallel()

	answers := append([]string{"n", "n"}, winningAnswers()...)
	ann := newSeat("ann", answers...).withHand(winningHand()...)
	log := &eventLog{}
	r, observer := newTestRound(t, roundSetup{deck: []string{"2C"}, recorder: log}, ann)

	groups, won, err := r.PlayTurn(context.Background(), ann.Player)
	require.NoError(t, err)
	require.True(t, won)
	require.Len(t, groups, 3)

	assert.Equal(t, rule.Run, groups[0].Type)
	assert.True(t, groups[0].Natural)
	assert.Equal(t, rule.Set, groups[1].Type)
	assert.False(t, groups[2].Natural)

	assert.True(t, observer.HasMessage("ann won!"))
	assert.Equal(t, 3, countMessages(ann.out, "Hooray"))
	assert.Len(t, log.byKind(EventGroup), 3)
	require.Len(t, log.byKind(EventWin), 1)
	assert.Equal(t, cards(winningHand()...), ann.Hand, "checking never changes the real hand")
}

func TestPlayTurn_WinCheckInvalidResetExit(t *testing.T) {
	t.Parallel()

	ann := newSeat("ann",
		"n", "n",
		"y",
		// not a set
		"1", "1 2 3",
		// duplicate index asked again, then a valid run
		"2", "1 1 2", "1 2 3",
		// unknown code, then reset
		"7", "3",
		"0",
	).withHand(winningHand()...)
	r, observer := newTestRound(t, roundSetup{deck: []string{"2C"}}, ann)

	groups, won, err := r.PlayTurn(context.Background(), ann.Player)
	require.NoError(t, err)
	assert.False(t, won)
	assert.Nil(t, groups)

	assert.True(t, ann.out.HasMessage("The given cards are not a set"))
	assert.True(t, ann.out.HasMessage("more than once"))
	assert.True(t, ann.out.HasMessage("Hooray... the given cards are a run!"))
	assert.True(t, ann.out.HasMessage("unknown command: 7"))
	assert.Equal(t, cards(winningHand()...), card.Hand(ann.out.LastHand()), "reset shows the whole hand again")
	assert.False(t, observer.HasMessage("won!"))
}

func TestPlayTurn_AllGroupedButNoWin(t *testing.T) {
	t.Parallel()

	ann := newSeat("ann",
		"n", "n",
		"y",
		"2", "1 2 3",
		"1", "1 2 3",
		"0",
	).withHand("3H", "4H", "5H", "KS", "KD", "KH")
	r, _ := newTestRound(t, roundSetup{deck: []string{"2C"}}, ann)

	_, won, err := r.PlayTurn(context.Background(), ann.Player)
	require.NoError(t, err)
	assert.False(t, won)
	assert.True(t, ann.out.HasMessage("a win needs two runs"))
}

func TestPlayTurn_NaturalRunPolicy(t *testing.T) {
	t.Parallel()

	ann := newSeat("ann",
		"n", "n",
		"y",
		"2", "1 2 3",
		"1", "1 2 3",
	).withHand("3H", "4H", "5H", "KS", "KD", "KH")
	r, _ := newTestRound(t, roundSetup{deck: []string{"2C"}, policy: rule.PolicyNaturalRun}, ann)

	_, won, err := r.PlayTurn(context.Background(), ann.Player)
	require.NoError(t, err)
	assert.True(t, won)
}

func TestRun_SecondPlayerWins(t *testing.T) {
	t.Parallel()

	ann := newSeat("ann", "n", "n", "n").withHand("2H", "7C", "QD")
	bob := newSeat("bob", append([]string{"n", "n", "n"}, winningAnswers()...)...).withHand(winningHand()...)

	rec := &MockRecorder{}
	rec.On("Record", mock.Anything).Return(nil)
	r, _ := newTestRound(t, roundSetup{deck: []string{"4D", "2C"}, recorder: rec}, ann, bob)

	res, err := r.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, "bob", res.Winner.Name)
	assert.Equal(t, 2, res.Turns)
	assert.Equal(t, []string{"ann", "bob"}, res.Players)
	assert.Equal(t, "test-round", res.RoundID)
	assert.Len(t, res.Groups, 3)

	rec.AssertCalled(t, "Record", mock.MatchedBy(func(e Event) bool {
		return e.Kind == EventWin && e.Player == "bob" && e.Turn == 2 && e.RoundID == "test-round"
	}))
}

func TestRun_RecorderErrorsDoNotStopTheRound(t *testing.T) {
	t.Parallel()

	ann := newSeat("ann", append([]string{"n", "n"}, winningAnswers()...)...).withHand(winningHand()...)
	rec := &MockRecorder{}
	rec.On("Record", mock.Anything).Return(errors.New("disk full"))
	r, _ := newTestRound(t, roundSetup{deck: []string{"2C"}, recorder: rec}, ann)

	res, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ann", res.Winner.Name)
}

func TestRun_InputErrorEndsRound(t *testing.T) {
	t.Parallel()

	ann := newSeat("ann", "n").withHand("2H", "7C", "QD")
	r, _ := newTestRound(t, roundSetup{deck: []string{"4D", "2C"}}, ann)

	res, err := r.Run(context.Background())
	assert.Nil(t, res)
	require.Error(t, err)
	assert.ErrorIs(t, err, io.EOF)
	assert.Contains(t, err.Error(), "turn 1 of ann")
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	ann := newSeat("ann").withHand("2H", "7C", "QD")
	r, _ := newTestRound(t, roundSetup{deck: []string{"2C"}}, ann)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRound_ShowInitialHands(t *testing.T) {
	t.Parallel()

	ann := newSeat("ann").withHand("2H", "7C")
	bob := newSeat("bob").withHand("QD")
	r, _ := newTestRound(t, roundSetup{}, ann, bob)

	r.ShowInitialHands()
	assert.Equal(t, [][]card.Card{cards("2H", "7C")}, ann.out.Hands())
	assert.Equal(t, [][]card.Card{cards("QD")}, bob.out.Hands())
}

func countMessages(o interface{ Messages() []string }, substr string) int {
	n := 0
	for _, m := range o.Messages() {
		if strings.Contains(m, substr) {
			n++
		}
	}
	return n
}
