package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// identity leaves the deck order untouched.
var identity = SourceFunc(func(n int) int { return n - 1 })

func countCards(cs []Card) map[Card]int {
	counts := make(map[Card]int)
	for _, c := range cs {
		counts[c]++
	}
	return counts
}

func TestNewShoeHoldsEveryDeck(t *testing.T) {
	shoe, err := NewShoe(4, 0.75, nil)
	require.NoError(t, err)
	require.Equal(t, 4*DeckSize, shoe.Remaining())

	counts := countCards(shoe.Snapshot().Cards)
	assert.Len(t, counts, DeckSize)
	for c, n := range counts {
		assert.Equal(t, 4, n, "card %s", c)
	}
}

func TestNewShoeValidation(t *testing.T) {
	_, err := NewShoe(0, 0.75, identity)
	assert.Error(t, err)
	_, err = NewShoe(1, 0, identity)
	assert.Error(t, err)
	_, err = NewShoe(1, 1.5, identity)
	assert.Error(t, err)
}

func TestDrawReshufflesBelowThreshold(t *testing.T) {
	shoe, err := NewShoe(4, 0.75, identity)
	require.NoError(t, err)
	require.Equal(t, 52, shoe.ReshuffleThreshold())

	for shoe.Remaining() >= shoe.ReshuffleThreshold() {
		shoe.Draw()
	}
	require.Equal(t, 51, shoe.Remaining())

	shoe.Draw()
	assert.Equal(t, 207, shoe.Remaining())
}

func TestDrawOnEmptyShoeReshuffles(t *testing.T) {
	shoe, err := RestoreShoe(ShoeSnapshot{DeckCount: 1, Penetration: 1}, identity)
	require.NoError(t, err)
	require.Equal(t, 0, shoe.ReshuffleThreshold())
	require.Equal(t, 0, shoe.Remaining())

	c := shoe.Draw()
	assert.Equal(t, MustCard(Clubs, Ace), c)
	assert.Equal(t, DeckSize-1, shoe.Remaining())
}

func TestRestoreShoeKeepsOrder(t *testing.T) {
	stacked := []Card{
		MustCard(Spades, Ace),
		MustCard(Hearts, King),
		MustCard(Clubs, 5),
	}
	shoe, err := RestoreShoe(ShoeSnapshot{DeckCount: 1, Penetration: 1, Cards: stacked}, identity)
	require.NoError(t, err)

	assert.Equal(t, stacked[:2], shoe.Peek(2))
	for _, want := range stacked {
		assert.Equal(t, want, shoe.Draw())
	}

	stacked[0] = MustCard(Diamonds, 2)
	snap := shoe.Snapshot()
	assert.Empty(t, snap.Cards)
}

func TestRestoreShoeRejectsCorruptSnapshot(t *testing.T) {
	tooMany := make([]Card, DeckSize+1)
	for i := range tooMany {
		tooMany[i] = MustCard(Clubs, Ace)
	}
	_, err := RestoreShoe(ShoeSnapshot{DeckCount: 1, Penetration: 0.5, Cards: tooMany}, identity)
	assert.Error(t, err)

	_, err = RestoreShoe(ShoeSnapshot{DeckCount: 1, Penetration: 0.5, Cards: []Card{{}}}, identity)
	assert.Error(t, err)

	_, err = RestoreShoe(ShoeSnapshot{DeckCount: 0, Penetration: 0.5}, identity)
	assert.Error(t, err)
}

func TestShuffleZeroDecksPanics(t *testing.T) {
	shoe := &Shoe{}
	assert.Panics(t, func() { shoe.Draw() })
}

func TestCryptoSourceInRange(t *testing.T) {
	src := NewCryptoSource()
	seen := make(map[int]bool)
	for i := 0; i < 500; i++ {
		n := src.Intn(6)
		require.GreaterOrEqual(t, n, 0)
		require.Less(t, n, 6)
		seen[n] = true
	}
	assert.Len(t, seen, 6)
}

func TestCryptoSourceSingleChoice(t *testing.T) {
	src := NewCryptoSource()
	for i := 0; i < 20; i++ {
		assert.Equal(t, 0, src.Intn(1))
	}
}

func TestCryptoShuffleMovesEveryPosition(t *testing.T) {
	aceOfClubs := MustCard(Clubs, Ace)
	firsts := make(map[Card]int)
	for i := 0; i < 200; i++ {
		shoe, err := NewShoe(1, 0.75, nil)
		require.NoError(t, err)
		firsts[shoe.Peek(1)[0]]++
	}
	assert.Greater(t, len(firsts), 1, "first card never changes: %v", firsts)
	assert.Less(t, firsts[aceOfClubs], 200, "the top of a fresh deck is never shuffled away")

	deck := NewDeck()
	swapped := false
	for i := 0; i < 200 && !swapped; i++ {
		cs := NewDeck()
		shuffle(cs, NewCryptoSource())
		swapped = cs[0] != deck[0]
	}
	assert.True(t, swapped)
}
