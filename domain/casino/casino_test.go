package casino

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luca-patrignani/casino/domain/blackjack"
	"github.com/luca-patrignani/casino/domain/cards"
	"github.com/luca-patrignani/casino/domain/money"
	"github.com/luca-patrignani/casino/ledger"
)

func tempStore(t *testing.T) ledger.Store {
	t.Helper()
	dir := t.TempDir()
	return ledger.Store{
		SavePath:    filepath.Join(dir, "state.toml"),
		StatsPath:   filepath.Join(dir, "stats.toml"),
		HistoryPath: filepath.Join(dir, "history.toml"),
	}
}

// singleDeckRules keeps the shoe from reshuffling until it is empty, so a
// stacked shoe deals exactly what a test saved.
func singleDeckRules() blackjack.Config {
	rules := blackjack.DefaultConfig()
	rules.ShoeCount = 1
	rules.ShuffleAtPenetration = 1
	return rules
}

func seed(t *testing.T, store ledger.Store, bankroll int64, texts ...string) {
	t.Helper()
	stack := make([]cards.Card, len(texts))
	for i, text := range texts {
		c, err := cards.ParseCard(text)
		require.NoError(t, err)
		stack[i] = c
	}
	require.NoError(t, store.SaveState(ledger.State{
		Bankroll: money.FromMajor(bankroll),
		Shoe:     cards.ShoeSnapshot{DeckCount: 1, Penetration: 1, Cards: stack},
	}))
}

func TestOpenFirstRun(t *testing.T) {
	c, err := Open(blackjack.DefaultConfig(), tempStore(t))
	require.NoError(t, err)

	assert.True(t, c.FirstRun())
	assert.Equal(t, "$1000.00", c.Balance().String())
	assert.Equal(t, 4*cards.DeckSize, c.ShoeRemaining())
	assert.Equal(t, "$1000.00", c.Stats().BiggestBankroll.String())
	assert.Equal(t, 0, c.History().Len())
}

func TestPlayedRoundIsSaved(t *testing.T) {
	store := tempStore(t)
	seed(t, store, 100, "10c", "9h", "6d", "8s", "8c", "2d", "3d")

	c, err := Open(singleDeckRules(), store)
	require.NoError(t, err)
	assert.False(t, c.FirstRun())

	r, err := c.NewRound()
	require.NoError(t, err)
	_, err = c.NewRound()
	assert.ErrorIs(t, err, ErrRoundInProgress)
	assert.ErrorIs(t, c.Save(), ErrRoundInProgress)

	require.NoError(t, r.PlaceBet(money.FromMajor(10)))
	assert.Equal(t, "$90.00", c.Balance().String())
	require.NoError(t, r.Deal())
	require.NoError(t, r.Stand())
	require.NoError(t, r.PlayDealer())

	s, err := c.FinishRound(r)
	require.NoError(t, err)
	assert.Equal(t, "$110.00", s.Bankroll.String())
	assert.Equal(t, "$110.00", c.Balance().String())

	reopened, err := Open(singleDeckRules(), store)
	require.NoError(t, err)
	assert.Equal(t, "$110.00", reopened.Balance().String())
	assert.Equal(t, 2, reopened.ShoeRemaining())
	assert.Equal(t, 1, reopened.Stats().Blackjack.HandsWon)
	assert.Equal(t, "$110.00", reopened.Stats().BiggestBankroll.String())
	require.Equal(t, 1, reopened.History().Len())
	latest := reopened.History().Latest()
	assert.Equal(t, r.ID().String(), latest.RoundID)
	assert.Equal(t, []string{"win"}, latest.Outcomes)
	assert.Equal(t, "$10.00", latest.Net.String())
}

func TestQuitMidRoundKeepsLastSave(t *testing.T) {
	store := tempStore(t)
	seed(t, store, 100, "10c", "9h", "6d", "8s")

	c, err := Open(singleDeckRules(), store)
	require.NoError(t, err)
	r, err := c.NewRound()
	require.NoError(t, err)
	require.NoError(t, r.PlaceBet(money.FromMajor(50)))
	require.NoError(t, r.Deal())

	reopened, err := Open(singleDeckRules(), store)
	require.NoError(t, err)
	assert.Equal(t, "$100.00", reopened.Balance().String())
	assert.Equal(t, 4, reopened.ShoeRemaining())
}

func TestBankruptcyGrantsGiftOnce(t *testing.T) {
	store := tempStore(t)
	seed(t, store, 10, "10c", "10h", "9d", "7s")

	c, err := Open(singleDeckRules(), store)
	require.NoError(t, err)
	r, err := c.NewRound()
	require.NoError(t, err)
	require.NoError(t, r.PlaceBet(money.FromMajor(10)))
	require.NoError(t, r.Deal())
	require.NoError(t, r.Stand())
	require.NoError(t, r.PlayDealer())

	s, err := c.FinishRound(r)
	require.NoError(t, err)
	assert.True(t, s.GiftGranted)
	assert.Equal(t, "$1000.00", c.Balance().String())
	assert.Equal(t, 1, c.Stats().TimesBankrupted)

	_, err = c.FinishRound(r)
	assert.Error(t, err)
	assert.Equal(t, "$1000.00", c.Balance().String())
	assert.Equal(t, 1, c.Stats().TimesBankrupted)
	assert.True(t, c.History().Latest().Gift)
}

func TestChangedShoeSettingsRebuildShoe(t *testing.T) {
	store := tempStore(t)
	seed(t, store, 100, "10c", "9h")

	c, err := Open(blackjack.DefaultConfig(), store)
	require.NoError(t, err)
	assert.Equal(t, "$100.00", c.Balance().String())
	assert.Equal(t, 4*cards.DeckSize, c.ShoeRemaining())
}

func TestCorruptSaveFailsToOpen(t *testing.T) {
	store := tempStore(t)
	require.NoError(t, os.WriteFile(store.SavePath, []byte("bankroll = {"), 0o644))

	_, err := Open(blackjack.DefaultConfig(), store)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load saved state")
}

func TestOpenRejectsInvalidRules(t *testing.T) {
	rules := blackjack.DefaultConfig()
	rules.ShoeCount = 0
	_, err := Open(rules, tempStore(t))
	assert.Error(t, err)
}

func TestWithdrawNeverGoesNegative(t *testing.T) {
	c, err := Open(blackjack.DefaultConfig(), tempStore(t))
	require.NoError(t, err)

	assert.ErrorIs(t, c.Withdraw(money.FromMajor(1001)), blackjack.ErrInsufficientFunds)
	require.NoError(t, c.Withdraw(money.FromMajor(1000)))
	assert.True(t, c.Balance().IsZero())
	c.Deposit(money.MustParse("0.50"))
	assert.Equal(t, "$0.50", c.Balance().String())
}

func TestReset(t *testing.T) {
	store := tempStore(t)
	seed(t, store, 250, "10c", "9h")

	c, err := Open(singleDeckRules(), store)
	require.NoError(t, err)
	require.NoError(t, c.Save())

	removed, err := c.Reset()
	require.NoError(t, err)
	assert.Contains(t, removed, store.SavePath)
	assert.True(t, c.FirstRun())
	assert.Equal(t, "$1000.00", c.Balance().String())
	assert.Equal(t, cards.DeckSize, c.ShoeRemaining())

	_, err = store.LoadState()
	assert.ErrorIs(t, err, ledger.ErrNoState)
}

func TestFinishForeignRound(t *testing.T) {
	c, err := Open(blackjack.DefaultConfig(), tempStore(t))
	require.NoError(t, err)
	other, err := Open(blackjack.DefaultConfig(), tempStore(t))
	require.NoError(t, err)

	r, err := other.NewRound()
	require.NoError(t, err)
	_, err = c.FinishRound(r)
	assert.Error(t, err)
}
