package main

import (
	"log/slog"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luca-patrignani/casino/domain/blackjack"
	"github.com/luca-patrignani/casino/domain/cards"
	"github.com/luca-patrignani/casino/domain/money"
	"github.com/luca-patrignani/casino/domain/stats"
	"github.com/luca-patrignani/casino/ledger"
)

func hand(t *testing.T, texts ...string) blackjack.Hand {
	t.Helper()
	var h blackjack.Hand
	for _, text := range texts {
		c, err := cards.ParseCard(text)
		require.NoError(t, err)
		h.Push(c)
	}
	return h
}

func TestHandTotalAndStatus(t *testing.T) {
	tests := []struct {
		name   string
		hand   blackjack.Hand
		total  string
		status string
	}{
		{"natural", hand(t, "As", "Kh"), "soft 21", "blackjack"},
		{"hard", hand(t, "10c", "7d"), "17", ""},
		{"bust", hand(t, "10c", "7d", "9s"), "26", "bust"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.total, handTotal(tt.hand))
			assert.Equal(t, tt.status, handStatus(tt.hand))
		})
	}

	hidden := hand(t, "As", "Kh")
	hidden.HiddenCount = 1
	assert.Equal(t, "?", handTotal(hidden))
	assert.Equal(t, "", handStatus(hidden))

	standing := hand(t, "10c", "8d")
	standing.Standing = true
	assert.Equal(t, "standing", handStatus(standing))
}

func TestParseBet(t *testing.T) {
	balance := money.FromMajor(100)

	bet, err := parseBet(" $12.5 ", balance)
	require.NoError(t, err)
	assert.Equal(t, "$12.50", bet.String())

	_, err = parseBet("q", balance)
	assert.ErrorIs(t, err, errQuit)
	_, err = parseBet("", balance)
	assert.ErrorIs(t, err, errQuit)
	_, err = parseBet("0", balance)
	assert.ErrorIs(t, err, blackjack.ErrInvalidBet)
	_, err = parseBet("100.01", balance)
	assert.ErrorIs(t, err, blackjack.ErrInsufficientFunds)
	_, err = parseBet("lots", balance)
	assert.ErrorIs(t, err, money.ErrParse)
}

func TestSettlementLines(t *testing.T) {
	s := blackjack.Settlement{
		Hands: []blackjack.HandResult{
			{Hand: 0, Outcome: blackjack.OutcomeWin, Stake: money.FromMajor(10), Payout: money.FromMajor(20)},
			{Hand: 1, Outcome: blackjack.OutcomeBust, Stake: money.FromMajor(10), Payout: money.Zero()},
		},
		DealerSum:       19,
		DealerPlayed:    true,
		Insured:         true,
		InsuranceStake:  money.FromMajor(5),
		InsurancePayout: money.Zero(),
		Bankroll:        money.FromMajor(95),
	}
	assert.Equal(t, []string{
		"Dealer stands on 19",
		"Hand 1 won: +$10.00",
		"Hand 2 busted: -$10.00",
		"Insurance lost: -$5.00",
		"Net: -$5.00",
		"Bankroll: $95.00",
	}, settlementLines(s))

	gift := blackjack.Settlement{
		Hands:        []blackjack.HandResult{{Outcome: blackjack.OutcomeBust, Stake: money.FromMajor(10), Payout: money.Zero()}},
		GiftGranted:  true,
		Gift:         money.FromMajor(1000),
		Bankroll:     money.FromMajor(1000),
		DealerPlayed: false,
	}
	lines := settlementLines(gift)
	assert.Equal(t, "Dealer never played", lines[0])
	assert.Contains(t, lines, "Mister Green gifts you $1000.00")
}

func TestStatsTable(t *testing.T) {
	var st stats.Statistics
	st.UpdateBankroll(money.FromMajor(1200))
	st.RecordWin(money.FromMajor(20))
	st.RecordLoss(money.FromMajor(10))

	data := statsTable(money.FromMajor(1010), st)
	assert.Equal(t, []string{"Statistic", "Value"}, data[0])
	assert.Contains(t, data, []string{"Bankroll", "$1010.00"})
	assert.Contains(t, data, []string{"Biggest bankroll", "$1200.00"})
	assert.Contains(t, data, []string{"Hands played", "2"})
	assert.Contains(t, data, []string{"Net", "+$10.00"})
}

func TestHistoryTable(t *testing.T) {
	h := ledger.NewHistory(money.FromMajor(100))
	_, err := h.Append(ledger.Record{RoundID: "r1", Bet: money.FromMajor(10), Outcomes: []string{"bust", "win"}, Net: money.Zero(), Bankroll: money.FromMajor(100), Gift: true})
	require.NoError(t, err)

	data := historyTable(h.Recent(historyRows))
	require.Len(t, data, 2)
	assert.Equal(t, "1", data[1][0])
	assert.Equal(t, "bust, win (gift)", data[1][3])
	assert.Equal(t, "$0.00", data[1][4])
}

func TestActionLabels(t *testing.T) {
	for _, a := range []blackjack.Action{blackjack.ActionHit, blackjack.ActionStand, blackjack.ActionDouble, blackjack.ActionSplit} {
		assert.NotEqual(t, string(a), actionLabel(a))
	}
}

func TestPtermLevel(t *testing.T) {
	assert.Equal(t, pterm.LogLevelDebug, ptermLevel(slog.LevelDebug))
	assert.Equal(t, pterm.LogLevelInfo, ptermLevel(slog.LevelInfo))
	assert.Equal(t, pterm.LogLevelWarn, ptermLevel(slog.LevelWarn))
	assert.Equal(t, pterm.LogLevelError, ptermLevel(slog.LevelError))
}
