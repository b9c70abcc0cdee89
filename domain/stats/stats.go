// Package stats keeps the lifetime statistics of a player.
package stats

import (
	"github.com/luca-patrignani/casino/domain/money"
)

// Statistics is persisted between sessions. It satisfies
// blackjack.Recorder, so a round reports straight into it.
type Statistics struct {
	BiggestBankroll money.Money         `toml:"biggest_bankroll"`
	TimesBankrupted int                 `toml:"times_bankrupted"`
	Blackjack       BlackjackStatistics `toml:"blackjack"`
}

type BlackjackStatistics struct {
	HandsWon    int         `toml:"hands_won"`
	HandsLost   int         `toml:"hands_lost"`
	HandsPushed int         `toml:"hands_push"`
	MoneyWon    money.Money `toml:"money_won"`
	MoneyLost   money.Money `toml:"money_lost"`
	BiggestWin  money.Money `toml:"biggest_win"`
	BiggestLoss money.Money `toml:"biggest_loss"`
}

func (s *Statistics) RecordWin(amount money.Money) {
	b := &s.Blackjack
	b.HandsWon++
	b.MoneyWon = b.MoneyWon.Add(amount)
	b.BiggestWin = money.Max(b.BiggestWin, amount)
}

func (s *Statistics) RecordLoss(amount money.Money) {
	b := &s.Blackjack
	b.HandsLost++
	b.MoneyLost = b.MoneyLost.Add(amount)
	b.BiggestLoss = money.Max(b.BiggestLoss, amount)
}

func (s *Statistics) RecordPush() {
	s.Blackjack.HandsPushed++
}

// UpdateBankroll tracks the highest bankroll ever held.
func (s *Statistics) UpdateBankroll(balance money.Money) {
	s.BiggestBankroll = money.Max(s.BiggestBankroll, balance)
}

// RecordBankruptcy counts a round that ended with an empty bankroll.
func (s *Statistics) RecordBankruptcy() {
	s.TimesBankrupted++
}

// HandsPlayed is every resolved hand, pushes included.
func (b BlackjackStatistics) HandsPlayed() int {
	return b.HandsWon + b.HandsLost + b.HandsPushed
}

// Net is money won minus money lost.
func (b BlackjackStatistics) Net() money.Money {
	return b.MoneyWon.Sub(b.MoneyLost)
}
