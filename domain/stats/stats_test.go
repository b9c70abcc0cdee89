package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luca-patrignani/casino/domain/blackjack"
	"github.com/luca-patrignani/casino/domain/money"
)

var _ blackjack.Recorder = (*Statistics)(nil)

func TestRecordOutcomes(t *testing.T) {
	var s Statistics
	s.RecordWin(money.FromMajor(20))
	s.RecordWin(money.MustParse("25"))
	s.RecordLoss(money.FromMajor(10))
	s.RecordLoss(money.FromMajor(5))
	s.RecordPush()

	b := s.Blackjack
	assert.Equal(t, 2, b.HandsWon)
	assert.Equal(t, 2, b.HandsLost)
	assert.Equal(t, 1, b.HandsPushed)
	assert.Equal(t, 5, b.HandsPlayed())
	assert.Equal(t, "$45.00", b.MoneyWon.String())
	assert.Equal(t, "$15.00", b.MoneyLost.String())
	assert.Equal(t, "$25.00", b.BiggestWin.String())
	assert.Equal(t, "$10.00", b.BiggestLoss.String())
	assert.Equal(t, "$30.00", b.Net().String())
}

func TestUpdateBankrollKeepsHighWaterMark(t *testing.T) {
	var s Statistics
	for _, v := range []int64{100, 90, 140, 0, 60} {
		s.UpdateBankroll(money.FromMajor(v))
	}
	assert.Equal(t, "$140.00", s.BiggestBankroll.String())
	assert.Equal(t, 0, s.TimesBankrupted, "a zero balance alone is not a bankruptcy")

	s.RecordBankruptcy()
	assert.Equal(t, 1, s.TimesBankrupted)
}
