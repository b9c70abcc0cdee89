package blackjack

import (
	"fmt"

	"github.com/luca-patrignani/casino/domain/money"
)

// Phase is where a Round stands in its lifecycle.
type Phase string

const (
	PhasePlacingBet    Phase = "placing_bet"
	PhaseInitialDeal   Phase = "initial_deal"
	PhasePlayerActions Phase = "player_actions"
	PhaseDealerReveal  Phase = "dealer_reveal"
	PhaseDealerDraw    Phase = "dealer_draw"
	PhaseSettlement    Phase = "settlement"
	PhaseDone          Phase = "done"
)

// Action is a player decision on the current hand.
type Action string

const (
	ActionHit    Action = "hit"
	ActionStand  Action = "stand"
	ActionDouble Action = "double"
	ActionSplit  Action = "split"
)

// ParseAction accepts the lower-case action names.
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionHit, ActionStand, ActionDouble, ActionSplit:
		return a, nil
	}
	return "", fmt.Errorf("%w: unknown action %q", ErrActionUnavailable, s)
}

// DealerStandsOn is the total at which the dealer stops drawing. Soft 17
// counts as 17, so the dealer stands on it.
const DealerStandsOn = 17

// Config holds the table rules.
type Config struct {
	ShoeCount            int         `toml:"shoe_count"`
	ShuffleAtPenetration float64     `toml:"shuffle_at_penetration"`
	PayoutRatio          money.Ratio `toml:"payout_ratio"`
	BlackjackPayoutRatio money.Ratio `toml:"blackjack_payout_ratio"`
	InsurancePayoutRatio money.Ratio `toml:"insurance_payout_ratio"`
	// StartingGift is deposited when a round leaves the bankroll at zero.
	// It is configured at the top level of the config file.
	StartingGift money.Money `toml:"-"`
}

// DefaultConfig returns the standard table rules.
func DefaultConfig() Config {
	return Config{
		ShoeCount:            4,
		ShuffleAtPenetration: 0.75,
		PayoutRatio:          money.Ratio{Num: 1, Den: 1},
		BlackjackPayoutRatio: money.Ratio{Num: 3, Den: 2},
		InsurancePayoutRatio: money.Ratio{Num: 2, Den: 1},
		StartingGift:         money.FromMajor(1000),
	}
}

func (c Config) Validate() error {
	if c.ShoeCount < 1 {
		return fmt.Errorf("shoe_count must be at least 1, got %d", c.ShoeCount)
	}
	if c.ShuffleAtPenetration <= 0 || c.ShuffleAtPenetration > 1 {
		return fmt.Errorf("shuffle_at_penetration must be in (0, 1], got %v", c.ShuffleAtPenetration)
	}
	for name, r := range map[string]money.Ratio{
		"payout_ratio":           c.PayoutRatio,
		"blackjack_payout_ratio": c.BlackjackPayoutRatio,
		"insurance_payout_ratio": c.InsurancePayoutRatio,
	} {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	if c.StartingGift.IsNegative() {
		return fmt.Errorf("starting gift must not be negative, got %s", c.StartingGift)
	}
	return nil
}

// Bankroll is the player's money as seen by a round.
type Bankroll interface {
	Balance() money.Money
	// Withdraw fails rather than leave a negative balance.
	Withdraw(amount money.Money) error
	Deposit(amount money.Money)
}

// Recorder receives every resolved outcome and bankroll change.
type Recorder interface {
	RecordWin(amount money.Money)
	RecordLoss(amount money.Money)
	RecordPush()
	UpdateBankroll(balance money.Money)
}

// Outcome of a single hand or of the insurance bet.
type Outcome string

const (
	OutcomeWin       Outcome = "win"
	OutcomeBlackjack Outcome = "blackjack"
	OutcomePush      Outcome = "push"
	OutcomeLoss      Outcome = "loss"
	OutcomeBust      Outcome = "bust"
)

// HandResult is how one player hand was settled.
type HandResult struct {
	Hand      int
	Outcome   Outcome
	Stake     money.Money
	Payout    money.Money
	PlayerSum int
	DealerSum int
}

// Settlement summarises a finished round.
type Settlement struct {
	Hands           []HandResult
	DealerSum       int
	DealerBust      bool
	DealerBlackjack bool
	// DealerPlayed is false when every player hand busted and the hole
	// card stayed down.
	DealerPlayed    bool
	Insured         bool
	InsuranceStake  money.Money
	InsurancePayout money.Money
	GiftGranted     bool
	Gift            money.Money
	Bankroll        money.Money
}

// Staked is everything the player put on the table this round.
func (s Settlement) Staked() money.Money {
	total := s.InsuranceStake
	for _, h := range s.Hands {
		total = total.Add(h.Stake)
	}
	return total
}

// Returned is everything paid back, gift excluded.
func (s Settlement) Returned() money.Money {
	total := s.InsurancePayout
	for _, h := range s.Hands {
		total = total.Add(h.Payout)
	}
	return total
}

// Net is the round's profit or loss, gift excluded.
func (s Settlement) Net() money.Money {
	return s.Returned().Sub(s.Staked())
}
