// Package casino owns a player's session: the bankroll, the shoe, the
// statistics and the round history. It hands rounds to the front end and
// saves everything at round boundaries only.
package casino

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sanity-io/litter"

	"github.com/luca-patrignani/casino/domain/blackjack"
	"github.com/luca-patrignani/casino/domain/cards"
	"github.com/luca-patrignani/casino/domain/money"
	"github.com/luca-patrignani/casino/domain/stats"
	"github.com/luca-patrignani/casino/ledger"
)

var ErrRoundInProgress = errors.New("a round is in progress")

type Casino struct {
	rules  blackjack.Config
	store  ledger.Store
	logger *slog.Logger
	src    cards.Source

	bankroll money.Money
	shoe     *cards.Shoe
	stats    stats.Statistics
	history  *ledger.History
	active   *blackjack.Round
	firstRun bool
}

type Option func(*Casino)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Casino) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSource sets the shuffle randomness for every new or rebuilt shoe.
func WithSource(src cards.Source) Option {
	return func(c *Casino) {
		c.src = src
	}
}

// Open resumes the saved session, or starts a new one with the starting
// gift and a fresh shoe when nothing was saved yet.
func Open(rules blackjack.Config, store ledger.Store, opts ...Option) (*Casino, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	c := &Casino{rules: rules, store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}

	st, err := store.LoadState()
	switch {
	case errors.Is(err, ledger.ErrNoState):
		c.firstRun = true
		c.bankroll = rules.StartingGift
		if c.shoe, err = c.newShoe(); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("load saved state: %w", err)
	default:
		c.bankroll = st.Bankroll
		if c.shoe, err = c.restoreShoe(st.Shoe); err != nil {
			return nil, fmt.Errorf("load saved state: %w", err)
		}
	}

	if c.stats, err = store.LoadStats(); err != nil {
		return nil, fmt.Errorf("load statistics: %w", err)
	}
	if c.history, err = store.LoadHistory(c.bankroll); err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	c.stats.UpdateBankroll(c.bankroll)

	c.logger.Debug("casino opened", "session", litter.Options{Compact: true, StripPackageNames: true}.Sdump(c.summary()))
	return c, nil
}

func (c *Casino) newShoe() (*cards.Shoe, error) {
	return cards.NewShoe(c.rules.ShoeCount, c.rules.ShuffleAtPenetration, c.src)
}

// restoreShoe keeps the saved card order unless the configured deck count
// or penetration changed since it was saved.
func (c *Casino) restoreShoe(snap cards.ShoeSnapshot) (*cards.Shoe, error) {
	if snap.DeckCount != c.rules.ShoeCount || snap.Penetration != c.rules.ShuffleAtPenetration {
		c.logger.Info("shoe settings changed, building a new shoe",
			"decks", c.rules.ShoeCount, "penetration", c.rules.ShuffleAtPenetration)
		return c.newShoe()
	}
	return cards.RestoreShoe(snap, c.src)
}

type sessionSummary struct {
	Bankroll      string
	FirstRun      bool
	Decks         int
	CardsLeft     int
	RoundsPlayed  int
	HandsResolved int
}

func (c *Casino) summary() sessionSummary {
	return sessionSummary{
		Bankroll:      c.bankroll.String(),
		FirstRun:      c.firstRun,
		Decks:         c.shoe.DeckCount(),
		CardsLeft:     c.shoe.Remaining(),
		RoundsPlayed:  c.history.Len(),
		HandsResolved: c.stats.Blackjack.HandsPlayed(),
	}
}

// FirstRun reports whether Open found no saved state.
func (c *Casino) FirstRun() bool {
	return c.firstRun
}

func (c *Casino) Rules() blackjack.Config {
	return c.rules
}

func (c *Casino) Balance() money.Money {
	return c.bankroll
}

func (c *Casino) Withdraw(amount money.Money) error {
	if c.bankroll.LessThan(amount) {
		return fmt.Errorf("%w: cannot withdraw %s from %s", blackjack.ErrInsufficientFunds, amount, c.bankroll)
	}
	c.bankroll = c.bankroll.Sub(amount)
	return nil
}

func (c *Casino) Deposit(amount money.Money) {
	c.bankroll = c.bankroll.Add(amount)
}

func (c *Casino) Stats() stats.Statistics {
	return c.stats
}

func (c *Casino) History() *ledger.History {
	return c.history
}

func (c *Casino) ShoeRemaining() int {
	return c.shoe.Remaining()
}

// NewRound starts a blackjack round against this session's bankroll and
// shoe. Only one round may be open at a time.
func (c *Casino) NewRound() (*blackjack.Round, error) {
	if c.active != nil {
		return nil, ErrRoundInProgress
	}
	c.active = blackjack.NewRound(c.rules, c.shoe, c, &c.stats, blackjack.WithLogger(c.logger))
	return c.active, nil
}

// FinishRound settles the open round, records it and saves the session.
func (c *Casino) FinishRound(r *blackjack.Round) (blackjack.Settlement, error) {
	if r == nil || r != c.active {
		return blackjack.Settlement{}, fmt.Errorf("round does not belong to this session")
	}
	s, err := r.Settle()
	if err != nil {
		return blackjack.Settlement{}, err
	}
	c.active = nil
	if s.GiftGranted {
		c.stats.RecordBankruptcy()
	}

	outcomes := make([]string, 0, len(s.Hands)+1)
	for _, h := range s.Hands {
		outcomes = append(outcomes, string(h.Outcome))
	}
	if s.Insured {
		if s.InsurancePayout.IsPositive() {
			outcomes = append(outcomes, "insurance won")
		} else {
			outcomes = append(outcomes, "insurance lost")
		}
	}
	if _, err := c.history.Append(ledger.Record{
		RoundID:  r.ID().String(),
		Bet:      r.Bet(),
		Outcomes: outcomes,
		Net:      s.Net(),
		Bankroll: s.Bankroll,
		Gift:     s.GiftGranted,
	}); err != nil {
		return s, fmt.Errorf("record round: %w", err)
	}

	if err := c.Save(); err != nil {
		return s, err
	}
	return s, nil
}

// Save writes the bankroll, the shoe, the statistics and the history.
func (c *Casino) Save() error {
	if c.active != nil {
		return ErrRoundInProgress
	}
	state := ledger.State{Bankroll: c.bankroll, Shoe: c.shoe.Snapshot()}
	if err := c.store.SaveState(state); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	if err := c.store.SaveStats(c.stats); err != nil {
		return fmt.Errorf("save statistics: %w", err)
	}
	if err := c.store.SaveHistory(c.history); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	c.logger.Debug("session saved", "bankroll", c.bankroll.String(), "cards_left", c.shoe.Remaining())
	return nil
}

// Reset deletes the save files and starts over in memory as on a first
// run. It returns the removed paths.
func (c *Casino) Reset() ([]string, error) {
	if c.active != nil {
		return nil, ErrRoundInProgress
	}
	removed, err := c.store.Reset()
	if err != nil {
		return removed, err
	}
	shoe, err := c.newShoe()
	if err != nil {
		return removed, err
	}
	c.shoe = shoe
	c.bankroll = c.rules.StartingGift
	c.stats = stats.Statistics{}
	c.stats.UpdateBankroll(c.bankroll)
	c.history = ledger.NewHistory(c.bankroll)
	c.firstRun = true
	return removed, nil
}
