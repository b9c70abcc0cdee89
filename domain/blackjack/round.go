package blackjack

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/luca-patrignani/casino/domain/cards"
	"github.com/luca-patrignani/casino/domain/money"
)

// Round is a single hand of blackjack, from the bet to the payout.
// It borrows the shoe and the bankroll for its lifetime and is discarded
// once settled.
type Round struct {
	id     uuid.UUID
	cfg    Config
	shoe   *cards.Shoe
	bank   Bankroll
	rec    Recorder
	logger *slog.Logger

	phase   Phase
	bet     money.Money
	dealer  Hand
	hands   []Hand
	current int
	split   bool

	insuranceDecided bool
	insured          bool
	insuranceStake   money.Money

	settlement *Settlement
}

type Option func(*Round)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Round) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithID(id uuid.UUID) Option {
	return func(r *Round) {
		r.id = id
	}
}

// NewRound starts a round waiting for a bet. A nil recorder discards
// statistics.
func NewRound(cfg Config, shoe *cards.Shoe, bank Bankroll, rec Recorder, opts ...Option) *Round {
	if shoe == nil || bank == nil {
		panic("blackjack: round needs a shoe and a bankroll")
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	r := &Round{
		id:     uuid.New(),
		cfg:    cfg,
		shoe:   shoe,
		bank:   bank,
		rec:    rec,
		logger: slog.Default(),
		phase:  PhasePlacingBet,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("round", r.id.String())
	return r
}

func (r *Round) ID() uuid.UUID {
	return r.id
}

func (r *Round) Phase() Phase {
	return r.phase
}

func (r *Round) Bet() money.Money {
	return r.bet
}

func (r *Round) Dealer() Hand {
	return r.dealer
}

// Hands returns a copy of the player hands, left to right.
func (r *Round) Hands() []Hand {
	out := make([]Hand, len(r.hands))
	copy(out, r.hands)
	return out
}

func (r *Round) CurrentHandIndex() int {
	return r.current
}

func (r *Round) CurrentHand() Hand {
	if len(r.hands) == 0 {
		return Hand{}
	}
	return r.hands[r.current]
}

func (r *Round) IsSplit() bool {
	return r.split
}

func (r *Round) Insured() bool {
	return r.insured
}

// InsuranceCost is the stake an insurance bet would take: half the bet.
func (r *Round) InsuranceCost() money.Money {
	return r.bet.Div(2)
}

// Settlement returns the result once the round is done.
func (r *Round) Settlement() (Settlement, bool) {
	if r.settlement == nil {
		return Settlement{}, false
	}
	return *r.settlement, true
}

func (r *Round) requirePhase(p Phase) error {
	if r.phase != p {
		return fmt.Errorf("%w: expected %s, round is in %s", ErrWrongPhase, p, r.phase)
	}
	return nil
}

// stake takes amount out of the bankroll.
func (r *Round) stake(amount money.Money) error {
	balance := r.bank.Balance()
	if balance.LessThan(amount) {
		return fmt.Errorf("%w: need %s, have %s", ErrInsufficientFunds, amount, balance)
	}
	if err := r.bank.Withdraw(amount); err != nil {
		return fmt.Errorf("%w: %v", ErrInsufficientFunds, err)
	}
	r.rec.UpdateBankroll(r.bank.Balance())
	return nil
}

func (r *Round) pay(amount money.Money) {
	r.bank.Deposit(amount)
	r.rec.UpdateBankroll(r.bank.Balance())
}

// PlaceBet stakes the main bet.
func (r *Round) PlaceBet(amount money.Money) error {
	if err := r.requirePhase(PhasePlacingBet); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrInvalidBet, amount)
	}
	if err := r.stake(amount); err != nil {
		return err
	}
	r.bet = amount
	r.hands = []Hand{{Stake: amount}}
	r.phase = PhaseInitialDeal
	r.logger.Debug("bet placed", "bet", amount.String())
	return nil
}

// Deal gives two cards each, alternating dealer and player. The first
// dealer card is the hole card and stays face down.
func (r *Round) Deal() error {
	if err := r.requirePhase(PhaseInitialDeal); err != nil {
		return err
	}
	r.dealer.Push(r.shoe.Draw())
	r.hands[0].Push(r.shoe.Draw())
	r.dealer.Push(r.shoe.Draw())
	r.hands[0].Push(r.shoe.Draw())
	r.dealer.HiddenCount = 1
	r.phase = PhasePlayerActions

	if r.hands[0].IsNaturalBlackjack() {
		r.hands[0].Standing = true
	}
	if !r.CanPlaceInsurance() {
		r.insuranceDecided = true
	}
	r.logger.Debug("dealt", "player", r.hands[0].String(), "dealer", r.dealer.String())
	r.advance()
	return nil
}

// CanPlaceInsurance is true while the dealer shows an ace, the player has
// not acted yet and the bankroll covers half the bet.
func (r *Round) CanPlaceInsurance() bool {
	if r.phase != PhasePlayerActions || r.insuranceDecided {
		return false
	}
	if r.dealer.FaceCard().Rank() != cards.Ace {
		return false
	}
	return r.bank.Balance().GreaterThanOrEqual(r.InsuranceCost())
}

func (r *Round) PlaceInsurance() error {
	if err := r.requirePhase(PhasePlayerActions); err != nil {
		return err
	}
	if !r.CanPlaceInsurance() {
		return ErrInsuranceUnavailable
	}
	cost := r.InsuranceCost()
	if err := r.stake(cost); err != nil {
		return err
	}
	r.insured = true
	r.insuranceStake = cost
	r.insuranceDecided = true
	r.logger.Debug("insurance placed", "stake", cost.String())
	r.advance()
	return nil
}

// DeclineInsurance closes the insurance offer. Any player action does the
// same implicitly.
func (r *Round) DeclineInsurance() error {
	if err := r.requirePhase(PhasePlayerActions); err != nil {
		return err
	}
	r.insuranceDecided = true
	r.advance()
	return nil
}

func (r *Round) requireTurn() (*Hand, error) {
	if err := r.requirePhase(PhasePlayerActions); err != nil {
		return nil, err
	}
	h := &r.hands[r.current]
	if h.IsFinished() {
		return nil, fmt.Errorf("%w: hand %d is finished", ErrActionUnavailable, r.current+1)
	}
	return h, nil
}

func (r *Round) playerTurn() bool {
	return r.phase == PhasePlayerActions && !r.hands[r.current].IsFinished()
}

// AvailableActions lists what the player may do with the current hand.
func (r *Round) AvailableActions() []Action {
	if !r.playerTurn() {
		return nil
	}
	actions := []Action{ActionHit, ActionStand}
	if r.CanDoubleDown() {
		actions = append(actions, ActionDouble)
	}
	if r.CanSplit() {
		actions = append(actions, ActionSplit)
	}
	return actions
}

// Act performs one player action.
func (r *Round) Act(a Action) error {
	switch a {
	case ActionHit:
		return r.Hit()
	case ActionStand:
		return r.Stand()
	case ActionDouble:
		return r.DoubleDown()
	case ActionSplit:
		return r.Split()
	default:
		return fmt.Errorf("%w: unknown action %q", ErrActionUnavailable, a)
	}
}

// Hit draws one card to the current hand. A bust hand loses its stake on
// the spot.
func (r *Round) Hit() error {
	h, err := r.requireTurn()
	if err != nil {
		return err
	}
	r.insuranceDecided = true
	h.Push(r.shoe.Draw())
	if h.IsBust() {
		r.rec.RecordLoss(h.Stake)
	}
	r.logger.Debug("hit", "hand", r.current+1, "cards", h.String())
	r.advance()
	return nil
}

func (r *Round) Stand() error {
	h, err := r.requireTurn()
	if err != nil {
		return err
	}
	r.insuranceDecided = true
	h.Standing = true
	r.logger.Debug("stand", "hand", r.current+1, "sum", h.Sum())
	r.advance()
	return nil
}

func (r *Round) CanDoubleDown() bool {
	if !r.playerTurn() {
		return false
	}
	return r.hands[r.current].CanDoubleDown() && r.bank.Balance().GreaterThanOrEqual(r.bet)
}

// DoubleDown doubles the stake on the current hand, which then receives
// exactly one more card.
func (r *Round) DoubleDown() error {
	h, err := r.requireTurn()
	if err != nil {
		return err
	}
	if !h.CanDoubleDown() {
		return fmt.Errorf("%w: cannot double down on %s", ErrActionUnavailable, h)
	}
	if err := r.stake(r.bet); err != nil {
		return err
	}
	r.insuranceDecided = true
	h.Stake = h.Stake.Add(r.bet)
	h.DoubledDown = true
	h.Push(r.shoe.Draw())
	if h.IsBust() {
		r.rec.RecordLoss(h.Stake)
	} else {
		h.Standing = true
	}
	r.logger.Debug("double down", "hand", r.current+1, "cards", h.String())
	r.advance()
	return nil
}

func (r *Round) CanSplit() bool {
	if !r.playerTurn() || r.split {
		return false
	}
	return r.hands[r.current].CanSplit() && r.bank.Balance().GreaterThanOrEqual(r.bet)
}

// Split turns the current pair into two hands, staking another bet on the
// new one and dealing a card to each. A round splits at most once.
func (r *Round) Split() error {
	h, err := r.requireTurn()
	if err != nil {
		return err
	}
	if r.split || !h.CanSplit() {
		return fmt.Errorf("%w: cannot split %s", ErrActionUnavailable, h)
	}
	if err := r.stake(r.bet); err != nil {
		return err
	}
	r.insuranceDecided = true
	r.split = true
	second := h.Split()
	second.Stake = r.bet
	h.Push(r.shoe.Draw())
	second.Push(r.shoe.Draw())
	r.hands = append(r.hands, second)
	r.logger.Debug("split", "first", r.hands[0].String(), "second", r.hands[1].String())
	r.advance()
	return nil
}

// advance moves to the next unfinished hand, or out of the player phase
// once every hand is finished.
func (r *Round) advance() {
	if r.phase != PhasePlayerActions || !r.insuranceDecided {
		return
	}
	for r.current < len(r.hands)-1 && r.hands[r.current].IsFinished() {
		r.current++
	}
	if !r.hands[r.current].IsFinished() {
		return
	}
	if r.allBust() {
		r.phase = PhaseSettlement
	} else {
		r.phase = PhaseDealerReveal
	}
}

func (r *Round) allBust() bool {
	for _, h := range r.hands {
		if !h.IsBust() {
			return false
		}
	}
	return true
}

// RevealHoleCard turns the dealer's hole card face up.
func (r *Round) RevealHoleCard() error {
	if err := r.requirePhase(PhaseDealerReveal); err != nil {
		return err
	}
	r.dealer.HiddenCount = 0
	r.phase = PhaseDealerDraw
	r.logger.Debug("hole card revealed", "dealer", r.dealer.String())
	return nil
}

func (r *Round) DealerMustDraw() bool {
	return r.phase == PhaseDealerDraw && r.dealer.Sum() < DealerStandsOn
}

// DealerStep draws one card for the dealer if the dealer must draw, and
// reports whether it did. When the dealer stands the round moves to
// settlement.
func (r *Round) DealerStep() (bool, error) {
	if err := r.requirePhase(PhaseDealerDraw); err != nil {
		return false, err
	}
	if r.DealerMustDraw() {
		r.dealer.Push(r.shoe.Draw())
		r.logger.Debug("dealer draws", "dealer", r.dealer.String())
		return true, nil
	}
	r.phase = PhaseSettlement
	return false, nil
}

// PlayDealer reveals the hole card and draws until the dealer stands.
// It does nothing when every player hand busted.
func (r *Round) PlayDealer() error {
	switch r.phase {
	case PhaseSettlement:
		return nil
	case PhaseDealerReveal:
		if err := r.RevealHoleCard(); err != nil {
			return err
		}
	case PhaseDealerDraw:
	default:
		return fmt.Errorf("%w: dealer cannot play in %s", ErrWrongPhase, r.phase)
	}
	for {
		drew, err := r.DealerStep()
		if err != nil {
			return err
		}
		if !drew {
			return nil
		}
	}
}

// Settle pays out every surviving hand against the dealer, resolves
// insurance and grants the starting gift if the bankroll ended at zero.
func (r *Round) Settle() (Settlement, error) {
	if err := r.requirePhase(PhaseSettlement); err != nil {
		return Settlement{}, err
	}
	s := Settlement{
		DealerSum:       r.dealer.Sum(),
		DealerBust:      r.dealer.IsBust(),
		DealerBlackjack: r.dealer.IsNaturalBlackjack(),
		DealerPlayed:    r.dealer.Revealed(),
	}
	for i, h := range r.hands {
		res := r.settleHand(h, s.DealerSum, s.DealerBust)
		res.Hand = i
		s.Hands = append(s.Hands, res)
	}

	if r.insured {
		s.Insured = true
		s.InsuranceStake = r.insuranceStake
		if s.DealerBlackjack {
			s.InsurancePayout = r.insuranceStake.MulRatio(r.cfg.InsurancePayoutRatio)
			r.pay(s.InsurancePayout)
			r.rec.RecordWin(s.InsurancePayout)
		} else {
			r.rec.RecordLoss(r.insuranceStake)
		}
	}

	if r.bank.Balance().IsZero() && r.cfg.StartingGift.IsPositive() {
		r.pay(r.cfg.StartingGift)
		s.GiftGranted = true
		s.Gift = r.cfg.StartingGift
		r.logger.Info("bankroll exhausted, starting gift granted", "gift", s.Gift.String())
	}
	s.Bankroll = r.bank.Balance()

	r.phase = PhaseDone
	r.settlement = &s
	r.logger.Debug("settled", "net", s.Net().String(), "bankroll", s.Bankroll.String())
	return s, nil
}

func (r *Round) settleHand(h Hand, dealerSum int, dealerBust bool) HandResult {
	res := HandResult{
		Stake:     h.Stake,
		PlayerSum: h.Sum(),
		DealerSum: dealerSum,
	}
	win := func(ratio money.Ratio, outcome Outcome) {
		res.Outcome = outcome
		res.Payout = h.Stake.Add(h.Stake.MulRatio(ratio))
		r.pay(res.Payout)
		r.rec.RecordWin(res.Payout)
	}
	switch {
	case h.IsBust():
		// the stake was recorded as lost when the hand busted
		res.Outcome = OutcomeBust
	case dealerBust:
		win(r.cfg.PayoutRatio, OutcomeWin)
	case dealerSum == res.PlayerSum:
		res.Outcome = OutcomePush
		res.Payout = h.Stake
		r.pay(h.Stake)
		r.rec.RecordPush()
	case dealerSum > res.PlayerSum:
		res.Outcome = OutcomeLoss
		r.rec.RecordLoss(h.Stake)
	case h.IsNaturalBlackjack():
		win(r.cfg.BlackjackPayoutRatio, OutcomeBlackjack)
	default:
		win(r.cfg.PayoutRatio, OutcomeWin)
	}
	return res
}

type nopRecorder struct{}

func (nopRecorder) RecordWin(money.Money)      {}
func (nopRecorder) RecordLoss(money.Money)     {}
func (nopRecorder) RecordPush()                {}
func (nopRecorder) UpdateBankroll(money.Money) {}
