// Package blackjack implements the blackjack round engine.
//
// # Core Types
//
// Hand: the cards of one player or dealer hand with its stake and flags.
// Sum counts at most one ace as 11.
//
// Round: one round of play as an explicit state machine. It borrows a
// cards.Shoe to draw from, a Bankroll to stake against and a Recorder to
// report outcomes to.
//
// Config: the table rules (shoe size, penetration, payout ratios and the
// starting gift).
//
// # Game Flow
//
// A round progresses through phases: PlacingBet → InitialDeal →
// PlayerActions → DealerReveal → DealerDraw → Settlement → Done.
// Every stake (bet, insurance, double down, split) leaves the bankroll at
// the moment it is placed. A split adds a second hand, played after the
// first. If every player hand busts the round skips straight to
// Settlement and the hole card is never shown.
//
// # Settlement
//
// Each surviving hand is compared to the dealer: a dealer bust pays every
// hand, equal totals push, a higher dealer total loses, and otherwise the
// hand wins (a natural at the blackjack ratio). Insurance pays when the
// dealer holds a natural, even if every player hand busted. A round that
// leaves the bankroll at exactly zero grants the starting gift once.
package blackjack
