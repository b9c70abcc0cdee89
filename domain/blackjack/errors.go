package blackjack

import "errors"

var (
	ErrWrongPhase           = errors.New("action not allowed in the current phase")
	ErrInvalidBet           = errors.New("bet must be greater than zero")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrActionUnavailable    = errors.New("action unavailable")
	ErrInsuranceUnavailable = errors.New("insurance unavailable")
)
