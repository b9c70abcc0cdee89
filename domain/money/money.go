// Package money implements exact currency amounts for the casino.
//
// Amounts are fixed at two fraction digits. Every operation that could
// produce more digits (division, scaling by a Ratio) rounds once, half away
// from zero, so a chain of bankroll updates never accumulates drift.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the number of fraction digits every Money value carries.
const Places = 2

var ErrParse = errors.New("invalid amount")

// Money is an exact decimal amount of dollars.
// The zero value is $0.00.
type Money struct {
	d decimal.Decimal
}

// Zero returns $0.00.
func Zero() Money {
	return Money{}
}

// FromMajor builds an amount of whole dollars.
func FromMajor(dollars int64) Money {
	return Money{d: decimal.NewFromInt(dollars)}
}

// Parse reads a decimal string like "12.5", "$12.50" or " 7 ".
// Extra fraction digits are rounded half-up to cents.
func Parse(s string) (Money, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(trimmed, "$")
	if trimmed == "" {
		return Money{}, fmt.Errorf("%w: empty string", ErrParse)
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return Money{}, fmt.Errorf("%w %q: %v", ErrParse, s, err)
	}
	return Money{d: d.Round(Places)}, nil
}

// MustParse is Parse for constants; it panics on malformed input.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Add(o Money) Money {
	return Money{d: m.d.Add(o.d)}
}

func (m Money) Sub(o Money) Money {
	return Money{d: m.d.Sub(o.d)}
}

// Mul scales the amount by an integer factor.
func (m Money) Mul(n int64) Money {
	return Money{d: m.d.Mul(decimal.NewFromInt(n))}
}

// Div splits the amount n ways, rounded to cents.
func (m Money) Div(n int64) Money {
	if n == 0 {
		panic("money: division by zero")
	}
	return Money{d: m.d.DivRound(decimal.NewFromInt(n), Places)}
}

// MulRatio computes m * r.Num / r.Den, rounding only the final result.
func (m Money) MulRatio(r Ratio) Money {
	if r.Den == 0 {
		panic("money: ratio with zero denominator")
	}
	num := m.d.Mul(decimal.NewFromInt(r.Num))
	return Money{d: num.DivRound(decimal.NewFromInt(r.Den), Places)}
}

func (m Money) Neg() Money {
	return Money{d: m.d.Neg()}
}

func (m Money) IsZero() bool {
	return m.d.IsZero()
}

func (m Money) IsPositive() bool {
	return m.d.IsPositive()
}

func (m Money) IsNegative() bool {
	return m.d.IsNegative()
}

// Cmp returns -1, 0 or +1 like decimal.Decimal.Cmp.
func (m Money) Cmp(o Money) int {
	return m.d.Cmp(o.d)
}

func (m Money) Equal(o Money) bool {
	return m.d.Equal(o.d)
}

func (m Money) LessThan(o Money) bool {
	return m.d.LessThan(o.d)
}

func (m Money) GreaterThan(o Money) bool {
	return m.d.GreaterThan(o.d)
}

func (m Money) GreaterThanOrEqual(o Money) bool {
	return m.d.GreaterThanOrEqual(o.d)
}

// Max returns the larger of the two amounts.
func Max(a, b Money) Money {
	if a.LessThan(b) {
		return b
	}
	return a
}

// Decimal returns the plain decimal text without the currency sign, e.g. "12.50".
func (m Money) Decimal() string {
	return m.d.StringFixed(Places)
}

// String formats the amount as "$12.50" (or "-$3.00").
func (m Money) String() string {
	if m.d.IsNegative() {
		return "-$" + m.d.Neg().StringFixed(Places)
	}
	return "$" + m.d.StringFixed(Places)
}

// MarshalText encodes the amount as a bare decimal string so that
// persisted files never go through a binary float.
func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.Decimal()), nil
}

func (m *Money) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
