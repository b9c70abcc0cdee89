package money

import (
	"fmt"
	"strconv"
	"strings"
)

// Ratio is a payout ratio such as 3/2 (three paid for every two staked).
type Ratio struct {
	Num int64
	Den int64
}

// NewRatio validates num and den.
func NewRatio(num, den int64) (Ratio, error) {
	r := Ratio{Num: num, Den: den}
	if err := r.Validate(); err != nil {
		return Ratio{}, err
	}
	return r, nil
}

// ParseRatio reads "num/den". A bare integer "2" means 2/1.
func ParseRatio(s string) (Ratio, error) {
	s = strings.TrimSpace(s)
	numStr, denStr, found := strings.Cut(s, "/")
	if !found {
		denStr = "1"
	}
	num, err := strconv.ParseInt(strings.TrimSpace(numStr), 10, 64)
	if err != nil {
		return Ratio{}, fmt.Errorf("invalid ratio %q: %w", s, err)
	}
	den, err := strconv.ParseInt(strings.TrimSpace(denStr), 10, 64)
	if err != nil {
		return Ratio{}, fmt.Errorf("invalid ratio %q: %w", s, err)
	}
	return NewRatio(num, den)
}

func (r Ratio) Validate() error {
	if r.Den <= 0 {
		return fmt.Errorf("invalid ratio %d/%d: denominator must be positive", r.Num, r.Den)
	}
	if r.Num < 0 {
		return fmt.Errorf("invalid ratio %d/%d: numerator must not be negative", r.Num, r.Den)
	}
	return nil
}

func (r Ratio) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

func (r Ratio) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Ratio) UnmarshalText(text []byte) error {
	parsed, err := ParseRatio(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
