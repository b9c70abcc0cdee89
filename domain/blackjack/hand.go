package blackjack

import (
	"strconv"
	"strings"

	"github.com/luca-patrignani/casino/domain/cards"
	"github.com/luca-patrignani/casino/domain/money"
)

// Hand is one player or dealer hand.
type Hand struct {
	Cards []cards.Card
	// HiddenCount is how many of the leading cards are face down.
	// Only the dealer's hole card is ever hidden.
	HiddenCount int
	Stake       money.Money
	Standing    bool
	DoubledDown bool
}

func (h *Hand) Push(c cards.Card) {
	h.Cards = append(h.Cards, c)
}

func (h Hand) rawSum() (sum int, hasAce bool) {
	for _, c := range h.Cards {
		sum += c.Value()
		if c.Rank() == cards.Ace {
			hasAce = true
		}
	}
	return sum, hasAce
}

// Sum is the blackjack total. At most one ace counts 11, and only when that
// keeps the total at or below 21.
func (h Hand) Sum() int {
	sum, hasAce := h.rawSum()
	if hasAce && sum <= 11 {
		sum += 10
	}
	return sum
}

// IsSoft reports whether an ace is currently counted as 11.
func (h Hand) IsSoft() bool {
	sum, hasAce := h.rawSum()
	return hasAce && sum <= 11
}

func (h Hand) IsBust() bool {
	return h.Sum() > 21
}

// IsNaturalBlackjack is true only for a two-card 21.
func (h Hand) IsNaturalBlackjack() bool {
	return len(h.Cards) == 2 && h.Sum() == 21
}

func (h Hand) IsFinished() bool {
	return h.Standing || h.IsBust()
}

func (h Hand) CanDoubleDown() bool {
	if len(h.Cards) != 2 || h.DoubledDown {
		return false
	}
	sum := h.Sum()
	return sum == 10 || sum == 11
}

func (h Hand) CanSplit() bool {
	return len(h.Cards) == 2 && h.Cards[0].Rank() == h.Cards[1].Rank()
}

// Split moves the second card into a new hand and returns it.
// Both hands are left one card short; the caller deals to each.
func (h *Hand) Split() Hand {
	if !h.CanSplit() {
		panic("blackjack: split of a hand that is not a pair")
	}
	moved := h.Cards[1]
	h.Cards = h.Cards[:1:1]
	return Hand{Cards: []cards.Card{moved}}
}

// FaceCard is the dealer's up card: the second one dealt.
func (h Hand) FaceCard() cards.Card {
	if len(h.Cards) < 2 {
		panic("blackjack: face card requested before the deal")
	}
	return h.Cards[1]
}

// Revealed reports whether every card is face up.
func (h Hand) Revealed() bool {
	return h.HiddenCount == 0
}

// String renders e.g. "🂠 A♠ (? + 1 = ?)" or "A♠ 9♥ (1 + 9 = 20)".
func (h Hand) String() string {
	shown := make([]string, len(h.Cards))
	values := make([]string, len(h.Cards))
	for i, c := range h.Cards {
		if i < h.HiddenCount {
			shown[i] = cards.FaceDown
			values[i] = "?"
			continue
		}
		shown[i] = c.String()
		values[i] = strconv.Itoa(c.Value())
	}
	total := "?"
	if h.HiddenCount == 0 {
		total = strconv.Itoa(h.Sum())
	}
	var b strings.Builder
	b.WriteString(strings.Join(shown, " "))
	b.WriteString(" (")
	b.WriteString(strings.Join(values, " + "))
	b.WriteString(" = ")
	b.WriteString(total)
	b.WriteString(")")
	return b.String()
}
