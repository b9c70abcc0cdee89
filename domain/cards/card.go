package cards

import (
	"fmt"
	"strconv"
	"strings"
)

// Suit of a card (0-3: clubs, diamonds, hearts, spades).
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Rank of a card (1-13: ace through king).
type Rank uint8

const (
	Ace   Rank = 1
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

// FaceDown is the glyph printed in place of a hidden card.
const FaceDown = "🂠"

var suitSymbols = [...]string{"♣", "♦", "♥", "♠"}

// Card is an immutable playing card.
type Card struct {
	suit Suit
	rank Rank
}

// NewCard creates a new Card with validation.
func NewCard(suit Suit, rank Rank) (Card, error) {
	if suit > Spades || rank < Ace || rank > King {
		return Card{}, fmt.Errorf("invalid card %d, %d", suit, rank)
	}
	return Card{suit: suit, rank: rank}, nil
}

// MustCard is NewCard for literals; it panics on an invalid suit or rank.
func MustCard(suit Suit, rank Rank) Card {
	c, err := NewCard(suit, rank)
	if err != nil {
		panic(err)
	}
	return c
}

// CardFromIndex maps 0..51 onto the standard deck order: suits clubs to
// spades, each ace through king.
func CardFromIndex(i int) (Card, error) {
	if i < 0 || i >= DeckSize {
		return Card{}, fmt.Errorf("card index %d out of range", i)
	}
	return Card{suit: Suit(i / 13), rank: Rank(i%13 + 1)}, nil
}

func (c Card) Suit() Suit {
	return c.suit
}

func (c Card) Rank() Rank {
	return c.rank
}

// Value is the blackjack value of the card: aces count 1 (the hand decides
// whether one of them counts 11), faces count 10.
func (c Card) Value() int {
	if c.rank >= 10 {
		return 10
	}
	return int(c.rank)
}

func (s Suit) String() string {
	if int(s) < len(suitSymbols) {
		return suitSymbols[s]
	}
	return "?"
}

func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return strconv.Itoa(int(r))
	}
}

// String renders the card as rank then suit symbol, e.g. "10♥".
func (c Card) String() string {
	return c.rank.String() + c.suit.String()
}

// ParseCard reads the String form of a card. The suit may also be given as
// an ASCII letter (s, h, d, c in either case) and the rank as T for ten.
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}
	rankStr, suitStr, err := splitCard(s)
	if err != nil {
		return Card{}, err
	}
	suit, err := parseSuit(suitStr)
	if err != nil {
		return Card{}, fmt.Errorf("invalid card %q: %w", s, err)
	}
	rank, err := parseRank(rankStr)
	if err != nil {
		return Card{}, fmt.Errorf("invalid card %q: %w", s, err)
	}
	return Card{suit: suit, rank: rank}, nil
}

func splitCard(s string) (string, string, error) {
	for _, sym := range suitSymbols {
		if rankStr, found := strings.CutSuffix(s, sym); found {
			return rankStr, sym, nil
		}
	}
	if len(s) < 2 {
		return "", "", fmt.Errorf("invalid card %q", s)
	}
	return s[:len(s)-1], s[len(s)-1:], nil
}

func parseSuit(s string) (Suit, error) {
	switch strings.ToLower(s) {
	case "♣", "c":
		return Clubs, nil
	case "♦", "d":
		return Diamonds, nil
	case "♥", "h":
		return Hearts, nil
	case "♠", "s":
		return Spades, nil
	}
	return 0, fmt.Errorf("unknown suit %q", s)
}

func parseRank(s string) (Rank, error) {
	switch strings.ToUpper(s) {
	case "A":
		return Ace, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	case "T":
		return 10, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 2 || n > 10 {
		return 0, fmt.Errorf("unknown rank %q", s)
	}
	return Rank(n), nil
}

func (c Card) MarshalText() ([]byte, error) {
	if c.rank == 0 {
		return nil, fmt.Errorf("cannot encode uninitialized card")
	}
	return []byte(c.String()), nil
}

func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
