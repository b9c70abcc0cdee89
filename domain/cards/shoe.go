package cards

import (
	"fmt"
)

// DeckSize is the number of cards in one standard deck.
const DeckSize = 52

// Shoe holds several decks shuffled together. Cards are dealt from the
// front. Before every draw the shoe checks how many cards remain and, once
// the penetration point is passed, rebuilds and reshuffles all the decks.
type Shoe struct {
	deckCount   int
	penetration float64
	cards       []Card
	src         Source
}

// ShoeSnapshot is the persisted form of a Shoe.
type ShoeSnapshot struct {
	DeckCount   int     `toml:"deck_count"`
	Penetration float64 `toml:"penetration"`
	Cards       []Card  `toml:"cards"`
}

// NewDeck returns the 52 cards of a single deck in index order.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for i := 0; i < DeckSize; i++ {
		c, _ := CardFromIndex(i)
		deck = append(deck, c)
	}
	return deck
}

// NewShoe builds a freshly shuffled shoe. A nil src uses NewCryptoSource.
func NewShoe(deckCount int, penetration float64, src Source) (*Shoe, error) {
	if err := validateShoe(deckCount, penetration); err != nil {
		return nil, err
	}
	if src == nil {
		src = NewCryptoSource()
	}
	s := &Shoe{deckCount: deckCount, penetration: penetration, src: src}
	s.Shuffle()
	return s, nil
}

// RestoreShoe rebuilds a shoe from a snapshot, keeping its card order.
func RestoreShoe(snap ShoeSnapshot, src Source) (*Shoe, error) {
	if err := validateShoe(snap.DeckCount, snap.Penetration); err != nil {
		return nil, err
	}
	if len(snap.Cards) > snap.DeckCount*DeckSize {
		return nil, fmt.Errorf("shoe of %d decks cannot hold %d cards", snap.DeckCount, len(snap.Cards))
	}
	for i, c := range snap.Cards {
		if c.rank == 0 {
			return nil, fmt.Errorf("shoe card %d is not initialized", i)
		}
	}
	if src == nil {
		src = NewCryptoSource()
	}
	cardsCopy := make([]Card, len(snap.Cards))
	copy(cardsCopy, snap.Cards)
	return &Shoe{
		deckCount:   snap.DeckCount,
		penetration: snap.Penetration,
		cards:       cardsCopy,
		src:         src,
	}, nil
}

func validateShoe(deckCount int, penetration float64) error {
	if deckCount < 1 {
		return fmt.Errorf("shoe needs at least one deck, got %d", deckCount)
	}
	if penetration <= 0 || penetration > 1 {
		return fmt.Errorf("shoe penetration must be in (0, 1], got %v", penetration)
	}
	return nil
}

// Shuffle discards whatever is left, rebuilds every deck and shuffles them
// together.
func (s *Shoe) Shuffle() {
	if s.deckCount == 0 {
		panic("cards: shuffling a shoe with no decks")
	}
	s.cards = s.cards[:0]
	for i := 0; i < s.deckCount; i++ {
		s.cards = append(s.cards, NewDeck()...)
	}
	shuffle(s.cards, s.src)
}

// Draw deals the next card, reshuffling first when the remaining cards are
// below the reshuffle threshold.
func (s *Shoe) Draw() Card {
	if len(s.cards) == 0 || len(s.cards) < s.ReshuffleThreshold() {
		s.Shuffle()
	}
	c := s.cards[0]
	s.cards = s.cards[1:]
	return c
}

// ReshuffleThreshold is deck_count*52*(1-penetration), truncated.
func (s *Shoe) ReshuffleThreshold() int {
	return int(float64(s.deckCount*DeckSize) * (1 - s.penetration))
}

func (s *Shoe) Remaining() int {
	return len(s.cards)
}

func (s *Shoe) DeckCount() int {
	return s.deckCount
}

func (s *Shoe) Penetration() float64 {
	return s.penetration
}

// Peek returns the next n cards without drawing them.
func (s *Shoe) Peek(n int) []Card {
	n = min(n, len(s.cards))
	out := make([]Card, n)
	copy(out, s.cards[:n])
	return out
}

func (s *Shoe) Snapshot() ShoeSnapshot {
	cardsCopy := make([]Card, len(s.cards))
	copy(cardsCopy, s.cards)
	return ShoeSnapshot{
		DeckCount:   s.deckCount,
		Penetration: s.penetration,
		Cards:       cardsCopy,
	}
}
