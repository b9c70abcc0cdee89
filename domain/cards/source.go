package cards

import (
	"crypto/cipher"
	"math/big"

	"go.dedis.ch/kyber/v4/suites"
	"go.dedis.ch/kyber/v4/util/random"
)

// Source supplies the randomness for shuffling.
type Source interface {
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int
}

var suite suites.Suite = suites.MustFind("Ed25519")

// CryptoSource draws from the suite's cryptographically seeded random
// stream.
type CryptoSource struct {
	stream cipher.Stream
}

func NewCryptoSource() *CryptoSource {
	return &CryptoSource{stream: suite.RandomStream()}
}

func (c *CryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("cards: Intn called with non-positive bound")
	}
	// random.Int never returns zero, so draw from [1, n] and shift down.
	return int(random.Int(big.NewInt(int64(n)+1), c.stream).Int64()) - 1
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(n int) int

func (f SourceFunc) Intn(n int) int {
	return f(n)
}

// shuffle is Fisher-Yates, so every ordering is equally likely given a
// uniform src.
func shuffle(cs []Card, src Source) {
	for i := len(cs) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		cs[i], cs[j] = cs[j], cs[i]
	}
}
