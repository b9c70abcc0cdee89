// Package cards implements the playing cards and the multi-deck shoe used by
// the table games.
//
// # Core Types
//
// Card: an immutable suit and rank. Its text form ("A♠", "10♥") is also the
// form it is persisted in.
//
// Shoe: several 52-card decks shuffled together. Cards are drawn from the
// front; once the remaining count falls below the penetration threshold the
// next draw rebuilds and reshuffles every deck.
//
// Source: the randomness behind a shuffle. CryptoSource is seeded from the
// operating system through kyber's random stream; tests plug in
// deterministic sources.
package cards
