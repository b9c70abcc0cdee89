package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/luca-patrignani/casino/domain/money"
)

// genesisPrevHash marks the first entry of a history.
const genesisPrevHash = "0"

// Entry is one settled round in the history.
type Entry struct {
	Index     int         `toml:"index"`
	Timestamp int64       `toml:"timestamp"`
	PrevHash  string      `toml:"prev_hash"`
	Hash      string      `toml:"hash"`
	RoundID   string      `toml:"round_id"`
	Bet       money.Money `toml:"bet"`
	Outcomes  []string    `toml:"outcomes"`
	Net       money.Money `toml:"net"`
	Bankroll  money.Money `toml:"bankroll"`
	Gift      bool        `toml:"gift"`
}

// Record is what the caller knows about a round when it is appended.
type Record struct {
	RoundID  string
	Bet      money.Money
	Outcomes []string
	Net      money.Money
	Bankroll money.Money
	Gift     bool
}

type History struct {
	mu      sync.RWMutex
	entries []Entry
	now     func() time.Time
}

// NewHistory creates a history whose first entry records the opening
// bankroll.
func NewHistory(opening money.Money) *History {
	h := &History{now: time.Now}
	genesis := Entry{
		Index:     0,
		Timestamp: h.now().Unix(),
		PrevHash:  genesisPrevHash,
		RoundID:   "genesis",
		Outcomes:  []string{},
		Bankroll:  opening,
	}
	genesis.Hash = calculateHash(genesis)
	h.entries = []Entry{genesis}
	return h
}

// restoreHistory wraps loaded entries and checks the chain.
func restoreHistory(entries []Entry) (*History, error) {
	h := &History{entries: entries, now: time.Now}
	if err := h.Verify(); err != nil {
		return nil, err
	}
	return h, nil
}

// Append adds a settled round after the latest entry.
func (h *History) Append(r Record) (Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	latest := h.entries[len(h.entries)-1]
	outcomes := make([]string, len(r.Outcomes))
	copy(outcomes, r.Outcomes)
	entry := Entry{
		Index:     latest.Index + 1,
		Timestamp: h.now().Unix(),
		PrevHash:  latest.Hash,
		RoundID:   r.RoundID,
		Bet:       r.Bet,
		Outcomes:  outcomes,
		Net:       r.Net,
		Bankroll:  r.Bankroll,
		Gift:      r.Gift,
	}
	entry.Hash = calculateHash(entry)

	if err := validateEntry(entry, latest); err != nil {
		return Entry{}, fmt.Errorf("invalid entry: %w", err)
	}
	h.entries = append(h.entries, entry)
	return entry, nil
}

func (h *History) Latest() Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.entries[len(h.entries)-1]
}

// Len counts settled rounds, the genesis entry excluded.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries) - 1
}

// Recent returns up to n of the latest rounds, newest first.
func (h *History) Recent(n int) []Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var out []Entry
	for i := len(h.entries) - 1; i > 0 && len(out) < n; i-- {
		out = append(out, h.entries[i])
	}
	return out
}

func (h *History) Entries() []Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Verify checks the genesis entry and every link of the chain.
func (h *History) Verify() error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.entries) == 0 {
		return fmt.Errorf("empty history")
	}
	genesis := h.entries[0]
	if genesis.Index != 0 || genesis.PrevHash != genesisPrevHash {
		return fmt.Errorf("invalid genesis entry")
	}
	if want := calculateHash(genesis); genesis.Hash != want {
		return fmt.Errorf("invalid genesis hash: expected %s, got %s", want, genesis.Hash)
	}
	for i := 1; i < len(h.entries); i++ {
		if err := validateEntry(h.entries[i], h.entries[i-1]); err != nil {
			return fmt.Errorf("entry %d invalid: %w", i, err)
		}
	}
	return nil
}

func validateEntry(current, previous Entry) error {
	if current.Index != previous.Index+1 {
		return fmt.Errorf("invalid index: expected %d, got %d", previous.Index+1, current.Index)
	}
	if current.PrevHash != previous.Hash {
		return fmt.Errorf("invalid prev hash: expected %s, got %s", previous.Hash, current.PrevHash)
	}
	if want := calculateHash(current); current.Hash != want {
		return fmt.Errorf("invalid hash: expected %s, got %s", want, current.Hash)
	}
	return nil
}

func calculateHash(e Entry) string {
	data := fmt.Sprintf("%d|%d|%s|%s|%s|%s|%s|%s|%t",
		e.Index,
		e.Timestamp,
		e.PrevHash,
		e.RoundID,
		e.Bet.Decimal(),
		strings.Join(e.Outcomes, ","),
		e.Net.Decimal(),
		e.Bankroll.Decimal(),
		e.Gift,
	)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
