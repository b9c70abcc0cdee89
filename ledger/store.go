package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/luca-patrignani/casino/domain/cards"
	"github.com/luca-patrignani/casino/domain/money"
	"github.com/luca-patrignani/casino/domain/stats"
)

// ErrNoState is returned by LoadState on a first run.
var ErrNoState = errors.New("no saved state")

// State is everything the casino needs to resume: the bankroll and the
// shoe in its current order.
type State struct {
	Bankroll money.Money        `toml:"bankroll"`
	Shoe     cards.ShoeSnapshot `toml:"shoe"`
}

type historyFile struct {
	Entries []Entry `toml:"entries"`
}

// Store knows where the save files live.
type Store struct {
	SavePath    string
	StatsPath   string
	HistoryPath string
}

func (s Store) LoadState() (State, error) {
	var st State
	found, err := readTOML(s.SavePath, &st)
	if err != nil {
		return State{}, err
	}
	if !found {
		return State{}, ErrNoState
	}
	if st.Bankroll.IsNegative() {
		return State{}, fmt.Errorf("save file %s: negative bankroll %s", s.SavePath, st.Bankroll)
	}
	return st, nil
}

func (s Store) SaveState(st State) error {
	return writeTOML(s.SavePath, st)
}

// LoadStats returns zeroed statistics when no stats file exists yet.
func (s Store) LoadStats() (stats.Statistics, error) {
	var st stats.Statistics
	if _, err := readTOML(s.StatsPath, &st); err != nil {
		return stats.Statistics{}, err
	}
	return st, nil
}

func (s Store) SaveStats(st stats.Statistics) error {
	return writeTOML(s.StatsPath, st)
}

// LoadHistory returns the saved history, or a new one opened at opening
// when there is none. A broken chain is an error.
func (s Store) LoadHistory(opening money.Money) (*History, error) {
	if s.HistoryPath == "" {
		return NewHistory(opening), nil
	}
	var hf historyFile
	found, err := readTOML(s.HistoryPath, &hf)
	if err != nil {
		return nil, err
	}
	if !found || len(hf.Entries) == 0 {
		return NewHistory(opening), nil
	}
	h, err := restoreHistory(hf.Entries)
	if err != nil {
		return nil, fmt.Errorf("history file %s: %w", s.HistoryPath, err)
	}
	return h, nil
}

func (s Store) SaveHistory(h *History) error {
	if s.HistoryPath == "" {
		return nil
	}
	return writeTOML(s.HistoryPath, historyFile{Entries: h.Entries()})
}

// Reset deletes every save file and returns the paths it removed.
func (s Store) Reset() ([]string, error) {
	var removed []string
	for _, path := range []string{s.SavePath, s.StatsPath, s.HistoryPath} {
		if path == "" {
			continue
		}
		err := os.Remove(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return removed, fmt.Errorf("remove %s: %w", path, err)
		}
		removed = append(removed, path)
	}
	return removed, nil
}

// readTOML decodes path into v. It reports false, and no error, when the
// file does not exist.
func readTOML(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if _, err := toml.Decode(string(data), v); err != nil {
		return false, fmt.Errorf("decode %s: %w", path, err)
	}
	return true, nil
}

func writeTOML(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temporary file in %s: %w", dir, err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(v); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
