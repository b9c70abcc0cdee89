// Package config loads the casino configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/luca-patrignani/casino/domain/blackjack"
	"github.com/luca-patrignani/casino/domain/money"
	"github.com/luca-patrignani/casino/ledger"
)

const (
	EnvConfigPath = "CASINO_CONFIG"
	EnvLogLevel   = "CASINO_LOG_LEVEL"
	EnvDataDir    = "CASINO_DATA_DIR"

	appDir = "casino"
)

type Config struct {
	Blackjack    blackjack.Config `toml:"blackjack"`
	StartingGift money.Money      `toml:"mister_greens_gift"`
	SavePath     string           `toml:"save_path"`
	StatsPath    string           `toml:"stats_path"`
	HistoryPath  string           `toml:"history_path"`
	LogLevel     string           `toml:"log_level"`
}

// Default returns the built-in configuration. Save files go under the
// user's data directory.
func Default() (Config, error) {
	dir, err := dataDir()
	if err != nil {
		return Config{}, err
	}
	rules := blackjack.DefaultConfig()
	return Config{
		Blackjack:    rules,
		StartingGift: rules.StartingGift,
		SavePath:     filepath.Join(dir, "state.toml"),
		StatsPath:    filepath.Join(dir, "stats.toml"),
		HistoryPath:  filepath.Join(dir, "history.toml"),
		LogLevel:     "info",
	}, nil
}

// DefaultPath is $CASINO_CONFIG, or config.toml in the user's config
// directory.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config directory: %w", err)
	}
	return filepath.Join(dir, appDir, "config.toml"), nil
}

func dataDir() (string, error) {
	if d := os.Getenv(EnvDataDir); d != "" {
		return d, nil
	}
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return filepath.Join(d, appDir), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate data directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", appDir), nil
}

// LoadDotEnv reads a .env file from the working directory, if any.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load reads the file at path on top of the defaults. When the file does
// not exist the defaults are written there first.
func Load(path string) (Config, error) {
	c, err := Default()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := c.Save(path); err != nil {
			return Config{}, fmt.Errorf("initialize config file: %w", err)
		}
	case err != nil:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	default:
		md, err := toml.Decode(string(data), &c)
		if err != nil {
			return Config{}, fmt.Errorf("decode config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			slog.Warn("unknown keys in config file", "path", path, "keys", fmt.Sprint(undecoded))
		}
	}

	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		c.LogLevel = lvl
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (c Config) Validate() error {
	if err := c.Rules().Validate(); err != nil {
		return fmt.Errorf("blackjack: %w", err)
	}
	if !c.StartingGift.IsPositive() {
		return fmt.Errorf("mister_greens_gift must be positive, got %s", c.StartingGift)
	}
	if c.SavePath == "" || c.StatsPath == "" {
		return fmt.Errorf("save_path and stats_path are required")
	}
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Rules returns the blackjack rules with the starting gift filled in.
func (c Config) Rules() blackjack.Config {
	r := c.Blackjack
	r.StartingGift = c.StartingGift
	return r
}

func (c Config) Store() ledger.Store {
	return ledger.Store{
		SavePath:    c.SavePath,
		StatsPath:   c.StatsPath,
		HistoryPath: c.HistoryPath,
	}
}

// Level is the configured log level; Validate has already checked it.
func (c Config) Level() slog.Level {
	level, _ := parseLogLevel(c.LogLevel)
	return level
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log_level %q", s)
	}
}
