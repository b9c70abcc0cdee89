package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/luca-patrignani/casino/config"
	"github.com/luca-patrignani/casino/domain/casino"
)

const usage = `usage: %s [-config path] [-debug] [command]

commands:
  blackjack  play blackjack (default)
  stats      print lifetime statistics
  balance    print the current bankroll
  history    print the most recent rounds
  reset      delete every save file and start over

flags:
`

func main() {
	configPath := flag.String("config", "", "path to the configuration file")
	debug := flag.Bool("debug", false, "log debug messages")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}
	command := "blackjack"
	if flag.NArg() == 1 {
		command = flag.Arg(0)
	}

	if err := run(command, *configPath, *debug); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func run(command, configPath string, debug bool) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	if configPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		configPath = p
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	level := cfg.Level()
	if debug {
		level = slog.LevelDebug
	}
	logger := newLogger(level)
	slog.SetDefault(logger)
	logger.Debug("configuration loaded", "path", configPath, "save", cfg.SavePath)

	c, err := casino.Open(cfg.Rules(), cfg.Store(), casino.WithLogger(logger))
	if err != nil {
		return err
	}

	switch command {
	case "blackjack", "play":
		banner()
		return playBlackjack(c)
	case "stats":
		printStats(c)
	case "balance":
		pterm.Info.Printfln("Bankroll: %s", pterm.LightGreen(c.Balance()))
	case "history":
		printHistory(c.History().Recent(historyRows))
	case "reset":
		return reset(c)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
	return nil
}

func newLogger(level slog.Level) *slog.Logger {
	l := pterm.DefaultLogger.WithLevel(ptermLevel(level))
	return slog.New(pterm.NewSlogHandler(l))
}

func ptermLevel(level slog.Level) pterm.LogLevel {
	switch {
	case level <= slog.LevelDebug:
		return pterm.LogLevelDebug
	case level <= slog.LevelInfo:
		return pterm.LogLevelInfo
	case level <= slog.LevelWarn:
		return pterm.LogLevelWarn
	default:
		return pterm.LogLevelError
	}
}

func banner() {
	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Black", pterm.FgGreen.ToStyle()),
		putils.LettersFromStringWithStyle("jack", pterm.FgDarkGray.ToStyle()),
	).Render()
}

func reset(c *casino.Casino) error {
	ok, _ := pterm.DefaultInteractiveConfirm.
		WithDefaultText("Delete your bankroll, statistics and history?").
		WithDefaultValue(false).
		Show()
	if !ok {
		pterm.Info.Println("Nothing was deleted.")
		return nil
	}
	removed, err := c.Reset()
	for _, p := range removed {
		pterm.Info.Printfln("removed %s", p)
	}
	if err != nil {
		return err
	}
	pterm.Success.Printfln("Fresh start with %s", c.Balance())
	return nil
}
