package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/snake-puzzle/internal/config"
	"github.com/vovakirdan/snake-puzzle/internal/core"
	"github.com/vovakirdan/snake-puzzle/internal/levels"
	"github.com/vovakirdan/snake-puzzle/internal/storage"
)

// newLogger builds the process logger. Interactive commands pass quiet so
// log lines do not tear the alternate screen unless --log-file is set.
func newLogger(quiet bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(config.ExpandHome(flagLogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	case quiet:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "snakepuzzle",
		Level:           level,
	})
	return logger, closer, nil
}

// loadConfig reads the puzzle config and applies the global flag overrides.
func loadConfig() (config.PuzzleConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	pace, err := config.ParsePace(flagPace)
	if err != nil {
		return cfg, err
	}
	config.ApplyPace(&cfg, pace)

	if flagLevels != "" {
		cfg.Levels.Dir = flagLevels
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	return cfg, nil
}

// loadPack loads the level pack selected by cfg.
func loadPack(cfg config.PuzzleConfig, logger *log.Logger) (*levels.Loader, []levels.Level, error) {
	loader := levels.Open(config.ExpandHome(cfg.Levels.Dir))
	loader.ExitOpen = cfg.Rules.ExitOpen
	loader.Logger = logger

	pack, err := loader.LoadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(pack) == 0 {
		return nil, nil, fmt.Errorf("no levels found in %s", loader.Root)
	}
	return loader, pack, nil
}

// openStore opens the run history. A failure is logged and play continues
// without history.
func openStore(cfg config.PuzzleConfig, logger *log.Logger) *storage.Store {
	if cfg.Storage.DBPath == "" {
		return nil
	}
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open run database", "path", cfg.Storage.DBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
