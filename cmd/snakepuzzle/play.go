package main

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-puzzle/internal/core"
	"github.com/vovakirdan/snake-puzzle/internal/games/snakepuzzle"
	"github.com/vovakirdan/snake-puzzle/internal/levels"
	"github.com/vovakirdan/snake-puzzle/internal/platform/tui"
	"github.com/vovakirdan/snake-puzzle/internal/registry"
	"github.com/vovakirdan/snake-puzzle/internal/storage"
)

var (
	flagWatch  bool
	flagPlayer string
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play the puzzle",
	Long: `Start playing. Without a level id a level picker is shown first.

Controls:
  Arrows/WASD/HJKL  - Move
  U/Z/Backspace     - Undo
  R                 - Restart the level
  P                 - Pause
  Esc/B             - Back to the level picker
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

With --watch, level files edited under --levels are reloaded while playing.

Examples:
  snakepuzzle play
  snakepuzzle play 02-push-and-eat
  snakepuzzle play --pace relaxed
  snakepuzzle play --levels ./levels --watch`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload level files when they change")
	playCmd.Flags().StringVar(&flagPlayer, "player", "local", "Player name stored with runs")
}

func runPlay(_ *cobra.Command, args []string) {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()

	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}
	loader, pack, err := loadPack(cfg, logger)
	if err != nil {
		exitf("%v", err)
	}

	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var changes <-chan levels.Change
	if flagWatch {
		changes = watchLevels(ctx, loader, logger)
	}

	rt := runtimeConfig()
	opts := registry.Options{
		ConfigPath: flagConfig,
		LevelsDir:  cfg.Levels.Dir,
		Pace:       flagPace,
		Logger:     logger,
	}
	tuiOpts := tui.Options{Store: store, Player: flagPlayer, Changes: changes, Logger: logger}

	if len(args) == 1 {
		if _, err := levels.Find(pack, args[0]); err != nil {
			exitf("unknown level %q. Run 'snakepuzzle list' to see available levels.", args[0])
		}
		opts.StartLevel = args[0]
		if _, err := playLevel(opts, rt, tuiOpts); err != nil {
			exitf("%v", err)
		}
		return
	}

	if err := menuLoop(pack, store, rt, opts, tuiOpts); err != nil {
		exitf("%v", err)
	}
}

// menuLoop alternates between the level picker, the game and the run history.
func menuLoop(pack []levels.Level, store *storage.Store, rt core.RuntimeConfig, opts registry.Options, tuiOpts tui.Options) error {
	ids := make([]string, len(pack))
	for i, l := range pack {
		ids[i] = l.ID
	}

	for {
		menu, err := tui.RunMenu(pack, store, rt)
		if err != nil {
			return err
		}
		rt = menu.Config

		switch {
		case menu.Quit:
			return nil

		case menu.WantsRuns:
			back, err := tui.RunRuns(store, ids, rt.ScreenW, rt.ScreenH, rt.TickRate)
			if err != nil {
				return err
			}
			if !back {
				return nil
			}

		default:
			opts.StartLevel = menu.LevelID
			back, err := playLevel(opts, rt, tuiOpts)
			if err != nil {
				return err
			}
			if !back {
				return nil
			}
		}
	}
}

func playLevel(opts registry.Options, rt core.RuntimeConfig, tuiOpts tui.Options) (bool, error) {
	game, err := registry.Create(snakepuzzle.GameID, opts)
	if err != nil {
		return false, err
	}
	return tui.Run(game, rt, tuiOpts)
}

// watchLevels forwards level file changes until ctx is done.
func watchLevels(ctx context.Context, loader *levels.Loader, logger *log.Logger) <-chan levels.Change {
	ch := make(chan levels.Change, 8)
	go func() {
		defer close(ch)
		err := loader.Watch(ctx, func(c levels.Change) {
			select {
			case ch <- c:
			case <-ctx.Done():
			}
		})
		if err != nil {
			logger.Warn("level watch stopped", "error", err)
		}
	}()
	return ch
}
