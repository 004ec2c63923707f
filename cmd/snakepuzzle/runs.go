package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-puzzle/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [level]",
	Short: "Show recorded runs",
	Long: `Without a level id, shows statistics for every played level.
With a level id, lists its most recent attempts and the best win.

Examples:
  snakepuzzle runs
  snakepuzzle runs 01-first-bite --limit 20
  snakepuzzle runs 01-first-bite --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the recorded runs instead of showing them")
}

func runRuns(_ *cobra.Command, args []string) {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()

	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		exitf("opening run database: %v", err)
	}
	defer store.Close()

	levelID := ""
	if len(args) == 1 {
		levelID = args[0]
	}

	if flagRunsClear {
		if err := store.ClearRuns(levelID); err != nil {
			exitf("%v", err)
		}
		logger.Info("runs cleared", "level", levelID)
		fmt.Println("Runs cleared.")
		return
	}

	if levelID == "" {
		printOverview(store)
		return
	}
	printLevelRuns(store, levelID)
}

func printOverview(store *storage.Store) {
	ids, err := store.PlayedLevels()
	if err != nil {
		exitf("%v", err)
	}
	if len(ids) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snakepuzzle play' to record the first one!")
		return
	}

	fmt.Printf("  %-20s  %-5s  %-4s  %-6s  %-4s  %s\n", "Level", "Tries", "Wins", "Deaths", "Best", "Last played")
	fmt.Printf("  %-20s  %-5s  %-4s  %-6s  %-4s  %s\n", "-----", "-----", "----", "------", "----", "-----------")
	for _, id := range ids {
		st, err := store.LevelStats(id)
		if err != nil {
			exitf("%v", err)
		}
		best := "-"
		if st.BestMoves > 0 {
			best = fmt.Sprintf("%d", st.BestMoves)
		}
		fmt.Printf("  %-20s  %-5d  %-4d  %-6d  %-4s  %s\n",
			id, st.Attempts, st.Wins, st.Deaths, best, st.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
}

func printLevelRuns(store *storage.Store, levelID string) {
	runs, err := store.RecentRuns(levelID, flagRunsLimit)
	if err != nil {
		exitf("%v", err)
	}

	fmt.Printf("Runs - %s\n\n", levelID)
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-16s  %-10s  %-10s  %-5s  %s\n", "Date", "Player", "Outcome", "Moves", "Undos")
	fmt.Printf("  %-16s  %-10s  %-10s  %-5s  %s\n", "----", "------", "-------", "-----", "-----")
	for _, r := range runs {
		fmt.Printf("  %-16s  %-10s  %-10s  %-5d  %d\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Player, r.Outcome, r.Moves, r.Undos)
	}

	if best, err := store.BestRun(levelID); err == nil && best != nil {
		fmt.Println()
		fmt.Printf("Best: %d moves, %d undos (%s)\n", best.Moves, best.Undos, best.Player)
	}
}
