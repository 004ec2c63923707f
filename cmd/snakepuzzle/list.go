package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-puzzle/internal/puzzle"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the levels of the active pack",
	Long:  `Shows every level of the active pack with its size, fruit count and best result.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(false)
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

	fmt.Printf("Levels in %s:\n\n", loader.Root)

	maxIDLen := 2 // "ID" header
	for _, l := range pack {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Printf("  %-*s  %-7s  %-5s  %-4s  %s\n", maxIDLen, "ID", "Size", "Fruit", "Best", "Name")
	fmt.Printf("  %-*s  %-7s  %-5s  %-4s  %s\n", maxIDLen, "--", "----", "-----", "----", "----")

	for _, l := range pack {
		best := "-"
		if store != nil {
			if run, err := store.BestRun(l.ID); err == nil && run != nil {
				best = fmt.Sprintf("%d", run.Moves)
			}
		}
		size := fmt.Sprintf("%dx%d", l.Width, l.Height)
		fruit := l.Count(puzzle.ObjectBanana) + l.Count(puzzle.ObjectSpicy)
		fmt.Printf("  %-*s  %-7s  %-5d  %-4s  %s\n", maxIDLen, l.ID, size, fruit, best, l.Name)
	}

	fmt.Println()
	fmt.Println("Run 'snakepuzzle play <id>' to play a level.")
}
