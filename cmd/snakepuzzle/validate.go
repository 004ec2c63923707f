package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-puzzle/internal/levels"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file...>",
	Short: "Check level files",
	Long: `Parses and validates level files. Exits non-zero if any file is invalid.

Examples:
  snakepuzzle validate levels/01-start.yaml
  snakepuzzle validate levels/*.yaml`,
	Args: cobra.MinimumNArgs(1),
	Run:  runValidate,
}

func runValidate(_ *cobra.Command, args []string) {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()

	loader := levels.NewLoader(".")
	loader.Logger = logger

	failed := 0
	for _, file := range args {
		l, err := loader.LoadFile(file)
		if err != nil {
			failed++
			fmt.Printf("FAIL  %s: %v\n", file, err)
			continue
		}
		fmt.Printf("ok    %s: %s (%dx%d)\n", file, l.ID, l.Width, l.Height)
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d files invalid\n", failed, len(args))
		closeLog()
		os.Exit(1)
	}
}
