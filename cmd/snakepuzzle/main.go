// snakepuzzle is a terminal puzzle game: a snake pushes and eats fruit on
// a grid to reach the exit.
//
// Usage:
//
//	snakepuzzle list               - List levels of the active pack
//	snakepuzzle play [level]       - Play, with a level picker when no level is given
//	snakepuzzle runs [level]       - Show recorded runs
//	snakepuzzle serve              - Serve over SSH and HTTP
//	snakepuzzle validate <file...> - Check level files
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--config <path>     - Puzzle config YAML
//	--pace <preset>     - Timing preset: relaxed, normal, fast, instant
//	--levels <dir>      - Level directory (default: built-in pack)
//	--db <path>         - Run history database
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/snake-puzzle/internal/games/snakepuzzle"
)

var (
	// Global flags
	flagFPS      int
	flagConfig   string
	flagPace     string
	flagLevels   string
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snakepuzzle",
	Short: "Snake Puzzle - push fruit, grow, and find the exit",
	Long: `Snake Puzzle is a turn-based puzzle game played in the terminal.

Bananas make the snake grow. Spicy fruit eaten against a wall launches it
across the board. Fall into a pit or drop a fruit off the edge and the
level restarts. Every move can be undone.

Available commands:
  list      - Show the levels of the active pack
  play      - Play the pack or a single level
  runs      - View recorded attempts
  serve     - Start SSH and HTTP servers
  validate  - Check level files

Examples:
  snakepuzzle play
  snakepuzzle play 03-mind-the-gap --pace fast
  snakepuzzle play --levels ./levels --watch
  snakepuzzle serve --ssh :2222 --http :8080
  snakepuzzle validate levels/*.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to puzzle config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPace, "pace", "", "Timing preset: relaxed, normal, fast, instant")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Level directory (overrides config, empty = built-in pack)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to a file (play logs nothing otherwise)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(validateCmd)
}
