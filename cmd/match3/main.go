// match3 is a terminal match-three game and board analyzer.
//
// Usage:
//
//	match3 list              - List games and fixture boards
//	match3 play              - Play (shows the preset picker)
//	match3 analyze <board>   - Inspect a fixture board or board file
//
// Global flags:
//
//	--seed <value>   - Set RNG seed for reproducible refills and shuffles
//	--config <path>  - Use a custom match3.yaml
//	--debug          - Log engine diagnostics
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-match3/internal/games/match3"
)

var (
	// Global flags
	flagSeed   int64
	flagConfig string
	flagDebug  bool
	flagFPS    int

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 - swap tiles, clear lines, chain cascades",
	Long: `Match-3 is a terminal match-three game built on a deterministic
rules engine.

Available commands:
  list     - Show games and fixture boards
  play     - Play in the terminal
  analyze  - Print matches, moves and cascades for a board

Examples:
  match3 list
  match3 play --preset hard
  match3 play --board cascade_specials --seed 7
  match3 analyze match_t
  match3 analyze ./my-board.yaml --cascade specials`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(os.Stderr)
	},
}

// newLogger builds the command logger honoring --debug.
func newLogger(w *os.File) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "match3",
	})
	if flagDebug {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time when playing)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom match3 config YAML")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log engine diagnostics")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(analyzeCmd)
}
