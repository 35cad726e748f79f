package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/games/match3/boards"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
)

var (
	flagCascade string
	flagShuffle bool
	flagMoves   bool
	flagSave    string
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <board-id|file.yaml>",
	Short: "Print matches, valid moves and cascades for a board",
	Long: `Loads a fixture board and prints what the rules engine sees: every
classified match with its epicenter and the special it would award, the
number of valid moves, and the hint. Matched cells are marked with *.

Optionally resolves the board with one of the cascades, shuffles it, and
saves the resulting board as a new board file.

Examples:
  match3 analyze match_t
  match3 analyze cascade_specials --cascade specials
  match3 analyze deadlock --shuffle --seed 3
  match3 analyze ./my-board.yaml --moves --cascade simple --save out.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&flagCascade, "cascade", "", "Resolve the board: simple or specials")
	analyzeCmd.Flags().BoolVar(&flagShuffle, "shuffle", false, "Shuffle the board until a move exists")
	analyzeCmd.Flags().BoolVar(&flagMoves, "moves", false, "List every valid move")
	analyzeCmd.Flags().StringVar(&flagSave, "save", "", "Write the final board to this YAML file")
}

// analyzeOptions selects the optional analysis steps.
type analyzeOptions struct {
	Cascade string // "", "simple" or "specials"
	Shuffle bool
	Moves   bool
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	b, err := boards.Resolve(args[0])
	if err != nil {
		return err
	}

	cfg, err := config.LoadMatch3(flagConfig)
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = config.DefaultMatch3Config()
	}

	e, err := b.NewEngineWith(cfg.EngineConfig(flagSeed, logger))
	if err != nil {
		return err
	}

	opts := analyzeOptions{Cascade: flagCascade, Shuffle: flagShuffle, Moves: flagMoves}
	if err := analyze(os.Stdout, b, e, opts, logger); err != nil {
		return err
	}

	if flagSave == "" {
		return nil
	}
	return saveBoard(flagSave, b, e)
}

// analyze prints the report for one board. The engine is left in its
// final state.
func analyze(w io.Writer, b boards.Board, e *engine.Engine, opts analyzeOptions, logger *log.Logger) error {
	var cascade func() int
	switch opts.Cascade {
	case "":
	case "simple":
		cascade = e.ProcessCascade
	case "specials":
		cascade = e.ProcessCascadeWithSpecials
	default:
		return fmt.Errorf("unknown cascade %q (want simple or specials)", opts.Cascade)
	}

	fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("%s (%s)", b.Name, b.ID)))
	if b.Description != "" {
		fmt.Fprintln(w, dimStyle.Render(b.Description))
	}
	fmt.Fprintf(w, "%dx%d, %d tile types\n\n", e.Width(), e.Height(), e.ItemTypes())

	report(w, e, opts.Moves)

	if cascade != nil {
		before := e.ForcedRefills()
		rounds := cascade()
		fmt.Fprintln(w)
		fmt.Fprintln(w, sectionStyle.Render(fmt.Sprintf("After %s cascade", opts.Cascade)))
		fmt.Fprintf(w, "Rounds: %d  Forced refills: %d\n\n", rounds, e.ForcedRefills()-before)
		report(w, e, opts.Moves)
	}

	if opts.Shuffle {
		attempts, err := e.Shuffle()
		fmt.Fprintln(w)
		fmt.Fprintln(w, sectionStyle.Render("After shuffle"))
		if err != nil {
			logger.Warn("shuffle did not find a move", "err", err)
			fmt.Fprintf(w, "Attempts: %d (gave up)\n\n", attempts)
		} else {
			fmt.Fprintf(w, "Attempts: %d\n\n", attempts)
		}
		report(w, e, opts.Moves)
	}

	return nil
}

// report prints the board and what can be done with it.
func report(w io.Writer, e *engine.Engine, listMoves bool) {
	matches := e.FindAllMatchesWithPatterns()

	marks := make(map[engine.Coord]match3.Mark)
	for c := range e.FindAllMatches() {
		marks[c] = match3.MarkMatch
	}
	fmt.Fprintln(w, renderBoard(e, marks))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Matches: %d\n", len(matches))
	for _, m := range matches {
		line := fmt.Sprintf("  %-18s epicenter %-7s %2d cells", m.Pattern, m.Epicenter, m.Cells.Len())
		if k := engine.SpecialFor(m.Pattern); k != engine.SpecialNone {
			line += "  -> " + k.String()
		}
		fmt.Fprintln(w, line)
	}

	moves := e.ValidMoves()
	fmt.Fprintf(w, "Valid moves: %d\n", len(moves))
	if hint, ok := e.FindHint(); ok {
		fmt.Fprintf(w, "Hint: %s\n", hint)
	} else {
		fmt.Fprintln(w, "Hint: none (deadlocked)")
	}

	if listMoves && len(moves) > 0 {
		parts := make([]string, len(moves))
		for i, m := range moves {
			parts[i] = m.String()
		}
		fmt.Fprintln(w, dimStyle.Render("  "+strings.Join(parts, "  ")))
	}
}

// renderBoard draws the board the same way the game does.
func renderBoard(e *engine.Engine, marks map[engine.Coord]match3.Mark) string {
	w, h := match3.BoardSize(e)
	screen := core.NewScreen(w, h)
	match3.DrawBoard(screen, 0, 0, e, marks)
	return tui.RenderScreen(screen)
}

// saveBoard writes the engine's board as a board file derived from b.
func saveBoard(path string, b boards.Board, e *engine.Engine) error {
	out := boards.FromEngine(b.ID+"_result", b.Name+" (result)", e)
	data, err := boards.MarshalYAML(out)
	if err != nil {
		return fmt.Errorf("encoding board: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("saving board: %w", err)
	}
	logger.Info("board saved", "path", path)
	return nil
}
