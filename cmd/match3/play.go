package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/games/match3/boards"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

var (
	flagPreset  string
	flagClassic bool
	flagBoard   string
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play match-3 in the terminal",
	Long: `Start a game. Without --preset or --board a picker lets you choose a
difficulty preset or one of the fixture boards.

Controls:
  Arrows/WASD  - Move cursor
  Enter/Space  - Select a tile, then an adjacent tile to swap
  Esc/B        - Drop selection
  H            - Show a hint
  X            - Shuffle the board
  P            - Pause
  R            - New board
  ?            - More help
  Q/Ctrl+C     - Quit

Difficulty presets:
  easy   - 8x8, 4 tile types, automatic shuffle on deadlock
  normal - 8x8, 6 tile types, automatic shuffle on deadlock
  hard   - 9x9, 7 tile types, shuffle by hand

Examples:
  match3 play
  match3 play --preset easy
  match3 play --classic --seed 42
  match3 play --board deadlock
  match3 play --board ./my-board.yaml --log match3.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPreset, "preset", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().BoolVar(&flagClassic, "classic", false, "Clear matches without awarding special tiles")
	playCmd.Flags().StringVar(&flagBoard, "board", "", "Start from a fixture board ID or board file")
	playCmd.Flags().StringVar(&flagLogFile, "log", "", "Write diagnostics to this file while playing")
}

func runPlay(cmd *cobra.Command, args []string) error {
	if flagPreset != "" {
		if _, err := config.ParsePreset(flagPreset); err != nil {
			return err
		}
	}

	// Get terminal size early for the picker
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	preset, board := flagPreset, flagBoard
	if preset == "" && board == "" {
		selection, updatedCfg, err := tui.RunPresetSelector(cfg, pickerBoards())
		if err != nil {
			return err
		}
		cfg = updatedCfg

		// User pressed back or quit
		if selection == nil {
			return nil
		}
		preset, board = string(selection.Preset), selection.Board
	}

	// The alt screen owns the terminal, so diagnostics go to a file or nowhere.
	playLogger, closeLog, err := openPlayLog(flagLogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	match3.SetConfigPath(flagConfig)
	match3.SetDifficultyPreset(preset)
	match3.SetStartBoard(board)
	match3.SetLogger(playLogger)

	gameID := "match3"
	if flagClassic {
		gameID = "match3_classic"
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	playLogger.Info("starting", "game", gameID, "preset", preset, "board", board, "seed", cfg.Seed)
	return tui.Run(game, cfg, playLogger)
}

// pickerBoards returns the builtin boards plus any under ~/.match3/boards.
func pickerBoards() []boards.Board {
	list, err := boards.Builtin()
	if err != nil {
		logger.Warn("builtin boards unavailable", "err", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return list
	}
	dir := filepath.Join(home, ".match3", "boards")
	if _, statErr := os.Stat(dir); statErr != nil {
		return list
	}
	extra, err := loadBoardDir(dir)
	if err != nil {
		logger.Warn("user boards unavailable", "dir", dir, "err", err)
		return list
	}
	return append(list, extra...)
}

// openPlayLog returns the logger used during play and a func releasing it.
func openPlayLog(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return newLogger(f), func() { _ = f.Close() }, nil
}
