// Package match3 is the playable match-three game: a cursor-driven host
// around the rules engine, registered with the platform in two modes.
package match3

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/boards"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// Mode selects how player swaps are resolved.
type Mode string

const (
	ModeSpecials Mode = "specials" // Classified matches leave special tiles
	ModeClassic  Mode = "classic"  // Every match is simply cleared
)

const messageTicks = 60

// Game implements the match-three game.
type Game struct {
	mode    Mode
	cfg     config.Match3Config
	eng     *engine.Engine
	logger  *log.Logger
	boardID string // Fixture board in play, empty for a random board
	tick    uint64

	// Screen dimensions
	screenW int
	screenH int

	cursor       engine.Coord
	selected     engine.Coord
	hasSelection bool
	hint         engine.Move
	showHint     bool

	moves    int
	cascades int
	shuffles int

	deadlocked   bool
	paused       bool
	tooSmall     bool
	message      string
	messageTicks int
}

// Package-level settings applied on the next Reset.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	startBoard       string
	gameLogger       *log.Logger
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names are ignored.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetStartBoard starts the next game from a builtin board ID or a board
// file path instead of a random board. Empty means random.
func SetStartBoard(board string) {
	startBoard = board
}

// SetLogger sets where engine diagnostics go. Nil discards them.
func SetLogger(l *log.Logger) {
	gameLogger = l
}

// New creates a game that resolves swaps with special tiles.
func New() *Game {
	return &Game{mode: ModeSpecials}
}

// NewClassic creates a game that resolves swaps with the plain cascade.
func NewClassic() *Game {
	return &Game{mode: ModeClassic}
}

func init() {
	registry.Register("match3", func() registry.Game {
		return New()
	})
	registry.Register("match3_classic", func() registry.Game {
		return NewClassic()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeClassic {
		return "match3_classic"
	}
	return "match3"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeClassic {
		return "Match-3 (Classic)"
	}
	return "Match-3"
}

// Description explains how the mode resolves swaps.
func (g *Game) Description() string {
	if g.mode == ModeClassic {
		return "Every match is simply cleared"
	}
	return "Lines of four or more and L/T shapes leave special tiles"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.logger = gameLogger
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	g.cfg = loadConfig(g.logger)

	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.hasSelection = false
	g.showHint = false
	g.moves = 0
	g.cascades = 0
	g.shuffles = 0
	g.deadlocked = false
	g.paused = false
	g.message = ""
	g.messageTicks = 0

	g.eng, g.boardID = newEngine(g.cfg, cfg.Seed, g.logger)
	if g.boardID == "" {
		g.settle()
	}
	g.cursor = engine.C(g.eng.Height()/2, g.eng.Width()/2)
	g.deadlocked = !g.eng.HasValidMoves()

	g.checkScreenSize()
}

// loadConfig reads the configuration and applies the selected preset.
// Load errors fall back to the defaults so the game can still start.
func loadConfig(logger *log.Logger) config.Match3Config {
	cfg, err := config.LoadMatch3(configPath)
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = config.DefaultMatch3Config()
	}
	if difficultyPreset != "" {
		config.ApplyMatch3Preset(&cfg, difficultyPreset)
	}
	return cfg
}

// newEngine builds the engine from the start board if one is set, otherwise
// from a random fill. Returns the board ID in play.
func newEngine(cfg config.Match3Config, seed int64, logger *log.Logger) (*engine.Engine, string) {
	ecfg := cfg.EngineConfig(seed, logger)

	if startBoard != "" {
		b, err := boards.Resolve(startBoard)
		if err == nil {
			var e *engine.Engine
			if e, err = b.NewEngineWith(ecfg); err == nil {
				return e, b.ID
			}
		}
		logger.Warn("start board unavailable, using a random board", "board", startBoard, "err", err)
	}

	e, err := engine.NewEngine(ecfg)
	if err != nil {
		logger.Warn("invalid board config, using defaults", "err", err)
		e, _ = engine.NewEngine(config.DefaultMatch3Config().EngineConfig(seed, logger))
	}
	return e, ""
}

// settle clears matches left by the random fill and makes sure the opening
// board has a move. Nothing here counts towards the player's totals, and no
// specials are awarded.
func (g *Game) settle() {
	g.eng.ProcessCascade()
	if !g.eng.HasValidMoves() {
		if _, err := g.eng.Shuffle(); err == nil {
			g.eng.ProcessCascade()
		}
	}
}

// resolve runs the cascade for the current mode and returns its rounds.
func (g *Game) resolve() int {
	if g.useSpecials() {
		return g.eng.ProcessCascadeWithSpecials()
	}
	return g.eng.ProcessCascade()
}

func (g *Game) useSpecials() bool {
	return g.mode == ModeSpecials && g.cfg.Rules.Specials
}

// Resize adapts to a new screen size without touching the board.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	minW, minH := g.layoutSize()
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.messageTicks > 0 {
		g.messageTicks--
		if g.messageTicks == 0 {
			g.message = ""
		}
	}

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	switch {
	case in.Has(core.ActionUp):
		g.moveCursor(engine.DirUp)
	case in.Has(core.ActionDown):
		g.moveCursor(engine.DirDown)
	case in.Has(core.ActionLeft):
		g.moveCursor(engine.DirLeft)
	case in.Has(core.ActionRight):
		g.moveCursor(engine.DirRight)
	}

	switch {
	case in.Has(core.ActionBack):
		g.hasSelection = false
	case in.Has(core.ActionHint):
		g.requestHint()
	case in.Has(core.ActionShuffle):
		g.shuffle("Board shuffled")
	case in.Has(core.ActionConfirm):
		g.confirm()
	}

	return core.StepResult{State: g.State()}
}

// moveCursor steps the cursor one cell; steps off the board are ignored.
func (g *Game) moveCursor(d engine.Dir) {
	next := g.cursor.Step(d, 1)
	bounds := core.NewRect(0, 0, g.eng.Width(), g.eng.Height())
	if bounds.Contains(next.Col, next.Row) {
		g.cursor = next
	}
}

// confirm selects the tile under the cursor, or swaps it with the selected
// tile when the two are adjacent.
func (g *Game) confirm() {
	if g.deadlocked {
		g.flash("No moves left: press X to shuffle or R to restart")
		return
	}

	switch {
	case !g.hasSelection:
		g.selected = g.cursor
		g.hasSelection = true
	case g.selected == g.cursor:
		g.hasSelection = false
	case !engine.Adjacent(g.selected, g.cursor):
		g.selected = g.cursor
	default:
		g.swap(g.selected, g.cursor)
	}
}

// swap applies one player move.
func (g *Game) swap(a, b engine.Coord) {
	g.hasSelection = false
	g.showHint = false

	if !g.eng.TrySwap(a, b) {
		g.flash("No match")
		return
	}

	rounds := g.resolve()
	g.moves++
	g.cascades += rounds
	if rounds > 1 {
		g.flash(fmt.Sprintf("Cascade x%d!", rounds))
	}

	g.afterMove()
}

// afterMove handles a board left without valid moves.
func (g *Game) afterMove() {
	if g.eng.HasValidMoves() {
		g.deadlocked = false
		return
	}
	if g.cfg.Rules.AutoShuffle {
		g.shuffle("No moves left, board shuffled")
		return
	}
	g.deadlocked = true
}

func (g *Game) shuffle(msg string) {
	g.hasSelection = false
	g.showHint = false

	attempts, err := g.eng.Shuffle()
	g.shuffles++
	if err != nil {
		g.deadlocked = true
		g.flash("Shuffle found no move")
		return
	}
	g.logger.Debug("board shuffled", "attempts", attempts)

	// A permutation may line up tiles by itself.
	g.resolve()
	g.deadlocked = !g.eng.HasValidMoves()
	g.flash(msg)
}

func (g *Game) requestHint() {
	hint, ok := g.eng.FindHint()
	if !ok {
		g.flash("No valid moves")
		return
	}
	g.hint = hint
	g.showHint = true
}

func (g *Game) flash(msg string) {
	g.message = msg
	g.messageTicks = messageTicks
}

// Engine returns the engine driving the game.
func (g *Game) Engine() *engine.Engine {
	return g.eng
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Moves:      g.moves,
		Cascades:   g.cascades,
		Deadlocked: g.deadlocked,
		Paused:     g.paused || g.tooSmall,
	}
}
