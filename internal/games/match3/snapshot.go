package match3

import "github.com/vovakirdan/tui-match3/internal/games/match3/engine"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateDeadlocked  GameStateType = "deadlocked"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Mode     string // "specials" or "classic"
	BoardID  string // Empty for a random board
	Cells    [][]engine.Cell
	Cursor   engine.Coord
	Selected *engine.Coord // Nil when nothing is selected
	Hint     *engine.Move  // Nil unless a hint is showing
	Moves    int
	Cascades int
	Shuffles int
	State    GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	case g.deadlocked:
		state = StateDeadlocked
	}

	grid := g.eng.Grid()
	cells := make([][]engine.Cell, grid.H)
	for row := range grid.H {
		cells[row] = make([]engine.Cell, grid.W)
		for col := range grid.W {
			cells[row][col] = grid.Get(engine.C(row, col))
		}
	}

	snap := Snapshot{
		Tick:     g.tick,
		Mode:     string(g.mode),
		BoardID:  g.boardID,
		Cells:    cells,
		Cursor:   g.cursor,
		Moves:    g.moves,
		Cascades: g.cascades,
		Shuffles: g.shuffles,
		State:    state,
	}
	if g.hasSelection {
		sel := g.selected
		snap.Selected = &sel
	}
	if g.showHint {
		hint := g.hint
		snap.Hint = &hint
	}
	return snap
}
