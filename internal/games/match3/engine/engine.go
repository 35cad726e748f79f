package engine

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
)

// Default limits for the bounded loops.
const (
	DefaultMaxRefillAttempts  = 100
	DefaultMaxCascadeRounds   = 100
	DefaultMaxShuffleAttempts = 1000
)

var (
	ErrInvalidDimensions = errors.New("board dimensions must be positive")
	ErrInvalidItemTypes  = errors.New("item types must be positive")
	ErrShuffleExhausted  = errors.New("shuffle found no valid move")
)

// Config holds construction parameters for an Engine.
type Config struct {
	Width     int
	Height    int
	ItemTypes int

	// Seed feeds the engine's RNG when Rand is nil.
	Seed int64
	// Rand overrides the seeded generator.
	Rand *rand.Rand
	// Logger receives diagnostics. Nil means log.Default() with a prefix.
	Logger *log.Logger

	// Zero values select the package defaults.
	MaxRefillAttempts  int
	MaxCascadeRounds   int
	MaxShuffleAttempts int
}

// Engine owns one board and applies the match-three rules to it.
// It is not safe for concurrent use.
type Engine struct {
	grid      *Grid
	itemTypes int
	rng       *rand.Rand
	logger    *log.Logger

	maxRefillAttempts  int
	maxCascadeRounds   int
	maxShuffleAttempts int

	forcedRefills int
}

// NewEngine creates an engine with a randomly filled board.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("engine: %dx%d: %w", cfg.Width, cfg.Height, ErrInvalidDimensions)
	}
	if cfg.ItemTypes <= 0 {
		return nil, fmt.Errorf("engine: %d: %w", cfg.ItemTypes, ErrInvalidItemTypes)
	}

	e := &Engine{
		grid:               NewGrid(cfg.Width, cfg.Height),
		itemTypes:          cfg.ItemTypes,
		rng:                cfg.Rand,
		logger:             cfg.Logger,
		maxRefillAttempts:  orDefault(cfg.MaxRefillAttempts, DefaultMaxRefillAttempts),
		maxCascadeRounds:   orDefault(cfg.MaxCascadeRounds, DefaultMaxCascadeRounds),
		maxShuffleAttempts: orDefault(cfg.MaxShuffleAttempts, DefaultMaxShuffleAttempts),
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(cfg.Seed))
	}
	if e.logger == nil {
		e.logger = log.Default().WithPrefix("match3")
	}

	for i := range e.grid.Cells {
		e.grid.Cells[i] = Tile(e.rng.Intn(e.itemTypes))
	}

	return e, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Width returns the number of columns.
func (e *Engine) Width() int {
	return e.grid.W
}

// Height returns the number of rows.
func (e *Engine) Height() int {
	return e.grid.H
}

// ItemTypes returns the number of distinct tile types.
func (e *Engine) ItemTypes() int {
	return e.itemTypes
}

// Grid returns a copy of the board.
func (e *Engine) Grid() *Grid {
	return e.grid.Clone()
}

// InBounds reports whether c lies on the board.
func (e *Engine) InBounds(c Coord) bool {
	return e.grid.InBounds(c)
}

// Item returns the tile type at (row, col), or Empty when out of bounds.
func (e *Engine) Item(row, col int) int {
	return e.grid.TypeAt(C(row, col))
}

// Special returns the special kind at (row, col), or SpecialNone when out
// of bounds.
func (e *Engine) Special(row, col int) SpecialKind {
	return e.grid.Get(C(row, col)).Special
}

// Cell returns the cell at c, or an empty cell when out of bounds.
func (e *Engine) Cell(c Coord) Cell {
	return e.grid.Get(c)
}

// SetCell overwrites one cell. Out-of-bounds writes are ignored.
func (e *Engine) SetCell(c Coord, cell Cell) {
	e.grid.Set(c, cell)
}

// SetGrid replaces the board contents with plain tiles.
// Values are not validated. Cells not covered by rows become empty and
// data beyond the board is dropped.
func (e *Engine) SetGrid(rows [][]int) {
	for i := range e.grid.Cells {
		e.grid.Cells[i] = EmptyCell()
	}
	for row, types := range rows {
		for col, t := range types {
			e.grid.Set(C(row, col), Tile(t))
		}
	}
}

// SetCells is SetGrid for boards that carry special tiles.
func (e *Engine) SetCells(rows [][]Cell) {
	for i := range e.grid.Cells {
		e.grid.Cells[i] = EmptyCell()
	}
	for row, cells := range rows {
		for col, cell := range cells {
			e.grid.Set(C(row, col), cell)
		}
	}
}

// ForcedRefills returns how many refilled cells had to accept a candidate
// that may complete a match because the reroll budget ran out.
func (e *Engine) ForcedRefills() int {
	return e.forcedRefills
}
