// Package boards loads fixed match-three boards from YAML files.
// Boards are used as analysis scenarios and as reproducible starting
// positions; the engine package does not depend on this package.
package boards

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

// Board is a complete board definition.
type Board struct {
	ID          string
	Name        string
	Description string
	ItemTypes   int
	Rows        [][]int // Tile types, engine.Empty for holes
	Specials    []SpecialSpec
	FilePath    string // Empty for builtin boards
}

// SpecialSpec tags one cell with a special kind by name.
type SpecialSpec struct {
	Row  int
	Col  int
	Kind string
}

// Width returns the number of columns. Boards are rectangular once validated.
func (b *Board) Width() int {
	if len(b.Rows) == 0 {
		return 0
	}
	return len(b.Rows[0])
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return len(b.Rows)
}

// Cells converts the board to engine cells with specials applied.
// Unknown or out-of-range specials are ignored; call Validate first.
func (b *Board) Cells() [][]engine.Cell {
	cells := make([][]engine.Cell, len(b.Rows))
	for row, types := range b.Rows {
		cells[row] = make([]engine.Cell, len(types))
		for col, t := range types {
			cells[row][col] = engine.Tile(t)
		}
	}
	for _, s := range b.Specials {
		kind, ok := engine.ParseSpecialKind(s.Kind)
		if !ok || s.Row < 0 || s.Row >= len(cells) || s.Col < 0 || s.Col >= len(cells[s.Row]) {
			continue
		}
		cells[s.Row][s.Col].Special = kind
	}
	return cells
}

// EngineConfig returns engine parameters sized for this board.
func (b *Board) EngineConfig(seed int64, logger *log.Logger) engine.Config {
	return engine.Config{
		Width:     b.Width(),
		Height:    b.Height(),
		ItemTypes: b.ItemTypes,
		Seed:      seed,
		Logger:    logger,
	}
}

// NewEngine validates the board and returns an engine holding it.
// The seed only drives refills and shuffles; the starting board is fixed.
func (b *Board) NewEngine(seed int64, logger *log.Logger) (*engine.Engine, error) {
	return b.NewEngineWith(b.EngineConfig(seed, logger))
}

// NewEngineWith is NewEngine with caller-supplied limits. The board's
// dimensions and item types override those in cfg.
func (b *Board) NewEngineWith(cfg engine.Config) (*engine.Engine, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("board %s: %w", b.ID, err)
	}
	cfg.Width = b.Width()
	cfg.Height = b.Height()
	cfg.ItemTypes = b.ItemTypes

	e, err := engine.NewEngine(cfg)
	if err != nil {
		return nil, fmt.Errorf("board %s: %w", b.ID, err)
	}
	e.SetCells(b.Cells())
	return e, nil
}

// FromEngine captures the engine's current board.
func FromEngine(id, name string, e *engine.Engine) Board {
	grid := e.Grid()
	b := Board{
		ID:        id,
		Name:      name,
		ItemTypes: e.ItemTypes(),
		Rows:      grid.Rows(),
	}
	for row := range grid.H {
		for col := range grid.W {
			if k := grid.Get(engine.C(row, col)).Special; k != engine.SpecialNone {
				b.Specials = append(b.Specials, SpecialSpec{Row: row, Col: col, Kind: k.String()})
			}
		}
	}
	return b
}
