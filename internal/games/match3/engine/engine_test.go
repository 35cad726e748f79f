package engine_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

// newEngine builds a quiet, seeded engine and injects rows.
func newEngine(t *testing.T, w, h, itemTypes int, rows [][]int) *engine.Engine {
	t.Helper()
	e, err := engine.NewEngine(engine.Config{
		Width:     w,
		Height:    h,
		ItemTypes: itemTypes,
		Seed:      42,
		Logger:    log.New(io.Discard),
	})
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}
	if rows != nil {
		e.SetGrid(rows)
	}
	return e
}

func TestNewEngineValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  engine.Config
		want error
	}{
		{"zero width", engine.Config{Width: 0, Height: 5, ItemTypes: 3}, engine.ErrInvalidDimensions},
		{"negative height", engine.Config{Width: 5, Height: -1, ItemTypes: 3}, engine.ErrInvalidDimensions},
		{"no item types", engine.Config{Width: 5, Height: 5, ItemTypes: 0}, engine.ErrInvalidItemTypes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.NewEngine(tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewEngine() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewEngineRandomFill(t *testing.T) {
	cfg := engine.Config{Width: 7, Height: 5, ItemTypes: 4, Seed: 7, Logger: log.New(io.Discard)}

	e1, err := engine.NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}
	e2, err := engine.NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}

	if e1.Width() != 7 || e1.Height() != 5 {
		t.Errorf("expected 7x5 board, got %dx%d", e1.Width(), e1.Height())
	}
	if !e1.Grid().Equal(e2.Grid()) {
		t.Error("same seed should produce the same board")
	}

	for row := range 5 {
		for col := range 7 {
			if v := e1.Item(row, col); v < 0 || v >= 4 {
				t.Errorf("Item(%d,%d) = %d, want value in [0,4)", row, col, v)
			}
			if s := e1.Special(row, col); s != engine.SpecialNone {
				t.Errorf("Special(%d,%d) = %v, want none", row, col, s)
			}
		}
	}
}

func TestOutOfBoundsReads(t *testing.T) {
	e := newEngine(t, 3, 2, 3, [][]int{{0, 1, 2}, {2, 1, 0}})

	coords := []engine.Coord{
		engine.C(-1, 0), engine.C(0, -1), engine.C(2, 0), engine.C(0, 3), engine.C(5, 5),
	}
	for _, c := range coords {
		if v := e.Item(c.Row, c.Col); v != engine.Empty {
			t.Errorf("Item%v = %d, want %d", c, v, engine.Empty)
		}
		if s := e.Special(c.Row, c.Col); s != engine.SpecialNone {
			t.Errorf("Special%v = %v, want none", c, s)
		}
		if e.InBounds(c) {
			t.Errorf("InBounds%v = true, want false", c)
		}
	}

	// (row, col) order
	if e.Item(0, 2) != 2 || e.Item(1, 1) != 1 {
		t.Errorf("unexpected in-bounds reads: %d %d", e.Item(0, 2), e.Item(1, 1))
	}
}

func TestAdjacent(t *testing.T) {
	tests := []struct {
		a, b engine.Coord
		want bool
	}{
		{engine.C(1, 1), engine.C(1, 2), true},
		{engine.C(1, 1), engine.C(0, 1), true},
		{engine.C(1, 1), engine.C(2, 2), false}, // diagonal
		{engine.C(1, 1), engine.C(1, 1), false},
		{engine.C(1, 1), engine.C(1, 3), false},
	}

	for _, tt := range tests {
		if got := engine.Adjacent(tt.a, tt.b); got != tt.want {
			t.Errorf("Adjacent(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSetGridPadsAndDrops(t *testing.T) {
	e := newEngine(t, 3, 3, 3, nil)
	e.SetGrid([][]int{
		{0, 1},
		{2, 2, 2, 1}, // extra column dropped
	})

	want := [][]int{
		{0, 1, engine.Empty},
		{2, 2, 2},
		{engine.Empty, engine.Empty, engine.Empty},
	}
	got := e.Grid().Rows()
	for row := range want {
		for col := range want[row] {
			if got[row][col] != want[row][col] {
				t.Errorf("cell (%d,%d) = %d, want %d", row, col, got[row][col], want[row][col])
			}
		}
	}
}

func TestSetCellsEmptyDropsSpecial(t *testing.T) {
	e := newEngine(t, 2, 1, 3, nil)
	e.SetCells([][]engine.Cell{{
		{Type: engine.Empty, Special: engine.SpecialWrapped},
		{Type: 1, Special: engine.SpecialColorBomb},
	}})

	if s := e.Special(0, 0); s != engine.SpecialNone {
		t.Errorf("empty cell kept special %v", s)
	}
	if s := e.Special(0, 1); s != engine.SpecialColorBomb {
		t.Errorf("Special(0,1) = %v, want color_bomb", s)
	}
}

func TestFindAllMatchesHorizontal(t *testing.T) {
	e := newEngine(t, 5, 5, 3, [][]int{
		{0, 0, 0, 1, 2},
		{1, 2, 1, 2, 1},
		{2, 1, 2, 1, 2},
		{1, 2, 1, 2, 1},
		{2, 1, 2, 1, 2},
	})

	matches := e.FindAllMatches()
	for _, c := range []engine.Coord{engine.C(0, 0), engine.C(0, 1), engine.C(0, 2)} {
		if !matches.Has(c) {
			t.Errorf("expected %v in matches", c)
		}
	}
	if matches.Len() != 3 {
		t.Errorf("expected 3 matched cells, got %d: %v", matches.Len(), matches.Sorted())
	}
}

func TestFindAllMatchesNonSquare(t *testing.T) {
	// Vertical runs must be scanned over the full height, not the width.
	t.Run("tall board", func(t *testing.T) {
		e := newEngine(t, 3, 6, 3, [][]int{
			{0, 1, 2},
			{1, 2, 0},
			{2, 0, 1},
			{1, 1, 0},
			{1, 2, 2},
			{1, 0, 1},
		})
		matches := e.FindAllMatches()
		for row := 3; row < 6; row++ {
			if !matches.Has(engine.C(row, 0)) {
				t.Errorf("expected (%d,0) in matches", row)
			}
		}
		if matches.Len() != 3 {
			t.Errorf("expected 3 matched cells, got %v", matches.Sorted())
		}
	})

	t.Run("wide board", func(t *testing.T) {
		e := newEngine(t, 6, 3, 3, [][]int{
			{0, 1, 2, 0, 1, 2},
			{1, 2, 0, 1, 2, 2},
			{2, 0, 1, 2, 0, 2},
		})
		matches := e.FindAllMatches()
		for row := range 3 {
			if !matches.Has(engine.C(row, 5)) {
				t.Errorf("expected (%d,5) in matches", row)
			}
		}
		if matches.Len() != 3 {
			t.Errorf("expected 3 matched cells, got %v", matches.Sorted())
		}
	})
}

func TestFindAllMatchesIgnoresEmptyRuns(t *testing.T) {
	e := newEngine(t, 4, 3, 3, [][]int{
		{-1, -1, -1, -1},
		{0, 1, 0, 1},
		{1, 0, 1, 0},
	})
	if n := e.FindAllMatches().Len(); n != 0 {
		t.Errorf("runs of empty cells should not match, got %d cells", n)
	}
}

func TestApplyGravity(t *testing.T) {
	e := newEngine(t, 3, 3, 2, [][]int{
		{0, -1, 1},
		{-1, 1, -1},
		{1, 0, 0},
	})
	e.ApplyGravity()

	g := e.Grid()
	want := map[int][]int{
		0: {-1, 0, 1},
		1: {-1, 1, 0},
		2: {-1, 1, 0},
	}
	for col, column := range want {
		got := g.Column(col)
		for row := range column {
			if got[row] != column[row] {
				t.Errorf("column %d = %v, want %v", col, got, column)
				break
			}
		}
	}
}

func TestApplyGravityKeepsSpecials(t *testing.T) {
	e := newEngine(t, 1, 3, 3, nil)
	e.SetCells([][]engine.Cell{
		{{Type: 2, Special: engine.SpecialWrapped}},
		{engine.EmptyCell()},
		{engine.Tile(1)},
	})
	e.ApplyGravity()

	if e.Item(1, 0) != 2 || e.Special(1, 0) != engine.SpecialWrapped {
		t.Errorf("special tile did not fall with its type: type=%d special=%v", e.Item(1, 0), e.Special(1, 0))
	}
	if e.Special(0, 0) != engine.SpecialNone || e.Item(0, 0) != engine.Empty {
		t.Error("vacated cell should be empty with no special")
	}
}

func TestGravityInvariant(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		e, err := engine.NewEngine(engine.Config{
			Width: 6, Height: 7, ItemTypes: 5, Seed: seed, Logger: log.New(io.Discard),
		})
		if err != nil {
			t.Fatalf("NewEngine() failed: %v", err)
		}

		// Punch holes in a fixed pattern derived from the seed.
		for row := range 7 {
			for col := range 6 {
				if (row*7+col*3+int(seed))%4 == 0 {
					e.SetCell(engine.C(row, col), engine.EmptyCell())
				}
			}
		}

		before := e.Grid()
		e.ApplyGravity()
		after := e.Grid()

		for col := range 6 {
			var tiles []int
			for _, v := range before.Column(col) {
				if v != engine.Empty {
					tiles = append(tiles, v)
				}
			}

			column := after.Column(col)
			offset := len(column) - len(tiles)
			for row, v := range column {
				if row < offset {
					if v != engine.Empty {
						t.Errorf("seed %d col %d: expected empty at row %d, got %d", seed, col, row, v)
					}
					continue
				}
				if v != tiles[row-offset] {
					t.Errorf("seed %d col %d: order not preserved, got %v want tail %v", seed, col, column, tiles)
					break
				}
			}
		}
	}
}

func TestDetectPatternAt(t *testing.T) {
	tests := []struct {
		name      string
		w, h      int
		rows      [][]int
		at        engine.Coord
		pattern   engine.Pattern
		cells     int
		special   engine.SpecialKind
		itemType  int
		wantCells []engine.Coord
	}{
		{
			name: "four horizontal",
			w:    6, h: 5,
			rows: [][]int{
				{1, 2, 1, 2, 1, 2},
				{0, 0, 0, 0, 2, 1},
				{2, 1, 2, 1, 0, 2},
				{1, 2, 1, 2, 1, 0},
				{0, 1, 0, 1, 2, 1},
			},
			at:        engine.C(1, 1),
			pattern:   engine.PatternMatch4Horizontal,
			cells:     4,
			special:   engine.SpecialStripedHorizontal,
			itemType:  0,
			wantCells: []engine.Coord{engine.C(1, 0), engine.C(1, 3)},
		},
		{
			name: "five in a row",
			w:    7, h: 5,
			rows: [][]int{
				{1, 2, 1, 2, 1, 2, 1},
				{0, 0, 0, 0, 0, 1, 2},
				{2, 1, 2, 1, 2, 0, 1},
				{1, 2, 1, 2, 1, 2, 0},
				{0, 1, 0, 1, 0, 1, 2},
			},
			at:        engine.C(1, 2),
			pattern:   engine.PatternMatch5,
			cells:     5,
			special:   engine.SpecialColorBomb,
			itemType:  0,
			wantCells: []engine.Coord{engine.C(1, 0), engine.C(1, 4)},
		},
		{
			name: "L shape",
			w:    5, h: 5,
			rows: [][]int{
				{0, 0, 0, 1, 2},
				{2, 1, 0, 2, 1},
				{1, 2, 0, 1, 2},
				{0, 1, 2, 1, 0},
				{2, 0, 1, 2, 1},
			},
			at:        engine.C(0, 2),
			pattern:   engine.PatternMatchL,
			cells:     5,
			special:   engine.SpecialWrapped,
			itemType:  0,
			wantCells: []engine.Coord{engine.C(0, 0), engine.C(2, 2)},
		},
		{
			name: "T shape",
			w:    5, h: 5,
			rows: [][]int{
				{1, 2, 0, 1, 2},
				{2, 1, 0, 2, 1},
				{0, 0, 0, 0, 2},
				{1, 2, 1, 2, 1},
				{2, 1, 2, 1, 0},
			},
			at:        engine.C(2, 2),
			pattern:   engine.PatternMatchT,
			cells:     6,
			special:   engine.SpecialWrapped,
			itemType:  0,
			wantCells: []engine.Coord{engine.C(0, 2), engine.C(2, 0), engine.C(2, 3)},
		},
		{
			name: "plus shape with single arms is a three-match",
			w:    3, h: 3,
			rows: [][]int{
				{1, 0, 1},
				{0, 0, 0},
				{1, 0, 1},
			},
			at:        engine.C(1, 1),
			pattern:   engine.PatternMatch3,
			cells:     3,
			special:   engine.SpecialNone,
			itemType:  0,
			wantCells: []engine.Coord{engine.C(1, 0), engine.C(1, 2)},
		},
		{
			name: "vertical three",
			w:    2, h: 3,
			rows: [][]int{
				{0, 1},
				{0, 2},
				{0, 1},
			},
			at:        engine.C(0, 0),
			pattern:   engine.PatternMatch3,
			cells:     3,
			special:   engine.SpecialNone,
			itemType:  0,
			wantCells: []engine.Coord{engine.C(0, 0), engine.C(2, 0)},
		},
		{
			name: "four vertical",
			w:    2, h: 4,
			rows: [][]int{
				{2, 1},
				{2, 0},
				{2, 1},
				{2, 0},
			},
			at:        engine.C(1, 0),
			pattern:   engine.PatternMatch4Vertical,
			cells:     4,
			special:   engine.SpecialStripedVertical,
			itemType:  2,
			wantCells: []engine.Coord{engine.C(0, 0), engine.C(3, 0)},
		},
		{
			name: "no match",
			w:    3, h: 3,
			rows: [][]int{
				{0, 1, 0},
				{1, 0, 1},
				{0, 1, 0},
			},
			at:       engine.C(1, 1),
			pattern:  engine.PatternNone,
			cells:    0,
			special:  engine.SpecialNone,
			itemType: 0,
		},
		{
			name: "empty cell",
			w:    3, h: 1,
			rows: [][]int{
				{-1, 0, 0},
			},
			at:       engine.C(0, 0),
			pattern:  engine.PatternNone,
			cells:    0,
			special:  engine.SpecialNone,
			itemType: engine.Empty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, tt.w, tt.h, 3, tt.rows)

			match := e.DetectPatternAt(tt.at)
			if match.Pattern != tt.pattern {
				t.Fatalf("pattern = %v, want %v", match.Pattern, tt.pattern)
			}
			if match.Cells.Len() != tt.cells {
				t.Errorf("cells = %v, want %d cells", match.Cells.Sorted(), tt.cells)
			}
			for _, c := range tt.wantCells {
				if !match.Cells.Has(c) {
					t.Errorf("expected %v in cells %v", c, match.Cells.Sorted())
				}
			}
			if match.Epicenter != tt.at {
				t.Errorf("epicenter = %v, want %v", match.Epicenter, tt.at)
			}
			if match.ItemType != tt.itemType {
				t.Errorf("item type = %d, want %d", match.ItemType, tt.itemType)
			}

			again := e.DetectPatternAt(tt.at)
			if again.Pattern != match.Pattern || again.Cells.Len() != match.Cells.Len() {
				t.Error("detection should be a pure function of the board")
			}

			e.SpawnSpecial(match)
			if got := e.Special(tt.at.Row, tt.at.Col); got != tt.special {
				t.Errorf("special after spawn = %v, want %v", got, tt.special)
			}
		})
	}
}

func TestSpawnSpecialOutOfBounds(t *testing.T) {
	e := newEngine(t, 3, 3, 3, [][]int{{0, 1, 2}, {1, 2, 0}, {2, 0, 1}})
	before := e.Grid()

	e.SpawnSpecial(engine.MatchResult{
		Pattern:   engine.PatternMatch5,
		Epicenter: engine.C(3, 0),
		ItemType:  1,
	})

	if !before.Equal(e.Grid()) {
		t.Error("spawn at an off-board epicenter should not change the board")
	}
}

func TestSpecialFor(t *testing.T) {
	tests := []struct {
		pattern engine.Pattern
		want    engine.SpecialKind
	}{
		{engine.PatternNone, engine.SpecialNone},
		{engine.PatternMatch3, engine.SpecialNone},
		{engine.PatternMatch4Horizontal, engine.SpecialStripedHorizontal},
		{engine.PatternMatch4Vertical, engine.SpecialStripedVertical},
		{engine.PatternMatch5, engine.SpecialColorBomb},
		{engine.PatternMatchL, engine.SpecialWrapped},
		{engine.PatternMatchT, engine.SpecialWrapped},
	}
	for _, tt := range tests {
		if got := engine.SpecialFor(tt.pattern); got != tt.want {
			t.Errorf("SpecialFor(%v) = %v, want %v", tt.pattern, got, tt.want)
		}
	}
}

func TestFindAllMatchesWithPatternsFirstFoundWins(t *testing.T) {
	e := newEngine(t, 5, 5, 3, [][]int{
		{1, 2, 0, 1, 2},
		{2, 1, 0, 2, 1},
		{0, 0, 0, 0, 2},
		{1, 2, 1, 2, 1},
		{2, 1, 2, 1, 0},
	})

	// The vertical arm is reached first in row-major order and claims the
	// crossing cell; the horizontal arm is found later from (2,0).
	matches := e.FindAllMatchesWithPatterns()
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Pattern != engine.PatternMatch3 || matches[0].Epicenter != engine.C(0, 2) {
		t.Errorf("first match = %v at %v, want match3 at (0,2)", matches[0].Pattern, matches[0].Epicenter)
	}
	if matches[1].Pattern != engine.PatternMatch4Horizontal || matches[1].Epicenter != engine.C(2, 0) {
		t.Errorf("second match = %v at %v, want match4_horizontal at (2,0)", matches[1].Pattern, matches[1].Epicenter)
	}
}

func TestHasValidMoves(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		rows [][]int
		want bool
	}{
		{
			name: "checkerboard with a move",
			w:    5, h: 3,
			rows: [][]int{
				{0, 1, 0, 1, 2},
				{1, 0, 1, 0, 1},
				{2, 1, 2, 1, 0},
			},
			want: true,
		},
		{
			name: "deadlocked 3x3",
			w:    3, h: 3,
			rows: [][]int{
				{2, 1, 0},
				{0, 1, 2},
				{0, 2, 0},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, tt.w, tt.h, 3, tt.rows)
			if got := e.HasValidMoves(); got != tt.want {
				t.Errorf("HasValidMoves() = %v, want %v", got, tt.want)
			}
			if got := e.CountValidMoves() > 0; got != tt.want {
				t.Errorf("CountValidMoves() > 0 = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCountValidMoves(t *testing.T) {
	e := newEngine(t, 5, 5, 3, [][]int{
		{0, 1, 0, 1, 2},
		{1, 0, 0, 2, 1},
		{2, 1, 2, 1, 0},
		{0, 2, 1, 0, 0},
		{1, 0, 2, 1, 2},
	})

	count := e.CountValidMoves()
	if count < 3 {
		t.Errorf("CountValidMoves() = %d, want at least 3", count)
	}
	moves := e.ValidMoves()
	if len(moves) != count {
		t.Errorf("ValidMoves() returned %d moves, CountValidMoves() = %d", len(moves), count)
	}

	want := engine.Move{From: engine.C(0, 0), To: engine.C(1, 0)}
	if len(moves) > 0 && moves[0] != want {
		t.Errorf("first move = %v, want %v", moves[0], want)
	}
}

func TestFindHint(t *testing.T) {
	e := newEngine(t, 5, 5, 3, [][]int{
		{0, 1, 0, 1, 2},
		{1, 0, 1, 0, 1},
		{2, 1, 2, 1, 0},
		{1, 0, 1, 0, 1},
		{0, 1, 0, 1, 2},
	})

	hint, ok := e.FindHint()
	if !ok {
		t.Fatal("FindHint() found nothing")
	}
	want := engine.Move{From: engine.C(0, 1), To: engine.C(1, 1)}
	if hint != want {
		t.Errorf("FindHint() = %v, want %v", hint, want)
	}
	if !e.WouldMatchIfSwapped(hint.From, hint.To) {
		t.Error("hint should be a matching swap")
	}

	dead := newEngine(t, 3, 3, 3, [][]int{{2, 1, 0}, {0, 1, 2}, {0, 2, 0}})
	if _, ok := dead.FindHint(); ok {
		t.Error("FindHint() on a deadlocked board should find nothing")
	}
}

func TestWouldMatchIfSwappedRoundTrip(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		e, err := engine.NewEngine(engine.Config{
			Width: 6, Height: 6, ItemTypes: 4, Seed: seed, Logger: log.New(io.Discard),
		})
		if err != nil {
			t.Fatalf("NewEngine() failed: %v", err)
		}
		e.SetCell(engine.C(2, 2), engine.Cell{Type: 1, Special: engine.SpecialColorBomb})

		before := e.Grid()
		for row := range 6 {
			for col := range 6 {
				from := engine.C(row, col)
				for _, to := range []engine.Coord{engine.C(row, col+1), engine.C(row+1, col)} {
					if !e.InBounds(to) {
						continue
					}
					e.WouldMatchIfSwapped(from, to)
					if !before.Equal(e.Grid()) {
						t.Fatalf("seed %d: board changed after checking %v-%v", seed, from, to)
					}
				}
			}
		}
	}
}

func TestSwapRejected(t *testing.T) {
	rows := [][]int{
		{0, 1, 0, 1, 2},
		{1, 0, 1, 0, 1},
		{2, 1, 2, 1, 0},
		{1, 0, 1, 0, 1},
		{0, 1, 0, 1, 2},
	}

	tests := []struct {
		name string
		a, b engine.Coord
	}{
		{"not adjacent", engine.C(0, 0), engine.C(0, 2)},
		{"diagonal", engine.C(0, 1), engine.C(1, 0)},
		{"first out of bounds", engine.C(-1, 0), engine.C(0, 0)},
		{"second out of bounds", engine.C(0, 4), engine.C(0, 5)},
		{"no match", engine.C(0, 0), engine.C(0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, 5, 5, 3, rows)
			before := e.Grid()
			if e.Swap(tt.a, tt.b) {
				t.Error("Swap() = true, want false")
			}
			if !before.Equal(e.Grid()) {
				t.Error("rejected swap changed the board")
			}
		})
	}
}

func TestSwapResolvesCascade(t *testing.T) {
	e := newEngine(t, 5, 5, 3, [][]int{
		{0, 1, 0, 1, 2},
		{1, 0, 1, 0, 1},
		{2, 1, 2, 1, 0},
		{1, 0, 1, 0, 1},
		{0, 1, 0, 1, 2},
	})

	if !e.Swap(engine.C(0, 1), engine.C(1, 1)) {
		t.Fatal("Swap() = false, want true")
	}
	if e.ForcedRefills() == 0 && e.FindAllMatches().Len() != 0 {
		t.Errorf("board still has matches after swap: %v", e.FindAllMatches().Sorted())
	}
	g := e.Grid()
	if g.EmptyCount() != 0 {
		t.Errorf("board has %d empty cells after cascade", g.EmptyCount())
	}
	for row := range 5 {
		for col := range 5 {
			if v := e.Item(row, col); v < 0 || v >= 3 {
				t.Errorf("Item(%d,%d) = %d out of range", row, col, v)
			}
		}
	}
}

func TestSwapWithSpecials(t *testing.T) {
	rows := [][]int{
		{0, 0, 1, 0, 2},
		{1, 2, 0, 1, 3},
		{2, 3, 2, 3, 1},
		{3, 1, 3, 1, 2},
	}

	e := newEngine(t, 5, 4, 4, rows)
	before := e.Grid()
	if e.SwapWithSpecials(engine.C(0, 0), engine.C(0, 2)) {
		t.Error("non-adjacent SwapWithSpecials() should fail")
	}
	if !before.Equal(e.Grid()) {
		t.Error("rejected SwapWithSpecials() changed the board")
	}

	// Dropping the 0 from (1,2) into row 0 completes four in a row.
	if !e.SwapWithSpecials(engine.C(0, 2), engine.C(1, 2)) {
		t.Fatal("SwapWithSpecials() = false, want true")
	}
	if e.Special(0, 0) != engine.SpecialStripedHorizontal || e.Item(0, 0) != 0 {
		t.Errorf("expected striped horizontal type 0 at (0,0), got %v type %d", e.Special(0, 0), e.Item(0, 0))
	}
	if e.Item(1, 2) != 1 {
		t.Errorf("swapped tile at (1,2) = %d, want 1", e.Item(1, 2))
	}
}

func TestProcessCascade(t *testing.T) {
	e := newEngine(t, 6, 6, 4, [][]int{
		{0, 0, 0, 1, 2, 3},
		{1, 2, 1, 2, 3, 1},
		{1, 3, 2, 3, 1, 2},
		{2, 1, 3, 1, 2, 3},
		{1, 2, 1, 2, 3, 1},
		{3, 1, 2, 3, 1, 2},
	})

	if rounds := e.ProcessCascade(); rounds != 1 {
		t.Errorf("ProcessCascade() = %d, want 1", rounds)
	}
	if n := e.FindAllMatches().Len(); n != 0 {
		t.Errorf("expected stable board, found %d matched cells", n)
	}
	for col := range 3 {
		if v := e.Item(0, col); v < 0 || v >= 4 {
			t.Errorf("refilled Item(0,%d) = %d out of range", col, v)
		}
	}
}

func TestProcessCascadeWithSpecials(t *testing.T) {
	e := newEngine(t, 6, 6, 4, [][]int{
		{0, 0, 0, 0, 1, 2},
		{1, 2, 1, 2, 3, 1},
		{2, 3, 2, 3, 1, 2},
		{3, 1, 3, 1, 2, 3},
		{1, 2, 1, 2, 3, 1},
		{2, 3, 2, 3, 1, 2},
	})

	if rounds := e.ProcessCascadeWithSpecials(); rounds != 1 {
		t.Errorf("ProcessCascadeWithSpecials() = %d, want 1", rounds)
	}
	if e.Special(0, 0) != engine.SpecialStripedHorizontal || e.Item(0, 0) != 0 {
		t.Errorf("expected striped horizontal type 0 at (0,0), got %v type %d", e.Special(0, 0), e.Item(0, 0))
	}

	specials := 0
	for row := range 6 {
		for col := range 6 {
			if e.Special(row, col) != engine.SpecialNone {
				specials++
			}
		}
	}
	if specials != 1 {
		t.Errorf("expected exactly 1 special tile, got %d", specials)
	}
}

func TestProcessCascadeWithSpecialsMatch3LeavesNothing(t *testing.T) {
	e := newEngine(t, 5, 4, 4, [][]int{
		{0, 0, 0, 1, 2},
		{1, 2, 1, 2, 3},
		{2, 3, 2, 3, 1},
		{3, 1, 3, 1, 2},
	})

	e.ProcessCascadeWithSpecials()
	for row := range 4 {
		for col := range 5 {
			if s := e.Special(row, col); s != engine.SpecialNone {
				t.Errorf("three-match left %v at (%d,%d)", s, row, col)
			}
		}
	}
}

func TestCascadeTermination(t *testing.T) {
	for seed := int64(1); seed <= 15; seed++ {
		for _, specials := range []bool{false, true} {
			e, err := engine.NewEngine(engine.Config{
				Width: 8, Height: 8, ItemTypes: 6, Seed: seed, Logger: log.New(io.Discard),
			})
			if err != nil {
				t.Fatalf("NewEngine() failed: %v", err)
			}

			var rounds int
			if specials {
				rounds = e.ProcessCascadeWithSpecials()
			} else {
				rounds = e.ProcessCascade()
			}

			if rounds > engine.DefaultMaxCascadeRounds {
				t.Errorf("seed %d: %d rounds exceeds cap", seed, rounds)
			}
			if e.ForcedRefills() == 0 && e.FindAllMatches().Len() != 0 {
				t.Errorf("seed %d specials=%v: matches remain after cascade", seed, specials)
			}
			if n := e.Grid().EmptyCount(); n != 0 {
				t.Errorf("seed %d specials=%v: %d empty cells remain", seed, specials, n)
			}
		}
	}
}

func TestCascadeRoundCapAndForcedRefill(t *testing.T) {
	// With a single tile type every refill completes a line, so the reroll
	// limit runs out and the cascade only stops at the round cap.
	var buf bytes.Buffer
	e, err := engine.NewEngine(engine.Config{
		Width:             3,
		Height:            3,
		ItemTypes:         1,
		Logger:            log.New(&buf),
		MaxRefillAttempts: 5,
		MaxCascadeRounds:  4,
	})
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}

	if rounds := e.ProcessCascadeWithSpecials(); rounds != 4 {
		t.Errorf("ProcessCascadeWithSpecials() = %d, want 4", rounds)
	}
	if e.ForcedRefills() == 0 {
		t.Error("expected forced refills to be counted")
	}
	if !strings.Contains(buf.String(), "refill forced a possible match") {
		t.Errorf("expected refill diagnostic in log, got %q", buf.String())
	}

	if !strings.Contains(buf.String(), "cascade stopped at round cap") {
		t.Errorf("expected round cap warning in log, got %q", buf.String())
	}

	forced := e.ForcedRefills()
	if rounds := e.ProcessCascade(); rounds != 4 {
		t.Errorf("ProcessCascade() = %d, want 4", rounds)
	}
	if e.ForcedRefills() <= forced {
		t.Error("simple cascade refill should also count forced refills")
	}
}

func TestCascadeSettlingOnLastRoundDoesNotWarn(t *testing.T) {
	for _, specials := range []bool{false, true} {
		var buf bytes.Buffer
		e, err := engine.NewEngine(engine.Config{
			Width:            3,
			Height:           1,
			ItemTypes:        2,
			Seed:             7,
			Logger:           log.New(&buf),
			MaxCascadeRounds: 1,
		})
		if err != nil {
			t.Fatalf("NewEngine() failed: %v", err)
		}
		e.SetGrid([][]int{{0, 0, 0}})

		var rounds int
		if specials {
			rounds = e.ProcessCascadeWithSpecials()
		} else {
			rounds = e.ProcessCascade()
		}
		if rounds != 1 {
			t.Errorf("specials=%v: rounds = %d, want 1", specials, rounds)
		}
		if e.FindAllMatches().Len() != 0 {
			t.Fatalf("specials=%v: board should be stable after one round", specials)
		}
		if strings.Contains(buf.String(), "round cap") {
			t.Errorf("specials=%v: stable board logged a round cap warning: %q", specials, buf.String())
		}
	}
}

func TestShuffle(t *testing.T) {
	e := newEngine(t, 3, 3, 3, [][]int{
		{2, 1, 0},
		{0, 1, 2},
		{0, 2, 0},
	})
	if e.HasValidMoves() {
		t.Fatal("fixture should start deadlocked")
	}
	before := e.Grid().TypeCounts()

	attempts, err := e.Shuffle()
	if err != nil {
		t.Fatalf("Shuffle() failed: %v", err)
	}
	if attempts < 1 {
		t.Errorf("Shuffle() attempts = %d, want >= 1", attempts)
	}
	if !e.HasValidMoves() {
		t.Error("board should have a valid move after Shuffle()")
	}

	after := e.Grid().TypeCounts()
	for typ, n := range before {
		if after[typ] != n {
			t.Errorf("type %d count changed: %d -> %d", typ, n, after[typ])
		}
	}
}

func TestShuffleKeepsEmptyCells(t *testing.T) {
	e := newEngine(t, 4, 4, 3, [][]int{
		{-1, 1, 0, 2},
		{0, 1, 2, 0},
		{1, 2, 0, 1},
		{2, 0, 1, -1},
	})

	if _, err := e.Shuffle(); err != nil {
		t.Fatalf("Shuffle() failed: %v", err)
	}
	if e.Item(0, 0) != engine.Empty || e.Item(3, 3) != engine.Empty {
		t.Error("empty cells should stay in place")
	}
	if n := e.Grid().EmptyCount(); n != 2 {
		t.Errorf("expected 2 empty cells, got %d", n)
	}
}

func TestShuffleExhausted(t *testing.T) {
	// A 2x2 board can never hold a line of three.
	e, err := engine.NewEngine(engine.Config{
		Width: 2, Height: 2, ItemTypes: 2, Logger: log.New(io.Discard), MaxShuffleAttempts: 10,
	})
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}
	before := e.Grid().TypeCounts()

	attempts, err := e.Shuffle()
	if !errors.Is(err, engine.ErrShuffleExhausted) {
		t.Errorf("Shuffle() error = %v, want ErrShuffleExhausted", err)
	}
	if attempts != 10 {
		t.Errorf("Shuffle() attempts = %d, want 10", attempts)
	}

	after := e.Grid().TypeCounts()
	for typ, n := range before {
		if after[typ] != n {
			t.Errorf("type %d count changed: %d -> %d", typ, n, after[typ])
		}
	}
}
