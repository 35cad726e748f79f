package match3

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

// swapFixture turns into a horizontal four-match when (0,2) and (1,2) swap.
const swapFixture = `id: swap_four
item_types: 4
rows:
  - [0, 0, 1, 0, 2]
  - [1, 2, 0, 1, 3]
  - [2, 3, 2, 3, 1]
  - [3, 1, 3, 1, 2]
`

func newGame(t *testing.T, game *Game, board string, seed int64) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	SetConfigPath("")
	SetDifficultyPreset("")
	SetStartBoard(board)
	t.Cleanup(func() { SetStartBoard("") })

	game.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 30, Seed: seed})
	return game
}

func press(g *Game, actions ...core.Action) {
	for _, a := range actions {
		g.Step(core.NewInputFrameWith(a))
	}
}

func countSpecials(cells [][]engine.Cell) int {
	n := 0
	for _, row := range cells {
		for _, c := range row {
			if c.Special != engine.SpecialNone {
				n++
			}
		}
	}
	return n
}

func TestDeterministicBoard(t *testing.T) {
	g1 := newGame(t, New(), "", 12345)
	g2 := newGame(t, New(), "", 12345)

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if !reflect.DeepEqual(s1.Cells, s2.Cells) {
		t.Error("same seed should produce the same board")
	}
	if s1.BoardID != "" {
		t.Errorf("random board should have no ID, got %q", s1.BoardID)
	}
	if s1.State != StatePlaying {
		t.Errorf("opening state = %s, want playing", s1.State)
	}
}

func TestOpeningBoardIsSettled(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		g := newGame(t, New(), "", seed)
		if n := g.Engine().FindAllMatches().Len(); n != 0 {
			t.Errorf("seed %d: opening board has %d matched cells", seed, n)
		}
		if !g.Engine().HasValidMoves() {
			t.Errorf("seed %d: opening board has no moves", seed)
		}
	}
}

func TestStartBoard(t *testing.T) {
	g := newGame(t, New(), "hint", 1)
	snap := g.Snapshot()

	if snap.BoardID != "hint" {
		t.Errorf("BoardID = %q, want hint", snap.BoardID)
	}
	if len(snap.Cells) != 5 || len(snap.Cells[0]) != 5 {
		t.Fatalf("board size = %dx%d, want 5x5", len(snap.Cells[0]), len(snap.Cells))
	}
	if snap.Cursor != engine.C(2, 2) {
		t.Errorf("cursor starts at %v, want (2,2)", snap.Cursor)
	}
}

func TestUnknownStartBoardFallsBack(t *testing.T) {
	g := newGame(t, New(), "no_such_board", 1)
	if g.Snapshot().BoardID != "" {
		t.Error("unknown board should fall back to a random board")
	}
	if g.Engine().Width() != 8 {
		t.Errorf("fallback width = %d, want 8", g.Engine().Width())
	}
}

func TestCursorClamp(t *testing.T) {
	g := newGame(t, New(), "hint", 1)

	press(g, core.ActionUp, core.ActionUp, core.ActionUp, core.ActionUp)
	press(g, core.ActionLeft, core.ActionLeft, core.ActionLeft)
	if got := g.Snapshot().Cursor; got != engine.C(0, 0) {
		t.Errorf("cursor = %v, want (0,0)", got)
	}

	for range 10 {
		press(g, core.ActionDown, core.ActionRight)
	}
	if got := g.Snapshot().Cursor; got != engine.C(4, 4) {
		t.Errorf("cursor = %v, want (4,4)", got)
	}
}

func TestSelection(t *testing.T) {
	g := newGame(t, New(), "hint", 1)

	press(g, core.ActionConfirm)
	if sel := g.Snapshot().Selected; sel == nil || *sel != engine.C(2, 2) {
		t.Fatalf("Selected = %v, want (2,2)", sel)
	}

	// Same cell deselects.
	press(g, core.ActionConfirm)
	if g.Snapshot().Selected != nil {
		t.Error("confirming the selected cell should deselect it")
	}

	// Non-adjacent cell moves the selection.
	press(g, core.ActionConfirm, core.ActionUp, core.ActionUp, core.ActionConfirm)
	if sel := g.Snapshot().Selected; sel == nil || *sel != engine.C(0, 2) {
		t.Errorf("Selected = %v, want (0,2)", sel)
	}

	press(g, core.ActionBack)
	if g.Snapshot().Selected != nil {
		t.Error("back should clear the selection")
	}
}

func TestSwapByInput(t *testing.T) {
	g := newGame(t, New(), "hint", 7)

	// (2,2) -> (0,1), select, then swap with (1,1).
	press(g, core.ActionUp, core.ActionUp, core.ActionLeft, core.ActionConfirm)
	press(g, core.ActionDown, core.ActionConfirm)

	snap := g.Snapshot()
	if snap.Moves != 1 {
		t.Errorf("Moves = %d, want 1", snap.Moves)
	}
	if snap.Cascades < 1 {
		t.Errorf("Cascades = %d, want at least 1", snap.Cascades)
	}
	if snap.Selected != nil {
		t.Error("selection should clear after a swap")
	}
	if n := g.Engine().FindAllMatches().Len(); n != 0 {
		t.Errorf("board left with %d matched cells", n)
	}
}

func TestInvalidSwap(t *testing.T) {
	g := newGame(t, New(), "hint", 1)
	before := g.Snapshot().Cells

	// (4,3) and (4,4) do not make a match.
	press(g, core.ActionDown, core.ActionDown, core.ActionRight, core.ActionConfirm)
	press(g, core.ActionRight, core.ActionConfirm)

	snap := g.Snapshot()
	if snap.Moves != 0 {
		t.Errorf("Moves = %d, want 0", snap.Moves)
	}
	if !reflect.DeepEqual(before, snap.Cells) {
		t.Error("rejected swap changed the board")
	}
	if g.message != "No match" {
		t.Errorf("message = %q, want %q", g.message, "No match")
	}
}

func TestHint(t *testing.T) {
	g := newGame(t, New(), "hint", 1)

	press(g, core.ActionHint)
	hint := g.Snapshot().Hint
	if hint == nil {
		t.Fatal("expected a hint")
	}
	want := engine.Move{From: engine.C(0, 1), To: engine.C(1, 1)}
	if *hint != want {
		t.Errorf("hint = %v, want %v", *hint, want)
	}
}

func TestPause(t *testing.T) {
	g := newGame(t, New(), "hint", 1)

	press(g, core.ActionPause)
	if !g.State().Paused {
		t.Fatal("expected paused state")
	}
	if g.Snapshot().State != StatePaused {
		t.Errorf("snapshot state = %s, want paused", g.Snapshot().State)
	}

	press(g, core.ActionUp)
	if g.Snapshot().Cursor != engine.C(2, 2) {
		t.Error("cursor moved while paused")
	}

	press(g, core.ActionPause)
	if g.State().Paused {
		t.Error("expected resume")
	}
}

func TestDeadlockAndShuffle(t *testing.T) {
	g := newGame(t, New(), "deadlock", 3)

	if !g.State().Deadlocked {
		t.Fatal("deadlock board should start deadlocked")
	}
	if g.Snapshot().State != StateDeadlocked {
		t.Errorf("snapshot state = %s, want deadlocked", g.Snapshot().State)
	}

	press(g, core.ActionConfirm)
	if g.Snapshot().Selected != nil {
		t.Error("selection should be refused while deadlocked")
	}

	press(g, core.ActionShuffle)
	if g.Snapshot().Shuffles != 1 {
		t.Errorf("Shuffles = %d, want 1", g.Snapshot().Shuffles)
	}
	if g.State().Deadlocked == g.Engine().HasValidMoves() {
		t.Error("deadlock flag disagrees with the board")
	}
}

func TestClassicModeLeavesNoSpecials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swap_four.yaml")
	if err := os.WriteFile(path, []byte(swapFixture), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	tests := []struct {
		name     string
		game     *Game
		specials int
	}{
		{"specials", New(), 1},
		{"classic", NewClassic(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t, tt.game, path, 5)

			// Cursor starts at (2,2): select (0,2) and swap it down.
			press(g, core.ActionUp, core.ActionUp, core.ActionConfirm, core.ActionDown, core.ActionConfirm)

			snap := g.Snapshot()
			if snap.Moves != 1 {
				t.Fatalf("Moves = %d, want 1", snap.Moves)
			}
			if got := countSpecials(snap.Cells); got != tt.specials {
				t.Errorf("specials on board = %d, want %d", got, tt.specials)
			}
		})
	}
}

func TestIDs(t *testing.T) {
	if New().ID() != "match3" || NewClassic().ID() != "match3_classic" {
		t.Error("unexpected game IDs")
	}
	if NewClassic().Title() == New().Title() {
		t.Error("modes should have distinct titles")
	}
}

func TestScreenTooSmall(t *testing.T) {
	g := newGame(t, New(), "hint", 1)
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 5, Seed: 1})

	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("state = %s, want paused_small_window", g.Snapshot().State)
	}
	press(g, core.ActionUp)
	if g.Snapshot().Cursor != engine.C(2, 2) {
		t.Error("input should be ignored while the window is too small")
	}

	screen := core.NewScreen(20, 5)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected too-small message")
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, New(), "hint", 1)
	screen := core.NewScreen(80, 30)

	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"Match-3", "Moves: 0", "Board: hint", "[", "]"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	press(g, core.ActionPause)
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("expected pause overlay")
	}
}

func TestHUDCountersDoNotOverlap(t *testing.T) {
	tests := []struct {
		name  string
		board string
	}{
		{"narrow board", "hint"},
		{"wide board", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t, New(), tt.board, 1)
			screen := core.NewScreen(80, 30)
			g.Render(screen)

			row := screen.Row(1)
			moves := strings.Index(row, "Moves: 0")
			cascades := strings.Index(row, "Cascades: 0")
			if moves < 0 || cascades < 0 {
				t.Fatalf("HUD row missing counters: %q", row)
			}
			if moves+len("Moves: 0") >= cascades {
				t.Errorf("counters overlap: %q", row)
			}
		})
	}
}

func TestDrawBoardMarks(t *testing.T) {
	g := newGame(t, New(), "hint", 1)
	screen := core.NewScreen(20, 6)

	DrawBoard(screen, 0, 0, g.Engine(), map[engine.Coord]Mark{
		engine.C(0, 0): MarkHint,
		engine.C(1, 1): MarkMatch,
	})

	if screen.Get(0, 0) != '(' || screen.Get(2, 0) != ')' {
		t.Errorf("hint brackets = %q %q", screen.Get(0, 0), screen.Get(2, 0))
	}
	if screen.Get(3, 1) != '*' || screen.Get(5, 1) != '*' {
		t.Error("match marks missing")
	}
	// (0,0) holds type 0.
	if screen.Get(1, 0) != tileGlyphs[0] {
		t.Errorf("glyph = %q, want %q", screen.Get(1, 0), tileGlyphs[0])
	}
	if c := screen.GetCell(1, 0).Color; c != core.TileColor(0) {
		t.Errorf("glyph color = %v, want %v", c, core.TileColor(0))
	}
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		cell engine.Cell
		want rune
	}{
		{engine.EmptyCell(), '·'},
		{engine.Tile(2), tileGlyphs[2]},
		{engine.Cell{Type: 1, Special: engine.SpecialWrapped}, '▣'},
		{engine.Cell{Type: 0, Special: engine.SpecialColorBomb}, '✸'},
		{engine.Tile(42), '?'},
	}
	for _, tt := range tests {
		if got := Glyph(tt.cell); got != tt.want {
			t.Errorf("Glyph(%+v) = %q, want %q", tt.cell, got, tt.want)
		}
	}
}

func TestResizeKeepsBoard(t *testing.T) {
	g := newGame(t, New(), "hint", 1)
	press(g, core.ActionUp, core.ActionConfirm)
	before := g.Snapshot()

	g.Resize(20, 5)
	if g.Snapshot().State != StatePausedSmall {
		t.Error("expected small-window pause")
	}

	g.Resize(80, 30)
	after := g.Snapshot()
	if after.State != StatePlaying {
		t.Errorf("state = %s, want playing", after.State)
	}
	if !reflect.DeepEqual(before.Cells, after.Cells) || after.Selected == nil || after.Cursor != before.Cursor {
		t.Error("resize changed the game")
	}
}
