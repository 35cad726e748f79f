package match3

import (
	"fmt"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

const (
	cellWidth = 3 // Marker, glyph, marker
	hudHeight = 3
	minWidth  = 40
)

// Glyphs per tile type, so boards stay readable without color.
var tileGlyphs = []rune{'●', '▲', '■', '◆', '★', '♥', '♣', '♠', '✚'}

var specialGlyphs = map[engine.SpecialKind]rune{
	engine.SpecialStripedHorizontal: '═',
	engine.SpecialStripedVertical:   '║',
	engine.SpecialWrapped:           '▣',
	engine.SpecialColorBomb:         '✸',
}

// Mark highlights a cell on the board.
type Mark uint8

const (
	MarkNone Mark = iota
	MarkCursor
	MarkSelected
	MarkCursorSelected
	MarkHint
	MarkMatch
)

// brackets returns the runes drawn on either side of a marked cell.
func (m Mark) brackets() (left, right rune, c core.Color) {
	switch m {
	case MarkCursor:
		return '[', ']', core.ColorBrightWhite
	case MarkSelected:
		return '<', '>', core.ColorBrightYellow
	case MarkCursorSelected:
		return '«', '»', core.ColorBrightYellow
	case MarkHint:
		return '(', ')', core.ColorBrightCyan
	case MarkMatch:
		return '*', '*', core.ColorBrightWhite
	default:
		return ' ', ' ', core.ColorDefault
	}
}

// Glyph returns the rune drawn for a cell.
func Glyph(cell engine.Cell) rune {
	if cell.IsEmpty() {
		return '·'
	}
	if r, ok := specialGlyphs[cell.Special]; ok {
		return r
	}
	if cell.Type < len(tileGlyphs) {
		return tileGlyphs[cell.Type]
	}
	return '?'
}

// BoardSize returns the screen area DrawBoard covers for an engine.
func BoardSize(e *engine.Engine) (w, h int) {
	return e.Width() * cellWidth, e.Height()
}

// DrawBoard draws the engine's grid with its top-left corner at (x, y).
// Cells present in marks get bracketed.
func DrawBoard(dst *core.Screen, x, y int, e *engine.Engine, marks map[engine.Coord]Mark) {
	for row := range e.Height() {
		for col := range e.Width() {
			c := engine.C(row, col)
			cell := e.Cell(c)
			px := x + col*cellWidth
			py := y + row

			color := core.TileColor(cell.Type)
			if cell.IsEmpty() {
				color = core.ColorGray
			}
			dst.SetColored(px+1, py, Glyph(cell), color)

			if m := marks[c]; m != MarkNone {
				l, r, mc := m.brackets()
				dst.SetColored(px, py, l, mc)
				dst.SetColored(px+2, py, r, mc)
			}
		}
	}
}

// layoutSize returns the minimum screen size for the current board.
func (g *Game) layoutSize() (w, h int) {
	bw, bh := BoardSize(g.eng)
	return core.Max(bw+2, minWidth), hudHeight + 1 + bh + 2 + 1
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	bw, bh := BoardSize(g.eng)
	frame := core.NewRect((g.screenW-bw-2)/2, hudHeight+1, bw+2, bh+2)

	g.renderHUD(dst, frame)

	dst.DrawBox(frame)
	DrawBoard(dst, frame.X+1, frame.Y+1, g.eng, g.marks())

	if g.message != "" {
		msgX := frame.X + (frame.W-len([]rune(g.message)))/2
		dst.DrawTextColored(core.Max(msgX, 0), frame.Bottom(), g.message, core.ColorBrightYellow)
	}

	g.renderOverlays(dst, frame)
}

// marks collects the cursor, selection and hint highlights.
func (g *Game) marks() map[engine.Coord]Mark {
	marks := make(map[engine.Coord]Mark, 3)
	if g.showHint {
		marks[g.hint.From] = MarkHint
		marks[g.hint.To] = MarkHint
	}
	if g.hasSelection {
		marks[g.selected] = MarkSelected
	}
	if g.hasSelection && g.selected == g.cursor {
		marks[g.cursor] = MarkCursorSelected
	} else {
		marks[g.cursor] = MarkCursor
	}
	return marks
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")

	w, h := g.layoutSize()
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", w, h))
}

// renderHUD draws the title and counters above the board.
func (g *Game) renderHUD(dst *core.Screen, frame core.Rect) {
	dst.DrawTextCentered(0, g.Title())

	moves := fmt.Sprintf("Moves: %d", g.moves)
	info := fmt.Sprintf("Cascades: %d", g.cascades)
	if infoX := frame.Right() - len(info); frame.X+len(moves)+1 <= infoX {
		dst.DrawText(frame.X, 1, moves)
		dst.DrawText(infoX, 1, info)
	} else {
		// Narrow boards share one centered line.
		dst.DrawTextCentered(1, moves+"  "+info)
	}

	board := "Random board"
	if g.boardID != "" {
		board = "Board: " + g.boardID
	}
	if g.shuffles > 0 {
		board += fmt.Sprintf("  Shuffles: %d", g.shuffles)
	}
	dst.DrawTextCentered(2, board)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, frame core.Rect) {
	centerX := frame.X + frame.W/2
	centerY := frame.Y + frame.H/2

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if g.deadlocked {
		g.drawOverlay(dst, centerX, centerY, "NO MOVES LEFT", "X: shuffle  R: restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, len(line))
	}

	box := core.NewRect(centerX-(maxLen+4)/2, centerY-(len(lines)+2)/2, maxLen+4, len(lines)+2)

	// Clear area behind overlay
	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dst.Set(x, y, ' ')
		}
	}

	dst.DrawBox(box)
	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Enter/Space: Select | H: Hint | X: Shuffle | P: Pause | R: Restart | Q: Quit"
}
