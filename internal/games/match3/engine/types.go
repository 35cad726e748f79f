// Package engine implements the match-three rules: board state, shape
// detection, cascades, special tiles, move validation and shuffling.
// This package is UI-agnostic and deterministic for a given seed.
package engine

// Empty is the tile type of a cell that holds no tile.
const Empty = -1

// Dir represents an axis-aligned direction on the board.
type Dir uint8

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Delta returns the (dRow, dCol) offset for one step in this direction.
// Up decreases the row, Down increases it.
func (d Dir) Delta() (dRow, dCol int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirRight:
		return 0, 1
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	default:
		return 0, 0
	}
}

// SpecialKind tags a cell with an enhanced tile behavior.
type SpecialKind uint8

const (
	SpecialNone SpecialKind = iota
	SpecialStripedHorizontal
	SpecialStripedVertical
	SpecialWrapped
	SpecialColorBomb
)

// String returns the string representation of a special kind.
func (k SpecialKind) String() string {
	switch k {
	case SpecialNone:
		return "none"
	case SpecialStripedHorizontal:
		return "striped_horizontal"
	case SpecialStripedVertical:
		return "striped_vertical"
	case SpecialWrapped:
		return "wrapped"
	case SpecialColorBomb:
		return "color_bomb"
	default:
		return "unknown"
	}
}

// ParseSpecialKind converts a string to a SpecialKind.
// Returns SpecialNone and false if the string is not recognized.
func ParseSpecialKind(s string) (SpecialKind, bool) {
	switch s {
	case "none", "":
		return SpecialNone, true
	case "striped_horizontal", "striped_h":
		return SpecialStripedHorizontal, true
	case "striped_vertical", "striped_v":
		return SpecialStripedVertical, true
	case "wrapped":
		return SpecialWrapped, true
	case "color_bomb", "bomb":
		return SpecialColorBomb, true
	default:
		return SpecialNone, false
	}
}

// Pattern classifies the shape of a match around a cell.
// Values are mutually exclusive; see DetectPatternAt for the priority order.
type Pattern uint8

const (
	PatternNone Pattern = iota
	PatternMatch3
	PatternMatch4Horizontal
	PatternMatch4Vertical
	PatternMatch5
	PatternMatchL
	PatternMatchT
)

// String returns the string representation of a pattern.
func (p Pattern) String() string {
	switch p {
	case PatternNone:
		return "none"
	case PatternMatch3:
		return "match3"
	case PatternMatch4Horizontal:
		return "match4_horizontal"
	case PatternMatch4Vertical:
		return "match4_vertical"
	case PatternMatch5:
		return "match5"
	case PatternMatchL:
		return "match_l"
	case PatternMatchT:
		return "match_t"
	default:
		return "unknown"
	}
}

// Cell represents a single board cell.
type Cell struct {
	Type    int         // Tile type in [0, itemTypes), or Empty
	Special SpecialKind // Always SpecialNone when Type is Empty
}

// EmptyCell returns a cell holding no tile.
func EmptyCell() Cell {
	return Cell{Type: Empty, Special: SpecialNone}
}

// Tile returns a plain tile of the given type.
func Tile(t int) Cell {
	return Cell{Type: t}
}

// IsEmpty reports whether the cell holds no tile.
func (c Cell) IsEmpty() bool {
	return c.Type == Empty
}

// normalized enforces the empty-has-no-special invariant.
func (c Cell) normalized() Cell {
	if c.Type == Empty {
		c.Special = SpecialNone
	}
	return c
}

// MatchResult describes one classified shape on the board.
type MatchResult struct {
	Pattern   Pattern
	Cells     CoordSet // Deduplicated coordinates in the shape
	Epicenter Coord    // Where a special tile is placed, if any
	ItemType  int
}

// Move is an ordered pair of adjacent coordinates to swap.
type Move struct {
	From Coord
	To   Coord
}

// String returns the move as "(r,c)->(r,c)".
func (m Move) String() string {
	return m.From.String() + "->" + m.To.String()
}
