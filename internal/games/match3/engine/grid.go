package engine

// Grid is the rectangular board.
// Cells are stored in row-major order: index = row*W + col.
type Grid struct {
	W     int    // Columns
	H     int    // Rows
	Cells []Cell // Flat array of cells, length W*H
}

// NewGrid creates a grid with every cell empty.
func NewGrid(w, h int) *Grid {
	g := &Grid{
		W:     w,
		H:     h,
		Cells: make([]Cell, w*h),
	}
	for i := range g.Cells {
		g.Cells[i] = EmptyCell()
	}
	return g
}

// index converts a coordinate to a flat array index.
func (g *Grid) index(c Coord) int {
	return c.Row*g.W + c.Col
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.H && c.Col >= 0 && c.Col < g.W
}

// Get returns the cell at the given coordinate.
// Returns an empty cell if out of bounds.
func (g *Grid) Get(c Coord) Cell {
	if !g.InBounds(c) {
		return EmptyCell()
	}
	return g.Cells[g.index(c)]
}

// TypeAt returns the tile type at c, or Empty if out of bounds.
func (g *Grid) TypeAt(c Coord) int {
	return g.Get(c).Type
}

// Set writes a cell. Out-of-bounds writes are ignored.
func (g *Grid) Set(c Coord, cell Cell) {
	if g.InBounds(c) {
		g.Cells[g.index(c)] = cell.normalized()
	}
}

// SetType replaces the tile type at c, keeping its special tag unless the
// cell becomes empty.
func (g *Grid) SetType(c Coord, t int) {
	if !g.InBounds(c) {
		return
	}
	i := g.index(c)
	g.Cells[i].Type = t
	g.Cells[i] = g.Cells[i].normalized()
}

// SetEmpty clears the cell at the given coordinate.
func (g *Grid) SetEmpty(c Coord) {
	if g.InBounds(c) {
		g.Cells[g.index(c)] = EmptyCell()
	}
}

// swap exchanges the contents of two in-bounds cells.
func (g *Grid) swap(a, b Coord) {
	ia, ib := g.index(a), g.index(b)
	g.Cells[ia], g.Cells[ib] = g.Cells[ib], g.Cells[ia]
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{
		W:     g.W,
		H:     g.H,
		Cells: cells,
	}
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i, cell := range g.Cells {
		if cell != other.Cells[i] {
			return false
		}
	}
	return true
}

// Column returns the tile types of one column, top to bottom.
func (g *Grid) Column(col int) []int {
	types := make([]int, g.H)
	for row := range g.H {
		types[row] = g.TypeAt(C(row, col))
	}
	return types
}

// Rows returns the tile types as a slice of rows.
func (g *Grid) Rows() [][]int {
	rows := make([][]int, g.H)
	for row := range g.H {
		rows[row] = make([]int, g.W)
		for col := range g.W {
			rows[row][col] = g.Cells[row*g.W+col].Type
		}
	}
	return rows
}

// TypeCounts returns how many tiles of each type are on the board.
// Empty cells are not counted.
func (g *Grid) TypeCounts() map[int]int {
	counts := make(map[int]int)
	for _, cell := range g.Cells {
		if !cell.IsEmpty() {
			counts[cell.Type]++
		}
	}
	return counts
}

// EmptyCount returns the number of empty cells.
func (g *Grid) EmptyCount() int {
	n := 0
	for _, cell := range g.Cells {
		if cell.IsEmpty() {
			n++
		}
	}
	return n
}
