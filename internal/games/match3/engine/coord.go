package engine

import (
	"fmt"
	"sort"
)

// Coord is a board position. Row increases downward, Col to the right.
type Coord struct {
	Row int
	Col int
}

// C is a convenience constructor for Coord.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Step returns the coordinate n steps away in the given direction.
func (c Coord) Step(d Dir, n int) Coord {
	dr, dc := d.Delta()
	return Coord{Row: c.Row + dr*n, Col: c.Col + dc*n}
}

// Manhattan returns the Manhattan distance to another coordinate.
func (c Coord) Manhattan(other Coord) int {
	dr := c.Row - other.Row
	dc := c.Col - other.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// Adjacent reports whether two coordinates share an edge.
// Diagonal neighbors are not adjacent.
func Adjacent(a, b Coord) bool {
	return a.Manhattan(b) == 1
}

// CoordSet is an unordered set of coordinates.
type CoordSet map[Coord]struct{}

// NewCoordSet returns a set holding the given coordinates.
func NewCoordSet(coords ...Coord) CoordSet {
	s := make(CoordSet, len(coords))
	for _, c := range coords {
		s.Add(c)
	}
	return s
}

// Add inserts a coordinate.
func (s CoordSet) Add(c Coord) {
	s[c] = struct{}{}
}

// Has reports whether the set contains c.
func (s CoordSet) Has(c Coord) bool {
	_, ok := s[c]
	return ok
}

// Len returns the number of coordinates in the set.
func (s CoordSet) Len() int {
	return len(s)
}

// Union adds every coordinate of other to s.
func (s CoordSet) Union(other CoordSet) {
	for c := range other {
		s[c] = struct{}{}
	}
}

// Sorted returns the coordinates in row-major order.
func (s CoordSet) Sorted() []Coord {
	coords := make([]Coord, 0, len(s))
	for c := range s {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Row != coords[j].Row {
			return coords[i].Row < coords[j].Row
		}
		return coords[i].Col < coords[j].Col
	})
	return coords
}
