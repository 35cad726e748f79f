package engine

// minMatch is the shortest run that counts as a match.
const minMatch = 3

// RunLength counts consecutive cells of itemType strictly beyond origin in
// direction d. It stops at the first mismatch, empty cell or board edge.
func (e *Engine) RunLength(origin Coord, d Dir, itemType int) int {
	if itemType == Empty {
		return 0
	}
	count := 0
	for c := origin.Step(d, 1); e.grid.InBounds(c) && e.grid.TypeAt(c) == itemType; c = c.Step(d, 1) {
		count++
	}
	return count
}

// arms holds the four run lengths around a cell.
type arms struct {
	left, right, up, down int
}

func (a arms) horizontal() int { return a.left + 1 + a.right }
func (a arms) vertical() int   { return a.up + 1 + a.down }

func (e *Engine) armsAt(c Coord, itemType int) arms {
	return arms{
		left:  e.RunLength(c, DirLeft, itemType),
		right: e.RunLength(c, DirRight, itemType),
		up:    e.RunLength(c, DirUp, itemType),
		down:  e.RunLength(c, DirDown, itemType),
	}
}

// classify applies the pattern priority: five in a line, then T and L
// shapes, then four in a line, then three.
func classify(a arms) Pattern {
	h, v := a.horizontal(), a.vertical()

	if h >= 5 || v >= 5 {
		return PatternMatch5
	}
	if h >= minMatch && v >= minMatch {
		if isTShape(a) {
			return PatternMatchT
		}
		if isLShape(a) {
			return PatternMatchL
		}
	}
	if h == 4 {
		return PatternMatch4Horizontal
	}
	if v == 4 {
		return PatternMatch4Vertical
	}
	if h >= minMatch || v >= minMatch {
		return PatternMatch3
	}
	return PatternNone
}

// isTShape: the cell sits inside one line and the other line leaves from it
// with at least two tiles.
func isTShape(a arms) bool {
	if a.left >= 1 && a.right >= 1 && (a.up >= 2 || a.down >= 2) {
		return true
	}
	return a.up >= 1 && a.down >= 1 && (a.left >= 2 || a.right >= 2)
}

// isLShape: the cell is the corner of two lines of at least three.
func isLShape(a arms) bool {
	switch {
	case a.left >= 2 && a.down >= 2:
		return true
	case a.right >= 2 && a.down >= 2:
		return true
	case a.left >= 2 && a.up >= 2:
		return true
	case a.right >= 2 && a.up >= 2:
		return true
	}
	return false
}

// DetectPatternAt classifies the shape through c and lists its cells.
// An empty cell yields PatternNone. The epicenter is always c.
func (e *Engine) DetectPatternAt(c Coord) MatchResult {
	result := MatchResult{
		Pattern:   PatternNone,
		Cells:     NewCoordSet(),
		Epicenter: c,
		ItemType:  e.grid.TypeAt(c),
	}
	if result.ItemType == Empty {
		return result
	}

	a := e.armsAt(c, result.ItemType)
	result.Pattern = classify(a)

	switch result.Pattern {
	case PatternMatch4Horizontal:
		e.addHorizontal(result.Cells, c, a)
	case PatternMatch4Vertical:
		e.addVertical(result.Cells, c, a)
	case PatternMatch3:
		if a.horizontal() >= minMatch {
			e.addHorizontal(result.Cells, c, a)
		} else {
			e.addVertical(result.Cells, c, a)
		}
	case PatternMatch5:
		if a.horizontal() >= 5 {
			e.addHorizontal(result.Cells, c, a)
		} else {
			e.addVertical(result.Cells, c, a)
		}
	case PatternMatchL, PatternMatchT:
		e.addHorizontal(result.Cells, c, a)
		e.addVertical(result.Cells, c, a)
	}

	return result
}

func (e *Engine) addHorizontal(set CoordSet, c Coord, a arms) {
	for col := c.Col - a.left; col <= c.Col+a.right; col++ {
		set.Add(C(c.Row, col))
	}
}

func (e *Engine) addVertical(set CoordSet, c Coord, a arms) {
	for row := c.Row - a.up; row <= c.Row+a.down; row++ {
		set.Add(C(row, c.Col))
	}
}

// FindAllMatches returns every cell that belongs to a horizontal or vertical
// run of three or more, without classifying shapes.
func (e *Engine) FindAllMatches() CoordSet {
	matches := NewCoordSet()
	if e.grid.W >= minMatch {
		for row := range e.grid.H {
			e.scanLine(C(row, 0), DirRight, e.grid.W, matches)
		}
	}
	if e.grid.H >= minMatch {
		for col := range e.grid.W {
			e.scanLine(C(0, col), DirDown, e.grid.H, matches)
		}
	}
	return matches
}

// scanLine walks n cells from start and records maximal runs of at least
// minMatch non-empty tiles of one type.
func (e *Engine) scanLine(start Coord, d Dir, n int, out CoordSet) {
	runStart := 0
	runType := e.grid.TypeAt(start)
	runLen := 1

	flush := func() {
		if runType != Empty && runLen >= minMatch {
			for i := runStart; i < runStart+runLen; i++ {
				out.Add(start.Step(d, i))
			}
		}
	}

	for i := 1; i < n; i++ {
		t := e.grid.TypeAt(start.Step(d, i))
		if t == runType && t != Empty {
			runLen++
			continue
		}
		flush()
		runStart = i
		runType = t
		runLen = 1
	}
	flush()
}

// FindAllMatchesWithPatterns scans the board in row-major order and returns
// one classified match per disjoint shape. Cells already claimed by an
// earlier match are skipped, so the first shape found wins overlaps.
func (e *Engine) FindAllMatchesWithPatterns() []MatchResult {
	var all []MatchResult
	claimed := NewCoordSet()

	for row := range e.grid.H {
		for col := range e.grid.W {
			c := C(row, col)
			if claimed.Has(c) {
				continue
			}
			match := e.DetectPatternAt(c)
			if match.Pattern == PatternNone {
				continue
			}
			all = append(all, match)
			claimed.Union(match.Cells)
		}
	}

	return all
}
