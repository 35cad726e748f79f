package engine

// refillFromTop fills the empty cells of each column, which gravity has
// gathered at the top, column by column.
func (e *Engine) refillFromTop() {
	for col := range e.grid.W {
		empty := 0
		for row := range e.grid.H {
			if e.grid.Get(C(row, col)).IsEmpty() {
				empty++
			}
		}
		for row := range empty {
			e.refillCell(C(row, col))
		}
	}
}

// refillSmart fills every empty cell in row-major order.
func (e *Engine) refillSmart() {
	for row := range e.grid.H {
		for col := range e.grid.W {
			c := C(row, col)
			if e.grid.Get(c).IsEmpty() {
				e.refillCell(c)
			}
		}
	}
}

// refillCell rerolls a random type for c until it does not complete a line
// of three. After maxRefillAttempts the last candidate is kept anyway, so
// the next scan may find a match that no swap produced.
func (e *Engine) refillCell(c Coord) {
	var candidate int
	for attempt := 1; ; attempt++ {
		candidate = e.rng.Intn(e.itemTypes)
		if !e.wouldCreateMatch(c, candidate) {
			break
		}
		if attempt >= e.maxRefillAttempts {
			e.forcedRefills++
			e.logger.Warn("refill forced a possible match",
				"at", c,
				"type", candidate,
				"attempts", attempt,
			)
			break
		}
	}
	e.grid.Set(c, Tile(candidate))
}

// wouldCreateMatch places t at c, checks both lines through c and restores
// the original cell.
func (e *Engine) wouldCreateMatch(c Coord, t int) bool {
	original := e.grid.Get(c)
	e.grid.Set(c, Tile(t))
	matched := e.hasLineMatchAt(c)
	e.grid.Set(c, original)
	return matched
}

// hasLineMatchAt reports whether the tile at c is part of a horizontal or
// vertical run of at least three.
func (e *Engine) hasLineMatchAt(c Coord) bool {
	t := e.grid.TypeAt(c)
	if t == Empty {
		return false
	}
	a := e.armsAt(c, t)
	return a.horizontal() >= minMatch || a.vertical() >= minMatch
}
