package engine

// WouldMatchIfSwapped swaps a and b, checks both lines through each of them,
// and swaps back. The board is unchanged afterwards whatever the result.
// Both coordinates must be on the board.
func (e *Engine) WouldMatchIfSwapped(a, b Coord) bool {
	if !e.grid.InBounds(a) || !e.grid.InBounds(b) {
		return false
	}
	e.grid.swap(a, b)
	matched := e.hasLineMatchAt(a) || e.hasLineMatchAt(b)
	e.grid.swap(a, b)
	return matched
}

// scanMoves tests every cell against its right and down neighbors in
// row-major order and calls visit for each swap that would match.
// Scanning stops when visit returns false.
func (e *Engine) scanMoves(visit func(Move) bool) {
	for row := range e.grid.H {
		for col := range e.grid.W {
			from := C(row, col)
			if col < e.grid.W-1 {
				to := C(row, col+1)
				if e.WouldMatchIfSwapped(from, to) && !visit(Move{From: from, To: to}) {
					return
				}
			}
			if row < e.grid.H-1 {
				to := C(row+1, col)
				if e.WouldMatchIfSwapped(from, to) && !visit(Move{From: from, To: to}) {
					return
				}
			}
		}
	}
}

// HasValidMoves reports whether any adjacent swap would produce a match.
func (e *Engine) HasValidMoves() bool {
	_, ok := e.FindHint()
	return ok
}

// CountValidMoves returns the number of matching swaps. Each pair is tested
// once, as a right or down neighbor of its first cell.
func (e *Engine) CountValidMoves() int {
	count := 0
	e.scanMoves(func(m Move) bool {
		e.logger.Debug("valid move", "from", m.From, "to", m.To)
		count++
		return true
	})
	return count
}

// FindHint returns the first matching swap in scan order.
func (e *Engine) FindHint() (Move, bool) {
	var (
		hint  Move
		found bool
	)
	e.scanMoves(func(m Move) bool {
		hint = m
		found = true
		return false
	})
	return hint, found
}

// ValidMoves returns every matching swap in scan order.
func (e *Engine) ValidMoves() []Move {
	var moves []Move
	e.scanMoves(func(m Move) bool {
		moves = append(moves, m)
		return true
	})
	return moves
}

// Swap exchanges two adjacent tiles and resolves the resulting cascade.
// It returns false without changing the board if either coordinate is off
// the board, the cells are not adjacent, or the swap makes no match.
func (e *Engine) Swap(a, b Coord) bool {
	if !e.TrySwap(a, b) {
		return false
	}
	e.ProcessCascade()
	return true
}

// SwapWithSpecials is Swap resolved by the special-aware cascade.
func (e *Engine) SwapWithSpecials(a, b Coord) bool {
	if !e.TrySwap(a, b) {
		return false
	}
	e.ProcessCascadeWithSpecials()
	return true
}

// TrySwap performs the swap and keeps it only if the board then has a match.
// The match is left on the board for the caller to resolve with one of the
// cascade methods.
func (e *Engine) TrySwap(a, b Coord) bool {
	if !e.grid.InBounds(a) || !e.grid.InBounds(b) {
		return false
	}
	if !Adjacent(a, b) {
		return false
	}

	e.grid.swap(a, b)
	if e.FindAllMatches().Len() == 0 {
		e.grid.swap(a, b)
		return false
	}
	return true
}
