package engine

// ApplyGravity compacts every column toward the bottom. Tiles keep their
// relative order and all empty cells end up at the top of their column.
func (e *Engine) ApplyGravity() {
	g := e.grid
	for col := range g.W {
		writeRow := g.H - 1
		for row := g.H - 1; row >= 0; row-- {
			from := C(row, col)
			if g.Get(from).IsEmpty() {
				continue
			}
			if row != writeRow {
				g.Set(C(writeRow, col), g.Get(from))
				g.SetEmpty(from)
			}
			writeRow--
		}
	}
}

// ProcessCascade resolves plain matches until the board is stable:
// clear every matched cell, apply gravity, refill from the top, repeat.
// Returns the number of rounds resolved.
func (e *Engine) ProcessCascade() int {
	rounds := 0
	for {
		matches := e.FindAllMatches()
		if matches.Len() == 0 {
			break
		}
		if rounds == e.maxCascadeRounds {
			e.logger.Warn("cascade stopped at round cap", "rounds", rounds)
			break
		}
		rounds++

		for c := range matches {
			e.grid.SetEmpty(c)
		}
		e.ApplyGravity()
		e.refillFromTop()
	}
	return rounds
}

// ProcessCascadeWithSpecials resolves classified matches until the board is
// stable or the round cap is hit. Each match clears its cells except the
// epicenter, which receives the earned special tile; a plain three-match
// clears its epicenter too. Returns the number of rounds resolved.
func (e *Engine) ProcessCascadeWithSpecials() int {
	rounds := 0
	for {
		matches := e.FindAllMatchesWithPatterns()
		if len(matches) == 0 {
			break
		}
		if rounds == e.maxCascadeRounds {
			e.logger.Warn("cascade stopped at round cap", "rounds", rounds)
			break
		}
		rounds++

		for _, match := range matches {
			e.logger.Debug("match",
				"pattern", match.Pattern,
				"epicenter", match.Epicenter,
				"cells", match.Cells.Len(),
			)

			for c := range match.Cells {
				if c != match.Epicenter {
					e.grid.SetEmpty(c)
				}
			}

			e.SpawnSpecial(match)

			if match.Pattern == PatternMatch3 {
				e.grid.SetEmpty(match.Epicenter)
			}
		}

		e.ApplyGravity()
		e.refillSmart()
	}
	return rounds
}
