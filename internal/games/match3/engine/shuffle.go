package engine

import "fmt"

// Shuffle permutes the tile types of all non-empty cells until the board has
// at least one valid move. Empty cells and special tags stay where they are.
// Each attempt is a uniform Fisher-Yates permutation; after
// maxShuffleAttempts the last permutation is kept and ErrShuffleExhausted is
// returned. Returns the number of attempts made.
func (e *Engine) Shuffle() (int, error) {
	var filled []Coord
	var types []int
	for row := range e.grid.H {
		for col := range e.grid.W {
			c := C(row, col)
			if t := e.grid.TypeAt(c); t != Empty {
				filled = append(filled, c)
				types = append(types, t)
			}
		}
	}

	for attempt := 1; attempt <= e.maxShuffleAttempts; attempt++ {
		for i := len(types) - 1; i > 0; i-- {
			j := e.rng.Intn(i + 1)
			types[i], types[j] = types[j], types[i]
		}
		for i, c := range filled {
			e.grid.SetType(c, types[i])
		}

		if e.HasValidMoves() {
			if attempt > 1 {
				e.logger.Info("shuffle needed retries", "attempts", attempt)
			}
			return attempt, nil
		}
	}

	e.logger.Warn("shuffle gave up", "attempts", e.maxShuffleAttempts)
	return e.maxShuffleAttempts, fmt.Errorf("engine: after %d attempts: %w", e.maxShuffleAttempts, ErrShuffleExhausted)
}
