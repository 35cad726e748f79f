package boards

import (
	"fmt"

	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validation codes.
const (
	CodeMissingID      = "MISSING_ID"
	CodeEmptyBoard     = "EMPTY_BOARD"
	CodeRaggedRows     = "RAGGED_ROWS"
	CodeTypeRange      = "TYPE_RANGE"
	CodeUnknownSpecial = "UNKNOWN_SPECIAL"
	CodeSpecialBounds  = "SPECIAL_BOUNDS"
	CodeSpecialOnEmpty = "SPECIAL_ON_EMPTY"
)

// Validate checks that the board can be loaded into an engine.
// Checks:
//   - Board has an ID and at least one cell
//   - All rows have the same length
//   - Every value is engine.Empty or in [0, item_types)
//   - Specials name a known kind and sit on a tile
func (b *Board) Validate() error {
	if b.ID == "" {
		return ValidationError{Code: CodeMissingID, Message: "board has no id"}
	}
	if b.Height() == 0 || b.Width() == 0 {
		return ValidationError{Code: CodeEmptyBoard, Message: "board has no cells"}
	}

	width := b.Width()
	for row, types := range b.Rows {
		if len(types) != width {
			return ValidationError{
				Code:    CodeRaggedRows,
				Message: fmt.Sprintf("row %d has %d cells, want %d", row, len(types), width),
			}
		}
	}

	if b.ItemTypes <= 0 {
		return ValidationError{
			Code:    CodeTypeRange,
			Message: fmt.Sprintf("item_types must be positive, got %d", b.ItemTypes),
		}
	}
	for row, types := range b.Rows {
		for col, t := range types {
			if t != engine.Empty && (t < 0 || t >= b.ItemTypes) {
				return ValidationError{
					Code:    CodeTypeRange,
					Message: fmt.Sprintf("cell (%d,%d) has type %d outside [0,%d)", row, col, t, b.ItemTypes),
				}
			}
		}
	}

	for _, s := range b.Specials {
		if _, ok := engine.ParseSpecialKind(s.Kind); !ok {
			return ValidationError{
				Code:    CodeUnknownSpecial,
				Message: fmt.Sprintf("unknown special kind %q at (%d,%d)", s.Kind, s.Row, s.Col),
			}
		}
		if s.Row < 0 || s.Row >= b.Height() || s.Col < 0 || s.Col >= width {
			return ValidationError{
				Code:    CodeSpecialBounds,
				Message: fmt.Sprintf("special at (%d,%d) is off the %dx%d board", s.Row, s.Col, width, b.Height()),
			}
		}
		if b.Rows[s.Row][s.Col] == engine.Empty {
			return ValidationError{
				Code:    CodeSpecialOnEmpty,
				Message: fmt.Sprintf("special at (%d,%d) sits on an empty cell", s.Row, s.Col),
			}
		}
	}

	return nil
}
