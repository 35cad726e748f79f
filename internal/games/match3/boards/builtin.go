package boards

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sync"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

var (
	builtinOnce   sync.Once
	builtinBoards []Board
	builtinErr    error
)

// Builtin returns the boards shipped with the binary, sorted by ID.
func Builtin() ([]Board, error) {
	builtinOnce.Do(func() {
		builtinBoards, builtinErr = loadBuiltin()
	})
	if builtinErr != nil {
		return nil, builtinErr
	}
	out := make([]Board, len(builtinBoards))
	copy(out, builtinBoards)
	return out, nil
}

// BuiltinByID returns one shipped board.
func BuiltinByID(id string) (Board, error) {
	boards, err := Builtin()
	if err != nil {
		return Board{}, err
	}
	return findByID(boards, id)
}

// loadBuiltin parses every embedded file. Unlike Loader.LoadAll, a bad
// file is an error.
func loadBuiltin() ([]Board, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("reading builtin boards: %w", err)
	}

	var boards []Board
	for _, entry := range entries {
		name := path.Join("builtin", entry.Name())
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		board, err := ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		if err := board.Validate(); err != nil {
			return nil, fmt.Errorf("validating %s: %w", name, err)
		}
		boards = append(boards, board)
	}

	sortByID(boards)
	return boards, nil
}
