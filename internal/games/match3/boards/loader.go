package boards

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// Loader handles loading boards from a directory.
type Loader struct {
	Root   string
	Logger *log.Logger // Optional, reports skipped files
}

// NewLoader creates a new board loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all board files.
// Files that fail to parse or validate are skipped.
// Returns boards sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Board, error) {
	var boards []Board

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}

		board, err := l.LoadFile(path)
		if err != nil {
			if l.Logger != nil {
				l.Logger.Warn("skipping board file", "path", path, "err", err)
			}
			return nil
		}

		boards = append(boards, board)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sortByID(boards)
	return boards, nil
}

// LoadFile loads and validates a single board file.
func (l *Loader) LoadFile(path string) (Board, error) {
	return LoadFile(path)
}

// LoadByID loads a specific board by ID.
func (l *Loader) LoadByID(id string) (Board, error) {
	boards, err := l.LoadAll()
	if err != nil {
		return Board{}, err
	}
	return findByID(boards, id)
}

// LoadFile loads and validates a single board file.
func LoadFile(path string) (Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Board{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	board, err := ParseYAML(data)
	if err != nil {
		return Board{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	if err := board.Validate(); err != nil {
		return Board{}, fmt.Errorf("validating file %s: %w", path, err)
	}

	board.FilePath = path
	return board, nil
}

// Resolve returns the board named by arg: a file path when arg has a
// supported extension, otherwise a builtin board ID.
func Resolve(arg string) (Board, error) {
	if isSupportedExtension(filepath.Ext(arg)) {
		return LoadFile(arg)
	}
	return BuiltinByID(arg)
}

func isSupportedExtension(ext string) bool {
	return slices.Contains(FormatExtensions(), strings.ToLower(ext))
}

func sortByID(boards []Board) {
	sort.Slice(boards, func(i, j int) bool {
		return boards[i].ID < boards[j].ID
	})
}

func findByID(boards []Board, id string) (Board, error) {
	for _, b := range boards {
		if b.ID == id {
			return b, nil
		}
	}
	return Board{}, fmt.Errorf("board not found: %s", id)
}
