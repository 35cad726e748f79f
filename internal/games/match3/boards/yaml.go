package boards

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLBoard represents the YAML structure for a board file.
type YAMLBoard struct {
	ID          string        `yaml:"id"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	ItemTypes   int           `yaml:"item_types"`
	Rows        [][]int       `yaml:"rows"`
	Specials    []YAMLSpecial `yaml:"specials,omitempty"`
}

// YAMLSpecial represents a special tile in YAML format.
type YAMLSpecial struct {
	Row  int    `yaml:"row"`
	Col  int    `yaml:"col"`
	Kind string `yaml:"kind"`
}

// ParseYAML parses a YAML board file. The result is not validated.
func ParseYAML(data []byte) (Board, error) {
	var yb YAMLBoard
	if err := yaml.Unmarshal(data, &yb); err != nil {
		return Board{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	board := Board{
		ID:          yb.ID,
		Name:        yb.Name,
		Description: yb.Description,
		ItemTypes:   yb.ItemTypes,
		Rows:        yb.Rows,
	}
	if board.Name == "" {
		board.Name = board.ID
	}
	for _, s := range yb.Specials {
		board.Specials = append(board.Specials, SpecialSpec{Row: s.Row, Col: s.Col, Kind: s.Kind})
	}

	return board, nil
}

// MarshalYAML encodes a board in the file format read by ParseYAML.
func MarshalYAML(b Board) ([]byte, error) {
	yb := YAMLBoard{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		ItemTypes:   b.ItemTypes,
		Rows:        b.Rows,
	}
	for _, s := range b.Specials {
		yb.Specials = append(yb.Specials, YAMLSpecial{Row: s.Row, Col: s.Col, Kind: s.Kind})
	}
	return yaml.Marshal(yb)
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
