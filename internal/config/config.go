// Package config provides YAML-based configuration loading and difficulty
// presets for the match-three game.
package config

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

// Match3Config contains all configuration for the match-three game.
type Match3Config struct {
	Board Match3Board `yaml:"board"`
	Rules Match3Rules `yaml:"rules"`
}

// Match3Board defines the board geometry and tile palette size.
type Match3Board struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	ItemTypes int `yaml:"item_types"`
}

// Match3Rules defines how moves are resolved and the loop limits.
type Match3Rules struct {
	Specials           bool `yaml:"specials"`             // Resolve player swaps with the special-aware cascade
	AutoShuffle        bool `yaml:"auto_shuffle"`         // Reshuffle when no valid move remains
	MaxRefillAttempts  int  `yaml:"max_refill_attempts"`  // 0 = engine default
	MaxCascadeRounds   int  `yaml:"max_cascade_rounds"`   // 0 = engine default
	MaxShuffleAttempts int  `yaml:"max_shuffle_attempts"` // 0 = engine default
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the difficulty presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParsePreset converts a string to a DifficultyPreset.
func ParsePreset(s string) (DifficultyPreset, error) {
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown preset %q (want easy, normal or hard)", s)
}

// Limits for Validate. A board narrower than three in both directions can
// never hold a match.
const (
	MaxBoardSide = 32
	MinItemTypes = 2
	MaxItemTypes = 9
)

var (
	ErrBoardTooSmall = errors.New("board must be at least 3 cells wide or tall")
	ErrBoardTooLarge = errors.New("board side exceeds limit")
	ErrItemTypes     = errors.New("item_types out of range")
	ErrNegativeLimit = errors.New("loop limits must not be negative")
)

// Validate rejects values the engine or the renderer cannot work with.
func (c Match3Config) Validate() error {
	b := c.Board
	if b.Width <= 0 || b.Height <= 0 || (b.Width < 3 && b.Height < 3) {
		return fmt.Errorf("config: board %dx%d: %w", b.Width, b.Height, ErrBoardTooSmall)
	}
	if b.Width > MaxBoardSide || b.Height > MaxBoardSide {
		return fmt.Errorf("config: board %dx%d: %w", b.Width, b.Height, ErrBoardTooLarge)
	}
	if b.ItemTypes < MinItemTypes || b.ItemTypes > MaxItemTypes {
		return fmt.Errorf("config: item_types %d: %w", b.ItemTypes, ErrItemTypes)
	}
	r := c.Rules
	if r.MaxRefillAttempts < 0 || r.MaxCascadeRounds < 0 || r.MaxShuffleAttempts < 0 {
		return fmt.Errorf("config: rules: %w", ErrNegativeLimit)
	}
	return nil
}

// EngineConfig converts the configuration to engine construction parameters.
func (c Match3Config) EngineConfig(seed int64, logger *log.Logger) engine.Config {
	return engine.Config{
		Width:              c.Board.Width,
		Height:             c.Board.Height,
		ItemTypes:          c.Board.ItemTypes,
		Seed:               seed,
		Logger:             logger,
		MaxRefillAttempts:  c.Rules.MaxRefillAttempts,
		MaxCascadeRounds:   c.Rules.MaxCascadeRounds,
		MaxShuffleAttempts: c.Rules.MaxShuffleAttempts,
	}
}
