package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the default match-three configuration.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: Match3Board{
			Width:     8,
			Height:    8,
			ItemTypes: 6,
		},
		Rules: Match3Rules{
			Specials:           true,
			AutoShuffle:        true,
			MaxRefillAttempts:  100,
			MaxCascadeRounds:   100,
			MaxShuffleAttempts: 1000,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultMatch3YAML
}
