package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const match3File = "match3.yaml"

// LoadMatch3 loads the match-three configuration.
// Search order: customPath -> ~/.match3/configs/match3.yaml -> ./configs/match3.yaml -> embedded default
// Files found on the search path that fail to parse or validate are skipped.
// An explicit customPath must exist, parse and validate.
func LoadMatch3(customPath string) (Match3Config, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := readMatch3(customPath)
		if err != nil {
			return Match3Config{}, err
		}
		if err := cfg.Validate(); err != nil {
			return Match3Config{}, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(match3File), filepath.Join("configs", match3File)} {
		if path == "" {
			continue
		}
		if cfg, err := readMatch3(path); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	return parseMatch3(defaultMatch3YAML)
}

// readMatch3 reads and parses one YAML file. Keys missing from the file keep
// their DefaultMatch3Config values.
func readMatch3(path string) (Match3Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Match3Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg := DefaultMatch3Config()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Match3Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func parseMatch3(data []byte) (Match3Config, error) {
	cfg := DefaultMatch3Config()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultMatch3Config(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".match3", "configs", filename)
}

// ApplyMatch3Preset modifies the config based on a difficulty preset.
// Fewer tile types make matches and cascades more likely.
func ApplyMatch3Preset(cfg *Match3Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Board.Width, cfg.Board.Height = 8, 8
		cfg.Board.ItemTypes = 4
		cfg.Rules.AutoShuffle = true
	case DifficultyNormal:
		cfg.Board.Width, cfg.Board.Height = 8, 8
		cfg.Board.ItemTypes = 6
	case DifficultyHard:
		cfg.Board.Width, cfg.Board.Height = 9, 9
		cfg.Board.ItemTypes = 7
		cfg.Rules.AutoShuffle = false
	}
}
