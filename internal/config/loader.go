package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the search path.
const FileName = "puzzle.yaml"

// Load loads the puzzle configuration.
// Search order: customPath -> ~/.snakepuzzle/configs/puzzle.yaml ->
// ./configs/puzzle.yaml -> embedded default -> hardcoded default.
// Only an unreadable or invalid custom path is an error.
func Load(customPath string) (PuzzleConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return PuzzleConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return PuzzleConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(FileName), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if cfg, err := parse(defaultPuzzleYAML); err == nil {
		return cfg, nil
	}
	return DefaultPuzzleConfig(), nil
}

// parse decodes data over the hardcoded defaults so that omitted keys keep
// their default values.
func parse(data []byte) (PuzzleConfig, error) {
	cfg := DefaultPuzzleConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return PuzzleConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return PuzzleConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snakepuzzle", "configs", filename)
}

// ExpandHome replaces a leading ~/ with the user's home directory.
func ExpandHome(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
