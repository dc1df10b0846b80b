package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads settings from an optional YAML file, then applies environment
// overrides and validates the result.
//
// A missing file is not an error: the built-in defaults are used, matching
// the behavior of the container image where configuration comes entirely
// from the environment.
func Load(path string) (Settings, error) {
	cfg := Default()

	if path != "" {
		cleanPath := filepath.Clean(path)
		data, err := os.ReadFile(cleanPath) // #nosec G304 - config path comes from the operator
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// fall through to env + defaults
		case err != nil:
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
