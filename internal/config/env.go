package config

import (
	"fmt"
	"os"
	"strconv"
)

// applyEnvOverrides overrides config values with environment variables if
// set. Returns an error for invalid values to fail fast at startup.
func applyEnvOverrides(cfg *Settings) error {
	if host := os.Getenv("OPENSLICE_HOST"); host != "" {
		cfg.OpenSliceHost = host
	}
	if host := os.Getenv("SO_HOST"); host != "" {
		cfg.SOHost = host
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Port = p
	}
	if version := os.Getenv("VERSION"); version != "" {
		v, err := strconv.Atoi(version)
		if err != nil {
			return fmt.Errorf("invalid VERSION %q: %w", version, err)
		}
		cfg.Version = v
	}
	if sub := os.Getenv("SUB_VERSION"); sub != "" {
		v, err := strconv.Atoi(sub)
		if err != nil {
			return fmt.Errorf("invalid SUB_VERSION %q: %w", sub, err)
		}
		cfg.SubVersion = v
	}
	return nil
}
