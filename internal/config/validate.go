package config

import (
	"fmt"
	"strings"
)

var knownLogLevels = map[string]struct{}{
	"ERROR": {},
	"WARN":  {},
	"INFO":  {},
	"DEBUG": {},
}

// Validate checks that the settings are internally consistent.
func (s Settings) Validate() error {
	if s.OpenSliceHost == "" {
		return fmt.Errorf("openslice_host must not be empty")
	}
	if s.SOHost == "" {
		return fmt.Errorf("so_host must not be empty")
	}
	if _, ok := knownLogLevels[strings.ToUpper(s.LogLevel)]; !ok {
		return fmt.Errorf("unknown log_level %q (expected ERROR, WARN, INFO or DEBUG)", s.LogLevel)
	}
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("port %d out of range (1-65535)", s.Port)
	}
	if s.Version < 0 || s.SubVersion < 0 {
		return fmt.Errorf("version numbers must not be negative (got %d.%d)", s.Version, s.SubVersion)
	}
	return nil
}
