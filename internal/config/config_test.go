package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Values(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultOpenSliceHost, cfg.OpenSliceHost)
	assert.Equal(t, DefaultSOHost, cfg.SOHost)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultVersion, cfg.Version)
	assert.Equal(t, DefaultSubVersion, cfg.SubVersion)
}

func TestVersionTag_MajorDotMinor(t *testing.T) {
	cfg := Settings{Version: 2, SubVersion: 1}
	assert.Equal(t, "2.1", cfg.VersionTag())
	assert.Regexp(t, `^\d+\.\d+$`, cfg.VersionTag())
}

func TestAPIPrefix(t *testing.T) {
	cfg := Settings{Version: 3}
	assert.Equal(t, "/v3", cfg.APIPrefix())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onboarding.yaml")
	data := []byte("openslice_host: openslice.local\nport: 9000\nlog_level: DEBUG\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openslice.local", cfg.OpenSliceHost)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	// untouched fields keep defaults
	assert.Equal(t, DefaultSOHost, cfg.SOHost)
	assert.Equal(t, DefaultVersion, cfg.Version)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onboarding.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not a number"), 0o600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("OPENSLICE_HOST", "10.0.0.1")
	t.Setenv("SO_HOST", "so.example:8002")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("PORT", "8004")
	t.Setenv("VERSION", "3")
	t.Setenv("SUB_VERSION", "7")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.1", cfg.OpenSliceHost)
	assert.Equal(t, "so.example:8002", cfg.SOHost)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, 8004, cfg.Port)
	assert.Equal(t, "3.7", cfg.VersionTag())
}

func TestEnvOverrides_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := Load("")
	assert.ErrorContains(t, err, "invalid PORT")
}

func TestEnvOverrides_EnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onboarding.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9000\n"), 0o600))
	t.Setenv("PORT", "8004")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8004, cfg.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{"valid defaults", func(*Settings) {}, ""},
		{"empty openslice host", func(s *Settings) { s.OpenSliceHost = "" }, "openslice_host"},
		{"empty so host", func(s *Settings) { s.SOHost = "" }, "so_host"},
		{"unknown log level", func(s *Settings) { s.LogLevel = "TRACE" }, "unknown log_level"},
		{"lowercase log level accepted", func(s *Settings) { s.LogLevel = "debug" }, ""},
		{"port too low", func(s *Settings) { s.Port = 0 }, "out of range"},
		{"port too high", func(s *Settings) { s.Port = 70000 }, "out of range"},
		{"negative version", func(s *Settings) { s.Version = -1 }, "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
