package config

import "fmt"

// Default values applied when neither the config file nor the environment
// provides a setting. Hosts match the RIGOUROUS testbed deployment.
const (
	DefaultOpenSliceHost = "10.255.32.80"
	DefaultSOHost        = "155.54.95.79:8002"
	DefaultLogLevel      = "INFO"
	DefaultPort          = 8000
	DefaultVersion       = 2
	DefaultSubVersion    = 1
)

// Settings holds the runtime configuration for the onboarding-tools service.
//
// Every field can be overridden by an environment variable (OPENSLICE_HOST,
// SO_HOST, LOG_LEVEL, PORT, VERSION, SUB_VERSION), which is how the container
// image is configured at run time.
type Settings struct {
	// OpenSliceHost is the address of the OpenSlice instance exposing the
	// TMF APIs, without scheme. Example: "10.255.32.80" or "openslice:8080".
	OpenSliceHost string `yaml:"openslice_host"`

	// SOHost is the address of the Security Orchestrator MSPL endpoint.
	SOHost string `yaml:"so_host"`

	// LogLevel is one of ERROR, WARN, INFO, DEBUG (case-insensitive).
	LogLevel string `yaml:"log_level"`

	// Port is the HTTP listen port. The container image defaults this to
	// 8000; the local run target publishes it as 8004.
	Port int `yaml:"port"`

	// Version and SubVersion form the service version. The API is served
	// under /v{Version} and images are tagged {Version}.{SubVersion}.
	Version    int `yaml:"version"`
	SubVersion int `yaml:"sub_version"`
}

// Default returns a Settings populated with the built-in defaults.
func Default() Settings {
	return Settings{
		OpenSliceHost: DefaultOpenSliceHost,
		SOHost:        DefaultSOHost,
		LogLevel:      DefaultLogLevel,
		Port:          DefaultPort,
		Version:       DefaultVersion,
		SubVersion:    DefaultSubVersion,
	}
}

// VersionTag returns the dotted version string used both as the image tag
// and in the API path prefix, e.g. "2.1".
func (s Settings) VersionTag() string {
	return fmt.Sprintf("%d.%d", s.Version, s.SubVersion)
}

// APIPrefix returns the versioned path prefix the HTTP API is mounted
// under, e.g. "/v2".
func (s Settings) APIPrefix() string {
	return fmt.Sprintf("/v%d", s.Version)
}
