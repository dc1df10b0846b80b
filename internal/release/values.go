package release

import "github.com/diogosantosua/onboarding-tools/internal/config"

// Values builds the chart value overrides for a deployment: the image tag is
// pinned to the resolved version and the service settings are passed through
// to the container environment.
func Values(settings config.Settings) map[string]any {
	return map[string]any{
		"image": map[string]any{
			"tag": settings.VersionTag(),
		},
		"env": map[string]any{
			"opensliceHost": settings.OpenSliceHost,
			"soHost":        settings.SOHost,
			"logLevel":      settings.LogLevel,
			"port":          settings.Port,
		},
	}
}
