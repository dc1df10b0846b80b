// Package release installs the onboarding-tools chart into a Kubernetes
// cluster using the Helm action API.
package release

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"helm.sh/helm/v3/pkg/action"
	"helm.sh/helm/v3/pkg/chart/loader"
	"helm.sh/helm/v3/pkg/cli"
	"helm.sh/helm/v3/pkg/release"
)

// Defaults for the deploy target.
const (
	DefaultReleaseName = "onboarding-tools"
	DefaultNamespace   = "onboarding"
	DefaultChartDir    = "chart/onboarding-tools"
	DefaultTimeout     = 5 * time.Minute
)

// Installer drives Helm operations against one cluster and namespace.
type Installer struct {
	settings  *cli.EnvSettings
	namespace string
	timeout   time.Duration
	wait      bool
}

// NewInstaller creates an installer for the cluster reachable through the
// given kubeconfig. An empty kubeconfig falls back to the standard
// KUBECONFIG/~/.kube/config resolution.
func NewInstaller(kubeconfig, namespace string) *Installer {
	settings := cli.New()
	if kubeconfig != "" {
		settings.KubeConfig = kubeconfig
	}
	settings.SetNamespace(namespace)

	return &Installer{
		settings:  settings,
		namespace: namespace,
		timeout:   DefaultTimeout,
		wait:      true,
	}
}

// SetTimeout overrides the wait timeout for install and upgrade.
func (i *Installer) SetTimeout(timeout time.Duration) {
	i.timeout = timeout
}

// SetWait controls whether install and upgrade wait for resources to become
// ready.
func (i *Installer) SetWait(wait bool) {
	i.wait = wait
}

// Install installs the chart at chartDir as releaseName with the given
// value overrides, creating the namespace when missing.
func (i *Installer) Install(releaseName, chartDir string, values map[string]any) (*release.Release, error) {
	actionConfig, err := i.actionConfig()
	if err != nil {
		return nil, err
	}

	client := action.NewInstall(actionConfig)
	client.ReleaseName = releaseName
	client.Namespace = i.namespace
	client.CreateNamespace = true
	client.Wait = i.wait
	client.Timeout = i.timeout

	chart, err := loader.Load(chartDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart %s: %w", chartDir, err)
	}

	rel, err := client.Run(chart, values)
	if err != nil {
		return nil, fmt.Errorf("failed to install release %s: %w", releaseName, err)
	}
	return rel, nil
}

// Upgrade upgrades an existing release with the chart at chartDir.
func (i *Installer) Upgrade(releaseName, chartDir string, values map[string]any) (*release.Release, error) {
	actionConfig, err := i.actionConfig()
	if err != nil {
		return nil, err
	}

	client := action.NewUpgrade(actionConfig)
	client.Namespace = i.namespace
	client.Wait = i.wait
	client.Timeout = i.timeout

	chart, err := loader.Load(chartDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart %s: %w", chartDir, err)
	}

	rel, err := client.Run(releaseName, chart, values)
	if err != nil {
		return nil, fmt.Errorf("failed to upgrade release %s: %w", releaseName, err)
	}
	return rel, nil
}

// Uninstall removes the release from the cluster.
func (i *Installer) Uninstall(releaseName string) error {
	actionConfig, err := i.actionConfig()
	if err != nil {
		return err
	}

	client := action.NewUninstall(actionConfig)
	if _, err := client.Run(releaseName); err != nil {
		return fmt.Errorf("failed to uninstall release %s: %w", releaseName, err)
	}
	return nil
}

// Status returns the current release state.
func (i *Installer) Status(releaseName string) (*release.Release, error) {
	actionConfig, err := i.actionConfig()
	if err != nil {
		return nil, err
	}

	client := action.NewStatus(actionConfig)
	rel, err := client.Run(releaseName)
	if err != nil {
		return nil, fmt.Errorf("failed to get status of release %s: %w", releaseName, err)
	}
	return rel, nil
}

func (i *Installer) actionConfig() (*action.Configuration, error) {
	actionConfig := new(action.Configuration)
	err := actionConfig.Init(i.settings.RESTClientGetter(), i.namespace,
		os.Getenv("HELM_DRIVER"), func(format string, v ...interface{}) {
			log.Debug().Msgf(format, v...)
		})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Helm: %w", err)
	}
	return actionConfig, nil
}
