package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/diogosantosua/onboarding-tools/internal/config"
	"github.com/diogosantosua/onboarding-tools/internal/release"
)

func deployCommand(args []string) error {
	if len(args) < 1 {
		printDeployUsage()
		return fmt.Errorf("no deploy action specified")
	}

	action := args[0]
	actionArgs := args[1:]

	switch action {
	case "install":
		return deployInstall(actionArgs)
	case "upgrade":
		return deployUpgrade(actionArgs)
	case "uninstall":
		return deployUninstall(actionArgs)
	case "status":
		return deployStatus(actionArgs)
	case "help", "-h", "--help":
		printDeployUsage()
		return nil
	default:
		printDeployUsage()
		return fmt.Errorf("unknown deploy action: %s", action)
	}
}

func printDeployUsage() {
	fmt.Fprintf(os.Stderr, `Install or manage the onboarding-tools Helm release

USAGE:
    onboarding-tools deploy <action> [flags]

ACTIONS:
    install     Install the chart into the cluster
    upgrade     Upgrade an existing release
    uninstall   Uninstall the release
    status      Show release and pod status

FLAGS:
    --kubeconfig string     Path to the cluster kubeconfig (default: standard resolution)
    --chart string          Chart directory (default "chart/onboarding-tools")
    --namespace string      Kubernetes namespace (default "onboarding")
    --release-name string   Helm release name (default "onboarding-tools")
    --wait                  Wait for resources to become ready (default true)
    --timeout duration      Wait timeout (default 5m)

EXAMPLES:
    # Install against an external cluster
    onboarding-tools deploy install --kubeconfig ../rigourous/kubeconfig.yaml

    # Upgrade after pushing a new image
    onboarding-tools deploy upgrade --kubeconfig ../rigourous/kubeconfig.yaml

    # Check what is running
    onboarding-tools deploy status --kubeconfig ../rigourous/kubeconfig.yaml
`)
}

type deployFlags struct {
	kubeconfig  string
	chartDir    string
	namespace   string
	releaseName string
	wait        bool
	timeout     time.Duration
	configPath  string
}

func parseDeployFlags(name string, args []string) (deployFlags, error) {
	var f deployFlags
	fs := flag.NewFlagSet("deploy "+name, flag.ExitOnError)
	fs.StringVar(&f.kubeconfig, "kubeconfig", "", "Path to the cluster kubeconfig")
	fs.StringVar(&f.chartDir, "chart", release.DefaultChartDir, "Chart directory")
	fs.StringVar(&f.namespace, "namespace", release.DefaultNamespace, "Kubernetes namespace")
	fs.StringVar(&f.releaseName, "release-name", release.DefaultReleaseName, "Helm release name")
	fs.BoolVar(&f.wait, "wait", true, "Wait for resources to become ready")
	fs.DurationVar(&f.timeout, "timeout", release.DefaultTimeout, "Wait timeout")
	fs.StringVar(&f.configPath, "config", defaultConfigPath, "Path to config file")
	fs.Usage = printDeployUsage
	if err := fs.Parse(args); err != nil {
		return f, err
	}
	return f, nil
}

func deployInstall(args []string) error {
	f, err := parseDeployFlags("install", args)
	if err != nil {
		return err
	}
	settings, err := config.Load(f.configPath)
	if err != nil {
		return err
	}

	fmt.Printf("Installing %s (namespace: %s, image tag: %s)\n",
		f.releaseName, f.namespace, settings.VersionTag())

	installer := release.NewInstaller(f.kubeconfig, f.namespace)
	installer.SetWait(f.wait)
	installer.SetTimeout(f.timeout)

	rel, err := installer.Install(f.releaseName, f.chartDir, release.Values(settings))
	if err != nil {
		return err
	}

	fmt.Printf("✓ Release %s installed (status: %s)\n", rel.Name, rel.Info.Status)
	return nil
}

func deployUpgrade(args []string) error {
	f, err := parseDeployFlags("upgrade", args)
	if err != nil {
		return err
	}
	settings, err := config.Load(f.configPath)
	if err != nil {
		return err
	}

	fmt.Printf("Upgrading %s (namespace: %s, image tag: %s)\n",
		f.releaseName, f.namespace, settings.VersionTag())

	installer := release.NewInstaller(f.kubeconfig, f.namespace)
	installer.SetWait(f.wait)
	installer.SetTimeout(f.timeout)

	rel, err := installer.Upgrade(f.releaseName, f.chartDir, release.Values(settings))
	if err != nil {
		return err
	}

	fmt.Printf("✓ Release %s upgraded (status: %s)\n", rel.Name, rel.Info.Status)
	return nil
}

func deployUninstall(args []string) error {
	f, err := parseDeployFlags("uninstall", args)
	if err != nil {
		return err
	}

	fmt.Printf("Uninstalling %s (namespace: %s)\n", f.releaseName, f.namespace)

	installer := release.NewInstaller(f.kubeconfig, f.namespace)
	if err := installer.Uninstall(f.releaseName); err != nil {
		return err
	}

	fmt.Printf("✓ Release %s uninstalled\n", f.releaseName)
	return nil
}

func deployStatus(args []string) error {
	f, err := parseDeployFlags("status", args)
	if err != nil {
		return err
	}

	installer := release.NewInstaller(f.kubeconfig, f.namespace)
	rel, err := installer.Status(f.releaseName)
	if err != nil {
		return err
	}

	fmt.Printf("Release: %s\n", rel.Name)
	fmt.Printf("Namespace: %s\n", rel.Namespace)
	fmt.Printf("Status: %s\n", rel.Info.Status)
	fmt.Printf("Revision: %d\n", rel.Version)
	fmt.Printf("Last deployed: %s\n", rel.Info.LastDeployed.Format(time.RFC3339))

	pods, err := release.PodStatuses(context.Background(), f.kubeconfig, f.namespace, f.releaseName)
	if err != nil {
		return err
	}
	fmt.Println("Pods:")
	for _, pod := range pods {
		ready := "not ready"
		if pod.Ready {
			ready = "ready"
		}
		fmt.Printf("  %s  %s (%s)\n", pod.Name, pod.Phase, ready)
	}
	return nil
}
