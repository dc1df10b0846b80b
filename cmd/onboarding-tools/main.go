package main

import (
	"fmt"
	"os"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	versionInfo := VersionInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	registry := NewCommandRegistry(versionInfo)
	registerCommands(registry, versionInfo)

	if err := registry.Execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func registerCommands(r *CommandRegistry, info VersionInfo) {
	r.Register(&Command{
		Name:        "serve",
		Description: "Run the onboarding-tools HTTP API and MTD scheduler",
		Usage:       "onboarding-tools serve [flags]",
		Examples: []string{
			"onboarding-tools serve",
			"onboarding-tools serve --config onboarding.yaml",
		},
		Run: serveCommand,
	})

	r.Register(&Command{
		Name:        "dev",
		Description: "Run the service locally with auto-reload and debug logging",
		Usage:       "onboarding-tools dev [flags]",
		Examples: []string{
			"onboarding-tools dev",
			"onboarding-tools dev --config onboarding.yaml",
		},
		Run: devCommand,
	})

	r.Register(&Command{
		Name:        "build",
		Description: "Build the container image and tag it latest + <major>.<minor>",
		Usage:       "onboarding-tools build [flags]",
		Examples: []string{
			"onboarding-tools build",
			"onboarding-tools build --context .",
		},
		Run: buildCommand,
	})

	r.Register(&Command{
		Name:        "run",
		Description: "Run the built image locally on port 8004",
		Usage:       "onboarding-tools run [flags]",
		Examples: []string{
			"onboarding-tools run",
			"onboarding-tools run --openslice-host 10.255.32.80",
		},
		Run: runCommand,
	})

	r.Register(&Command{
		Name:        "push",
		Description: "Push the version and latest tags to the registry",
		Usage:       "onboarding-tools push [flags]",
		Examples: []string{
			"onboarding-tools push",
		},
		Run: pushCommand,
	})

	r.Register(&Command{
		Name:        "deploy",
		Description: "Install or manage the Helm release in a cluster",
		Usage:       "onboarding-tools deploy <action> [flags]",
		Examples: []string{
			"onboarding-tools deploy install --kubeconfig ../rigourous/kubeconfig.yaml",
			"onboarding-tools deploy status",
		},
		Run: deployCommand,
	})

	r.Register(&Command{
		Name:        "version",
		Description: "Show the resolved service version and build information",
		Usage:       "onboarding-tools version [flags]",
		Examples: []string{
			"onboarding-tools version",
			"onboarding-tools version --verbose",
		},
		Run: versionCommand(info),
	})
}
