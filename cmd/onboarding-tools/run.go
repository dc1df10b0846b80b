package main

import (
	"context"
	"fmt"

	"github.com/docker/go-connections/nat"

	"github.com/diogosantosua/onboarding-tools/internal/config"
	"github.com/diogosantosua/onboarding-tools/internal/docker"
)

// localRunPort is the host port the container is published on by the run
// target.
const localRunPort = "8004"

// runCommand starts the built image locally with debug logging, publishing
// the API on port 8004.
func runCommand(args []string) error {
	cmd := &Command{Name: "run", Usage: "onboarding-tools run [flags]"}
	fs := cmd.NewFlagSet()
	configPath := fs.String("config", defaultConfigPath, "Path to config file")
	opensliceHost := fs.String("openslice-host", "", "OpenSlice address passed to the container (defaults to settings)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	settings, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	host := *opensliceHost
	if host == "" {
		host = settings.OpenSliceHost
	}

	client, err := docker.New("")
	if err != nil {
		return err
	}
	defer client.Close()

	env := []string{
		"OPENSLICE_HOST=" + host,
		"LOG_LEVEL=DEBUG",
		"PORT=" + localRunPort,
	}
	containerPort := nat.Port(localRunPort + "/tcp")
	ports := nat.PortMap{
		containerPort: []nat.PortBinding{{HostPort: localRunPort}},
	}

	info, err := client.RunContainer(context.Background(), "onboarding-tools",
		docker.ImageRef(docker.LatestTag), env, ports)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Container started: %s\n", info.ID[:12])
	fmt.Printf("  API: http://localhost:%s%s\n", localRunPort, settings.APIPrefix())
	return nil
}
