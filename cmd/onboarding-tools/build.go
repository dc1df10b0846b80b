package main

import (
	"context"
	"fmt"

	"github.com/diogosantosua/onboarding-tools/internal/config"
	"github.com/diogosantosua/onboarding-tools/internal/docker"
)

// buildCommand builds the container image from the repository Dockerfile and
// tags it with both the resolved version and latest.
func buildCommand(args []string) error {
	cmd := &Command{Name: "build", Usage: "onboarding-tools build [flags]"}
	fs := cmd.NewFlagSet()
	configPath := fs.String("config", defaultConfigPath, "Path to config file")
	contextDir := fs.String("context", ".", "Docker build context directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	settings, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	client, err := docker.New("")
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx); err != nil {
		return err
	}

	tags := []string{
		docker.ImageRef(docker.LatestTag),
		docker.ImageRef(settings.VersionTag()),
	}
	fmt.Printf("Building %s (tags: %s, %s)\n", docker.Repository, docker.LatestTag, settings.VersionTag())

	if err := client.BuildImage(ctx, *contextDir, tags, nil, func(line string) {
		fmt.Println(line)
	}); err != nil {
		return err
	}

	fmt.Printf("✓ Image built: %s, %s\n", tags[0], tags[1])
	return nil
}
