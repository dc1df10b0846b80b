package main

import (
	"context"
	"fmt"
	"os"

	"github.com/diogosantosua/onboarding-tools/internal/config"
	"github.com/diogosantosua/onboarding-tools/internal/docker"
)

// pushCommand publishes the image under the resolved version tag and latest.
func pushCommand(args []string) error {
	cmd := &Command{Name: "push", Usage: "onboarding-tools push [flags]"}
	fs := cmd.NewFlagSet()
	configPath := fs.String("config", defaultConfigPath, "Path to config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	settings, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	auth, err := docker.RegistryAuthFromEnv(os.Getenv("DOCKER_USERNAME"), os.Getenv("DOCKER_PASSWORD"))
	if err != nil {
		return err
	}

	client, err := docker.New("")
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := context.Background()
	for _, tag := range []string{settings.VersionTag(), docker.LatestTag} {
		ref := docker.ImageRef(tag)
		fmt.Printf("Pushing %s\n", ref)
		if err := client.PushImage(ctx, ref, auth, func(line string) {
			fmt.Println(line)
		}); err != nil {
			return err
		}
		fmt.Printf("✓ Pushed %s\n", ref)
	}
	return nil
}
