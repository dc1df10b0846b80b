package main

import (
	"fmt"

	"github.com/diogosantosua/onboarding-tools/internal/config"
)

// versionCommand prints the service version resolved from settings (the tag
// images are published under) and, verbosely, the binary build info.
func versionCommand(info VersionInfo) func(args []string) error {
	return func(args []string) error {
		cmd := &Command{Name: "version", Usage: "onboarding-tools version [flags]"}
		fs := cmd.NewFlagSet()
		configPath := fs.String("config", defaultConfigPath, "Path to config file")
		verbose := fs.Bool("verbose", false, "Also print binary build information")
		if err := fs.Parse(args); err != nil {
			return err
		}

		settings, err := config.Load(*configPath)
		if err != nil {
			return err
		}

		fmt.Println(settings.VersionTag())
		if *verbose {
			fmt.Printf("  binary:  %s\n", info.Version)
			fmt.Printf("  commit:  %s\n", info.Commit)
			fmt.Printf("  built:   %s\n", info.Date)
		}
		return nil
	}
}
