package main

import (
	"context"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/diogosantosua/onboarding-tools/internal/config"
	"github.com/diogosantosua/onboarding-tools/internal/logging"
	"github.com/diogosantosua/onboarding-tools/internal/mtd"
	"github.com/diogosantosua/onboarding-tools/internal/orchestrator"
	"github.com/diogosantosua/onboarding-tools/internal/server"
	"github.com/diogosantosua/onboarding-tools/internal/tmf"
)

const defaultConfigPath = "onboarding.yaml"

func serveCommand(args []string) error {
	cmd := &Command{Name: "serve", Usage: "onboarding-tools serve [flags]"}
	fs := cmd.NewFlagSet()
	configPath := fs.String("config", defaultConfigPath, "Path to config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	settings, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logging.Setup(settings.LogLevel, false)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return runService(ctx, settings)
}

// runService starts the HTTP API and the MTD scheduler and blocks until the
// context is cancelled. Shared by serve and dev.
func runService(ctx context.Context, settings config.Settings) error {
	openslice := tmf.NewClient(settings.OpenSliceHost)
	so := orchestrator.NewClient(settings.SOHost)

	srv := server.New(settings, openslice, so)
	scheduler := mtd.NewScheduler(openslice)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		scheduler.Run(gctx)
		return nil
	})
	g.Go(func() error {
		return srv.ListenAndServe(gctx)
	})
	return g.Wait()
}
