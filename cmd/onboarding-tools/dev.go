package main

import (
	"context"
	"errors"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"github.com/diogosantosua/onboarding-tools/internal/config"
	"github.com/diogosantosua/onboarding-tools/internal/logging"
)

// errReload signals that the config file changed and the service should be
// restarted with fresh settings.
var errReload = errors.New("config changed")

// devCommand runs the service in the local dev loop: debug logging, pretty
// console output and a restart whenever the config file changes.
func devCommand(args []string) error {
	cmd := &Command{Name: "dev", Usage: "onboarding-tools dev [flags]"}
	fs := cmd.NewFlagSet()
	configPath := fs.String("config", defaultConfigPath, "Path to config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		err := runDevOnce(ctx, *configPath)
		switch {
		case errors.Is(err, errReload):
			log.Info().Msg("config changed, restarting")
		case err != nil:
			return err
		default:
			return nil
		}
	}
}

func runDevOnce(ctx context.Context, configPath string) error {
	settings, err := config.Load(configPath)
	if err != nil {
		return err
	}
	settings.LogLevel = "DEBUG"
	logging.Setup(settings.LogLevel, true)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	reload := make(chan struct{}, 1)
	watcher, err := watchConfig(configPath, reload)
	if err != nil {
		// No watcher (e.g. the config directory does not exist) still
		// leaves a working dev server, just without auto-reload.
		log.Warn().Err(err).Msg("config watch disabled")
	} else {
		defer watcher.Close()
	}

	done := make(chan error, 1)
	go func() { done <- runService(runCtx, settings) }()

	select {
	case <-reload:
		cancel()
		<-done
		return errReload
	case err := <-done:
		return err
	}
}

// watchConfig watches the directory containing the config file, so that
// editor rename-and-replace saves are caught as well.
func watchConfig(configPath string, reload chan<- struct{}) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(configPath)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	target := filepath.Clean(configPath)
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				select {
				case reload <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Msg("config watcher error")
			}
		}
	}()
	return watcher, nil
}
