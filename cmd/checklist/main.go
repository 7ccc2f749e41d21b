// Package main is the entry point for the checklist CLI.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"checklist/internal/backend/googletasks"
	"checklist/internal/cli"
	"checklist/internal/commands"
	"checklist/internal/config"
	"checklist/internal/service"
	"checklist/internal/store"
	"checklist/internal/tasklist"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// The checklist lives in a preferences file next to config.yaml
	stores := func(cfg *config.Config, logger *slog.Logger) (tasklist.Store, error) {
		prefs := store.NewPrefs(cfg.TasksPath(), cfg.Format())
		return store.NewTaskStore(prefs, logger), nil
	}

	// Create service factory
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return googletasks.New(ctx, cfg)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, stores, factory)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
