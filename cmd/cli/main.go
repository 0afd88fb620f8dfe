package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Clairebear8888/Microlearning/internal/buildinfo"
	"github.com/Clairebear8888/Microlearning/internal/client/cli"
	"github.com/Clairebear8888/Microlearning/internal/client/config"
	"github.com/Clairebear8888/Microlearning/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "failed to start", logging.Err(err))
		os.Exit(1)
	}

	// An interrupt cancels the running command only. At the prompt, with
	// nothing to cancel, it ends the process.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	go func() {
		for range interrupts {
			if !app.Interrupt() {
				os.Exit(130)
			}
		}
	}()

	app.Run(ctx)
}
