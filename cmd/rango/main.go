package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/rango/app/rango"
	"github.com/dmitrymomot/rango/core/config"
	"github.com/dmitrymomot/rango/core/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg rango.Config
	config.MustLoad(&cfg)

	log := rango.NewLogger(cfg)

	app, err := rango.NewApp(ctx, rango.WithConfig(cfg), rango.WithLogger(log))
	if err != nil {
		log.Error("Failed to initialize application", logger.Component("app"), logger.Error(err))
		os.Exit(1)
	}

	runErr := app.Run(ctx)
	if err := app.Close(); err != nil {
		log.Error("Failed to close connections", logger.Component("app"), logger.Error(err))
	}
	if runErr != nil {
		log.Error("Server stopped with error", logger.Component("app"), logger.Error(runErr))
		os.Exit(1)
	}
}
