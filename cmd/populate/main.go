// Command populate seeds the catalog with the starter categories and pages.
// Existing rows are kept; likes are re-rolled on every run.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/rango/app/rango"
	"github.com/dmitrymomot/rango/core/config"
	"github.com/dmitrymomot/rango/core/logger"
	"github.com/dmitrymomot/rango/internal/catalog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg rango.Config
	config.MustLoad(&cfg)

	log := rango.NewLogger(cfg)

	storage, err := rango.OpenStorage(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to open storage", logger.Component("database"), logger.Error(err))
		os.Exit(1)
	}
	defer func() { _ = storage.Close() }()

	cats, err := storage.Populate(ctx, catalog.DefaultSeed, catalog.WithPopulateLogger(log))
	if err != nil {
		log.Error("Failed to populate catalog", logger.Component("populate"), logger.Error(err))
		os.Exit(1)
	}

	for _, c := range cats {
		pages, err := storage.Catalog.PagesByCategory(ctx, c.ID)
		if err != nil {
			log.Error("Failed to list pages", logger.Component("populate"), logger.Error(err))
			os.Exit(1)
		}
		for _, p := range pages {
			fmt.Printf("- %s - %s\n", c.Name, p.Title)
		}
	}
}
