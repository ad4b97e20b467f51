package pg

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"

	"github.com/dmitrymomot/rango/core/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies schema migrations through a database/sql handle borrowed from
// the pool, since goose does not speak pgx natively. Embedded migrations are used
// unless cfg.MigrationsPath is set.
func Migrate(ctx context.Context, pool *pgxpool.Pool, cfg Config, log *slog.Logger) error {
	if log == nil {
		log = logger.Discard()
	}

	fsys, err := migrationsFS(cfg.MigrationsPath)
	if err != nil {
		return err
	}

	table := cfg.MigrationsTable
	if table == "" {
		table = "schema_migrations"
	}
	store, err := database.NewStore(database.DialectPostgres, table)
	if err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider("", db, fsys, goose.WithStore(store))
	if err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	for _, res := range results {
		log.InfoContext(ctx, "migration applied",
			logger.Component("pg"),
			slog.Int64("version", res.Source.Version),
			logger.Duration(res.Duration),
		)
	}
	return nil
}

func migrationsFS(path string) (fs.FS, error) {
	if path == "" {
		sub, err := fs.Sub(migrations, "migrations")
		if err != nil {
			return nil, errors.Join(ErrFailedToApplyMigrations, err)
		}
		return sub, nil
	}

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, errors.Join(ErrMigrationsDirNotFound, err)
	}
	return os.DirFS(path), nil
}
