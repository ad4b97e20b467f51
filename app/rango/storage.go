package rango

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/rango/integration/database/pg"
	"github.com/dmitrymomot/rango/integration/database/sqlite"
	"github.com/dmitrymomot/rango/internal/catalog"
)

// ErrUnknownStorageDriver is returned for an unsupported STORAGE_DRIVER value.
var ErrUnknownStorageDriver = errors.New("unknown storage driver")

// Storage is an opened and migrated catalog backend.
type Storage struct {
	Catalog catalog.Repository
	// Health pings the backend.
	Health func(context.Context) error

	inTx  func(ctx context.Context, fn func(ctx context.Context) error) error
	close func() error
}

// OpenStorage opens the backend selected by cfg.StorageDriver and applies migrations.
func OpenStorage(ctx context.Context, cfg Config, log *slog.Logger) (*Storage, error) {
	switch cfg.StorageDriver {
	case StorageSQLite, "":
		db, err := sqlite.Open(ctx, cfg.SQLite)
		if err != nil {
			return nil, err
		}
		if err := sqlite.Migrate(ctx, db, cfg.SQLite, log); err != nil {
			_ = db.Close()
			return nil, err
		}
		return newSQLiteStorage(db), nil

	case StoragePostgres:
		pool, err := pg.Connect(ctx, cfg.PG)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(ctx, pool, cfg.PG, log); err != nil {
			pool.Close()
			return nil, err
		}
		return newPostgresStorage(pool), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStorageDriver, cfg.StorageDriver)
	}
}

func newSQLiteStorage(db *sql.DB) *Storage {
	return &Storage{
		Catalog: sqlite.NewCatalogStore(db),
		Health:  sqlite.Healthcheck(db),
		close:   db.Close,
	}
}

func newPostgresStorage(pool *pgxpool.Pool) *Storage {
	return &Storage{
		Catalog: pg.NewCatalogStore(pool),
		Health:  pg.Healthcheck(pool),
		inTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return pg.InTx(ctx, pool, fn)
		},
		close: func() error {
			pool.Close()
			return nil
		},
	}
}

// Populate seeds the catalog, inside a transaction when the backend supports one.
func (s *Storage) Populate(ctx context.Context, seed []catalog.SeedCategory, opts ...catalog.PopulateOption) ([]catalog.Category, error) {
	if s.inTx == nil {
		return catalog.Populate(ctx, s.Catalog, seed, opts...)
	}

	var cats []catalog.Category
	err := s.inTx(ctx, func(ctx context.Context) error {
		var err error
		cats, err = catalog.Populate(ctx, s.Catalog, seed, opts...)
		return err
	})
	return cats, err
}

// Close releases the backend connections.
func (s *Storage) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}
