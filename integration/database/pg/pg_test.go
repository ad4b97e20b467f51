package pg_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rango/integration/database/pg"
	"github.com/dmitrymomot/rango/internal/catalog"
)

func testConfig(t *testing.T) pg.Config {
	t.Helper()

	url := os.Getenv("PG_CONN_URL")
	if url == "" {
		t.Skip("PG_CONN_URL is not set")
	}
	return pg.Config{
		ConnectionString: url,
		MaxOpenConns:     4,
		MaxIdleConns:     1,
		RetryAttempts:    2,
		RetryInterval:    100 * time.Millisecond,
		MigrationsTable:  "schema_migrations",
	}
}

func TestConnect(t *testing.T) {
	t.Parallel()

	t.Run("empty connection string", func(t *testing.T) {
		t.Parallel()

		_, err := pg.Connect(context.Background(), pg.Config{})
		assert.ErrorIs(t, err, pg.ErrEmptyConnectionString)
	})

	t.Run("invalid connection string", func(t *testing.T) {
		t.Parallel()

		_, err := pg.Connect(context.Background(), pg.Config{ConnectionString: "postgres://%zz"})
		assert.ErrorIs(t, err, pg.ErrFailedToParseDBConfig)
	})

	t.Run("missing migrations dir", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(t)
		ctx := context.Background()

		pool, err := pg.Connect(ctx, cfg)
		require.NoError(t, err)
		defer pool.Close()

		cfg.MigrationsPath = "/does/not/exist"
		assert.ErrorIs(t, pg.Migrate(ctx, pool, cfg, nil), pg.ErrMigrationsDirNotFound)
	})
}

func TestCatalogStore(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	pool, err := pg.Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, pg.Migrate(ctx, pool, cfg, nil))
	require.NoError(t, pg.Healthcheck(pool)(ctx))

	_, err = pool.Exec(ctx, `TRUNCATE pages, categories RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	store := pg.NewCatalogStore(pool)

	t.Run("populate in transaction", func(t *testing.T) {
		err := pg.InTx(ctx, pool, func(ctx context.Context) error {
			_, err := catalog.Populate(ctx, store, catalog.DefaultSeed)
			return err
		})
		require.NoError(t, err)

		top, err := store.TopPages(ctx, 5)
		require.NoError(t, err)
		require.Len(t, top, 5)
		assert.Equal(t, "Flask", top[0].Title)
	})

	t.Run("rollback on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := pg.InTx(ctx, pool, func(ctx context.Context) error {
			if _, err := store.GetOrCreateCategory(ctx, "Rolled Back"); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		_, err = store.CategoryBySlug(ctx, "rolled-back")
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})

	t.Run("slug collision", func(t *testing.T) {
		_, err := store.GetOrCreateCategory(ctx, "python")
		assert.ErrorIs(t, err, catalog.ErrDuplicateSlug)
	})

	t.Run("page in missing category", func(t *testing.T) {
		_, err := store.GetOrCreatePage(ctx, 999999, "Orphan")
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})

	t.Run("pages by category", func(t *testing.T) {
		c, err := store.CategoryBySlug(ctx, "other-frameworks")
		require.NoError(t, err)

		pages, err := store.PagesByCategory(ctx, c.ID)
		require.NoError(t, err)
		require.Len(t, pages, 2)
		assert.Equal(t, "Flask", pages[0].Title)
	})
}
