// Package pg provides the PostgreSQL backend for the catalog: pool creation with
// retry, goose migrations, a health check and transaction propagation through
// context.
//
// Connect parses PG_CONN_URL, applies the pool limits from Config and pings the
// server, retrying with exponential backoff (github.com/sethvargo/go-retry) so the
// app can start alongside its database:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//		return err
//	}
//	store := pg.NewCatalogStore(pool)
//
// Migrate runs the embedded migrations through a database/sql handle borrowed from
// the pool. Set PG_MIGRATIONS_PATH to use a directory on disk instead.
//
// # Transactions
//
// CatalogStore queries join the transaction carried by the context. InTx wraps a
// function in a transaction:
//
//	err := pg.InTx(ctx, pool, func(ctx context.Context) error {
//		_, err := catalog.Populate(ctx, store, catalog.DefaultSeed)
//		return err
//	})
//
// # Errors
//
// IsNotFoundError, IsDuplicateKeyError, IsForeignKeyViolationError and
// IsTxClosedError classify driver errors.
package pg
