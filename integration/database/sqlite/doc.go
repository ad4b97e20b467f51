// Package sqlite provides an embedded SQLite backend for the catalog, built on the
// pure-Go modernc.org/sqlite driver so no cgo toolchain is needed.
//
// Open applies foreign key and busy-timeout pragmas to every connection and verifies
// the database with a ping. Migrate applies the embedded goose migrations:
//
//	db, err := sqlite.Open(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := sqlite.Migrate(ctx, db, cfg, log); err != nil {
//		return err
//	}
//	store := sqlite.NewCatalogStore(db)
//
// An in-memory database (sqlite.MemoryConfig) is limited to a single connection,
// since every connection to ":memory:" opens a separate database.
package sqlite
