package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// Open opens the database described by cfg and verifies it with a ping.
// Foreign keys are enforced on every connection.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, ErrEmptyPath
	}

	db, err := sql.Open("sqlite", dsn(path, cfg))
	if err != nil {
		return nil, errors.Join(ErrFailedToOpenDB, err)
	}

	// every connection to ":memory:" is a separate database
	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 || isMemory(path) {
		maxOpen = 1
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrFailedToOpenDB, err)
	}
	return db, nil
}

// Healthcheck returns a function that pings the database.
func Healthcheck(db *sql.DB) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

func dsn(path string, cfg Config) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	params := "_pragma=foreign_keys(1)"
	if cfg.BusyTimeout > 0 {
		params += fmt.Sprintf("&_pragma=busy_timeout(%d)", cfg.BusyTimeout.Milliseconds())
	}
	if !isMemory(path) {
		params += "&_pragma=journal_mode(WAL)"
	}
	return path + sep + params
}

func isMemory(path string) bool {
	return strings.HasPrefix(path, ":memory:") || strings.Contains(path, "mode=memory")
}
