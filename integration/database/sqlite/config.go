package sqlite

import "time"

// Config holds SQLite connection settings.
type Config struct {
	// Path is a file path or ":memory:". Query parameters are passed to the driver.
	Path            string        `env:"SQLITE_PATH" envDefault:"rango.db"`
	MaxOpenConns    int           `env:"SQLITE_MAX_OPEN_CONNS" envDefault:"1"`
	BusyTimeout     time.Duration `env:"SQLITE_BUSY_TIMEOUT" envDefault:"5s"`
	MigrationsTable string        `env:"SQLITE_MIGRATIONS_TABLE" envDefault:"schema_migrations"`
}

// MemoryConfig returns a configuration for a private in-memory database.
func MemoryConfig() Config {
	return Config{
		Path:            ":memory:",
		MaxOpenConns:    1,
		BusyTimeout:     5 * time.Second,
		MigrationsTable: "schema_migrations",
	}
}
