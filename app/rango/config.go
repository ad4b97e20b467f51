package rango

import (
	"github.com/dmitrymomot/rango/core/cookie"
	"github.com/dmitrymomot/rango/core/server"
	"github.com/dmitrymomot/rango/core/session"
	"github.com/dmitrymomot/rango/core/sessiontransport"
	"github.com/dmitrymomot/rango/integration/database/pg"
	"github.com/dmitrymomot/rango/integration/database/redis"
	"github.com/dmitrymomot/rango/integration/database/sqlite"
	"github.com/dmitrymomot/rango/internal/identity"
)

// Storage drivers for STORAGE_DRIVER.
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Session stores for SESSION_STORE.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Config is the full application configuration, loaded from the environment.
type Config struct {
	Server        server.Config
	Cookie        cookie.Config
	Session       session.Config
	SessionCookie sessiontransport.CookieConfig
	Identity      identity.Config
	SQLite        sqlite.Config
	PG            pg.Config
	Redis         redis.Config

	AppName       string `env:"APP_NAME" envDefault:"rango"`
	Env           string `env:"APP_ENV" envDefault:"development"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"sqlite"`
	SessionStore  string `env:"SESSION_STORE" envDefault:"memory"`
	// TopN is how many categories and pages the home page lists.
	TopN int `env:"HOME_TOP_N" envDefault:"5"`
}

// IsProduction reports whether APP_ENV is production.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
