package session

import (
	"time"
)

// Config holds session manager configuration.
type Config struct {
	TTL           time.Duration `env:"SESSION_TTL" envDefault:"336h"`          // Idle timeout, two weeks
	TouchInterval time.Duration `env:"SESSION_TOUCH_INTERVAL" envDefault:"5m"` // Min time between expiry extensions of an unmodified session
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		TTL:           14 * 24 * time.Hour,
		TouchInterval: 5 * time.Minute,
	}
}

// ConfigOption is a functional option for configuring the session manager.
type ConfigOption func(*Config)

// WithTTL sets the session time-to-live.
func WithTTL(ttl time.Duration) ConfigOption {
	return func(c *Config) {
		c.TTL = ttl
	}
}

// WithTouchInterval sets the minimum time between expiry extensions of a session
// whose data did not change. Set to 0 to write on every save.
func WithTouchInterval(interval time.Duration) ConfigOption {
	return func(c *Config) {
		c.TouchInterval = interval
	}
}
