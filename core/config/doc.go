// Package config fills configuration structs from the environment.
//
// The first Load reads a .env file from the working directory when one exists
// (godotenv, never overriding variables already set), then parses the struct with
// caarlos0/env. The result is cached per struct type, so every later Load of the
// same type returns the same values without touching the environment again.
//
//	type Config struct {
//		BaseURL string        `env:"IDENTITY_BASE_URL"`
//		Timeout time.Duration `env:"IDENTITY_TIMEOUT" envDefault:"5s"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg) // panics on a parse error
//
// Tests that change the environment call Reset to drop the cache.
package config
