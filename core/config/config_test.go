package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rango/core/config"
)

type testConfig struct {
	Name    string        `env:"RANGO_TEST_NAME" envDefault:"rango"`
	Timeout time.Duration `env:"RANGO_TEST_TIMEOUT" envDefault:"5s"`
}

type requiredConfig struct {
	Secret string `env:"RANGO_TEST_REQUIRED_SECRET,required"`
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		config.Reset()
		t.Cleanup(config.Reset)

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "rango", cfg.Name)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
	})

	t.Run("reads environment and caches per type", func(t *testing.T) {
		config.Reset()
		t.Cleanup(config.Reset)
		t.Setenv("RANGO_TEST_NAME", "from-env")

		var first testConfig
		require.NoError(t, config.Load(&first))
		assert.Equal(t, "from-env", first.Name)

		t.Setenv("RANGO_TEST_NAME", "changed")

		var second testConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "from-env", second.Name, "second load must come from cache")
	})

	t.Run("fails on missing required variable", func(t *testing.T) {
		config.Reset()
		t.Cleanup(config.Reset)

		var cfg requiredConfig
		err := config.Load(&cfg)
		assert.Error(t, err)
	})

	t.Run("rejects nil target", func(t *testing.T) {
		var cfg *testConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilTarget)
	})

	t.Run("must load panics on error", func(t *testing.T) {
		config.Reset()
		t.Cleanup(config.Reset)

		assert.Panics(t, func() {
			var cfg requiredConfig
			config.MustLoad(&cfg)
		})
	})
}
