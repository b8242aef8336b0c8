package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/utilkit/pkg/config"
)

type appConfig struct {
	Name    string        `env:"UTILKIT_TEST_NAME" envDefault:"utilkit"`
	Port    int           `env:"UTILKIT_TEST_PORT" envDefault:"8080"`
	Timeout time.Duration `env:"UTILKIT_TEST_TIMEOUT" envDefault:"5s"`
	Tags    []string      `env:"UTILKIT_TEST_TAGS" envSeparator:","`
}

type requiredConfig struct {
	Secret string `env:"UTILKIT_TEST_SECRET,required"`
}

func writeEnv(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config.Reset()
		var cfg appConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "utilkit", cfg.Name)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
	})

	t.Run("environment and memoisation", func(t *testing.T) {
		config.Reset()
		t.Setenv("UTILKIT_TEST_PORT", "9090")
		t.Setenv("UTILKIT_TEST_TAGS", "a,b")

		var cfg appConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, []string{"a", "b"}, cfg.Tags)

		t.Setenv("UTILKIT_TEST_PORT", "1")
		var again appConfig
		require.NoError(t, config.Load(&again))
		assert.Equal(t, 9090, again.Port, "second load returns the cached value")

		config.Reset()
		require.NoError(t, config.Load(&again))
		assert.Equal(t, 1, again.Port)
	})

	t.Run("nil pointer", func(t *testing.T) {
		assert.ErrorIs(t, config.Load[appConfig](nil), config.ErrNilPointer)
	})

	t.Run("parse error can be retried", func(t *testing.T) {
		config.Reset()
		var cfg requiredConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
		assert.Panics(t, func() { config.MustLoad(&cfg) })

		t.Setenv("UTILKIT_TEST_SECRET", "s3cret")
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "s3cret", cfg.Secret)
	})
}

func TestLoadEnv(t *testing.T) {
	base := writeEnv(t, ".env.base", "UTILKIT_ENV_A=base\nUTILKIT_ENV_B=base\n")
	override := writeEnv(t, ".env.override", "UTILKIT_ENV_B=override\nUTILKIT_ENV_C=\"quoted value\"\n")

	t.Setenv("UTILKIT_ENV_A", "")
	os.Unsetenv("UTILKIT_ENV_A")
	t.Setenv("UTILKIT_ENV_B", "")
	os.Unsetenv("UTILKIT_ENV_B")
	t.Setenv("UTILKIT_ENV_C", "")
	os.Unsetenv("UTILKIT_ENV_C")

	require.NoError(t, config.LoadEnv(base, override))
	assert.Equal(t, "base", os.Getenv("UTILKIT_ENV_A"))
	assert.Equal(t, "override", os.Getenv("UTILKIT_ENV_B"))
	assert.Equal(t, "quoted value", os.Getenv("UTILKIT_ENV_C"))

	t.Run("process environment wins", func(t *testing.T) {
		t.Setenv("UTILKIT_ENV_A", "process")
		require.NoError(t, config.LoadEnv(base))
		assert.Equal(t, "process", os.Getenv("UTILKIT_ENV_A"))
	})

	t.Run("missing file", func(t *testing.T) {
		err := config.LoadEnv(filepath.Join(t.TempDir(), "nope.env"))
		assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
		assert.Panics(t, func() { config.MustLoadEnv(filepath.Join(t.TempDir(), "nope.env")) })
	})
}
