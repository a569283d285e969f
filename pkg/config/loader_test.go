package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/swrcache/pkg/config"
)

type cacheDefaults struct {
	MaxAge  time.Duration `env:"TEST_CACHE_MAX_AGE" envDefault:"30s"`
	Workers int           `env:"TEST_CACHE_WORKERS" envDefault:"4"`
	Enabled bool          `env:"TEST_CACHE_ENABLED" envDefault:"true"`
}

type cacheOverrides struct {
	MaxAge time.Duration `env:"TEST_OVERRIDE_MAX_AGE" envDefault:"30s"`
	Keys   []string      `env:"TEST_OVERRIDE_KEYS" envSeparator:","`
}

type singletonConfig struct {
	Value string `env:"TEST_SINGLETON_VALUE"`
}

type resetConfig struct {
	Value string `env:"TEST_RESET_VALUE"`
}

type requiredConfig struct {
	Source string `env:"TEST_REQUIRED_SOURCE,required"`
}

type nestedConfig struct {
	Name  string `env:"TEST_NESTED_NAME" envDefault:"proxy"`
	Cache cacheOverrides
}

type dotenvConfig struct {
	Value string `env:"TEST_DOTENV_VALUE"`
}

func TestLoad_DefaultValues(t *testing.T) {
	os.Unsetenv("TEST_CACHE_MAX_AGE")
	os.Unsetenv("TEST_CACHE_WORKERS")
	os.Unsetenv("TEST_CACHE_ENABLED")

	var cfg cacheDefaults
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, 30*time.Second, cfg.MaxAge)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.Enabled)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("TEST_OVERRIDE_MAX_AGE", "2m")
	t.Setenv("TEST_OVERRIDE_KEYS", "/a,/b")
	t.Setenv("TEST_NESTED_NAME", "edge")

	var cfg nestedConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "edge", cfg.Name)
	assert.Equal(t, 2*time.Minute, cfg.Cache.MaxAge)
	assert.Equal(t, []string{"/a", "/b"}, cfg.Cache.Keys)
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("TEST_REQUIRED_SOURCE")

	var cfg requiredConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	assert.Panics(t, func() { config.MustLoad(&cfg) })
}

func TestLoad_CachesPerType(t *testing.T) {
	t.Setenv("TEST_SINGLETON_VALUE", "first")

	var first singletonConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("TEST_SINGLETON_VALUE", "second")

	var second singletonConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)
}

func TestReset(t *testing.T) {
	t.Setenv("TEST_RESET_VALUE", "before")

	var cfg resetConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "before", cfg.Value)

	t.Setenv("TEST_RESET_VALUE", "after")
	config.Reset()

	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "after", cfg.Value)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *cacheDefaults
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
}

func TestLoadEnv(t *testing.T) {
	os.Unsetenv("TEST_DOTENV_VALUE")
	t.Cleanup(func() { os.Unsetenv("TEST_DOTENV_VALUE") })

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_DOTENV_VALUE=from-file\n"), 0o600))

	require.NoError(t, config.LoadEnv(path))

	var cfg dotenvConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from-file", cfg.Value)

	err := config.LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
}
