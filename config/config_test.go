package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filecab/filecab/internal/util"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Equal(t, util.InfoLevel, cfg.LogLvl)
	assert.Equal(t, DefaultAllowedOrigins, cfg.AllowedOrigins)
	assert.Equal(t, "", cfg.SeedPath)
	assert.Equal(t, DefaultMaxSearchResults, cfg.MaxSearchResults)
	assert.Equal(t, DefaultShutdownTimeout, cfg.ShutdownTimeout)
}

func TestConfig_Merge(t *testing.T) {
	t.Run("nil fields keep existing values", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.Merge(&ConfigOverride{})
		assert.Equal(t, NewDefaultConfig(), cfg)
	})

	t.Run("set fields override", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.Merge(&ConfigOverride{
			Addr:             util.Pointer(":9999"),
			LogLvl:           util.Pointer(util.DebugLevel),
			AllowedOrigins:   []string{"https://example.com"},
			SeedPath:         util.Pointer("seed.json"),
			MaxSearchResults: util.Pointer(50),
			ShutdownTimeout:  util.Pointer(3),
		})

		assert.Equal(t, ":9999", cfg.Addr)
		assert.Equal(t, util.DebugLevel, cfg.LogLvl)
		assert.Equal(t, []string{"https://example.com"}, cfg.AllowedOrigins)
		assert.Equal(t, "seed.json", cfg.SeedPath)
		assert.Equal(t, 50, cfg.MaxSearchResults)
		assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	})

	t.Run("zero values are honored when set", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.MaxSearchResults = 100
		cfg.Merge(&ConfigOverride{MaxSearchResults: util.Pointer(0)})
		assert.Equal(t, 0, cfg.MaxSearchResults)
	})
}

func TestNewConfig(t *testing.T) {
	assert.Equal(t, NewDefaultConfig(), NewConfig(nil))

	cfg := NewConfig(&ConfigOverride{Addr: util.Pointer(":7777")})
	assert.Equal(t, ":7777", cfg.Addr)
	assert.Equal(t, DefaultShutdownTimeout, cfg.ShutdownTimeout)
}

func TestLoadConfigOverrideFile(t *testing.T) {
	writeFile := func(t *testing.T, name, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("yaml", func(t *testing.T) {
		path := writeFile(t, "cfg.yaml", "addr: \":9090\"\nmax_search_results: 25\n")

		override, err := LoadConfigOverrideFile(path)
		require.NoError(t, err)
		require.NotNil(t, override.Addr)
		assert.Equal(t, ":9090", *override.Addr)
		require.NotNil(t, override.MaxSearchResults)
		assert.Equal(t, 25, *override.MaxSearchResults)
		assert.Nil(t, override.SeedPath)
	})

	t.Run("json", func(t *testing.T) {
		path := writeFile(t, "cfg.json", `{"addr": ":6060", "allowed_origins": ["https://a.example"]}`)

		override, err := LoadConfigOverrideFile(path)
		require.NoError(t, err)
		require.NotNil(t, override.Addr)
		assert.Equal(t, ":6060", *override.Addr)
		assert.Equal(t, []string{"https://a.example"}, override.AllowedOrigins)
	})

	t.Run("unknown extension", func(t *testing.T) {
		path := writeFile(t, "cfg.toml", "addr = ':1'")
		_, err := LoadConfigOverrideFile(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfigOverrideFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeFile(t, "bad.yaml", "addr: [unclosed")
		_, err := LoadConfigOverrideFile(path)
		assert.Error(t, err)
	})
}

func TestNewConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":4444\"\nshutdown_timeout: 5\n"), 0o644))

	cfg, err := NewConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":4444", cfg.Addr)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	// Untouched fields keep their defaults
	assert.Equal(t, DefaultAllowedOrigins, cfg.AllowedOrigins)
}
