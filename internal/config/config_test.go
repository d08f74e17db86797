package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/turing/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "turing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Empty(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
store:
  driver: redis
  redis:
    addr: redis:6379
    ttl: 90s
run:
  max_steps: 500
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, config.DriverRedis, cfg.Store.Driver)
	assert.Equal(t, "redis:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 90*time.Second, cfg.Store.Redis.TTL)
	assert.Equal(t, "turing:run:", cfg.Store.Redis.Prefix, "unset keys keep defaults")
	assert.Equal(t, 500, cfg.Run.MaxSteps)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "log: [unclosed"},
		{"bad level", "log:\n  level: loud\n"},
		{"bad driver", "store:\n  driver: sqlite\n"},
		{"negative steps", "run:\n  max_steps: -1\n"},
		{"long blank", "run:\n  blank: \"__\"\n"},
		{"file without dir", "store:\n  driver: file\n  dir: \"\"\n"},
		{"short key", "store:\n  encryption:\n    key: abcd\n"},
		{"fallback without key", "store:\n  encryption:\n    fallback_keys: [" + testKey + "]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	_, err := config.Load(missing)
	assert.Error(t, err)

	cfg, err := config.LoadOptional(missing)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

const testKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestLoad_Encryption(t *testing.T) {
	path := writeConfig(t, "store:\n  encryption:\n    key: "+testKey+"\n    fallback_keys: ["+testKey+"]\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	active, fallback, err := cfg.Store.Encryption.Keys()
	require.NoError(t, err)
	assert.Len(t, active, 32)
	assert.Equal(t, byte(0x1f), active[31])
	assert.Len(t, fallback, 1)
}

func TestLoad_EncryptionKeyFromEnv(t *testing.T) {
	t.Setenv(config.EnvEncryptionKey, testKey)

	cfg, err := config.LoadOptional(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, testKey, cfg.Store.Encryption.Key)

	t.Setenv(config.EnvEncryptionKey, "not-hex")
	_, err = config.Load(writeConfig(t, "log:\n  level: info\n"))
	assert.Error(t, err)
}
