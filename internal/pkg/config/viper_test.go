package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
app:
  server:
    http:
      address: ":9090"
  maintenance:
    endpoints:
      - /api/v1/users/export
      - " "
instrument:
  mask_fields: "email, birth,"
  sample_ratio: 0.25
registration:
  recent_size: 10
  idempotency_ttl: 3600
messaging:
  kafka:
    write_timeout: 1500ms
storage:
  tags: "env:dev,team:growth"
`

func TestNewViperFromBytes(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte(sample))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cfg.Close() })

	assert.Equal(t, ":9090", cfg.GetString("app.server.http.address"))
	assert.Equal(t, 10, cfg.GetInt("registration.recent_size"))
	assert.Equal(t, 0.25, cfg.GetFloat64("instrument.sample_ratio"))
	assert.Equal(t, time.Hour, cfg.GetSecond("registration.idempotency_ttl"))
	assert.Equal(t, 1500*time.Millisecond, cfg.GetDuration("messaging.kafka.write_timeout"))
	assert.Equal(t, []string{"/api/v1/users/export"}, cfg.GetArray("app.maintenance.endpoints"))
	assert.Equal(t, []string{"email", "birth"}, cfg.GetArray("instrument.mask_fields"))
	assert.Nil(t, cfg.GetArray("absent.key"))
	assert.Equal(t, map[string]string{"env": "dev", "team": "growth"}, cfg.GetMap("storage.tags"))

	t.Run("defaults", func(t *testing.T) {
		assert.Equal(t, "memory", cfg.GetString("store.driver"))
		assert.Equal(t, 100, cfg.GetInt("registration.max_recent_size"))
		assert.Equal(t, 15*time.Second, cfg.GetDuration("app.server.http.shutdown_timeout"))
		assert.True(t, cfg.IsSet("registration.recent_size"))
		assert.False(t, cfg.IsSet("redis.url"))
	})
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("USERLAB_STORE_DRIVER", "redis")

	cfg, err := NewViperFromBytes("yaml", []byte(sample))
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.GetString("store.driver"))
}

func TestNewViper(t *testing.T) {
	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

		cfg, err := NewViper(path)
		require.NoError(t, err)
		assert.Equal(t, 10, cfg.GetInt("registration.recent_size"))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewViper(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("missing type", func(t *testing.T) {
		_, err := NewViperFromBytes(" ", nil)
		assert.ErrorIs(t, err, ErrConfigType)
	})
}
