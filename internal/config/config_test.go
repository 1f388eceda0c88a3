package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SEATWISE_REDIS_ADDR", "localhost:6379")

	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
  rate_limit_rps: 20
database:
  path: ` + filepath.Join(dir, "data", "app.db") + `
redis:
  address: ${SEATWISE_REDIS_ADDR}
monitoring:
  prometheus_enabled: true
  prometheus_port: 9100
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.True(t, cfg.Monitoring.PrometheusEnabled)

	// The database directory is created on load.
	_, err = os.Stat(filepath.Join(dir, "data"))
	assert.NoError(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  path: "+filepath.Join(dir, "x.db")+"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "30s", cfg.RequestTimeout().String())
	assert.Equal(t, "10s", cfg.GuardTTL().String())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
