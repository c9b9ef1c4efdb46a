package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Server.Address)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "http://localhost:5001", cfg.API.URL)
	assert.Equal(t, "/api/students", cfg.API.StudentsEndpoint)
	assert.Equal(t, "/api/campuses", cfg.API.CampusesEndpoint)
	assert.Equal(t, 100*time.Millisecond, cfg.API.RetryDelay)
	assert.False(t, cfg.RabbitMQ.Enabled)
	assert.Equal(t, "student.edited", cfg.RabbitMQ.StudentRoutingKey)
	assert.Equal(t, []string{"GET", "POST", "OPTIONS"}, cfg.CORS.AllowedMethods)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
server:
  address: ":9090"
api:
  url: "http://backend:5001"
  retry_count: 5
logging:
  level: debug
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	t.Setenv("API_URL", "http://override:8000")
	t.Setenv("RABBITMQ_ENABLED", "true")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "http://override:8000", cfg.API.URL)
	assert.Equal(t, 5, cfg.API.RetryCount)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.RabbitMQ.Enabled)
}

func TestLoadRejectsNegativeRetries(t *testing.T) {
	t.Setenv("API_RETRY_COUNT", "-1")

	_, err := Load(t.TempDir())
	assert.Error(t, err)
}
