package infrastructure

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowConfigDefaults(t *testing.T) {
	config, err := WorkflowConfigProvider()
	require.NoError(t, err)
	assert.Equal(t, time.Second, config.TimeUnit)
	assert.Equal(t, "en", config.Locale)
	assert.Equal(t, 64, config.EventQueueSize)
	assert.Empty(t, config.LocalesPath)
}

func TestWorkflowConfigFromEnv(t *testing.T) {
	t.Setenv("LANDING_TIME_UNIT", "250ms")
	t.Setenv("LANDING_LOCALE", "fr")
	t.Setenv("LANDING_EVENT_QUEUE_SIZE", "8")

	config, err := WorkflowConfigProvider()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, config.TimeUnit)
	assert.Equal(t, "fr", config.Locale)
	assert.Equal(t, 8, config.EventQueueSize)
}

func TestWorkflowConfigRejectsZeroUnit(t *testing.T) {
	t.Setenv("LANDING_TIME_UNIT", "0s")
	_, err := WorkflowConfigProvider()
	assert.Error(t, err)
}

func TestServiceConfig(t *testing.T) {
	t.Setenv("SERVICE_LISTEN_ADDRESS", ":9157")
	config, err := ServiceConfigProvider()
	require.NoError(t, err)
	assert.Equal(t, ":9157", config.ListenAddress)
	assert.Equal(t, "http", config.Protocol)
	assert.Equal(t, "debug", config.LogLevel)

	t.Setenv("SERVICE_SSL_CERT_FILE", "cert.pem")
	_, err = ServiceConfigProvider()
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LANDING_LOCALE=fr\nLANDING_EVENT_QUEUE_SIZE=16\n"), 0o600))
	t.Setenv("LANDING_EVENT_QUEUE_SIZE", "32")
	t.Setenv("LANDING_LOCALE", "")
	os.Unsetenv("LANDING_LOCALE")

	require.NoError(t, LoadDotEnv(path))
	config, err := WorkflowConfigProvider()
	require.NoError(t, err)
	assert.Equal(t, "fr", config.Locale)
	assert.Equal(t, 32, config.EventQueueSize)
}
