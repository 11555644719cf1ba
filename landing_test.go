package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/tidepool-org/landing/infrastructure"
)

func TestAppGraph(t *testing.T) {
	t.Setenv("SERVICE_LISTEN_ADDRESS", "127.0.0.1:0")
	require.NoError(t, fx.ValidateApp(appOptions()))
}

func TestLoggerProvider(t *testing.T) {
	logger, err := loggerProvider(infrastructure.ServiceConfig{LogLevel: "info"})
	require.NoError(t, err)
	assert.False(t, logger.Desugar().Core().Enabled(-1))
	assert.True(t, logger.Desugar().Core().Enabled(0))

	_, err = loggerProvider(infrastructure.ServiceConfig{LogLevel: "chatty"})
	assert.Error(t, err)
}

func TestLocalizerProvider(t *testing.T) {
	localizer, err := localizerProvider(infrastructure.WorkflowConfig{})
	require.NoError(t, err)
	text, err := localizer.Localize("SendLinkButton", "fr", nil)
	require.NoError(t, err)
	assert.Equal(t, "Envoyer le lien", text)

	_, err = localizerProvider(infrastructure.WorkflowConfig{LocalesPath: t.TempDir()})
	assert.Error(t, err)
}
