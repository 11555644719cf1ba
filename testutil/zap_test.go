package testutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLoggerWithWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(t, &buf)
	logger.Debugw("hello", "who", "world")
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), `"who": "world"`)
}

func TestNewObservedLogger(t *testing.T) {
	logger, logs := NewObservedLogger(t)
	logger.Named("x").Infow("entry", "n", 1)
	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "x", entries[0].LoggerName)
		assert.EqualValues(t, 1, entries[0].ContextMap()["n"])
	}
}
