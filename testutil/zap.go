package testutil

import (
	"io"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// NewLogger provides a logger that writes to /dev/null.
//
// Loop and stream goroutines may still log after a test returns, so nothing
// here writes through t.
func NewLogger(t testing.TB) *zap.SugaredLogger {
	return NewLoggerWithWriter(t, io.Discard)
}

// NewLoggerWithWriter provides a development logger writing to w.
func NewLoggerWithWriter(t testing.TB, w io.Writer) *zap.SugaredLogger {
	t.Helper()
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zapcore.DebugLevel)
	return zap.New(core, zap.AddCaller(), zap.Development()).Sugar()
}

// NewObservedLogger provides a logger whose entries can be inspected.
func NewObservedLogger(t testing.TB) (*zap.SugaredLogger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core).Sugar(), logs
}
