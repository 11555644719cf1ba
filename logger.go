package main

import (
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tidepool-org/landing/infrastructure"
)

func loggerProvider(config infrastructure.ServiceConfig) (*zap.SugaredLogger, error) {
	level, err := zapcore.ParseLevel(config.LogLevel)
	if err != nil {
		return nil, err
	}
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	zapConfig.EncoderConfig.FunctionKey = "function"
	logger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// fxLoggerProvider routes fx's own events through the service logger.
func fxLoggerProvider(logger *zap.SugaredLogger) fxevent.Logger {
	return &fxevent.ZapLogger{Logger: logger.Desugar().Named("fx")}
}
