package clients

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/tidepool-org/landing/models"
)

type (
	// LogNotifier records acknowledgements in the service log. Nothing leaves
	// the process.
	LogNotifier struct {
		logger *zap.SugaredLogger
	}
)

func NewLogNotifier(logger *zap.SugaredLogger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notifier")}
}

func (n *LogNotifier) Notify(ctx context.Context, ack models.Acknowledgement) error {
	n.logger.Infow("workflow completed",
		"form", ack.Form,
		"subject", ack.Subject,
		"invitees", ack.Invitees,
	)
	return nil
}

func logNotifierProvider(logger *zap.SugaredLogger) Notifier {
	return NewLogNotifier(logger)
}

var LogModule = fx.Options(fx.Provide(logNotifierProvider))
