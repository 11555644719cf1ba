package clients

import (
	"context"

	"github.com/tidepool-org/landing/models"
)

//go:generate mockgen -destination=mock/notifier.go -package=mock github.com/tidepool-org/landing/clients Notifier

// Notifier is told about every completed workflow: account created, page
// created, link sent.
type Notifier interface {
	Notify(ctx context.Context, ack models.Acknowledgement) error
}
