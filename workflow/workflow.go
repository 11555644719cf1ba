// Package workflow holds the state of each form on the page and the rules
// for changing it.
//
// Nothing here is safe for concurrent use: every call, including timer
// callbacks delivered through Env.Post, is expected to come from the single
// goroutine that owns the page.
package workflow

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tidepool-org/landing/clients"
	"github.com/tidepool-org/landing/models"
	"github.com/tidepool-org/landing/timer"
)

const notifyTimeout = 10 * time.Second

// Env is what a workflow needs from its host. Post may only be left nil
// when Clock is a *timer.FakeClock.
type Env struct {
	Clock    timer.Clock
	Post     timer.Poster
	Notifier clients.Notifier
	Logger   *zap.SugaredLogger
}

func (e Env) withDefaults() Env {
	if e.Clock == nil {
		e.Clock = timer.RealClock{}
	}
	e.Post = timer.MustPoster(e.Clock, e.Post)
	if e.Logger == nil {
		e.Logger = zap.NewNop().Sugar()
	}
	return e
}

func newID() string {
	return uuid.NewString()
}

// notify informs the collaborator. A failure is logged and otherwise ignored:
// the user's action has completed either way.
func notify(ctx context.Context, n clients.Notifier, logger *zap.SugaredLogger, ack models.Acknowledgement) {
	if n == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()
	if err := n.Notify(ctx, ack); err != nil {
		logger.With(zap.Error(err)).Warnw("notifying collaborator", "form", string(ack.Form))
	}
}
