package workflow

import (
	"testing"
	"time"

	"github.com/tidepool-org/landing/clients"
	"github.com/tidepool-org/landing/testutil"
	"github.com/tidepool-org/landing/timer"
)

var epoch = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

const unit = time.Second

func newTestEnv(t *testing.T) (Env, *timer.FakeClock, *clients.MockNotifier) {
	clock := timer.NewFakeClock(epoch)
	notifier := clients.NewMockNotifier()
	return Env{
		Clock:    clock,
		Post:     timer.Immediate,
		Notifier: notifier,
		Logger:   testutil.NewLogger(t),
	}, clock, notifier
}
