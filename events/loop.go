// Package events runs every state change of the page on one goroutine.
//
// User intents and timer callbacks are both posted as closures and processed
// strictly one at a time, in the order they were posted.
package events

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/tidepool-org/landing/models"
)

const DefaultQueueSize = 64

type Loop struct {
	queue   chan func()
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
	logger  *zap.SugaredLogger
}

func NewLoop(size int, logger *zap.SugaredLogger) *Loop {
	if size <= 0 {
		size = DefaultQueueSize
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Loop{
		queue:   make(chan func(), size),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		logger:  logger,
	}
}

// Run processes events until ctx is done or Stop is called.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.stopped)
	l.logger.Debug("event loop started")
	for {
		select {
		case <-ctx.Done():
			l.Stop()
			l.logger.Debug("event loop stopped")
			return
		case <-l.done:
			l.logger.Debug("event loop stopped")
			return
		case fn := <-l.queue:
			l.process(fn)
		}
	}
}

// Post queues fn without waiting for it to run. It is safe to call from any
// goroutine, timer callbacks included.
func (l *Loop) Post(fn func()) error {
	select {
	case <-l.done:
		return models.ErrLoopStopped
	default:
	}
	select {
	case l.queue <- fn:
		return nil
	case <-l.done:
		return models.ErrLoopStopped
	}
}

// Poster adapts Post for timers, logging events dropped after shutdown.
func (l *Loop) Poster(fn func()) {
	if err := l.Post(fn); err != nil {
		l.logger.Debugw("dropping timer event", zap.Error(err))
	}
}

// Do runs fn on the loop and waits for it to finish. fn runs exactly when
// Do returns nil: once ctx is done, fn is skipped unless it has already
// started, in which case Do waits for it.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	var (
		mu        sync.Mutex
		started   bool
		abandoned bool
	)
	finished := make(chan struct{})
	if err := l.Post(func() {
		defer close(finished)
		mu.Lock()
		if abandoned || ctx.Err() != nil {
			mu.Unlock()
			return
		}
		started = true
		mu.Unlock()
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-finished:
		mu.Lock()
		defer mu.Unlock()
		if !started {
			return ctx.Err()
		}
		return nil
	case <-ctx.Done():
		mu.Lock()
		if !started {
			abandoned = true
			mu.Unlock()
			return ctx.Err()
		}
		mu.Unlock()
		<-finished
		return nil
	case <-l.stopped:
		select {
		case <-finished:
			mu.Lock()
			defer mu.Unlock()
			if started {
				return nil
			}
			return ctx.Err()
		default:
			return models.ErrLoopStopped
		}
	}
}

// Stop makes the loop refuse new events and return from Run. Events still
// queued are discarded.
func (l *Loop) Stop() {
	l.once.Do(func() { close(l.done) })
}

// Stopped is closed once Run has returned.
func (l *Loop) Stopped() <-chan struct{} {
	return l.stopped
}

func (l *Loop) process(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Errorw("event handler panicked", "panic", r)
		}
	}()
	fn()
}
