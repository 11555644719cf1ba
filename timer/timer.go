// Package timer holds the single pending delayed transition of a workflow.
package timer

import (
	"fmt"
	"time"
)

// Poster hands a callback to the goroutine that owns the workflow state.
type Poster func(fn func())

// Immediate runs callbacks in place. It is only suitable when the clock fires
// on the owning goroutine, as FakeClock does.
func Immediate(fn func()) {
	fn()
}

// StatusTimer keeps at most one pending task. Scheduling a new task
// supersedes the pending one, and a task that was cancelled or superseded
// after it fired but before it ran is dropped.
//
// Every method must be called from the goroutine that the Poster delivers to.
type StatusTimer struct {
	clock      Clock
	post       Poster
	pending    Stopper
	generation uint64
	closed     bool
}

// New panics when post is nil and clock is not a FakeClock: a real clock
// fires on its own goroutine and needs a Poster to get back to the owner.
func New(clock Clock, post Poster) *StatusTimer {
	if clock == nil {
		clock = RealClock{}
	}
	return &StatusTimer{clock: clock, post: MustPoster(clock, post)}
}

// MustPoster returns post, or Immediate when post is nil and clock fires
// on the caller's goroutine.
func MustPoster(clock Clock, post Poster) Poster {
	if post != nil {
		return post
	}
	if _, ok := clock.(*FakeClock); ok {
		return Immediate
	}
	panic(fmt.Sprintf("timer: a Poster is required with clock %T", clock))
}

// Schedule runs fn after d unless it is cancelled or superseded first.
// It returns false once the timer is closed.
func (t *StatusTimer) Schedule(d time.Duration, fn func()) bool {
	if t.closed {
		return false
	}
	t.stopPending()
	t.generation++
	generation := t.generation
	post := t.post
	t.pending = t.clock.AfterFunc(d, func() {
		post(func() { t.fire(generation, fn) })
	})
	return true
}

// Cancel drops the pending task, if any.
func (t *StatusTimer) Cancel() {
	t.stopPending()
	t.generation++
}

// Close cancels the pending task and refuses any later schedule.
func (t *StatusTimer) Close() {
	t.Cancel()
	t.closed = true
}

func (t *StatusTimer) Pending() bool {
	return t.pending != nil
}

func (t *StatusTimer) Closed() bool {
	return t.closed
}

func (t *StatusTimer) fire(generation uint64, fn func()) {
	if t.closed || generation != t.generation {
		return
	}
	t.pending = nil
	fn()
}

func (t *StatusTimer) stopPending() {
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
}
