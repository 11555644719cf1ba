package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func TestScheduleFiresAfterDelay(t *testing.T) {
	clock := NewFakeClock(epoch)
	timer := New(clock, Immediate)
	fired := 0

	assert.True(t, timer.Schedule(3*time.Second, func() { fired++ }))
	assert.True(t, timer.Pending())

	clock.Advance(2999 * time.Millisecond)
	assert.Equal(t, 0, fired)

	clock.Advance(time.Millisecond)
	assert.Equal(t, 1, fired)
	assert.False(t, timer.Pending())
}

func TestScheduleSupersedes(t *testing.T) {
	clock := NewFakeClock(epoch)
	timer := New(clock, Immediate)
	var got []string

	timer.Schedule(time.Second, func() { got = append(got, "first") })
	timer.Schedule(2*time.Second, func() { got = append(got, "second") })
	assert.Equal(t, 1, clock.Pending())

	clock.Advance(5 * time.Second)
	assert.Equal(t, []string{"second"}, got)
}

func TestCancel(t *testing.T) {
	clock := NewFakeClock(epoch)
	timer := New(clock, Immediate)
	fired := false

	timer.Schedule(time.Second, func() { fired = true })
	timer.Cancel()
	clock.Advance(time.Minute)

	assert.False(t, fired)
	assert.False(t, timer.Pending())
	assert.Equal(t, 0, clock.Pending())
}

func TestCloseRefusesSchedule(t *testing.T) {
	clock := NewFakeClock(epoch)
	timer := New(clock, Immediate)
	fired := false

	timer.Schedule(time.Second, func() { fired = true })
	timer.Close()
	assert.False(t, timer.Schedule(time.Second, func() { fired = true }))
	clock.Advance(time.Minute)

	assert.False(t, fired)
	assert.True(t, timer.Closed())
}

// A callback already handed to the owner's queue must not run once the
// task is cancelled.
func TestQueuedCallbackDroppedAfterCancel(t *testing.T) {
	clock := NewFakeClock(epoch)
	var queue []func()
	timer := New(clock, func(fn func()) { queue = append(queue, fn) })
	fired := false

	timer.Schedule(time.Second, func() { fired = true })
	clock.Advance(time.Second)
	assert.Len(t, queue, 1)

	timer.Close()
	for _, fn := range queue {
		fn()
	}
	assert.False(t, fired)
}

func TestRescheduleFromCallback(t *testing.T) {
	clock := NewFakeClock(epoch)
	timer := New(clock, Immediate)
	var got []time.Time

	timer.Schedule(1500*time.Millisecond, func() {
		got = append(got, clock.Now())
		timer.Schedule(4*time.Second, func() { got = append(got, clock.Now()) })
	})
	clock.Advance(10 * time.Second)

	assert.Equal(t, []time.Time{epoch.Add(1500 * time.Millisecond), epoch.Add(5500 * time.Millisecond)}, got)
}

func TestRealClockPostsToOwner(t *testing.T) {
	queue := make(chan func(), 1)
	timer := New(RealClock{}, func(fn func()) { queue <- fn })
	fired := false
	timer.Schedule(time.Millisecond, func() { fired = true })

	select {
	case fn := <-queue:
		fn()
	case <-time.After(5 * time.Second):
		t.Fatal("timer never fired")
	}
	assert.True(t, fired)
	assert.False(t, timer.Pending())
}

func TestPosterDefaults(t *testing.T) {
	clock := NewFakeClock(epoch)
	timer := New(clock, nil)
	fired := false
	timer.Schedule(time.Second, func() { fired = true })
	clock.Advance(time.Second)
	assert.True(t, fired)

	assert.Panics(t, func() { New(nil, nil) })
	assert.Panics(t, func() { New(RealClock{}, nil) })
	assert.NotPanics(t, func() { New(RealClock{}, func(fn func()) {}) })
}
