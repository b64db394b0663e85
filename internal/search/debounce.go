// Package search converts raw query keystrokes into stabilized backend queries.
//
// [Debouncer] is a generic time-delayed value stabilizer: every change
// rearms a single pending timer, so only the value that survives a full
// quiet period propagates. [Pipeline] composes a Debouncer with the
// navigation collaborator to dispatch one search navigation per stabilized
// query value.
package search

import (
	"sync"
	"time"
)

// Debouncer stabilizes a stream of values of type T.
//
// Each Set cancels any pending timer and arms a new one; emit runs only
// when a value goes delay without being superseded. At most one timer is
// live at a time, and no emit happens after Stop.
type Debouncer[T any] struct {
	mu      sync.Mutex
	delay   time.Duration
	emit    func(T)
	timer   *time.Timer
	seq     uint64
	stopped bool
}

// NewDebouncer creates a Debouncer emitting stabilized values through emit.
func NewDebouncer[T any](delay time.Duration, emit func(T)) *Debouncer[T] {
	if delay < 0 {
		delay = 0
	}
	return &Debouncer[T]{delay: delay, emit: emit}
}

// Set feeds a new input value, rescheduling the pending emit.
func (d *Debouncer[T]) Set(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if d.timer != nil {
		d.timer.Stop()
	}

	// The sequence number prevents a timer that lost the Stop race from
	// emitting a superseded value.
	d.seq++
	seq := d.seq

	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.stopped || seq != d.seq {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()

		d.emit(value)
	})
}

// Stop releases any pending timer and prevents all future emits.
// Safe to call more than once.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
