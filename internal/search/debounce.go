package search

import (
	"sync"
	"time"
)

// DefaultDelay matches the pause a user takes between keystrokes before a
// lookup is worth issuing.
const DefaultDelay = 500 * time.Millisecond

// Debouncer coalesces search-as-you-type callbacks into a single trailing
// call: every Do resets the timer and only the last function runs once the
// delay elapses with no further input. Its purpose is to avoid a request per
// keystroke, not correctness.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending func()
	gen     uint64
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay}
}

// Do schedules fn to run after the delay, replacing any pending call.
func (d *Debouncer) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = fn
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A Do or Flush that raced the firing timer already owns the call.
		if d.gen != gen || d.pending == nil {
			d.mu.Unlock()
			return
		}
		d.pending = nil
		d.mu.Unlock()
		fn()
	})
}

// Flush runs the pending call immediately instead of waiting out the delay.
// No-op when nothing is pending.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Stop cancels any pending call. Safe to call repeatedly.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
