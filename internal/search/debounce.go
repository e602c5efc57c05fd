// Package search holds the quiet-window trigger behind the search input:
// rapid repeated keystrokes collapse and only the last one fires a request.
package search

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet window before a trigger fires.
const DefaultDelay = 500 * time.Millisecond

// Debouncer runs the latest submitted function once the delay elapses with no
// newer submission. Earlier pending submissions are discarded, not queued.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn, replacing any pending one.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop discards the pending trigger, if any. Used on teardown; a fire that
// already started is not interrupted.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
