// Package watch provides filesystem change notification for the vault
// and the debounce primitive used by the status poller.
package watch

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of triggers into a single callback
// invocation. It holds exactly one pending timer: each Trigger cancels
// the previous timer before scheduling a new one, so the callback fires
// once, after the window elapses with no further triggers.
type Debouncer struct {
	window   time.Duration
	callback func()

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a debouncer with the given window.
func NewDebouncer(window time.Duration, callback func()) *Debouncer {
	return &Debouncer{
		window:   window,
		callback: callback,
	}
}

// Trigger schedules the callback, resetting the window if a callback is
// already pending.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.callback)
}

// Stop synchronously cancels any pending callback. A callback already
// running is not interrupted. Safe to call multiple times.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
