// Package session schedules the work the engine deliberately leaves to its
// caller: re-simulating after a short quiescence delay while the user types,
// and persisting the collection after an independent, longer delay.
package session

import (
	"sync"
	"time"
)

// Debounce coalesces bursts of Trigger calls into one invocation of fn
// after delay of quiet. The zero value is not usable; use NewDebounce.
type Debounce struct {
	mu    sync.Mutex
	delay time.Duration
	fn    func()
	timer *time.Timer
}

// NewDebounce returns a debouncer that runs fn once per quiet period.
func NewDebounce(delay time.Duration, fn func()) *Debounce {
	return &Debounce{delay: delay, fn: fn}
}

// Trigger (re)starts the quiet period. fn runs on a timer goroutine once no
// further Trigger arrives for the configured delay.
func (d *Debounce) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fn)
}

// Flush cancels any pending timer and runs fn immediately when one was
// pending. Used on exit so the last edit is never lost.
func (d *Debounce) Flush() {
	d.mu.Lock()
	pending := d.timer != nil && d.timer.Stop()
	d.timer = nil
	d.mu.Unlock()
	if pending {
		d.fn()
	}
}

// Cancel drops any pending invocation without running it.
func (d *Debounce) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
