package main

import "time"

// debouncer coalesces a burst of events into a single firing once the
// burst has been quiet for the configured duration.
type debouncer struct {
	quiet time.Duration
	timer *time.Timer
	c     <-chan time.Time
}

func newDebouncer(quiet time.Duration) *debouncer {
	return &debouncer{quiet: quiet}
}

// Trigger starts or restarts the quiet period.
func (d *debouncer) Trigger() {
	if d.timer == nil {
		d.timer = time.NewTimer(d.quiet)
		d.c = d.timer.C
		return
	}
	d.timer.Reset(d.quiet)
}

// C is the firing channel; nil (blocking forever in a select) while idle.
func (d *debouncer) C() <-chan time.Time {
	return d.c
}

// Fired marks the pending firing as consumed, returning to idle.
func (d *debouncer) Fired() {
	d.timer = nil
	d.c = nil
}
