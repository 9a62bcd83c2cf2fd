package driver

import "time"

// Debouncer coalesces a burst of surface size changes into one update that
// is released once the size has been stable for the quiet period.
type Debouncer struct {
	quiet   time.Duration
	width   int
	height  int
	changed time.Time
	pending bool
}

// NewDebouncer starts settled at the given size.
func NewDebouncer(quiet time.Duration, width, height int) *Debouncer {
	return &Debouncer{quiet: quiet, width: width, height: height}
}

// Observe records the current size. A differing size restarts the quiet
// period.
func (d *Debouncer) Observe(width, height int, now time.Time) {
	if width == d.width && height == d.height {
		return
	}
	d.width, d.height = width, height
	d.changed = now
	d.pending = true
}

// Ready returns the settled size once the quiet period has elapsed since
// the last change. It reports each settled size once.
func (d *Debouncer) Ready(now time.Time) (width, height int, ok bool) {
	if !d.pending || now.Sub(d.changed) < d.quiet {
		return 0, 0, false
	}
	d.pending = false
	return d.width, d.height, true
}

// Size returns the most recently observed size.
func (d *Debouncer) Size() (width, height int) {
	return d.width, d.height
}
