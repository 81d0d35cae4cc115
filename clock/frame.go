package clock

import "time"

// DefaultMaxDelta caps a single frame's delta so a stalled process does
// not dump seconds of simulation into one tick.
const DefaultMaxDelta = 60 * time.Millisecond

// StepFor returns the fixed step duration for a tick rate.
func StepFor(tps int) time.Duration {
	if tps <= 0 {
		tps = 60
	}
	return time.Second / time.Duration(tps)
}

// FrameTimer turns wall clock readings into clamped per-frame deltas.
type FrameTimer struct {
	now      func() time.Time
	last     time.Time
	maxDelta time.Duration
}

// NewFrameTimer creates a timer whose deltas never exceed maxDelta.
// now may be nil to use time.Now.
func NewFrameTimer(maxDelta time.Duration, now func() time.Time) *FrameTimer {
	if now == nil {
		now = time.Now
	}
	if maxDelta <= 0 {
		maxDelta = DefaultMaxDelta
	}
	return &FrameTimer{now: now, last: now(), maxDelta: maxDelta}
}

// Delta returns the time since the previous call (or construction).
func (f *FrameTimer) Delta() time.Duration {
	if f == nil {
		return 0
	}
	t := f.now()
	dt := t.Sub(f.last)
	f.last = t
	if dt < 0 {
		return 0
	}
	if dt > f.maxDelta {
		return f.maxDelta
	}
	return dt
}
