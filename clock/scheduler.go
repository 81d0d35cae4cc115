package clock

import "time"

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop cancels the timer. It reports whether the timer was active;
	// stopping an inactive timer is a no-op.
	Stop() bool
	// Active reports whether the timer will still fire.
	Active() bool
}

// Clock schedules callbacks against simulation time.
type Clock interface {
	Every(interval time.Duration, fn func()) Timer
	After(delay time.Duration, fn func()) Timer
	Now() time.Duration
}

// Scheduler is a cooperative, single-threaded timer wheel driven by
// Advance. Callbacks run synchronously inside Advance, on the caller's
// goroutine, in due-time order. Nothing here is safe for concurrent use.
type Scheduler struct {
	now    time.Duration
	tasks  []*task
	nextID uint64
}

type task struct {
	s        *Scheduler
	id       uint64
	interval time.Duration
	due      time.Duration
	fn       func()
	repeat   bool
	stopped  bool
}

// NewScheduler creates a scheduler positioned at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the simulation time accumulated through Advance.
func (s *Scheduler) Now() time.Duration {
	if s == nil {
		return 0
	}
	return s.now
}

// Every schedules fn to run every interval, first firing one interval
// from now. A non-positive interval or nil fn yields an inactive timer.
func (s *Scheduler) Every(interval time.Duration, fn func()) Timer {
	return s.schedule(interval, fn, true)
}

// After schedules fn to run once, delay from now.
func (s *Scheduler) After(delay time.Duration, fn func()) Timer {
	if delay < 0 {
		delay = 0
	}
	if delay == 0 && fn != nil && s != nil {
		// zero delay still waits for the next Advance
		return s.add(&task{interval: 0, due: s.now, fn: fn})
	}
	return s.schedule(delay, fn, false)
}

func (s *Scheduler) schedule(interval time.Duration, fn func(), repeat bool) Timer {
	if s == nil || fn == nil || interval <= 0 {
		return &task{stopped: true}
	}
	return s.add(&task{interval: interval, due: s.now + interval, fn: fn, repeat: repeat})
}

func (s *Scheduler) add(t *task) *task {
	s.nextID++
	t.s = s
	t.id = s.nextID
	s.tasks = append(s.tasks, t)
	return t
}

// Advance moves simulation time forward by dt and fires every callback
// that falls due, including repeated firings of the same timer when dt
// spans several intervals. Timers created by a callback are measured
// from that callback's due time.
func (s *Scheduler) Advance(dt time.Duration) {
	if s == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		s.now = t.due
		if t.repeat {
			t.due += t.interval
		} else {
			t.stopped = true
		}
		t.fn()
	}
	s.now = target
	s.compact()
}

// nextDue returns the earliest active task due at or before target. Ties
// resolve in scheduling order.
func (s *Scheduler) nextDue(target time.Duration) *task {
	var best *task
	for _, t := range s.tasks {
		if t.stopped || t.due > target {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.id < best.id) {
			best = t
		}
	}
	return best
}

func (s *Scheduler) compact() {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.stopped {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = kept
}

// Len returns the number of active timers.
func (s *Scheduler) Len() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, t := range s.tasks {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (t *task) Stop() bool {
	if t == nil || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func (t *task) Active() bool {
	return t != nil && !t.stopped
}
