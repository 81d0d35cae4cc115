package clock

import (
	"testing"
	"time"
)

func TestSchedulerEveryFiresOncePerInterval(t *testing.T) {
	s := NewScheduler()
	count := 0
	s.Every(100*time.Millisecond, func() { count++ })

	s.Advance(99 * time.Millisecond)
	if count != 0 {
		t.Fatalf("fired early: count=%d", count)
	}
	s.Advance(time.Millisecond)
	if count != 1 {
		t.Fatalf("count after 100ms = %d, want 1", count)
	}
	for i := 0; i < 9; i++ {
		s.Advance(100 * time.Millisecond)
	}
	if count != 10 {
		t.Fatalf("count after 1s = %d, want 10", count)
	}
}

func TestSchedulerLargeAdvanceFiresRepeatedly(t *testing.T) {
	cases := []struct {
		name     string
		interval time.Duration
		advance  time.Duration
		want     int
	}{
		{"exact_multiple", 100 * time.Millisecond, time.Second, 10},
		{"remainder", 300 * time.Millisecond, time.Second, 3},
		{"shorter_than_interval", time.Second, 999 * time.Millisecond, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewScheduler()
			count := 0
			s.Every(c.interval, func() { count++ })
			s.Advance(c.advance)
			if count != c.want {
				t.Fatalf("count = %d, want %d", count, c.want)
			}
			if s.Now() != c.advance {
				t.Fatalf("now = %v, want %v", s.Now(), c.advance)
			}
		})
	}
}

func TestSchedulerStopFromCallbackHaltsSameAdvance(t *testing.T) {
	s := NewScheduler()
	count := 0
	var timer Timer
	timer = s.Every(10*time.Millisecond, func() {
		count++
		if count == 3 {
			timer.Stop()
		}
	})
	s.Advance(time.Second)
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
	if timer.Active() {
		t.Fatalf("timer should be inactive after Stop")
	}
	if s.Len() != 0 {
		t.Fatalf("Len = %d, want 0", s.Len())
	}
}

func TestSchedulerStopIsIdempotent(t *testing.T) {
	s := NewScheduler()
	timer := s.Every(time.Second, func() {})
	if !timer.Stop() {
		t.Fatalf("first Stop should report an active timer")
	}
	if timer.Stop() {
		t.Fatalf("second Stop should be a no-op")
	}

	var inactive Timer = s.Every(0, func() {})
	if inactive.Active() || inactive.Stop() {
		t.Fatalf("non-positive interval should yield an inactive timer")
	}
}

func TestSchedulerAfterFiresOnce(t *testing.T) {
	s := NewScheduler()
	count := 0
	s.After(50*time.Millisecond, func() { count++ })
	s.Advance(time.Second)
	s.Advance(time.Second)
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	zero := 0
	s.After(0, func() { zero++ })
	if zero != 0 {
		t.Fatalf("zero-delay callback ran before Advance")
	}
	s.Advance(0)
	if zero != 1 {
		t.Fatalf("zero-delay callback count = %d, want 1", zero)
	}
}

func TestSchedulerTimerCreatedInCallbackMeasuresFromDueTime(t *testing.T) {
	s := NewScheduler()
	var fired []time.Duration
	s.After(100*time.Millisecond, func() {
		s.Every(100*time.Millisecond, func() { fired = append(fired, s.Now()) })
	})
	s.Advance(350 * time.Millisecond)

	want := []time.Duration{200 * time.Millisecond, 300 * time.Millisecond}
	if len(fired) != len(want) {
		t.Fatalf("fired %v, want %v", fired, want)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Fatalf("fired[%d] = %v, want %v", i, fired[i], want[i])
		}
	}
}

func TestSchedulerOrdersAcrossTimers(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.Every(30*time.Millisecond, func() { order = append(order, "slow") })
	s.Every(20*time.Millisecond, func() { order = append(order, "fast") })
	s.Advance(60 * time.Millisecond)

	want := []string{"fast", "slow", "fast", "slow", "fast"}
	if len(order) != len(want) {
		t.Fatalf("order %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order %v, want %v", order, want)
		}
	}
}

func TestSchedulerNilSafe(t *testing.T) {
	var s *Scheduler
	s.Advance(time.Second)
	if s.Now() != 0 || s.Len() != 0 {
		t.Fatalf("nil scheduler should report zero values")
	}
	if s.Every(time.Second, func() {}).Active() {
		t.Fatalf("nil scheduler should hand out inactive timers")
	}
}

func TestFrameTimerClampsDelta(t *testing.T) {
	base := time.Unix(0, 0)
	now := base
	ft := NewFrameTimer(50*time.Millisecond, func() time.Time { return now })

	now = now.Add(16 * time.Millisecond)
	if dt := ft.Delta(); dt != 16*time.Millisecond {
		t.Fatalf("dt = %v, want 16ms", dt)
	}
	now = now.Add(2 * time.Second)
	if dt := ft.Delta(); dt != 50*time.Millisecond {
		t.Fatalf("dt = %v, want clamp to 50ms", dt)
	}
	now = now.Add(-time.Second)
	if dt := ft.Delta(); dt != 0 {
		t.Fatalf("dt = %v, want 0 for backwards clock", dt)
	}
}

func TestStepFor(t *testing.T) {
	if got := StepFor(50); got != 20*time.Millisecond {
		t.Fatalf("StepFor(50) = %v", got)
	}
	if got := StepFor(0); got != time.Second/60 {
		t.Fatalf("StepFor(0) = %v, want default 60 tps", got)
	}
}
