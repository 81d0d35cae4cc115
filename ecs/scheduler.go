package ecs

import "time"

// System updates a world each step.
type System interface {
	Update(w *World)
}

// Scheduler runs systems in registration order.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, sys := range systems {
		s.Add(sys)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Step runs one simulation step of duration dt and returns the events the
// systems pushed during it.
func (s *Scheduler) Step(w *World, dt time.Duration) []Event {
	if w == nil {
		return nil
	}
	if dt < 0 {
		dt = 0
	}
	w.delta = dt
	w.tick++
	if s != nil {
		for _, system := range s.systems {
			system.Update(w)
		}
	}
	return w.events.Drain()
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
