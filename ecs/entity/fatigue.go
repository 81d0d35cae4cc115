package entity

import (
	"github.com/milk9111/stamina/ecs"
	"github.com/milk9111/stamina/ecs/component"
)

// FatigueSignal mirrors a controller's fatigue indicator onto the world:
// the Fatigued tag is present while the indicator is on, and a
// fatigue_on or fatigue_off event is pushed whenever the tag flips.
type FatigueSignal struct {
	w *ecs.World
	e ecs.Entity
}

func NewFatigueSignal(w *ecs.World, e ecs.Entity) *FatigueSignal {
	return &FatigueSignal{w: w, e: e}
}

func (s *FatigueSignal) SetActive(active bool) {
	if s == nil || !ecs.IsAlive(s.w, s.e) {
		return
	}
	kind := component.FatiguedComponent.Kind()
	has := ecs.Has(s.w, s.e, kind)
	switch {
	case active && !has:
		_ = ecs.Add(s.w, s.e, kind, &component.Fatigued{})
		s.w.Events().Push(ecs.Event{Type: ecs.EventFatigueOn, Entity: s.e})
	case !active && has:
		ecs.Remove(s.w, s.e, kind)
		s.w.Events().Push(ecs.Event{Type: ecs.EventFatigueOff, Entity: s.e})
	}
}
