package main

import (
	"github.com/milk9111/stamina/ecs"
	"github.com/milk9111/stamina/ecs/component"
	"github.com/milk9111/stamina/stamina"
)

// requestSystem files the -consume and -restore requests for every actor
// on one chosen step.
type requestSystem struct {
	consume int
	restore int
	at      uint64
}

func (s *requestSystem) Update(w *ecs.World) {
	if s == nil || w.Tick() != s.at || (s.consume == 0 && s.restore == 0) {
		return
	}
	ecs.ForEach(w, component.StaminaComponent.Kind(), func(e ecs.Entity, _ *stamina.Controller) {
		if s.consume != 0 {
			_ = ecs.Add(w, e, component.StaminaConsumeRequestComponent.Kind(), &component.StaminaConsumeRequest{Cost: s.consume})
		}
		if s.restore != 0 {
			_ = ecs.Add(w, e, component.StaminaRestoreRequestComponent.Kind(), &component.StaminaRestoreRequest{Amount: s.restore})
		}
	})
}
