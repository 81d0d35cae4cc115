package system

import (
	"errors"

	"github.com/milk9111/stamina/clock"
	"github.com/milk9111/stamina/ecs"
	"github.com/milk9111/stamina/ecs/component"
	"github.com/milk9111/stamina/logger"
	"github.com/milk9111/stamina/stamina"
)

// StaminaSystem drives every stamina controller once per step. It owns the
// shared regeneration clock: the clock advances by the step delta, then
// each controller ticks, then pending consume and restore requests are
// applied. A request made this step starts its cooldown on the next one.
type StaminaSystem struct {
	clock *clock.Scheduler
	log   logger.Logger
}

func NewStaminaSystem(clk *clock.Scheduler, log logger.Logger) *StaminaSystem {
	if clk == nil {
		clk = clock.NewScheduler()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &StaminaSystem{clock: clk, log: log}
}

// Clock returns the scheduler controllers should be built with.
func (s *StaminaSystem) Clock() *clock.Scheduler {
	if s == nil {
		return nil
	}
	return s.clock
}

func (s *StaminaSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.Delta()

	s.clock.Advance(dt)
	ecs.ForEach(w, component.StaminaComponent.Kind(), func(e ecs.Entity, c *stamina.Controller) {
		c.Tick(dt)
	})

	ecs.ForEach(w, component.StaminaConsumeRequestComponent.Kind(), func(e ecs.Entity, req *component.StaminaConsumeRequest) {
		defer ecs.Remove(w, e, component.StaminaConsumeRequestComponent.Kind())
		c, ok := ecs.Get(w, e, component.StaminaComponent.Kind())
		if !ok {
			s.log.Warn("consume request on entity without stamina", logger.Field{Key: "entity", Value: e.String()})
			return
		}
		if err := c.Spend(req.Cost); err != nil {
			s.log.Debug("consume request refused",
				logger.Field{Key: "entity", Value: e.String()},
				logger.Field{Key: "cost", Value: req.Cost},
				logger.Field{Key: "error", Value: err},
			)
		}
	})

	ecs.ForEach(w, component.StaminaRestoreRequestComponent.Kind(), func(e ecs.Entity, req *component.StaminaRestoreRequest) {
		defer ecs.Remove(w, e, component.StaminaRestoreRequestComponent.Kind())
		c, ok := ecs.Get(w, e, component.StaminaComponent.Kind())
		if !ok {
			s.log.Warn("restore request on entity without stamina", logger.Field{Key: "entity", Value: e.String()})
			return
		}
		err := c.Restore(req.Amount)
		switch {
		case err == nil, errors.Is(err, stamina.ErrAlreadyFull):
		default:
			s.log.Debug("restore request refused",
				logger.Field{Key: "entity", Value: e.String()},
				logger.Field{Key: "amount", Value: req.Amount},
				logger.Field{Key: "error", Value: err},
			)
		}
	})
}
