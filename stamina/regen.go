package stamina

import "github.com/milk9111/stamina/logger"

// startRegen begins the regeneration process unless one is already tracked.
func (c *Controller) startRegen() {
	if c.regen != nil {
		return
	}
	c.regen = c.clock.Every(c.cfg.RegenInterval, c.regenStep)
	if c.regen == nil || !c.regen.Active() {
		// the clock refused the timer; leave the state machine retryable
		c.regen = nil
		c.cooldownArmed = true
		c.log.Warn("regeneration timer rejected by clock", logger.Field{Key: "interval", Value: c.cfg.RegenInterval})
	}
}

// stopRegen cancels the regeneration process. Safe to call when none runs.
func (c *Controller) stopRegen() {
	if c.regen == nil {
		return
	}
	c.regen.Stop()
	c.regen = nil
	c.log.Debug("regeneration stopped", c.fields()...)
}

// regenStep is one firing of the regeneration timer: one point, then
// termination once the maximum is reached.
func (c *Controller) regenStep() {
	if c.regen == nil {
		return
	}
	if c.current < c.cfg.Max {
		c.current++
		c.log.Debug("stamina regenerated", c.fields()...)
	}
	if c.current >= c.cfg.Max {
		c.current = c.cfg.Max
		c.log.Debug("regeneration complete", c.fields()...)
		c.reachedFull()
	}
}
