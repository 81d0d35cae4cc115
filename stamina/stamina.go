// Package stamina tracks a bounded, regenerating resource for a single actor.
//
// A Controller starts full. Spending stamina arms a cooldown; once the
// cooldown elapses a regeneration timer restores one point per interval
// until the maximum is reached. While below the maximum the controller
// re-evaluates fatigue on every tick and reports it through a Signal.
//
// Controllers are driven from one goroutine, once per simulation step.
package stamina

import (
	"fmt"
	"time"

	"github.com/milk9111/stamina/clock"
	"github.com/milk9111/stamina/common"
	"github.com/milk9111/stamina/logger"
)

// Clock is the scheduling primitive the regeneration process runs on.
// *clock.Scheduler implements it.
type Clock interface {
	Every(interval time.Duration, fn func()) clock.Timer
}

// Controller owns one actor's stamina.
type Controller struct {
	cfg     Config
	current int

	cooldownArmed   bool
	cooldownElapsed time.Duration
	regen           clock.Timer

	clock    Clock
	ownClock *clock.Scheduler
	signal   Signal
	sink     logger.Logger
	log      logger.Logger

	OnInsufficient func(c *Controller, cost int)
	OnFull         func(c *Controller)
	OnFatigue      func(c *Controller, fatigued bool)

	signalled bool
}

// Option customizes a Controller at construction.
type Option func(*Controller)

// WithClock runs the regeneration timer on a shared clock. The owner of
// the clock advances it; Tick does not.
func WithClock(clk Clock) Option {
	return func(c *Controller) {
		if clk != nil {
			c.clock = clk
			c.ownClock = nil
		}
	}
}

// WithSignal sets the fatigue indicator.
func WithSignal(s Signal) Option {
	return func(c *Controller) {
		if s != nil {
			c.signal = s
		}
	}
}

// WithLogger sets the diagnostics sink. Lines are only emitted when
// Config.Debug is set.
func WithLogger(l logger.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.sink = l
		}
	}
}

// New creates an initialized (full) Controller. Without WithClock the
// controller owns a private scheduler and advances it from Tick.
func New(cfg Config, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	own := clock.NewScheduler()
	c := &Controller{
		cfg:      cfg,
		clock:    own,
		ownClock: own,
		signal:   nopSignal{},
		sink:     logger.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.applyDebug()
	c.Initialize()
	return c, nil
}

// Initialize fills the controller to its maximum and clears all timers.
func (c *Controller) Initialize() {
	if c == nil {
		return
	}
	c.current = c.cfg.Max
	c.settleFull()
	c.log.Debug("stamina initialized", c.fields()...)
}

// Tick advances the controller by dt. It must be called once per
// simulation step. Pending regeneration increments land first, then the
// cooldown check, then the fatigue evaluation.
func (c *Controller) Tick(dt time.Duration) {
	if c == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	if c.ownClock != nil {
		c.ownClock.Advance(dt)
	}
	if c.current >= c.cfg.Max {
		return
	}

	if c.cooldownArmed {
		c.cooldownElapsed += dt
		if c.cooldownElapsed >= c.cfg.Cooldown {
			c.cooldownArmed = false
			c.cooldownElapsed = 0
			c.log.Debug("cooldown elapsed, starting regeneration", c.fields()...)
			c.startRegen()
		}
	}

	c.setFatigued(c.cfg.fatigued(c.current))
}

// Consume spends cost stamina. It reports false, leaving state untouched,
// when cost is not positive or exceeds the current stamina.
func (c *Controller) Consume(cost int) bool {
	return c.Spend(cost) == nil
}

// Spend is Consume with the failure reason: ErrInvalidAmount or
// ErrInsufficient. A successful spend re-arms the cooldown and cancels
// any running regeneration.
func (c *Controller) Spend(cost int) error {
	if c == nil {
		return ErrInsufficient
	}
	if cost <= 0 {
		c.log.Debug("rejected non-positive cost", logger.Field{Key: "cost", Value: cost})
		return fmt.Errorf("%w: cost %d", ErrInvalidAmount, cost)
	}
	if c.current < cost {
		c.notEnough(cost)
		return fmt.Errorf("%w: need %d, have %d", ErrInsufficient, cost, c.current)
	}

	c.current -= cost
	c.cooldownArmed = true
	c.cooldownElapsed = 0
	c.stopRegen()
	c.log.Debug("stamina consumed", append(c.fields(), logger.Field{Key: "cost", Value: cost})...)
	return nil
}

// Regenerate adds amount stamina at once, clamped to the maximum. It
// reports false when already full or when amount is not positive.
func (c *Controller) Regenerate(amount int) bool {
	return c.Restore(amount) == nil
}

// Restore is Regenerate with the failure reason: ErrInvalidAmount or
// ErrAlreadyFull. Reaching the maximum this way settles the controller
// into the full state.
func (c *Controller) Restore(amount int) error {
	if c == nil {
		return ErrAlreadyFull
	}
	if amount <= 0 {
		c.log.Debug("rejected non-positive amount", logger.Field{Key: "amount", Value: amount})
		return fmt.Errorf("%w: amount %d", ErrInvalidAmount, amount)
	}
	if c.current >= c.cfg.Max {
		c.log.Debug("stamina already at maximum", c.fields()...)
		return ErrAlreadyFull
	}

	c.current = common.AddClamped(c.current, amount, c.cfg.Max)
	if c.current >= c.cfg.Max {
		c.log.Debug("stamina restored to maximum", append(c.fields(), logger.Field{Key: "amount", Value: amount})...)
		c.reachedFull()
		return nil
	}
	c.log.Debug("stamina restored", append(c.fields(), logger.Field{Key: "amount", Value: amount})...)
	return nil
}

// SetConfig swaps the tuning of a live controller. Current stamina is
// clamped to the new maximum; if a raised maximum leaves the controller
// below it with nothing running, the cooldown is armed.
func (c *Controller) SetConfig(cfg Config) error {
	if c == nil {
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	prevInterval := c.cfg.RegenInterval
	c.cfg = cfg
	c.applyDebug()

	c.current = common.Clamp(c.current, 0, cfg.Max)
	switch {
	case c.current >= cfg.Max:
		c.settleFull()
	case c.regen != nil && prevInterval != cfg.RegenInterval:
		c.stopRegen()
		c.startRegen()
	case c.regen == nil && !c.cooldownArmed:
		c.cooldownArmed = true
		c.cooldownElapsed = 0
	}
	c.log.Debug("stamina reconfigured", c.fields()...)
	return nil
}

// Release stops the regeneration timer. Call it when the owning actor
// goes away; the controller stays readable afterwards.
func (c *Controller) Release() {
	if c == nil {
		return
	}
	c.stopRegen()
	c.cooldownArmed = false
}

// Current returns the current stamina.
func (c *Controller) Current() int {
	if c == nil {
		return 0
	}
	return c.current
}

// Max returns the maximum stamina.
func (c *Controller) Max() int {
	if c == nil {
		return 0
	}
	return c.cfg.Max
}

// Fraction returns current/max in [0,1].
func (c *Controller) Fraction() float64 {
	if c == nil || c.cfg.Max <= 0 {
		return 0
	}
	return float64(c.current) / float64(c.cfg.Max)
}

// IsFatigued reports whether stamina is below the maximum and at or
// under the fatigue threshold.
func (c *Controller) IsFatigued() bool {
	if c == nil {
		return false
	}
	return c.current < c.cfg.Max && c.cfg.fatigued(c.current)
}

// State returns the current timing state.
func (c *Controller) State() State {
	switch {
	case c == nil || c.current >= c.cfg.Max:
		return Full
	case c.regen != nil:
		return Regenerating
	default:
		return CoolingDown
	}
}

// CoolingDown reports whether the post-consumption delay is running.
func (c *Controller) CoolingDown() bool {
	return c != nil && c.cooldownArmed
}

// Regenerating reports whether the regeneration timer is running.
func (c *Controller) Regenerating() bool {
	return c != nil && c.regen != nil
}

// CooldownElapsed returns the time accumulated toward the cooldown.
func (c *Controller) CooldownElapsed() time.Duration {
	if c == nil {
		return 0
	}
	return c.cooldownElapsed
}

// Config returns a copy of the tuning.
func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

func (c *Controller) notEnough(cost int) {
	c.log.Debug("not enough stamina", append(c.fields(), logger.Field{Key: "cost", Value: cost})...)
	if c.OnInsufficient != nil {
		c.OnInsufficient(c, cost)
	}
}

// setFatigued drives the signal on every evaluation and fires OnFatigue
// only on changes.
func (c *Controller) setFatigued(active bool) {
	c.signal.SetActive(active)
	if active == c.signalled {
		return
	}
	c.signalled = active
	c.log.Debug("fatigue changed", append(c.fields(), logger.Field{Key: "fatigued", Value: active})...)
	if c.OnFatigue != nil {
		c.OnFatigue(c, active)
	}
}

// settleFull clears every timer and the fatigue signal without firing OnFull.
func (c *Controller) settleFull() {
	c.cooldownArmed = false
	c.cooldownElapsed = 0
	c.stopRegen()
	c.setFatigued(false)
}

func (c *Controller) reachedFull() {
	c.settleFull()
	if c.OnFull != nil {
		c.OnFull(c)
	}
}

func (c *Controller) applyDebug() {
	if c.cfg.Debug {
		c.log = c.sink
	} else {
		c.log = logger.Nop()
	}
}

func (c *Controller) fields() []logger.Field {
	return []logger.Field{
		{Key: "current", Value: c.current},
		{Key: "max", Value: c.cfg.Max},
		{Key: "state", Value: c.State().String()},
	}
}
