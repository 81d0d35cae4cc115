package stamina

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInsufficient is returned when a cost exceeds the current stamina.
	ErrInsufficient = errors.New("stamina: insufficient stamina")
	// ErrAlreadyFull is returned when restoring stamina that is already at maximum.
	ErrAlreadyFull = errors.New("stamina: already at maximum")
	// ErrInvalidAmount is returned for non-positive costs and amounts.
	ErrInvalidAmount = errors.New("stamina: amount must be positive")
	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("stamina: invalid config")
)

// Config holds the tunable parameters of a Controller. It is fixed at
// construction; SetConfig replaces it wholesale.
type Config struct {
	Max              int           `yaml:"max"`
	Cooldown         time.Duration `yaml:"cooldown"`
	RegenInterval    time.Duration `yaml:"regen_interval"`
	FatigueThreshold float64       `yaml:"fatigue_threshold"`
	// Debug routes diagnostic lines to the controller's logger.
	Debug bool `yaml:"debug"`
}

// DefaultConfig returns the stock tuning: 100 points, 2s cooldown,
// one point every 100ms, fatigued at or below 30%.
func DefaultConfig() Config {
	return Config{
		Max:              100,
		Cooldown:         2 * time.Second,
		RegenInterval:    100 * time.Millisecond,
		FatigueThreshold: 0.3,
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.Max <= 0:
		return fmt.Errorf("%w: max must be positive, got %d", ErrInvalidConfig, c.Max)
	case c.Cooldown < 0:
		return fmt.Errorf("%w: cooldown must not be negative, got %v", ErrInvalidConfig, c.Cooldown)
	case c.RegenInterval <= 0:
		return fmt.Errorf("%w: regen_interval must be positive, got %v", ErrInvalidConfig, c.RegenInterval)
	case c.FatigueThreshold < 0 || c.FatigueThreshold > 1:
		return fmt.Errorf("%w: fatigue_threshold must be within [0,1], got %g", ErrInvalidConfig, c.FatigueThreshold)
	}
	return nil
}

// fatigued reports whether current is at or under the threshold share of
// Max. The ratio is compared rather than threshold*Max, whose product can
// round just below an exact integer boundary.
func (c Config) fatigued(current int) bool {
	if c.Max <= 0 {
		return false
	}
	return float64(current)/float64(c.Max) <= c.FatigueThreshold
}
