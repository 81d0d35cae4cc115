package stamina

// State is the controller's position in its timing state machine.
type State uint8

const (
	// Full: stamina at maximum, nothing running.
	Full State = iota
	// CoolingDown: waiting out the delay after a consumption.
	CoolingDown
	// Regenerating: the regeneration timer adds one point per interval.
	Regenerating
)

func (s State) String() string {
	switch s {
	case Full:
		return "full"
	case CoolingDown:
		return "cooling_down"
	case Regenerating:
		return "regenerating"
	default:
		return "unknown"
	}
}
