package stamina

// Signal is the fatigue indicator. SetActive is called every time the
// controller re-evaluates fatigue, not only on changes.
type Signal interface {
	SetActive(active bool)
}

// SignalFunc adapts a function to Signal.
type SignalFunc func(active bool)

func (f SignalFunc) SetActive(active bool) {
	if f != nil {
		f(active)
	}
}

type nopSignal struct{}

func (nopSignal) SetActive(bool) {}
