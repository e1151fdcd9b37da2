package render

// DetailState is the active representation of the feature set.
type DetailState string

const (
	// StateDetailed shows the filled-polygon representation.
	StateDetailed DetailState = "detailed"

	// StateOverview shows the point-symbol representation.
	StateOverview DetailState = "overview"
)

// DefaultDetailThreshold is the zoom level at and above which the detailed
// representation is shown.
const DefaultDetailThreshold = 14.0

// DetailSwitcher toggles between two pre-built representations of the same
// feature set based on viewport zoom. Switching is pure visibility
// toggling; it never refetches or re-derives geometry. A single threshold
// with edge-triggered transitions: same-state zoom updates report no change.
type DetailSwitcher struct {
	threshold float64
	state     DetailState
}

// NewDetailSwitcher creates a switcher initialized for the given zoom.
// A threshold of 0 selects [DefaultDetailThreshold].
func NewDetailSwitcher(threshold, initialZoom float64) *DetailSwitcher {
	if threshold == 0 {
		threshold = DefaultDetailThreshold
	}
	return &DetailSwitcher{
		threshold: threshold,
		state:     stateFor(initialZoom, threshold),
	}
}

// State returns the current representation state.
func (s *DetailSwitcher) State() DetailState {
	return s.state
}

// Threshold returns the zoom threshold.
func (s *DetailSwitcher) Threshold() float64 {
	return s.threshold
}

// Update consumes a new zoom level and reports whether the representation
// changed. Callers toggle layer visibility only when changed is true.
func (s *DetailSwitcher) Update(zoom float64) (state DetailState, changed bool) {
	next := stateFor(zoom, s.threshold)
	if next == s.state {
		return s.state, false
	}
	s.state = next
	return s.state, true
}

func stateFor(zoom, threshold float64) DetailState {
	if zoom >= threshold {
		return StateDetailed
	}
	return StateOverview
}
