package tui

import "time"

// deletePhase is the per-item presentation state of the timed delete
// animation. Once triggered it advances on fixed delays; the actual DELETE
// call fires only on the transition into phaseComplete.
type deletePhase int

const (
	phaseIdle deletePhase = iota
	phaseExpanding
	phaseSpreading
	phaseTransforming
	phaseFading
	phaseComplete
)

func (p deletePhase) String() string {
	switch p {
	case phaseIdle:
		return "idle"
	case phaseExpanding:
		return "expanding"
	case phaseSpreading:
		return "spreading"
	case phaseTransforming:
		return "transforming"
	case phaseFading:
		return "fading"
	case phaseComplete:
		return "complete"
	}
	return "unknown"
}

// dwell is how long the item stays in p before the next transition.
func (p deletePhase) dwell() time.Duration {
	switch p {
	case phaseExpanding:
		return 300 * time.Millisecond
	case phaseSpreading:
		return 200 * time.Millisecond
	case phaseTransforming:
		return 300 * time.Millisecond
	case phaseFading:
		return 400 * time.Millisecond
	}
	return 0
}

// next returns the successor phase; ok is false for terminal phases.
func (p deletePhase) next() (deletePhase, bool) {
	switch p {
	case phaseExpanding:
		return phaseSpreading, true
	case phaseSpreading:
		return phaseTransforming, true
	case phaseTransforming:
		return phaseFading, true
	case phaseFading:
		return phaseComplete, true
	}
	return p, false
}

// delAnim tracks one item's animation run. The generation tags every
// scheduled tick so ticks from an abandoned run are ignored instead of
// advancing a state they no longer own.
type delAnim struct {
	phase deletePhase
	gen   int
}

// active reports whether the item is mid-animation and its interactions
// (toggle, edit, another delete) must stay disabled.
func (a *delAnim) active() bool {
	return a != nil && a.phase != phaseIdle
}
