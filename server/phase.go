package main

// Phase is the lifecycle of a voyage
type Phase string

const (
	PhaseSailing Phase = "sailing" // a wave is running
	PhasePort    Phase = "port"    // between waves, shop open
	PhaseSunk    Phase = "sunk"    // ship went down, voyage over
)

// transitions lists the allowed phase changes
var transitions = map[Phase][]Phase{
	PhaseSailing: {PhasePort, PhaseSunk},
	PhasePort:    {PhaseSailing},
}

// CanTransition reports whether a voyage may move from one phase to another
func CanTransition(from, to Phase) bool {
	for _, p := range transitions[from] {
		if p == to {
			return true
		}
	}
	return false
}
