package systems

import "strconv"

// Phase identifies one stage of a simulation tick.
type Phase uint8

// Tick phases, in the order Game.Step runs them.
const (
	PhasePellets Phase = iota
	PhasePrune
	PhaseFish
	PhaseProps
	PhasePlayer
	PhaseTelemetry

	NumPhases = int(PhaseTelemetry) + 1
)

// PhaseInfo describes a tick phase for the perf panel and CSV columns.
type PhaseInfo struct {
	Key         string // snake_case, used in logs and CSV headers
	Name        string
	Description string
}

var phaseTable = [NumPhases]PhaseInfo{
	PhasePellets:   {"pellets", "Pellets", "Advances falling pellets"},
	PhasePrune:     {"prune", "Prune", "Removes pellets at or below the floor"},
	PhaseFish:      {"fish", "Fish", "Runs fish state machines and pellet hits"},
	PhaseProps:     {"props", "Props", "Cycles decorative prop frames"},
	PhasePlayer:    {"player", "Player", "Applies pointer input and drops pellets"},
	PhaseTelemetry: {"telemetry", "Stats", "Records tick events and flushes windows"},
}

// Info returns the phase's metadata. Unknown phases get their number as key.
func (p Phase) Info() PhaseInfo {
	if int(p) < NumPhases {
		return phaseTable[p]
	}
	return PhaseInfo{Key: "phase_" + strconv.Itoa(int(p)), Name: "?"}
}

func (p Phase) String() string { return p.Info().Key }

// Phases returns every phase in tick order.
func Phases() []Phase {
	out := make([]Phase, NumPhases)
	for i := range out {
		out[i] = Phase(i)
	}
	return out
}
