package groebner

import "gbf2/zdd"

// State is the phase of the saturation loop.
type State int

const (
	// Running means pairs other than delayed ones are pending.
	Running State = iota
	// StalledOnDelayed means only delayed pairs are pending.
	StalledOnDelayed
	// Done means the scheduler is empty.
	Done
	// Bounded means the degree bound stopped the loop with pairs pending.
	Bounded
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case StalledOnDelayed:
		return "stalled-on-delayed"
	case Done:
		return "done"
	case Bounded:
		return "bounded"
	}
	return "unknown"
}

// Stats are the counters of a run.
type Stats struct {
	ChainCriterions           int
	EasyProductCriterions     int
	ExtendedProductCriterions int
	VariableChainCriterions   int
	ReductionSteps            int
	NormalForms               int
	CurrentDegree             int
	ZeroReductions            int
	PairsProcessed            int
	LinearAlgebraSteps        int
	Generators                int
	AverageLength             float64
	Cache                     zdd.CacheStats
}

// TracePoint samples the loop after one iteration.
type TracePoint struct {
	Step       int
	Pending    int
	Generators int
	Sugar      int
}
