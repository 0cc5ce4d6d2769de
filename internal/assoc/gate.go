package assoc

// Gate is a boolean admissibility predicate over a candidate pair,
// evaluated before scoring. Implementations must be stateless or
// configuration-only, and immutable after construction: the associator
// may evaluate the chain in any order and short-circuits on the first
// rejection.
type Gate interface {
	Admit(a, b Item) bool
}

// MeasureThresholdGate admits a pair when a wrapped measure's output is on
// the admissible side of a threshold. With Minimise set, scores at or
// below the threshold pass; otherwise scores at or above it pass. A pair
// the measure cannot score at all is inadmissible.
type MeasureThresholdGate struct {
	measure   Measure
	threshold float64
	minimise  bool
}

// NewMeasureThresholdGate wraps measure in a threshold gate. minimise
// selects the admissible side: true admits low scores, false high ones.
func NewMeasureThresholdGate(measure Measure, threshold float64, minimise bool) *MeasureThresholdGate {
	return &MeasureThresholdGate{
		measure:   measure,
		threshold: threshold,
		minimise:  minimise,
	}
}

// Admit reports whether the pair's measure score clears the threshold.
func (g *MeasureThresholdGate) Admit(a, b Item) bool {
	score, ok := g.measure.Score(a, b)
	if !ok {
		return false
	}
	if g.minimise {
		return score <= g.threshold
	}
	return g.threshold <= score
}
