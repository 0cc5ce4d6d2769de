package assoc

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/trackassoc/internal/assign"
	"github.com/banshee-data/trackassoc/internal/config"
)

// DefaultFailGateMinimise is the fail-gate sentinel and threshold default
// under minimisation: effectively "infinity" for any sane measure scale,
// while staying well below assign.Forbidden. Configurable per associator
// because measure scales vary.
const DefaultFailGateMinimise = 1e6

// Config configures an Associator. Measure is required; everything else
// has direction-dependent defaults applied by NewAssociator. The pointer
// fields distinguish "unset" from an explicit zero, matching the tuning
// file convention.
type Config struct {
	// Gates are admissibility predicates evaluated, in order, before the
	// measure. Any rejection stamps the pair with FailGateValue. May be
	// empty.
	Gates []Gate

	// Measure scores admissible pairs.
	Measure Measure

	// Maximise selects the optimisation direction: true treats higher
	// scores as better, false (the default) treats lower as better.
	Maximise bool

	// AssociationThreshold filters solver matches after the optimal
	// assignment. Unset defaults to 0 under maximise and
	// DefaultFailGateMinimise under minimise — a reject-by-default scheme
	// the caller must explicitly relax.
	AssociationThreshold *float64

	// FailGateValue is the sentinel written into cost cells a gate
	// rejected or the measure could not score. Unset defaults follow the
	// same scheme as AssociationThreshold.
	FailGateValue *float64

	// Solver solves the assignment problem. Defaults to the Hungarian
	// solver.
	Solver assign.Solver
}

// ConfigFromTuning builds a Config from loaded tuning defaults, with the
// measure supplied by the caller (measures are code, not configuration).
func ConfigFromTuning(t *config.TuningConfig, measure Measure) Config {
	maximise := t.GetMaximise()
	threshold := t.GetAssociationThreshold(maximise)
	failGate := t.GetFailGateValue(maximise)
	return Config{
		Measure:              measure,
		Maximise:             maximise,
		AssociationThreshold: &threshold,
		FailGateValue:        &failGate,
	}
}

// Associator performs gated optimal one-to-one association. It is
// immutable after construction and safe for concurrent use as long as its
// gates, measure and solver are.
type Associator struct {
	gates     []Gate
	measure   Measure
	maximise  bool
	threshold float64
	failGate  float64
	solver    assign.Solver
}

// NewAssociator validates cfg, applies direction-dependent defaults and
// returns the associator.
func NewAssociator(cfg Config) (*Associator, error) {
	if cfg.Measure == nil {
		return nil, errors.New("assoc: config requires a measure")
	}

	a := &Associator{
		gates:    cfg.Gates,
		measure:  cfg.Measure,
		maximise: cfg.Maximise,
		solver:   cfg.Solver,
	}
	if a.solver == nil {
		a.solver = assign.NewHungarianSolver()
	}

	if cfg.FailGateValue != nil {
		a.failGate = *cfg.FailGateValue
	} else if !cfg.Maximise {
		a.failGate = DefaultFailGateMinimise
	}
	if cfg.AssociationThreshold != nil {
		a.threshold = *cfg.AssociationThreshold
	} else if !cfg.Maximise {
		a.threshold = DefaultFailGateMinimise
	}

	return a, nil
}

// Associate matches setA against setB one-to-one and partitions both sets
// into associations plus unassociated leftovers. Input order fixes the
// cost-matrix enumeration but never changes which pairs are chosen.
//
// The call is a pure function of the inputs and the associator's
// configuration; the cost matrix it allocates is O(|A|·|B|), which is the
// scaling limit for very large sets.
//
// Errors are fatal and exclusive of partial results: an empty input set
// makes the assignment infeasible (assign.ErrInfeasible), and any panic
// from a gate or measure propagates, since a partially built cost matrix
// cannot be corrected.
func (a *Associator) Associate(setA, setB []Item) (AssociationSet, []Item, []Item, error) {
	nA, nB := len(setA), len(setB)
	if nA == 0 || nB == 0 {
		return AssociationSet{}, nil, nil, fmt.Errorf("associate %dx%d: %w", nA, nB, assign.ErrInfeasible)
	}

	// Cost matrix plus a parallel feasibility mask. The mask records
	// which cells hold a real measure score; solver and threshold both
	// operate on the materialised numeric value so sentinel behaviour
	// stays uniform, while accepted pairs report whether their score was
	// measured.
	cost := mat.NewDense(nA, nB, nil)
	measured := make([]bool, nA*nB)
	for i, itemA := range setA {
		for j, itemB := range setB {
			v, ok := a.weigh(itemA, itemB)
			if !ok {
				v = a.failGate
			}
			cost.Set(i, j, v)
			measured[i*nB+j] = ok
		}
	}

	res, err := a.solver.Solve(cost, a.maximise)
	if err != nil {
		return AssociationSet{}, nil, nil, fmt.Errorf("solve assignment: %w", err)
	}

	// Threshold filter on the original matrix cells: the solver's optimum
	// is global, but each pair must still individually clear the
	// configured acceptance threshold.
	var set AssociationSet
	for i, itemA := range setA {
		j := res.RowToCol[i]
		if j == assign.Unassigned {
			continue
		}
		v := cost.At(i, j)
		if a.maximise {
			if v < a.threshold {
				continue
			}
		} else {
			if v > a.threshold {
				continue
			}
		}
		set.Associations = append(set.Associations, Association{
			A:        itemA,
			B:        setB[j],
			Score:    v,
			Measured: measured[i*nB+j],
		})
	}

	matched := set.ItemKeys()
	var unA, unB []Item
	for _, item := range setA {
		if !matched[item.Key()] {
			unA = append(unA, item)
		}
	}
	for _, item := range setB {
		if !matched[item.Key()] {
			unB = append(unB, item)
		}
	}

	return set, unA, unB, nil
}

// weigh computes one cost cell: the measure's score when every gate
// admits the pair and the measure can compare it, otherwise no value.
func (a *Associator) weigh(itemA, itemB Item) (float64, bool) {
	for _, g := range a.gates {
		if !g.Admit(itemA, itemB) {
			return 0, false
		}
	}
	return a.measure.Score(itemA, itemB)
}
