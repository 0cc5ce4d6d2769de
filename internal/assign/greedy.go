package assign

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// GreedySolver assigns each row, in order, to its best still-unclaimed
// column. It is not globally optimal: an early row can claim the column a
// later row needed, forcing that row onto a much worse cell. It exists as
// a baseline so tooling can quantify the gap to the Hungarian solver.
type GreedySolver struct{}

// NewGreedySolver returns a greedy nearest-neighbour solver.
func NewGreedySolver() *GreedySolver {
	return &GreedySolver{}
}

// Solve picks, row by row, the cheapest (or dearest, when maximise is set)
// unclaimed column. Forbidden cells are skipped; a row with no selectable
// cell stays Unassigned.
//
// Returns ErrInfeasible when either dimension is zero.
func (s *GreedySolver) Solve(cost mat.Matrix, maximise bool) (Result, error) {
	n, m := cost.Dims()
	if n == 0 || m == 0 {
		return Result{}, fmt.Errorf("%w: %dx%d cost matrix", ErrInfeasible, n, m)
	}

	res := Result{RowToCol: make([]int, n)}
	claimed := make([]bool, m)

	for i := 0; i < n; i++ {
		best := Unassigned
		var bestCost float64
		for j := 0; j < m; j++ {
			if claimed[j] {
				continue
			}
			v := cost.At(i, j)
			if v >= Forbidden {
				continue
			}
			if best == Unassigned || (maximise && v > bestCost) || (!maximise && v < bestCost) {
				best = j
				bestCost = v
			}
		}
		res.RowToCol[i] = best
		if best != Unassigned {
			claimed[best] = true
			res.Objective += bestCost
		}
	}

	return res, nil
}
