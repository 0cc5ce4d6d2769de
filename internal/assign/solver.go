package assign

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Forbidden is the cost-matrix sentinel for cells a solver must never
// select. Any cell with a cost at or above this value is treated as
// non-existent: a row whose every cell is forbidden stays unassigned.
//
// This is deliberately far above any plausible measure output (including
// the associator's configurable fail-gate value, default 1e6) so the two
// sentinels cannot collide.
const Forbidden = 1e18

// Unassigned marks a row left without a column in a Result.
const Unassigned = -1

// ErrInfeasible reports that no assignment exists at all, e.g. a cost
// matrix with a zero-length dimension. Callers must treat this as a hard
// failure, distinct from an empty-but-valid matching.
var ErrInfeasible = errors.New("assignment infeasible")

// Result is the outcome of a feasible assignment.
type Result struct {
	// Objective is the summed cost of the selected cells, under the
	// original (non-negated) matrix regardless of direction.
	Objective float64

	// RowToCol maps each row index to its assigned column, or Unassigned
	// when the row received no column (rectangular matrices, or all of the
	// row's cells forbidden).
	RowToCol []int
}

// Solver solves the one-to-one assignment problem on a dense cost matrix.
// When maximise is true the solver picks the matching with the greatest
// total cost, otherwise the least. Implementations must return
// ErrInfeasible (possibly wrapped) for degenerate inputs rather than an
// empty Result.
type Solver interface {
	Solve(cost mat.Matrix, maximise bool) (Result, error)
}
