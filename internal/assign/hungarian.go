package assign

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// HungarianSolver implements the Kuhn–Munkres (Hungarian) algorithm for
// optimal one-to-one assignment. It solves the rectangular problem in
// O(dim³) time where dim = max(rows, cols), avoiding the track splitting
// a greedy nearest-neighbour matcher produces when two rows compete for
// the same column.
//
// Cells with cost ≥ Forbidden are never selected; rows with no selectable
// cell come back Unassigned.
type HungarianSolver struct{}

// NewHungarianSolver returns a ready-to-use Hungarian solver. The solver
// carries no state and is safe for concurrent use.
func NewHungarianSolver() *HungarianSolver {
	return &HungarianSolver{}
}

// Solve finds the optimal assignment for the given cost matrix. Maximise
// flips the objective by negating finite cells internally; forbidden cells
// stay forbidden in either direction.
//
// Returns ErrInfeasible when either dimension is zero.
func (s *HungarianSolver) Solve(cost mat.Matrix, maximise bool) (Result, error) {
	n, m := cost.Dims()
	if n == 0 || m == 0 {
		return Result{}, fmt.Errorf("%w: %dx%d cost matrix", ErrInfeasible, n, m)
	}

	// Make the matrix square by padding with Forbidden so excess rows
	// stay unassigned.
	dim := n
	if m > dim {
		dim = m
	}

	c := make([][]float64, dim)
	for i := 0; i < dim; i++ {
		c[i] = make([]float64, dim)
		for j := 0; j < dim; j++ {
			if i < n && j < m {
				v := cost.At(i, j)
				switch {
				case v >= Forbidden:
					c[i][j] = Forbidden
				case maximise:
					c[i][j] = -v
				default:
					c[i][j] = v
				}
			} else {
				c[i][j] = Forbidden
			}
		}
	}

	// Kuhn-Munkres with potentials (Jonker-Volgenant variant).
	// Uses 1-indexed arrays internally for cleaner index arithmetic.
	const inf = math.MaxFloat64 / 2

	u := make([]float64, dim+1) // Row potentials
	v := make([]float64, dim+1) // Column potentials
	p := make([]int, dim+1)     // p[j] = row assigned to column j
	way := make([]int, dim+1)   // way[j] = previous column in augmenting path
	minv := make([]float64, dim+1)
	used := make([]bool, dim+1)

	for i := 1; i <= dim; i++ {
		p[0] = i
		j0 := 0 // Virtual column

		for j := 1; j <= dim; j++ {
			minv[j] = inf
			used[j] = false
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := -1

			for j := 1; j <= dim; j++ {
				if used[j] {
					continue
				}
				cur := c[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}

			if j1 < 0 {
				break
			}

			for j := 0; j <= dim; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}

			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		// Augment along the path.
		for j0 != 0 {
			p[j0] = p[way[j0]]
			j0 = way[j0]
		}
	}

	// Extract row → column assignments from the column-indexed solution.
	rowAssign := make([]int, dim)
	for i := range rowAssign {
		rowAssign[i] = Unassigned
	}
	for j := 1; j <= dim; j++ {
		if p[j] > 0 && p[j] <= dim {
			rowAssign[p[j]-1] = j - 1
		}
	}

	// Trim to original dimensions, reject forbidden assignments and sum
	// the achieved objective under the original costs.
	res := Result{RowToCol: make([]int, n)}
	for i := 0; i < n; i++ {
		col := rowAssign[i]
		if col < 0 || col >= m || cost.At(i, col) >= Forbidden {
			res.RowToCol[i] = Unassigned
			continue
		}
		res.RowToCol[i] = col
		res.Objective += cost.At(i, col)
	}

	return res, nil
}
