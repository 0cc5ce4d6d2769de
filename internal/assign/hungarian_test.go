package assign

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// emptyMatrix is a degenerate mat.Matrix with a zero dimension, which
// mat.Dense cannot represent directly.
type emptyMatrix struct{ r, c int }

func (m emptyMatrix) Dims() (int, int)    { return m.r, m.c }
func (m emptyMatrix) At(i, j int) float64 { panic("at on empty matrix") }
func (m emptyMatrix) T() mat.Matrix       { return emptyMatrix{m.c, m.r} }

func TestHungarianSolve_EmptyInfeasible(t *testing.T) {
	s := NewHungarianSolver()

	_, err := s.Solve(emptyMatrix{0, 2}, false)
	if !errors.Is(err, ErrInfeasible) {
		t.Errorf("expected ErrInfeasible for 0x2 matrix, got %v", err)
	}

	_, err = s.Solve(emptyMatrix{2, 0}, false)
	if !errors.Is(err, ErrInfeasible) {
		t.Errorf("expected ErrInfeasible for 2x0 matrix, got %v", err)
	}
}

func TestHungarianSolve_SingleElement(t *testing.T) {
	s := NewHungarianSolver()
	res, err := s.Solve(mat.NewDense(1, 1, []float64{5}), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.RowToCol) != 1 || res.RowToCol[0] != 0 {
		t.Errorf("expected [0], got %v", res.RowToCol)
	}
	if res.Objective != 5 {
		t.Errorf("expected objective 5, got %v", res.Objective)
	}
}

func TestHungarianSolve_SquareOptimal(t *testing.T) {
	// Classic 3x3 assignment problem:
	//   [1 2 3]     Optimal: row0→col0 (1), row1→col1 (4), row2→col2 (5) = 10
	//   [4 4 6]     NOT: row0→col0 (1), row1→col2 (6), row2→col1 (8) = 15
	//   [9 8 5]
	cost := mat.NewDense(3, 3, []float64{
		1, 2, 3,
		4, 4, 6,
		9, 8, 5,
	})

	res, err := NewHungarianSolver().Solve(cost, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, j := range res.RowToCol {
		if j == Unassigned {
			t.Errorf("row %d unassigned", i)
		}
	}
	if res.Objective != 10 {
		t.Errorf("expected optimal cost 10, got %v (assignments: %v)", res.Objective, res.RowToCol)
	}
}

func TestHungarianSolve_Forbidden(t *testing.T) {
	// Row 1 has no reachable column (all forbidden).
	cost := mat.NewDense(2, 2, []float64{
		1, 2,
		Forbidden, Forbidden,
	})

	res, err := NewHungarianSolver().Solve(cost, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RowToCol[0] == Unassigned {
		t.Errorf("row 0 should be assigned, got %d", res.RowToCol[0])
	}
	if res.RowToCol[1] != Unassigned {
		t.Errorf("row 1 should be unassigned, got %d", res.RowToCol[1])
	}
}

func TestHungarianSolve_MoreRowsThanCols(t *testing.T) {
	// 3 rows, 2 cols → one row must go unassigned.
	cost := mat.NewDense(3, 2, []float64{
		1, 10,
		10, 1,
		5, 5,
	})

	res, err := NewHungarianSolver().Solve(cost, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assigned := 0
	for _, j := range res.RowToCol {
		if j != Unassigned {
			assigned++
		}
	}
	if assigned != 2 {
		t.Errorf("expected exactly 2 assigned rows, got %d (result: %v)", assigned, res.RowToCol)
	}

	// Optimal: row0→col0(1), row1→col1(1) = 2
	if res.Objective != 2 {
		t.Errorf("expected optimal cost 2, got %v (assignments: %v)", res.Objective, res.RowToCol)
	}
}

func TestHungarianSolve_MoreColsThanRows(t *testing.T) {
	// 2 rows, 3 cols → all rows assigned.
	cost := mat.NewDense(2, 3, []float64{
		10, 1, 5,
		5, 10, 1,
	})

	res, err := NewHungarianSolver().Solve(cost, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, j := range res.RowToCol {
		if j == Unassigned {
			t.Errorf("row %d unassigned", i)
		}
	}

	// Optimal: row0→col1(1), row1→col2(1) = 2
	if res.Objective != 2 {
		t.Errorf("expected optimal cost 2, got %v (assignments: %v)", res.Objective, res.RowToCol)
	}
}

func TestHungarianSolve_AllZeroCost(t *testing.T) {
	res, err := NewHungarianSolver().Solve(mat.NewDense(2, 2, nil), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RowToCol[0] == res.RowToCol[1] {
		t.Errorf("both rows assigned to same column: %v", res.RowToCol)
	}
}

func TestHungarianSolve_Maximise(t *testing.T) {
	// Under maximisation the diagonal (4+3=7) beats the anti-diagonal
	// (1+2=3).
	cost := mat.NewDense(2, 2, []float64{
		4, 1,
		2, 3,
	})

	res, err := NewHungarianSolver().Solve(cost, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RowToCol[0] != 0 || res.RowToCol[1] != 1 {
		t.Errorf("expected diagonal assignment, got %v", res.RowToCol)
	}
	if res.Objective != 7 {
		t.Errorf("expected objective 7, got %v", res.Objective)
	}
}

func TestHungarianSolve_LargerOptimality(t *testing.T) {
	// 4x4 problem with known optimal.
	// Optimal assignment: (0,3)=1, (1,2)=2, (2,1)=3, (3,0)=4 → total=10
	cost := mat.NewDense(4, 4, []float64{
		10, 5, 7, 1,
		8, 9, 2, 6,
		7, 3, 11, 5,
		4, 12, 8, 9,
	})

	res, err := NewHungarianSolver().Solve(cost, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, j := range res.RowToCol {
		if j == Unassigned {
			t.Errorf("row %d unassigned in 4×4 problem", i)
		}
	}
	if res.Objective != 10 {
		t.Errorf("expected optimal cost 10, got %v (assignments: %v)", res.Objective, res.RowToCol)
	}
}
