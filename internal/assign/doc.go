// Package assign provides optimal one-to-one assignment over dense cost
// matrices.
//
// The core entry point is the Solver interface: given an n×m cost matrix
// and an optimisation direction, a Solver produces a row-to-column matching
// plus the achieved objective value, or reports infeasibility. The package
// ships a Hungarian (Jonker–Volgenant) solver and a greedy nearest-neighbour
// baseline used for comparison tooling.
//
// No association semantics live here: gating, measures and thresholds
// belong to internal/assoc. This package only sees numbers.
package assign
