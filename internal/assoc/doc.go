// Package assoc performs gated, globally optimal one-to-one data
// association between two sets of tracked items.
//
// Responsibilities: admissibility gating (Gate), pairwise scoring
// (Measure, including the recent-window temporal measure), cost-matrix
// construction with a fail-value sentinel, solver invocation through the
// internal/assign contract, post-solve threshold filtering, and the
// partition of inputs into associations plus unassociated leftovers.
// Key types: Associator, Association, AssociationSet.
//
// Dependency rule: assoc may depend on internal/assign and
// internal/config, never the reverse. No SQL/database code is allowed in
// this package.
package assoc
