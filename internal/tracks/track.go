// Package tracks provides the reference Item implementation for the
// associator: a tracked object carrying an ordered history of timestamped
// kinematic states, plus the concrete per-state measures the temporal
// measure aggregates.
package tracks

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/banshee-data/trackassoc/internal/assoc"
)

// State is one timestamped kinematic observation of a track: position and
// velocity in the world frame, metres and metres per second.
type State struct {
	TSUnixNanos int64
	X, Y        float64
	VX, VY      float64
}

// UnixNanos returns the state's timestamp in Unix nanoseconds.
func (s State) UnixNanos() int64 {
	return s.TSUnixNanos
}

// Track is an identity-bearing sequence of states, oldest first. Track
// IDs are globally unique UUIDs to prevent collisions across runs and
// long-running deployments.
type Track struct {
	TrackID string
	History []State
}

// NewTrack creates a track with a fresh ID over the given states (oldest
// first).
func NewTrack(states ...State) *Track {
	return &Track{
		TrackID: fmt.Sprintf("trk_%s", uuid.NewString()),
		History: states,
	}
}

// Key returns the track's ID.
func (t *Track) Key() string {
	return t.TrackID
}

// States returns the history as associator states, oldest first.
func (t *Track) States() []assoc.State {
	out := make([]assoc.State, len(t.History))
	for i, s := range t.History {
		out[i] = s
	}
	return out
}

// Append adds a state to the end of the history. The caller is
// responsible for keeping timestamps ascending.
func (t *Track) Append(s State) {
	t.History = append(t.History, s)
}

// mustState narrows an associator state back to the concrete type. A
// mismatch aborts the whole association call, consistent with the
// fail-fast error model for measure internals.
func mustState(s assoc.State) State {
	ts, ok := s.(State)
	if !ok {
		panic(fmt.Sprintf("tracks: measure applied to foreign state type %T", s))
	}
	return ts
}

// EuclideanDistance measures positional distance between two states.
type EuclideanDistance struct{}

// ScoreStates returns the Euclidean distance between the states'
// positions.
func (EuclideanDistance) ScoreStates(a, b assoc.State) float64 {
	sa, sb := mustState(a), mustState(b)
	dx := sa.X - sb.X
	dy := sa.Y - sb.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// SquaredEuclideanDistance measures squared positional distance. Cheaper
// than EuclideanDistance and order-equivalent for gating.
type SquaredEuclideanDistance struct{}

// ScoreStates returns the squared Euclidean distance between the states'
// positions.
func (SquaredEuclideanDistance) ScoreStates(a, b assoc.State) float64 {
	sa, sb := mustState(a), mustState(b)
	dx := sa.X - sb.X
	dy := sa.Y - sb.Y
	return dx*dx + dy*dy
}

// VelocityDelta measures the magnitude of the velocity difference between
// two states. Useful as a gate sub-measure when positional proximity
// alone over-matches crossing objects.
type VelocityDelta struct{}

// ScoreStates returns the magnitude of the velocity difference.
func (VelocityDelta) ScoreStates(a, b assoc.State) float64 {
	sa, sb := mustState(a), mustState(b)
	dvx := sa.VX - sb.VX
	dvy := sa.VY - sb.VY
	return math.Sqrt(dvx*dvx + dvy*dvy)
}
