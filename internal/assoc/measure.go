package assoc

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Measure is a pairwise (dis)similarity function. The second return is
// false when the pair is numerically incomparable — e.g. two histories
// with no shared timestamps. Callers must treat that as "cannot be
// compared", never as zero or infinity.
type Measure interface {
	Score(a, b Item) (float64, bool)
}

// StateMeasure scores a pair of per-timestamp sub-states. It is the
// building block the recent-window temporal measure aggregates.
type StateMeasure interface {
	ScoreStates(a, b State) float64
}

// DefaultStatesToCompare bounds the temporal measure's window when no
// explicit size is configured.
const DefaultStatesToCompare = 10

// RecentStateMeasure compares two time-ordered state histories by
// averaging a sub-measure over the timestamps their recent windows share.
// Computation is bounded to the last StatesToCompare entries of each
// history regardless of total length.
type RecentStateMeasure struct {
	StateMeasure StateMeasure

	// StatesToCompare is the recent-window size per item. Values < 1
	// fall back to DefaultStatesToCompare.
	StatesToCompare int
}

// Score averages the sub-measure over the shared recent timestamps of a
// and b. Returns no score when either item carries no state history or
// the recent windows never overlap in time.
func (m *RecentStateMeasure) Score(a, b Item) (float64, bool) {
	sa, ok := a.(Sequenced)
	if !ok {
		return 0, false
	}
	sb, ok := b.(Sequenced)
	if !ok {
		return 0, false
	}

	n := m.StatesToCompare
	if n < 1 {
		n = DefaultStatesToCompare
	}

	windowA := recentByTimestamp(sa.States(), n)
	windowB := recentByTimestamp(sb.States(), n)

	// Shared timestamps, sorted so the mean is accumulated in a stable
	// order independent of map iteration.
	shared := make([]int64, 0, len(windowA))
	for ts := range windowA {
		if _, ok := windowB[ts]; ok {
			shared = append(shared, ts)
		}
	}
	if len(shared) == 0 {
		return 0, false
	}
	sort.Slice(shared, func(i, j int) bool { return shared[i] < shared[j] })

	scores := make([]float64, 0, len(shared))
	for _, ts := range shared {
		scores = append(scores, m.StateMeasure.ScoreStates(windowA[ts], windowB[ts]))
	}

	return stat.Mean(scores, nil), true
}

// recentByTimestamp indexes the newest n states by timestamp, traversing
// newest to oldest. On duplicate timestamps the later entry in that
// traversal wins; duplicates are not expected in valid input.
func recentByTimestamp(states []State, n int) map[int64]State {
	window := make(map[int64]State, n)
	for i := len(states) - 1; i >= 0 && len(states)-1-i < n; i-- {
		window[states[i].UnixNanos()] = states[i]
	}
	return window
}
