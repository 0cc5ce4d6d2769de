package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/trackassoc/internal/assoc"
)

// storeItem is a minimal keyed item for persistence tests.
type storeItem string

func (s storeItem) Key() string { return string(s) }

func openTestStore(t *testing.T) *RunStore {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "assoc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRunStore_InsertAndGet(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	run := &AssociationRun{
		RunID:            NewRunID(),
		CreatedUnixNanos: time.Now().UnixNano(),
		Maximise:         false,
		Threshold:        5,
		FailGateValue:    1e6,
		NumA:             3,
		NumB:             4,
		NumAssociated:    2,
		NumUnassociatedA: 1,
		NumUnassociatedB: 2,
	}
	set := assoc.AssociationSet{Associations: []assoc.Association{
		{A: storeItem("a1"), B: storeItem("b1"), Score: 1.25, Measured: true},
		{A: storeItem("a2"), B: storeItem("b3"), Score: 1e6, Measured: false},
	}}

	require.NoError(t, s.InsertRun(run, set))

	got, err := s.GetRun(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, run, got)

	pairs, err := s.GetRunPairs(run.RunID)
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, RunPair{ItemA: "a1", ItemB: "b1", Score: 1.25, Measured: true}, pairs[0])
	assert.Equal(t, RunPair{ItemA: "a2", ItemB: "b3", Score: 1e6, Measured: false}, pairs[1])
}

func TestRunStore_GetMissingRun(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	_, err := s.GetRun("run_missing")
	assert.Error(t, err)
}

func TestRunStore_ListRuns(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	base := time.Now().UnixNano()
	var ids []string
	for i := 0; i < 3; i++ {
		run := &AssociationRun{
			RunID:            NewRunID(),
			CreatedUnixNanos: base + int64(i),
		}
		require.NoError(t, s.InsertRun(run, assoc.AssociationSet{}))
		ids = append(ids, run.RunID)
	}

	runs, err := s.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, ids[2], runs[0].RunID)
	assert.Equal(t, ids[1], runs[1].RunID)

	all, err := s.ListRuns(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRunStore_EmptyPairs(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	run := &AssociationRun{RunID: NewRunID(), CreatedUnixNanos: 1}
	require.NoError(t, s.InsertRun(run, assoc.AssociationSet{}))

	pairs, err := s.GetRunPairs(run.RunID)
	require.NoError(t, err)
	assert.Empty(t, pairs)
}
