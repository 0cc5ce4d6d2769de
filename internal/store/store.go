// Package store contains the SQLite repository for association runs.
//
// All database read/write operations for runs and accepted pairs belong
// here rather than in the association packages. This keeps the core free
// of SQL noise and makes it easy to swap storage for testing.
package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/trackassoc/internal/assoc"
)

// schema.sql defines the tables for persisted association runs and their
// accepted pairs.
//
//go:embed schema.sql
var schemaSQL string

// RunStore persists association runs to SQLite.
type RunStore struct {
	db *sql.DB
}

// AssociationRun is one persisted Associate call: its configuration
// snapshot and result counts.
type AssociationRun struct {
	RunID            string
	CreatedUnixNanos int64
	Maximise         bool
	Threshold        float64
	FailGateValue    float64
	NumA             int
	NumB             int
	NumAssociated    int
	NumUnassociatedA int
	NumUnassociatedB int
}

// RunPair is one accepted association within a persisted run.
type RunPair struct {
	ItemA    string
	ItemB    string
	Score    float64
	Measured bool
}

// NewRunID returns a fresh globally unique run identifier.
func NewRunID() string {
	return fmt.Sprintf("run_%s", uuid.NewString())
}

// Open opens (creating if needed) the store at path and applies the
// schema.
func Open(path string) (*RunStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open association store: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply association store schema: %w", err)
	}

	log.Println("initialised association store schema")

	return &RunStore{db: db}, nil
}

// Close closes the underlying database.
func (s *RunStore) Close() error {
	return s.db.Close()
}

// InsertRun writes a run and its accepted pairs in one transaction.
func (s *RunStore) InsertRun(run *AssociationRun, set assoc.AssociationSet) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin insert run: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO assoc_runs (
			run_id, created_unix_nanos, maximise, threshold, fail_gate_value,
			num_a, num_b, num_associated, num_unassociated_a, num_unassociated_b
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.RunID,
		run.CreatedUnixNanos,
		run.Maximise,
		run.Threshold,
		run.FailGateValue,
		run.NumA,
		run.NumB,
		run.NumAssociated,
		run.NumUnassociatedA,
		run.NumUnassociatedB,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.RunID, err)
	}

	for _, a := range set.Associations {
		_, err = tx.Exec(`
			INSERT INTO assoc_pairs (run_id, item_a, item_b, score, measured)
			VALUES (?, ?, ?, ?, ?)
		`, run.RunID, a.A.Key(), a.B.Key(), a.Score, a.Measured)
		if err != nil {
			return fmt.Errorf("insert pair %s/%s: %w", a.A.Key(), a.B.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert run: %w", err)
	}
	return nil
}

// GetRun returns a run by ID, or sql.ErrNoRows wrapped when absent.
func (s *RunStore) GetRun(runID string) (*AssociationRun, error) {
	row := s.db.QueryRow(`
		SELECT run_id, created_unix_nanos, maximise, threshold, fail_gate_value,
		       num_a, num_b, num_associated, num_unassociated_a, num_unassociated_b
		FROM assoc_runs WHERE run_id = ?
	`, runID)

	run := &AssociationRun{}
	err := row.Scan(
		&run.RunID,
		&run.CreatedUnixNanos,
		&run.Maximise,
		&run.Threshold,
		&run.FailGateValue,
		&run.NumA,
		&run.NumB,
		&run.NumAssociated,
		&run.NumUnassociatedA,
		&run.NumUnassociatedB,
	)
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", runID, err)
	}
	return run, nil
}

// GetRunPairs returns the accepted pairs of a run in insertion order.
func (s *RunStore) GetRunPairs(runID string) ([]RunPair, error) {
	rows, err := s.db.Query(`
		SELECT item_a, item_b, score, measured
		FROM assoc_pairs WHERE run_id = ? ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("get pairs for run %s: %w", runID, err)
	}
	defer rows.Close()

	var pairs []RunPair
	for rows.Next() {
		var p RunPair
		if err := rows.Scan(&p.ItemA, &p.ItemB, &p.Score, &p.Measured); err != nil {
			return nil, fmt.Errorf("scan pair for run %s: %w", runID, err)
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pairs for run %s: %w", runID, err)
	}
	return pairs, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *RunStore) ListRuns(limit int) ([]*AssociationRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT run_id, created_unix_nanos, maximise, threshold, fail_gate_value,
		       num_a, num_b, num_associated, num_unassociated_a, num_unassociated_b
		FROM assoc_runs ORDER BY created_unix_nanos DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*AssociationRun
	for rows.Next() {
		run := &AssociationRun{}
		err := rows.Scan(
			&run.RunID,
			&run.CreatedUnixNanos,
			&run.Maximise,
			&run.Threshold,
			&run.FailGateValue,
			&run.NumA,
			&run.NumB,
			&run.NumAssociated,
			&run.NumUnassociatedA,
			&run.NumUnassociatedB,
		)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}
