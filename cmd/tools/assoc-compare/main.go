// Package main provides an association algorithm comparison tool.
// It builds synthetic track sets with known ground truth, associates them
// with both the greedy and the Hungarian solver, and reports the
// optimality gap between the two.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/banshee-data/trackassoc/internal/assign"
	"github.com/banshee-data/trackassoc/internal/assoc"
	"github.com/banshee-data/trackassoc/internal/config"
	"github.com/banshee-data/trackassoc/internal/store"
	"github.com/banshee-data/trackassoc/internal/tracks"
)

// Config holds configuration for the comparison run.
type Config struct {
	Tracks     int
	States     int
	NoiseM     float64
	Clutter    int
	Seed       int64
	Threshold  float64
	ConfigPath string
	OutputJSON string
	DBPath     string
	Verbose    bool
}

// ComparisonResult holds the results of the solver comparison.
type ComparisonResult struct {
	Tracks         int         `json:"tracks"`
	States         int         `json:"states"`
	NoiseM         float64     `json:"noise_m"`
	Clutter        int         `json:"clutter"`
	Seed           int64       `json:"seed"`
	Threshold      float64     `json:"threshold"`
	Hungarian      SolverStats `json:"hungarian"`
	Greedy         SolverStats `json:"greedy"`
	AccuracyGapPct float64     `json:"accuracy_gap_pct"`
}

// SolverStats holds per-solver association statistics.
type SolverStats struct {
	Name          string  `json:"name"`
	Associated    int     `json:"associated"`
	UnassociatedA int     `json:"unassociated_a"`
	UnassociatedB int     `json:"unassociated_b"`
	CorrectPairs  int     `json:"correct_pairs"`
	AccuracyPct   float64 `json:"accuracy_pct"`
	TotalScore    float64 `json:"total_score"`
	ProcessingUs  int64   `json:"processing_us"`
}

func main() {
	cfg := parseFlags()

	tuning := config.EmptyTuningConfig()
	if cfg.ConfigPath != "" {
		loaded, err := config.LoadTuningConfig(cfg.ConfigPath)
		if err != nil {
			log.Fatalf("Failed to load tuning config: %v", err)
		}
		tuning = loaded
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	setA, setB, truth := generateSets(rng, cfg)

	measure := &assoc.RecentStateMeasure{
		StateMeasure:    tracks.EuclideanDistance{},
		StatesToCompare: tuning.GetNStatesToCompare(),
	}

	result := ComparisonResult{
		Tracks:    cfg.Tracks,
		States:    cfg.States,
		NoiseM:    cfg.NoiseM,
		Clutter:   cfg.Clutter,
		Seed:      cfg.Seed,
		Threshold: cfg.Threshold,
	}

	var optimalSet assoc.AssociationSet
	var optimalUnA, optimalUnB []assoc.Item

	for _, run := range []struct {
		name   string
		solver assign.Solver
	}{
		{"hungarian", assign.NewHungarianSolver()},
		{"greedy", assign.NewGreedySolver()},
	} {
		associator, err := assoc.NewAssociator(assoc.Config{
			Measure:              measure,
			AssociationThreshold: &cfg.Threshold,
			Solver:               run.solver,
		})
		if err != nil {
			log.Fatalf("Failed to build associator: %v", err)
		}

		start := time.Now()
		set, unA, unB, err := associator.Associate(setA, setB)
		if err != nil {
			log.Fatalf("Association with %s solver failed: %v", run.name, err)
		}
		elapsed := time.Since(start)

		stats := scoreRun(run.name, set, unA, unB, truth)
		stats.ProcessingUs = elapsed.Microseconds()

		if cfg.Verbose {
			for _, a := range set.Associations {
				log.Printf("[%s] %s <-> %s score=%.3f measured=%v",
					run.name, a.A.Key(), a.B.Key(), a.Score, a.Measured)
			}
		}

		switch run.name {
		case "hungarian":
			result.Hungarian = stats
			optimalSet, optimalUnA, optimalUnB = set, unA, unB
		case "greedy":
			result.Greedy = stats
		}
	}

	result.AccuracyGapPct = result.Hungarian.AccuracyPct - result.Greedy.AccuracyPct

	log.Printf("hungarian: %d/%d correct (%.1f%%), total score %.3f",
		result.Hungarian.CorrectPairs, cfg.Tracks, result.Hungarian.AccuracyPct, result.Hungarian.TotalScore)
	log.Printf("greedy:    %d/%d correct (%.1f%%), total score %.3f",
		result.Greedy.CorrectPairs, cfg.Tracks, result.Greedy.AccuracyPct, result.Greedy.TotalScore)
	log.Printf("optimality gap: %.1f%% accuracy, %.3f score",
		result.AccuracyGapPct, result.Greedy.TotalScore-result.Hungarian.TotalScore)

	if cfg.DBPath != "" {
		recordRun(cfg, optimalSet, optimalUnA, optimalUnB, len(setA), len(setB))
	}

	if cfg.OutputJSON != "" {
		if err := exportJSON(result, cfg.OutputJSON); err != nil {
			log.Printf("Warning: failed to export JSON: %v", err)
		} else {
			log.Printf("Results exported to: %s", cfg.OutputJSON)
		}
	}
}

func parseFlags() Config {
	cfg := Config{}

	flag.IntVar(&cfg.Tracks, "tracks", 16, "Number of true tracks per set")
	flag.IntVar(&cfg.States, "states", 10, "States per track")
	flag.Float64Var(&cfg.NoiseM, "noise", 0.5, "Positional noise sigma between paired tracks (metres)")
	flag.IntVar(&cfg.Clutter, "clutter", 4, "Number of clutter tracks added to set B")
	flag.Int64Var(&cfg.Seed, "seed", 1, "Random seed")
	flag.Float64Var(&cfg.Threshold, "threshold", 5.0, "Association acceptance threshold (metres)")
	flag.StringVar(&cfg.ConfigPath, "config", "", "Optional tuning config JSON path")
	flag.StringVar(&cfg.OutputJSON, "json", "", "Output JSON filename (e.g., results.json)")
	flag.StringVar(&cfg.DBPath, "db", "", "Optional SQLite path to record the optimal run")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Log every accepted pair")

	flag.Parse()
	return cfg
}

// generateSets builds set A as random constant-velocity walks, set B as
// noisy copies of A (shuffled) plus clutter tracks, and the ground-truth
// mapping from each B key to its source A key.
func generateSets(rng *rand.Rand, cfg Config) (setA, setB []assoc.Item, truth map[string]string) {
	const frameNanos = int64(100 * time.Millisecond)
	baseNanos := time.Now().UnixNano()

	truth = make(map[string]string, cfg.Tracks)

	walk := func() []tracks.State {
		x := rng.Float64()*100 - 50
		y := rng.Float64()*100 - 50
		vx := rng.Float64()*20 - 10
		vy := rng.Float64()*20 - 10
		states := make([]tracks.State, cfg.States)
		for i := range states {
			dt := float64(i) * 0.1
			states[i] = tracks.State{
				TSUnixNanos: baseNanos + int64(i)*frameNanos,
				X:           x + vx*dt,
				Y:           y + vy*dt,
				VX:          vx,
				VY:          vy,
			}
		}
		return states
	}

	for i := 0; i < cfg.Tracks; i++ {
		a := tracks.NewTrack(walk()...)
		setA = append(setA, a)

		noisy := make([]tracks.State, len(a.History))
		for j, s := range a.History {
			s.X += rng.NormFloat64() * cfg.NoiseM
			s.Y += rng.NormFloat64() * cfg.NoiseM
			noisy[j] = s
		}
		b := tracks.NewTrack(noisy...)
		setB = append(setB, b)
		truth[b.Key()] = a.Key()
	}

	for i := 0; i < cfg.Clutter; i++ {
		setB = append(setB, tracks.NewTrack(walk()...))
	}

	rng.Shuffle(len(setB), func(i, j int) { setB[i], setB[j] = setB[j], setB[i] })
	return setA, setB, truth
}

func scoreRun(name string, set assoc.AssociationSet, unA, unB []assoc.Item, truth map[string]string) SolverStats {
	stats := SolverStats{
		Name:          name,
		Associated:    set.Len(),
		UnassociatedA: len(unA),
		UnassociatedB: len(unB),
	}
	for _, a := range set.Associations {
		stats.TotalScore += a.Score
		if truth[a.B.Key()] == a.A.Key() {
			stats.CorrectPairs++
		}
	}
	if len(truth) > 0 {
		stats.AccuracyPct = 100 * float64(stats.CorrectPairs) / float64(len(truth))
	}
	return stats
}

func recordRun(cfg Config, set assoc.AssociationSet, unA, unB []assoc.Item, numA, numB int) {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Printf("Warning: failed to open run store: %v", err)
		return
	}
	defer st.Close()

	run := &store.AssociationRun{
		RunID:            store.NewRunID(),
		CreatedUnixNanos: time.Now().UnixNano(),
		Maximise:         false,
		Threshold:        cfg.Threshold,
		FailGateValue:    assoc.DefaultFailGateMinimise,
		NumA:             numA,
		NumB:             numB,
		NumAssociated:    set.Len(),
		NumUnassociatedA: len(unA),
		NumUnassociatedB: len(unB),
	}
	if err := st.InsertRun(run, set); err != nil {
		log.Printf("Warning: failed to record run: %v", err)
		return
	}
	log.Printf("Recorded run %s to %s", run.RunID, cfg.DBPath)
}

func exportJSON(result ComparisonResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
