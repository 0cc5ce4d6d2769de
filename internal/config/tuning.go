// Package config loads association tuning defaults from JSON.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for default association parameters.
const DefaultConfigPath = "config/assoc.defaults.json"

// TuningConfig holds association tuning parameters. Fields are pointers
// so a partial JSON file only overrides what it names; the Get* accessors
// supply defaults for anything left nil.
type TuningConfig struct {
	// Optimisation direction: true treats higher measure scores as better.
	Maximise *bool `json:"maximise,omitempty"`

	// Post-solve acceptance threshold. Default depends on direction.
	AssociationThreshold *float64 `json:"association_threshold,omitempty"`

	// Sentinel cost for gate-rejected or incomparable pairs. Default
	// depends on direction.
	FailGateValue *float64 `json:"fail_gate_value,omitempty"`

	// Recent-window size for the temporal measure.
	NStatesToCompare *int `json:"n_states_to_compare,omitempty"`
}

// failGateMinimise mirrors the associator's minimisation sentinel. Kept
// local so config does not depend on the assoc package.
const failGateMinimise = 1e6

// EmptyTuningConfig returns a TuningConfig with all fields unset.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file. Fields omitted
// from the file stay nil, so partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// GetMaximise returns the optimisation direction, defaulting to
// minimisation.
func (c *TuningConfig) GetMaximise() bool {
	if c.Maximise != nil {
		return *c.Maximise
	}
	return false
}

// GetAssociationThreshold returns the acceptance threshold: 0 under
// maximisation, the large minimisation sentinel otherwise.
func (c *TuningConfig) GetAssociationThreshold(maximise bool) float64 {
	if c.AssociationThreshold != nil {
		return *c.AssociationThreshold
	}
	if maximise {
		return 0
	}
	return failGateMinimise
}

// GetFailGateValue returns the fail-gate sentinel, following the same
// direction-dependent scheme as the threshold.
func (c *TuningConfig) GetFailGateValue(maximise bool) float64 {
	if c.FailGateValue != nil {
		return *c.FailGateValue
	}
	if maximise {
		return 0
	}
	return failGateMinimise
}

// GetNStatesToCompare returns the temporal measure window size,
// defaulting to 10.
func (c *TuningConfig) GetNStatesToCompare() int {
	if c.NStatesToCompare != nil && *c.NStatesToCompare > 0 {
		return *c.NStatesToCompare
	}
	return 10
}
