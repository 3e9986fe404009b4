// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/pulseworks/rhythmscan/schema"
)

// RunStore defines the interface for tracking analysis runs and storing verdicts.
// This allows mocking the store for testing.
type RunStore interface {
	// BeginRun creates a new analysis run and returns its unique ID
	BeginRun(startTime time.Time, source string, samplingRate, sampleCount int, configParams map[string]any) (int64, error)

	// EndRun updates the analysis run with completion data
	EndRun(runID int64, endTime time.Time, peakCount int) error

	// RecordVerdicts stores the per-arrhythmia verdicts for a run
	RecordVerdicts(runID int64, report *schema.ArrhythmiaReport) error

	// ListRuns returns the most recent runs, newest first
	ListRuns(limit int) ([]schema.AnalysisRunRecord, error)

	// GetVerdicts returns the stored verdicts for a run
	GetVerdicts(runID int64) ([]schema.VerdictRecord, error)

	// GetStatus returns status information about the run store
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection
	Close() error
}
