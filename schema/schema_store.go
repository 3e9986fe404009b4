package schema

import "time"

// AnalysisRunRecord is one tracked analysis run as persisted by the run store.
type AnalysisRunRecord struct {
	RunID         int64      `json:"run_id"`
	Source        string     `json:"source"` // Input file path, or "synthetic"
	SamplingRate  int        `json:"sampling_rate"`
	SampleCount   int        `json:"sample_count"`
	PeakCount     int        `json:"peak_count"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	RunDurationMs *int64     `json:"run_duration_ms,omitempty"`
	ConfigParams  *string    `json:"config_params,omitempty"` // JSON-encoded engine config
}

// VerdictRecord is one per-arrhythmia verdict row attached to a run.
type VerdictRecord struct {
	RunID       int64   `json:"run_id"`
	Arrhythmia  string  `json:"arrhythmia"`
	Probability float64 `json:"probability"`
	Confidence  string  `json:"confidence"`
	Evidence    int     `json:"evidence"`
}

// StoreStatus summarizes the state of the run store for status commands.
type StoreStatus struct {
	Backend     string           `json:"backend"`
	Connected   bool             `json:"connected"`
	TotalRuns   int64            `json:"total_runs"`
	LastRunID   int64            `json:"last_run_id,omitempty"`
	LastRunTime time.Time        `json:"last_run_time,omitempty"`
	TableSizes  map[string]int64 `json:"table_sizes"`
}
