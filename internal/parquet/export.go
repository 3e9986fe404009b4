package parquet

import (
	"github.com/pulseworks/rhythmscan/schema"
)

// Run represents one analysis run row for run history exports.
type Run struct {
	// RunID is the unique identifier of the run
	RunID int64 `parquet:"run_id,snappy"`

	// Source is the input file path, or "synthetic"
	Source string `parquet:"source,snappy"`

	// SamplingRate is the sampling rate of the analyzed signal in Hz
	SamplingRate int32 `parquet:"sampling_rate,snappy"`

	// SampleCount is the number of samples in the analyzed signal
	SampleCount int64 `parquet:"sample_count,snappy"`

	// PeakCount is the number of R peaks detected
	PeakCount int32 `parquet:"peak_count,snappy"`

	// StartTime is when the run started (Unix milliseconds)
	StartTime int64 `parquet:"start_time,timestamp(millisecond),snappy"`

	// EndTime is when the run finished (Unix milliseconds, nullable)
	EndTime *int64 `parquet:"end_time,optional,timestamp(millisecond),snappy"`

	// RunDurationMs is the run duration in milliseconds (nullable)
	RunDurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	// ConfigParams is the JSON-encoded engine configuration (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// RunVerdict represents one stored verdict row keyed by run.
type RunVerdict struct {
	// RunID is the run the verdict belongs to
	RunID int64 `parquet:"run_id,snappy"`

	// Arrhythmia is the arrhythmia identifier (e.g. "afib")
	Arrhythmia string `parquet:"arrhythmia,snappy"`

	// Probability is the verdict probability on the 0-100 scale
	Probability float64 `parquet:"probability,snappy"`

	// Confidence is the confidence level (low, medium, high)
	Confidence string `parquet:"confidence,snappy"`

	// Evidence is the number of corroborating findings
	Evidence int32 `parquet:"evidence,snappy"`
}

// ConvertRunRecords converts store run records to Parquet rows.
func ConvertRunRecords(records []schema.AnalysisRunRecord) []Run {
	rows := make([]Run, 0, len(records))
	for _, r := range records {
		row := Run{
			RunID:         r.RunID,
			Source:        r.Source,
			SamplingRate:  int32(r.SamplingRate),
			SampleCount:   int64(r.SampleCount),
			PeakCount:     int32(r.PeakCount),
			StartTime:     r.StartTime.UnixMilli(),
			RunDurationMs: r.RunDurationMs,
			ConfigParams:  r.ConfigParams,
		}
		if r.EndTime != nil {
			endMs := r.EndTime.UnixMilli()
			row.EndTime = &endMs
		}
		rows = append(rows, row)
	}
	return rows
}

// ConvertVerdictRecords converts store verdict records to Parquet rows.
func ConvertVerdictRecords(records []schema.VerdictRecord) []RunVerdict {
	rows := make([]RunVerdict, 0, len(records))
	for _, v := range records {
		rows = append(rows, RunVerdict{
			RunID:       v.RunID,
			Arrhythmia:  v.Arrhythmia,
			Probability: v.Probability,
			Confidence:  v.Confidence,
			Evidence:    int32(v.Evidence),
		})
	}
	return rows
}

// WriteRunsExport writes run history and verdicts as two Parquet files:
// <path>.runs.parquet and <path>.verdicts.parquet.
func WriteRunsExport(runs []schema.AnalysisRunRecord, verdicts []schema.VerdictRecord, outputPath string) error {
	if err := writeParquetFile(outputPath+".runs.parquet", ConvertRunRecords(runs)); err != nil {
		return err
	}
	return writeParquetFile(outputPath+".verdicts.parquet", ConvertVerdictRecords(verdicts))
}
