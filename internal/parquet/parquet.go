// Package parquet provides data structures and functions for exporting
// analysis results to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/pulseworks/rhythmscan/schema"
)

// Verdict represents one arrhythmia verdict row of an analysis result.
type Verdict struct {
	// Arrhythmia is the arrhythmia identifier (e.g. "afib")
	Arrhythmia string `parquet:"arrhythmia,snappy"`

	// Probability is the verdict probability on the 0-100 scale
	Probability float64 `parquet:"probability,snappy"`

	// Confidence is the confidence level (low, medium, high)
	Confidence string `parquet:"confidence,snappy"`

	// Evidence is the number of corroborating findings
	Evidence int32 `parquet:"evidence,snappy"`
}

// Beat represents one detected beat with its per-beat measurements.
type Beat struct {
	// PeakIndex is the sample index of the R peak
	PeakIndex int64 `parquet:"peak_index,snappy"`

	// RRIntervalSec is the interval to the previous beat in seconds (nullable for the first beat)
	RRIntervalSec *float64 `parquet:"rr_interval_sec,optional,snappy"`

	// QRSDurationSec is the measured QRS duration in seconds (nullable when unmeasured)
	QRSDurationSec *float64 `parquet:"qrs_duration_sec,optional,snappy"`

	// PRIntervalSec is the P-to-R interval in seconds (nullable when no P wave was found)
	PRIntervalSec *float64 `parquet:"pr_interval_sec,optional,snappy"`

	// Abnormal flags beats with abnormal morphology
	Abnormal bool `parquet:"abnormal,snappy"`
}

// WriteResultParquet writes the verdicts and beats of a result as two
// Parquet files: <path> for verdicts and <path>.beats for beat rows.
func WriteResultParquet(result *schema.AnalysisResult, outputPath string) error {
	if err := writeParquetFile(outputPath, buildVerdicts(result)); err != nil {
		return err
	}
	return writeParquetFile(outputPath+".beats", buildBeats(result))
}

// buildVerdicts flattens the verdict map into rows, canonical order.
func buildVerdicts(result *schema.AnalysisResult) []Verdict {
	if result.Arrhythmias == nil {
		return nil
	}
	rows := make([]Verdict, 0, len(schema.AllArrhythmias))
	for _, a := range schema.AllArrhythmias {
		verdict := result.Arrhythmias.Verdicts[a]
		rows = append(rows, Verdict{
			Arrhythmia:  string(a),
			Probability: verdict.Probability,
			Confidence:  string(verdict.Confidence),
			Evidence:    int32(result.Arrhythmias.Evidence[a]),
		})
	}
	return rows
}

// buildBeats joins the per-beat measurements keyed by peak position.
func buildBeats(result *schema.AnalysisResult) []Beat {
	rows := make([]Beat, len(result.RPeaks))
	for i, p := range result.RPeaks {
		rows[i] = Beat{PeakIndex: int64(p)}
		if result.RR != nil && i > 0 && i-1 < len(result.RR.IntervalsSec) {
			v := result.RR.IntervalsSec[i-1]
			rows[i].RRIntervalSec = &v
		}
		if result.QRS != nil && i < len(result.QRS.Durations) {
			if d := result.QRS.Durations[i]; d > 0 {
				rows[i].QRSDurationSec = &d
			}
			if i < len(result.QRS.Abnormal) {
				rows[i].Abnormal = result.QRS.Abnormal[i]
			}
		}
		if result.PWave != nil && i < len(result.PWave.PRIntervals) {
			if pr := result.PWave.PRIntervals[i]; pr > 0 {
				rows[i].PRIntervalSec = &pr
			}
		}
	}
	return rows
}

// writeParquetFile writes rows to a Parquet file using struct schema inference.
func writeParquetFile[T any](outputPath string, rows []T) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
