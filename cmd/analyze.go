package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pulseworks/rhythmscan/core"
	"github.com/pulseworks/rhythmscan/internal/contract"
)

// analyzeCmd performs the full analysis of a recording.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <input-file>",
	Short: "Analyze an ECG recording and report arrhythmia verdicts.",
	Long: `Run the full analysis pipeline on a single-lead ECG recording.

The pipeline detects R peaks, measures RR intervals and heart rate
variability, searches for P waves, classifies QRS morphology, and runs a
frequency-domain analysis. The findings are combined into per-arrhythmia
probabilities with confidence levels.

Accepted input formats:
- CSV with a header (columns named ecg, ECG, signal, data, values or
  amplitude are picked up automatically) or headerless CSV
- Plain text with one value per line, or comma/whitespace separated
- Raw little-endian float64 samples (.f64)

Examples:
  # Analyze a recording sampled at 250 Hz
  rhythmscan analyze recording.csv

  # Override the sampling rate and detection threshold
  rhythmscan analyze recording.csv --rate 360 --threshold 0.5

  # Skip filtering for already-clean signals
  rhythmscan analyze recording.csv --preprocess no

  # Full nested result as JSON
  rhythmscan analyze recording.csv --output json

  # Export verdict and beat rows for analytics
  rhythmscan analyze recording.csv --output parquet --output-file result.parquet`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAnalyze(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run analysis", err)
		}
	},
}
