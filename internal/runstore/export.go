package runstore

import (
	"errors"
	"fmt"

	"github.com/pulseworks/rhythmscan/internal/contract"
	"github.com/pulseworks/rhythmscan/internal/parquet"
	"github.com/pulseworks/rhythmscan/schema"
)

// ExecuteRunsExport exports the run history to Parquet files for analytics.
func ExecuteRunsExport(store contract.RunStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no run data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)

	runs, err := store.ListRuns(contract.MaxResultLimit)
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	verdicts, err := collectVerdicts(store, runs)
	if err != nil {
		return err
	}

	if err := parquet.WriteRunsExport(runs, verdicts, outputFile); err != nil {
		return fmt.Errorf("failed to write Parquet export: %w", err)
	}

	fmt.Printf("Exported %d runs to %s.runs.parquet and %s.verdicts.parquet\n", len(runs), outputFile, outputFile)
	return nil
}

// collectVerdicts gathers the verdict rows for every exported run.
func collectVerdicts(store contract.RunStore, runs []schema.AnalysisRunRecord) ([]schema.VerdictRecord, error) {
	var verdicts []schema.VerdictRecord
	for _, run := range runs {
		rows, err := store.GetVerdicts(run.RunID)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve verdicts for run %d: %w", run.RunID, err)
		}
		verdicts = append(verdicts, rows...)
	}
	return verdicts, nil
}
