package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pulseworks/rhythmscan/internal/contract"
	"github.com/pulseworks/rhythmscan/schema"
)

// WriteRuns outputs the run history, dispatching based on the output format
// configured.
func WriteRuns(runs []schema.AnalysisRunRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg, func(w io.Writer) error {
			return writeJSON(w, runs)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg, func(w io.Writer) error {
			return writeRunsCSV(w, runs)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg, func(w io.Writer) error {
			return writeRunsTable(w, runs, cfg)
		}, "Wrote table")
	}
}

// writeRunsTable renders the run history as a table.
func writeRunsTable(w io.Writer, runs []schema.AnalysisRunRecord, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Run", "Source", "Rate", "Samples", "Peaks", "Started", "Duration"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// Leave room for the six fixed columns plus borders and padding.
	maxSource := getTerminalWidth(cfg) - 60
	if maxSource < 15 {
		maxSource = 15
	}

	var data [][]string
	for _, run := range runs {
		duration := "-"
		if run.RunDurationMs != nil {
			duration = fmt.Sprintf("%dms", *run.RunDurationMs)
		}
		data = append(data, []string{
			strconv.FormatInt(run.RunID, 10),
			contract.TruncatePath(run.Source, maxSource),
			strconv.Itoa(run.SamplingRate),
			strconv.Itoa(run.SampleCount),
			strconv.Itoa(run.PeakCount),
			run.StartTime.Format(contract.DateTimeFormat),
			duration,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d runs\n", len(runs))
	return err
}

// writeRunsCSV writes one flat row per recorded run.
func writeRunsCSV(w io.Writer, runs []schema.AnalysisRunRecord) error {
	header := []string{"run_id", "source", "sampling_rate", "sample_count", "peak_count", "start_time", "run_duration_ms"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, run := range runs {
			duration := ""
			if run.RunDurationMs != nil {
				duration = strconv.FormatInt(*run.RunDurationMs, 10)
			}
			rec := []string{
				strconv.FormatInt(run.RunID, 10),
				run.Source,
				strconv.Itoa(run.SamplingRate),
				strconv.Itoa(run.SampleCount),
				strconv.Itoa(run.PeakCount),
				run.StartTime.Format(contract.DateTimeFormat),
				duration,
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteStoreStatus prints a short status summary for the run store.
func WriteStoreStatus(status schema.StoreStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, "Backend: %s\nConnected: %t\nTotal runs: %d\n",
			status.Backend, status.Connected, status.TotalRuns); err != nil {
			return err
		}
		if status.LastRunID > 0 {
			if _, err := fmt.Fprintf(w, "Last run: %d at %s\n",
				status.LastRunID, status.LastRunTime.Format(contract.DateTimeFormat)); err != nil {
				return err
			}
		}
		for name, size := range status.TableSizes {
			if _, err := fmt.Fprintf(w, "Table %s: %d rows\n", name, size); err != nil {
				return err
			}
		}
		return nil
	}, "Wrote status")
}
