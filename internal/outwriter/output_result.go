package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pulseworks/rhythmscan/internal/contract"
	"github.com/pulseworks/rhythmscan/internal/parquet"
	"github.com/pulseworks/rhythmscan/schema"
)

// WriteResult outputs an analysis result, dispatching based on the output
// format configured.
func WriteResult(result *schema.AnalysisResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg, func(w io.Writer) error {
			return writeVerdictCSV(w, result, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errors.New("parquet output requires --output-file")
		}
		if err := parquet.WriteResultParquet(result, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "%sWrote Parquet to %s\n", savePrefix(cfg), cfg.OutputFile)
		return nil
	default:
		// Default to human-readable table
		return writeWithFile(cfg, func(w io.Writer) error {
			return writeVerdictTable(result, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeVerdictTable generates and writes the human-readable verdict table
// with a vitals summary below it.
func writeVerdictTable(result *schema.AnalysisResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	if result.Err != "" {
		_, err := fmt.Fprintf(writer, "Analysis failed: %s (%d peaks found)\n", result.Err, len(result.RPeaks))
		return err
	}

	table := tablewriter.NewWriter(writer)
	headers := []string{"Rank", "Arrhythmia", "Probability", "Label", "Confidence", "Evidence"}
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	label := contract.GetPlainLabel
	if cfg.UseColors {
		label = contract.GetColorLabel
	}

	var data [][]string
	for i, a := range rankedArrhythmias(result.Arrhythmias) {
		verdict := result.Arrhythmias.Verdicts[a]
		data = append(data, []string{
			strconv.Itoa(i + 1),
			string(a),
			fmtFloat(verdict.Probability),
			label(verdict.Probability),
			string(verdict.Confidence),
			fmt.Sprintf(intFmt, result.Arrhythmias.Evidence[a]),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if rr := result.RR; rr != nil {
		if _, err := fmt.Fprintf(writer, "Vitals: HR %s BPM, SDNN %ss, RMSSD %ss, pNN50 %s%%\n",
			fmtFloat(rr.AverageHR), fmtFloat(rr.SDNN), fmtFloat(rr.RMSSD), fmtFloat(rr.PNN50)); err != nil {
			return err
		}
	}
	if freq := result.Freq; freq != nil && freq.LFHFRatio != nil {
		if _, err := fmt.Fprintf(writer, "HRV: LF/HF ratio %v\n", *freq.LFHFRatio); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v over %d beats\n", duration, len(result.RPeaks)); err != nil {
		return err
	}
	return nil
}

// rankedArrhythmias orders the verdicts by descending probability, with the
// canonical order as tie-breaker so the layout is stable.
func rankedArrhythmias(report *schema.ArrhythmiaReport) []schema.Arrhythmia {
	ranked := make([]schema.Arrhythmia, len(schema.AllArrhythmias))
	copy(ranked, schema.AllArrhythmias)
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && report.Verdicts[ranked[j]].Probability > report.Verdicts[ranked[j-1]].Probability; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}
	return ranked
}

// writeVerdictCSV writes one flat row per arrhythmia verdict.
func writeVerdictCSV(w io.Writer, result *schema.AnalysisResult, fmtFloat func(float64) string) error {
	header := []string{"arrhythmia", "probability", "label", "confidence", "evidence"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		if result.Arrhythmias == nil {
			return nil
		}
		for _, a := range rankedArrhythmias(result.Arrhythmias) {
			verdict := result.Arrhythmias.Verdicts[a]
			rec := []string{
				string(a),
				fmtFloat(verdict.Probability),
				contract.GetPlainLabel(verdict.Probability),
				string(verdict.Confidence),
				strconv.Itoa(result.Arrhythmias.Evidence[a]),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
