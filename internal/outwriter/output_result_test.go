package outwriter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseworks/rhythmscan/internal/contract"
	"github.com/pulseworks/rhythmscan/schema"
)

func sampleReport() *schema.ArrhythmiaReport {
	report := &schema.ArrhythmiaReport{
		Verdicts: map[schema.Arrhythmia]schema.ArrhythmiaVerdict{},
		Evidence: map[schema.Arrhythmia]int{},
	}
	for _, a := range schema.AllArrhythmias {
		report.Verdicts[a] = schema.ArrhythmiaVerdict{Confidence: schema.LowConfidence}
	}
	report.Verdicts[schema.SinusRhythm] = schema.ArrhythmiaVerdict{Probability: 70, Confidence: schema.HighConfidence}
	report.Verdicts[schema.Bradycardia] = schema.ArrhythmiaVerdict{Probability: 90, Confidence: schema.HighConfidence}
	report.Evidence[schema.Bradycardia] = 1
	return report
}

func sampleResult() *schema.AnalysisResult {
	return &schema.AnalysisResult{
		RPeaks: []int{100, 400, 700},
		RR: &schema.RRAnalysis{
			AverageHR: 50, SDNN: 0.01, RMSSD: 0.01, Bradycardia: true,
		},
		Arrhythmias: sampleReport(),
	}
}

// TestWriteVerdictTable checks ranking, labels and the vitals summary.
func TestWriteVerdictTable(t *testing.T) {
	cfg := &contract.Config{Precision: 1, Width: 100}
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	require.NoError(t, writeVerdictTable(sampleResult(), cfg, fmtFloat, intFmt, time.Millisecond, &buf))
	out := buf.String()

	assert.Contains(t, out, "bradycardia")
	assert.Contains(t, out, "Critical")
	assert.Contains(t, out, "Vitals: HR 50.0 BPM")
	assert.Contains(t, out, "over 3 beats")

	// The highest probability row must come first.
	assert.Less(t, strings.Index(out, "bradycardia"), strings.Index(out, "sinus_rhythm"))
}

// TestWriteVerdictTableError checks the degraded-result rendering.
func TestWriteVerdictTableError(t *testing.T) {
	cfg := &contract.Config{Precision: 1}
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	result := &schema.AnalysisResult{RPeaks: []int{42}, Err: "Insufficient R peaks detected for analysis"}
	var buf bytes.Buffer
	require.NoError(t, writeVerdictTable(result, cfg, fmtFloat, intFmt, time.Millisecond, &buf))
	assert.Contains(t, buf.String(), "Insufficient R peaks")
	assert.Contains(t, buf.String(), "(1 peaks found)")
}

// TestWriteVerdictCSV checks the flat CSV layout.
func TestWriteVerdictCSV(t *testing.T) {
	fmtFloat, _ := createFormatters(1)

	var buf bytes.Buffer
	require.NoError(t, writeVerdictCSV(&buf, sampleResult(), fmtFloat))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1+len(schema.AllArrhythmias))
	assert.Equal(t, "arrhythmia,probability,label,confidence,evidence", lines[0])
	assert.Equal(t, "bradycardia,90.0,Critical,high,1", lines[1])
}

// TestRankedArrhythmias verifies the stable tie-break ordering.
func TestRankedArrhythmias(t *testing.T) {
	ranked := rankedArrhythmias(sampleReport())
	require.Len(t, ranked, len(schema.AllArrhythmias))
	assert.Equal(t, schema.Bradycardia, ranked[0])
	assert.Equal(t, schema.SinusRhythm, ranked[1])
	// Zero-probability entries keep canonical order.
	assert.Equal(t, schema.Tachycardia, ranked[2])
	assert.Equal(t, schema.AFib, ranked[3])
}

// TestWriteRunsTable smoke-tests the run history rendering.
func TestWriteRunsTable(t *testing.T) {
	cfg := &contract.Config{Width: 100}
	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	durationMs := int64(45)
	runs := []schema.AnalysisRunRecord{
		{RunID: 1, Source: "ecg.csv", SamplingRate: 250, SampleCount: 5000, PeakCount: 20, StartTime: started, RunDurationMs: &durationMs},
		{RunID: 2, Source: "synthetic", SamplingRate: 250, SampleCount: 7500, PeakCount: 30, StartTime: started},
	}

	var buf bytes.Buffer
	require.NoError(t, writeRunsTable(&buf, runs, cfg))
	out := buf.String()
	assert.Contains(t, out, "ecg.csv")
	assert.Contains(t, out, "45ms")
	assert.Contains(t, out, "Showing 2 runs")
}
