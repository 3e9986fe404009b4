package core

import (
	"math"

	"github.com/pulseworks/rhythmscan/schema"
)

// HRV thresholds for rhythm regularity.
const (
	irregularityCV    = 0.1  // SDNN over mean RR
	irregularityPNN50 = 10.0 // percent
	nn50Threshold     = 0.05 // seconds
)

// AnalyzeRR derives interval statistics and rhythm flags from the R peak
// positions. Returns nil when fewer than two peaks are available.
func AnalyzeRR(cfg *schema.AnalysisConfig, peaks []int) *schema.RRAnalysis {
	if len(peaks) < 2 {
		return nil
	}
	rate := float64(cfg.SamplingRate)

	intervals := make([]int, len(peaks)-1)
	intervalsSec := make([]float64, len(peaks)-1)
	rates := make([]float64, len(peaks)-1)
	for i := range intervals {
		intervals[i] = peaks[i+1] - peaks[i]
		intervalsSec[i] = float64(intervals[i]) / rate
		rates[i] = 60 / intervalsSec[i]
	}

	avgHR := mean(rates)
	sdnn := std(intervalsSec)

	// RMSSD and pNN50 need successive differences; with a single interval
	// they are reported as zero rather than undefined.
	rmssd, pnn50 := 0.0, 0.0
	if diffs := diff(intervalsSec); len(diffs) > 0 {
		sumSq := 0.0
		nn50 := 0
		for _, d := range diffs {
			sumSq += d * d
			if math.Abs(d) > nn50Threshold {
				nn50++
			}
		}
		rmssd = math.Sqrt(sumSq / float64(len(diffs)))
		pnn50 = 100 * float64(nn50) / float64(len(diffs))
	}

	return &schema.RRAnalysis{
		Intervals:    intervals,
		IntervalsSec: intervalsSec,
		AverageHR:    avgHR,
		SDNN:         sdnn,
		RMSSD:        rmssd,
		PNN50:        pnn50,
		Irregular:    sdnn/mean(intervalsSec) > irregularityCV || pnn50 > irregularityPNN50,
		Bradycardia:  avgHR < cfg.Ranges.MinHR,
		Tachycardia:  avgHR > cfg.Ranges.MaxHR,
	}
}
