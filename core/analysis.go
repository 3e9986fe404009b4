package core

import (
	"sync"

	"github.com/pulseworks/rhythmscan/schema"
)

// errInsufficientPeaks is the error text carried by degraded results.
const errInsufficientPeaks = "Insufficient R peaks detected for analysis"

// Analyze runs the full pipeline over a signal: R peak detection followed by
// interval, P wave, morphology and frequency analysis, then arrhythmia
// classification. The four measurement stages are independent given the
// peaks, so they run concurrently. With fewer than two peaks the result
// carries an error message and the peaks found so far.
func Analyze(cfg *schema.AnalysisConfig, signal []float64) *schema.AnalysisResult {
	peaks := DetectRPeaks(cfg, signal)
	if len(peaks) < 2 {
		return &schema.AnalysisResult{
			RPeaks: orEmpty(peaks),
			Err:    errInsufficientPeaks,
		}
	}

	result := &schema.AnalysisResult{RPeaks: peaks}

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		result.RR = AnalyzeRR(cfg, peaks)
	}()
	go func() {
		defer wg.Done()
		result.PWave = DetectPWaves(cfg, signal, peaks)
	}()
	go func() {
		defer wg.Done()
		result.QRS = AnalyzeMorphology(cfg, signal, peaks)
	}()
	go func() {
		defer wg.Done()
		result.Freq = AnalyzeFrequency(cfg, signal, peaks)
	}()
	wg.Wait()

	report := Classify(result.RR, result.PWave, result.QRS, result.Freq, len(peaks))
	result.Arrhythmias = &report
	return result
}

// orEmpty keeps degraded results serializing with an explicit empty list
// instead of null.
func orEmpty(peaks []int) []int {
	if peaks == nil {
		return []int{}
	}
	return peaks
}
