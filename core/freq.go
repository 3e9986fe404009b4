package core

import (
	"math"

	"github.com/pulseworks/rhythmscan/internal/dsp"
	"github.com/pulseworks/rhythmscan/schema"
)

// HRV frequency bands and tachogram resampling rate.
const (
	lfLow  = 0.04
	lfHigh = 0.15
	hfLow  = 0.15
	hfHigh = 0.4

	tachogramRate = 4.0 // Hz, standard for HRV analysis
	welchSegment  = 256
	waveletLevels = 4
)

// AnalyzeFrequency computes the normalized signal spectrum and, when enough
// beats are available, HRV band powers, a wavelet decomposition and a
// frequency-based atrial fibrillation score. The HRV fields stay nil below
// ten R peaks. Returns nil for an empty signal.
func AnalyzeFrequency(cfg *schema.AnalysisConfig, signal []float64, peaks []int) *schema.FrequencyAnalysis {
	rate := float64(cfg.SamplingRate)

	freqs, psd := dsp.Spectrum(signal, rate)
	if freqs == nil {
		return nil
	}
	out := &schema.FrequencyAnalysis{Freqs: freqs, PSD: psd}

	if len(peaks) < 10 {
		return out
	}

	// Build the tachogram: RR intervals resampled onto a uniform 4 Hz grid
	// and linearly detrended.
	rr := make([]float64, len(peaks)-1)
	for i := range rr {
		rr[i] = float64(peaks[i+1]-peaks[i]) / rate
	}

	tRR := make([]float64, len(rr)+1)
	vals := make([]float64, len(rr)+1)
	vals[0] = rr[0]
	for i, v := range rr {
		tRR[i+1] = tRR[i] + v
		vals[i+1] = v
	}

	var grid []float64
	for t := 0.0; t < tRR[len(tRR)-1]; t += 1 / tachogramRate {
		grid = append(grid, t)
	}
	tachogram := dsp.DetrendLinear(dsp.Interp(grid, tRR, vals))

	hrvFreqs, hrvPSD := dsp.Welch(tachogram, tachogramRate, welchSegment)

	lf, hf, total := 0.0, 0.0, 0.0
	for i, f := range hrvFreqs {
		total += hrvPSD[i]
		if f >= lfLow && f <= lfHigh {
			lf += hrvPSD[i]
		}
		if f >= hfLow && f <= hfHigh {
			hf += hrvPSD[i]
		}
	}

	ratio := schema.Ratio(math.Inf(1))
	if hf > 0 {
		ratio = schema.Ratio(lf / hf)
	}

	// Atrial fibrillation shifts power from LF to HF and raises the share
	// of fine-scale wavelet energy.
	score := 0.0
	if float64(ratio) < 0.5 {
		score += 30
	}
	if total > 0 && hf/total > 0.5 {
		score += 30
	}

	var wavelet *schema.WaveletDecomposition
	if coeffs, err := dsp.Wavedec(signal, waveletLevels); err == nil {
		totalEnergy := 0.0
		for _, c := range coeffs {
			for _, v := range c {
				totalEnergy += v * v
			}
		}
		finest := coeffs[len(coeffs)-1]
		finestEnergy := 0.0
		for _, v := range finest {
			finestEnergy += v * v
		}
		noiseRatio := 0.0
		if totalEnergy > 0 {
			noiseRatio = finestEnergy / totalEnergy
		}
		if noiseRatio > 0.4 {
			score += 20
		}
		wavelet = &schema.WaveletDecomposition{Levels: coeffs, NoiseRatio: noiseRatio}
	}

	score = math.Min(score, 100)
	out.HRVLF = &lf
	out.HRVHF = &hf
	out.LFHFRatio = &ratio
	out.Wavelet = wavelet
	out.AFibScore = &score
	return out
}
