package core

import (
	"github.com/pulseworks/rhythmscan/internal/dsp"
	"github.com/pulseworks/rhythmscan/schema"
)

// DetectRPeaks locates R peaks with the Pan-Tompkins derivative-energy
// method and refines each peak against the unfiltered signal. Returned
// indices are sorted and at least 200 ms apart.
func DetectRPeaks(cfg *schema.AnalysisConfig, signal []float64) []int {
	if len(signal) == 0 {
		return nil
	}
	rate := float64(cfg.SamplingRate)

	// Emphasize the QRS band, then derivative, squaring and moving-window
	// integration.
	filtered := dsp.Bandpass(3, 5, 15, rate).FiltFilt(signal)

	squared := make([]float64, 0, len(filtered))
	for i := 1; i < len(filtered); i++ {
		d := filtered[i] - filtered[i-1]
		squared = append(squared, d*d)
	}

	integrated := movingAverage(squared, int(0.08*rate))

	threshold := cfg.ThresholdFactor * mean(integrated)
	peaks := dsp.FindPeaks(integrated, threshold, int(0.2*rate))

	return refinePeaks(signal, peaks, int(0.025*rate))
}

// movingAverage is a centered moving mean over a fixed-size window. The
// window extends past the edges with zeros, so edge values taper instead of
// spiking.
func movingAverage(x []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	out := make([]float64, len(x))
	shift := (window - 1) / 2
	for i := range x {
		lo := i + shift - window + 1
		hi := i + shift
		if lo < 0 {
			lo = 0
		}
		if hi > len(x)-1 {
			hi = len(x) - 1
		}
		sum := 0.0
		for _, v := range x[lo : hi+1] {
			sum += v
		}
		out[i] = sum / float64(window)
	}
	return out
}

// refinePeaks snaps each candidate to the local maximum of the original
// signal within a small search window. Candidates too close to either edge
// for a full window are dropped.
func refinePeaks(signal []float64, peaks []int, window int) []int {
	var refined []int
	for _, p := range peaks {
		if p < window || p >= len(signal)-window {
			continue
		}
		seg := signal[p-window : p+window]
		refined = append(refined, p-window+argmax(seg))
	}
	return refined
}
