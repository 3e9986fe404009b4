package core

import (
	"github.com/pulseworks/rhythmscan/internal/dsp"
	"github.com/pulseworks/rhythmscan/schema"
)

// DetectPWaves searches for a P wave ahead of every R peak and scores atrial
// fibrillation from P wave absence and timing irregularity. Returns nil when
// fewer than two R peaks are available.
func DetectPWaves(cfg *schema.AnalysisConfig, signal []float64, peaks []int) *schema.PWaveAnalysis {
	if len(peaks) < 2 {
		return nil
	}
	rate := float64(cfg.SamplingRate)

	// P waves live in the 1-10 Hz band.
	filtered := dsp.Bandpass(3, 1, 10, rate).FiltFilt(signal)

	present := make([]bool, len(peaks))
	prIntervals := make([]float64, len(peaks))
	var locations []int

	// The PR interval is normally 120-200 ms, so search a window ending
	// 50 ms before each R peak.
	searchWindow := int(0.2 * rate)
	for i, r := range peaks {
		if r <= searchWindow {
			continue
		}
		start := r - searchWindow
		end := r - int(0.05*rate)
		if end <= start {
			continue
		}

		segment := filtered[start:end]
		candidates := dsp.FindPeaks(segment, 0.05*maxFloat(segment), int(0.05*rate))
		if len(candidates) == 0 {
			continue
		}

		best := candidates[0]
		for _, c := range candidates[1:] {
			if segment[c] > segment[best] {
				best = c
			}
		}
		loc := start + best
		locations = append(locations, loc)
		present[i] = true
		prIntervals[i] = float64(r-loc) / rate
	}

	detected := 0
	for _, p := range present {
		if p {
			detected++
		}
	}
	percentage := 100 * float64(detected) / float64(len(peaks))

	regularity := 0.0
	if len(locations) > 1 {
		pp := make([]float64, len(locations)-1)
		for i := range pp {
			pp[i] = float64(locations[i+1] - locations[i])
		}
		regularity = std(pp) / mean(pp)
	}

	// Missing and irregular P waves both point at atrial fibrillation.
	score := 0.0
	if percentage < 70 {
		score = (100 - percentage) / 30
	}
	if regularity > 0.2 {
		score += 20 * regularity
	}

	return &schema.PWaveAnalysis{
		Present:     present,
		PRIntervals: prIntervals,
		Locations:   locations,
		AFibScore:   clampScore(score),
	}
}
