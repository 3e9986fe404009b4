package core

import (
	"math"

	"github.com/pulseworks/rhythmscan/internal/dsp"
	"github.com/pulseworks/rhythmscan/schema"
)

// AnalyzeMorphology measures every QRS complex, flags abnormal beats,
// locates premature ventricular contractions and estimates bundle branch
// block probabilities. Returns nil when fewer than two R peaks are
// available.
func AnalyzeMorphology(cfg *schema.AnalysisConfig, signal []float64, peaks []int) *schema.QRSMorphology {
	if len(peaks) < 2 {
		return nil
	}
	rate := float64(cfg.SamplingRate)

	n := len(peaks)
	durations := make([]float64, n)
	areas := make([]float64, n)
	amplitudes := make([]float64, n)
	normAreas := make([]float64, n)
	abnormal := make([]bool, n)
	var pvcLocations []int

	// A QRS complex spans 80-120 ms, so measure 60 ms on each side of R.
	half := int(0.06 * rate)

	for i, r := range peaks {
		if r-half < 0 || r+half >= len(signal) {
			continue
		}
		window := signal[r-half : r+half+1]

		// Q and S are the local minima before and after R.
		qPoint := r - half + argmin(window[:half])
		sPoint := r + argmin(window[half:])

		durations[i] = float64(sPoint-qPoint) / rate

		absSeg := make([]float64, sPoint-qPoint)
		for j := range absSeg {
			absSeg[j] = math.Abs(signal[qPoint+j])
		}
		areas[i] = trapz(absSeg)

		amplitudes[i] = signal[r] - math.Min(signal[qPoint], signal[sPoint])
	}

	for i := range normAreas {
		if amplitudes[i] > 0 {
			normAreas[i] = areas[i] / amplitudes[i]
		}
	}

	// Baselines come from the majority of measurable beats. When nothing is
	// measurable the medians are NaN and every comparison below is false.
	medianDuration := medianPositive(durations)
	medianNorm := medianPositive(normAreas)

	for i := range peaks {
		if durations[i] >= cfg.Ranges.WideQRS {
			abnormal[i] = true
		}
		if normAreas[i] > 1.5*medianNorm || normAreas[i] < 0.5*medianNorm {
			abnormal[i] = true
		}

		// A PVC is premature, followed by a compensatory pause, wide, and
		// morphologically distinct.
		if i > 0 && i < len(peaks)-1 {
			prevRR := float64(peaks[i]-peaks[i-1]) / rate
			nextRR := float64(peaks[i+1]-peaks[i]) / rate
			if prevRR < 0.8*medianDuration &&
				nextRR > 1.2*medianDuration &&
				durations[i] >= cfg.Ranges.WideQRS &&
				(normAreas[i] < 0.7*medianNorm || normAreas[i] > 1.3*medianNorm) {
				pvcLocations = append(pvcLocations, peaks[i])
			}
		}
	}

	wideCount := 0
	for _, d := range durations {
		if d >= cfg.Ranges.WideQRS {
			wideCount++
		}
	}

	lbbb, rbbb := classifyBundleBranch(cfg, signal, peaks, wideCount, half)

	return &schema.QRSMorphology{
		Durations:       durations,
		Areas:           areas,
		Amplitudes:      amplitudes,
		NormAreas:       normAreas,
		Abnormal:        abnormal,
		PVCLocations:    pvcLocations,
		WideQRSPct:      100 * float64(wideCount) / float64(n),
		LBBBProbability: float64(lbbb),
		RBBBProbability: float64(rbbb),
	}
}

// classifyBundleBranch approximates bundle branch block detection from a
// single lead. It only fires when wide complexes dominate the recording.
func classifyBundleBranch(cfg *schema.AnalysisConfig, signal []float64, peaks []int, wideCount, half int) (lbbb, rbbb int) {
	if float64(wideCount) <= 0.7*float64(len(peaks)) {
		return 0, 0
	}
	rate := float64(cfg.SamplingRate)

	// Negative dominant deflection stands in for the deep S of LBBB.
	negDominant := make([]bool, len(peaks))
	for i, r := range peaks {
		if r-half < 0 || r+half >= len(signal) {
			continue
		}
		posArea, negArea := 0.0, 0.0
		for _, v := range signal[r-half : r+half+1] {
			if v > 0 {
				posArea += v
			} else {
				negArea -= v
			}
		}
		negDominant[i] = negArea > posArea
	}

	negCount := 0
	for _, v := range negDominant {
		if v {
			negCount++
		}
	}
	switch {
	case float64(negCount) > 0.7*float64(len(peaks)):
		lbbb = 80
	case float64(negCount) > 0.5*float64(len(peaks)):
		lbbb = 50
	}

	// An early second peak after R approximates the RSR' notch of RBBB.
	notched := 0
	for i, r := range peaks {
		if negDominant[i] {
			continue
		}
		if r-half < 0 || r+half >= len(signal) {
			continue
		}
		secondHalf := signal[r : r+half]
		if len(secondHalf) <= 10 {
			continue
		}
		candidates := dsp.FindPeaks(secondHalf, math.Inf(-1), 0)
		if len(candidates) > 0 && float64(candidates[0]) < 0.06*rate {
			notched++
		}
	}
	switch {
	case float64(notched) > 0.3*float64(len(peaks)):
		rbbb = 70
	case float64(notched) > 0.1*float64(len(peaks)):
		rbbb = 40
	}
	return lbbb, rbbb
}
