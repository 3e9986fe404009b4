// Package core implements the analysis pipeline: preprocessing, R peak
// detection, interval and morphology measurements, frequency analysis and
// arrhythmia classification.
package core

import (
	"github.com/pulseworks/rhythmscan/internal/dsp"
	"github.com/pulseworks/rhythmscan/schema"
)

// Preprocess conditions a raw signal for analysis. Baseline wander below
// 0.5 Hz is removed, content above 40 Hz is attenuated, and both common
// powerline frequencies are notched out. Every stage is zero phase so
// fiducial points keep their sample positions.
func Preprocess(cfg *schema.AnalysisConfig, signal []float64) []float64 {
	rate := float64(cfg.SamplingRate)

	out := dsp.Highpass(2, 0.5, rate).FiltFilt(signal)
	out = dsp.Lowpass(3, 40, rate).FiltFilt(out)
	out = dsp.Notch(50, 30, rate).FiltFilt(out)
	out = dsp.Notch(60, 30, rate).FiltFilt(out)
	return out
}
