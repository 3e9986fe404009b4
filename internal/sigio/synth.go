package sigio

import (
	"math"
	"math/rand"

	"github.com/pulseworks/rhythmscan/schema"
)

// SynthParams controls the synthetic waveform generator.
type SynthParams struct {
	Rhythm    schema.Rhythm
	Seconds   float64
	HeartRate float64 // BPM, base rate before rhythm adjustments
	Noise     float64 // white noise standard deviation
	Seed      int64
}

// Gaussian component placement relative to each beat center, in seconds,
// with amplitudes and variances shaping a P-QRS-T complex.
var beatComponents = []struct {
	offset, amplitude, variance float64
}{
	{-0.2, 0.25, 0.005},  // P wave
	{-0.05, -0.3, 0.002}, // Q
	{0, 1.0, 0.0005},     // R
	{0.05, -0.3, 0.002},  // S
	{0.3, 0.35, 0.01},    // T wave
}

// Generate produces a synthetic single-lead waveform at the given sampling
// rate. The same parameters always produce the same samples.
func Generate(params SynthParams, samplingRate int) []float64 {
	rate := float64(samplingRate)
	n := int(params.Seconds * rate)
	signal := make([]float64, n)
	rng := rand.New(rand.NewSource(params.Seed))

	hr := params.HeartRate
	switch params.Rhythm {
	case schema.BradyRhythm:
		if hr >= 60 {
			hr = 45
		}
	case schema.TachyRhythm:
		if hr <= 100 {
			hr = 130
		}
	}

	beatInterval := 60 / hr
	afib := params.Rhythm == schema.AFibRhythm
	pvc := params.Rhythm == schema.PVCRhythm

	beat := 0
	for center := 0.5; center < params.Seconds; beat++ {
		interval := beatInterval
		isPVC := false

		if afib {
			// Irregularly irregular: jitter each interval by up to 40%.
			interval *= 1 + 0.4*(2*rng.Float64()-1)
		}
		if pvc && beat%7 == 5 {
			// Premature beat followed by a compensatory pause.
			interval = 0.6 * beatInterval
			isPVC = true
		} else if pvc && beat%7 == 6 {
			interval = 1.4 * beatInterval
		}

		addBeat(signal, rate, center, isPVC, afib)
		center += interval
	}

	if params.Noise > 0 {
		for i := range signal {
			signal[i] += params.Noise * rng.NormFloat64()
		}
	}
	return signal
}

// addBeat stamps one beat onto the signal. PVC beats are wide, tall and
// carry no P wave; atrial fibrillation suppresses P waves entirely.
func addBeat(signal []float64, rate, center float64, isPVC, noP bool) {
	for _, c := range beatComponents {
		if c.offset == -0.2 && (isPVC || noP) {
			continue
		}
		amplitude, variance := c.amplitude, c.variance
		if isPVC {
			amplitude *= 1.4
			variance *= 4 // widens the complex past 120 ms
		}
		stamp(signal, rate, center+c.offset, amplitude, variance)
	}
}

// stamp adds one Gaussian bump, evaluated only where it matters.
func stamp(signal []float64, rate, center, amplitude, variance float64) {
	// Beyond four sigmas the contribution is negligible.
	sigma := math.Sqrt(variance / 2)
	lo := int((center - 4*sigma) * rate)
	hi := int((center + 4*sigma) * rate)
	if lo < 0 {
		lo = 0
	}
	if hi >= len(signal) {
		hi = len(signal) - 1
	}
	for i := lo; i <= hi; i++ {
		t := float64(i)/rate - center
		signal[i] += amplitude * math.Exp(-t*t/variance)
	}
}
