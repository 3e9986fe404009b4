package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseworks/rhythmscan/schema"
)

// pqrsSignal builds beats with a clear P wave 125 ms ahead of each R spike.
func pqrsSignal(n, rate int, peaks []int) []float64 {
	signal := make([]float64, n)
	pOffset := int(0.125 * float64(rate))
	for _, r := range peaks {
		signal[r] = 1
		// Gaussian P wave, sigma around 25 ms.
		for d := -15; d <= 15; d++ {
			idx := r - pOffset + d
			if idx >= 0 && idx < n {
				td := float64(d) / float64(rate)
				signal[idx] += 0.25 * math.Exp(-td*td/0.0005)
			}
		}
	}
	return signal
}

// TestDetectPWavesFindsP verifies clear P waves are located with plausible
// PR intervals and a low atrial fibrillation score.
func TestDetectPWavesFindsP(t *testing.T) {
	cfg := schema.DefaultAnalysisConfig()
	peaks := []int{250, 500, 750, 1000, 1250, 1500, 1750, 2000}
	signal := pqrsSignal(2300, cfg.SamplingRate, peaks)

	pw := DetectPWaves(cfg, signal, peaks)
	require.NotNil(t, pw)
	require.Len(t, pw.Present, len(peaks))
	require.Len(t, pw.PRIntervals, len(peaks))

	detected := 0
	for i, present := range pw.Present {
		if !present {
			continue
		}
		detected++
		assert.Greater(t, pw.PRIntervals[i], 0.05)
		assert.Less(t, pw.PRIntervals[i], 0.2)
	}
	assert.GreaterOrEqual(t, detected, 6, "nearly every P wave should be found")
	assert.Less(t, pw.AFibScore, 20.0)
}

// TestDetectPWavesLocationsOrdered verifies locations line up with the
// beats they precede.
func TestDetectPWavesLocationsOrdered(t *testing.T) {
	cfg := schema.DefaultAnalysisConfig()
	peaks := []int{250, 500, 750, 1000}
	signal := pqrsSignal(1200, cfg.SamplingRate, peaks)

	pw := DetectPWaves(cfg, signal, peaks)
	require.NotNil(t, pw)
	for i := 1; i < len(pw.Locations); i++ {
		assert.Greater(t, pw.Locations[i], pw.Locations[i-1])
	}
	for _, loc := range pw.Locations {
		assert.Less(t, loc, peaks[len(peaks)-1])
	}
}

// TestDetectPWavesDegenerate covers the nil guard and early-peak skipping.
func TestDetectPWavesDegenerate(t *testing.T) {
	cfg := schema.DefaultAnalysisConfig()

	assert.Nil(t, DetectPWaves(cfg, make([]float64, 100), []int{50}))

	// A peak inside the search window from the start cannot be searched.
	peaks := []int{10, 500}
	signal := pqrsSignal(700, cfg.SamplingRate, peaks)
	pw := DetectPWaves(cfg, signal, peaks)
	require.NotNil(t, pw)
	assert.False(t, pw.Present[0])
	assert.Zero(t, pw.PRIntervals[0])
}
