package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSpectrumDominantBin verifies the normalized spectrum peaks at the tone
// frequency with unit power.
func TestSpectrumDominantBin(t *testing.T) {
	const rate = 250.0
	freqs, psd := Spectrum(sine(10, rate, 1000), rate)
	require.Len(t, freqs, len(psd))
	require.NotEmpty(t, psd)

	best := 0
	for i, p := range psd {
		if p > psd[best] {
			best = i
		}
	}
	assert.InDelta(t, 10.0, freqs[best], rate/1000)
	assert.InDelta(t, 1.0, psd[best], 1e-9, "spectrum is max-normalized")
}

// TestSpectrumTiny verifies degenerate inputs return nothing.
func TestSpectrumTiny(t *testing.T) {
	for _, n := range []int{0, 1, 2} {
		freqs, psd := Spectrum(make([]float64, n), 250)
		assert.Nil(t, freqs)
		assert.Nil(t, psd)
	}
}

// TestWelchBandEnergy verifies the PSD concentrates power around the tone
// frequency.
func TestWelchBandEnergy(t *testing.T) {
	const fs = 4.0
	x := sine(0.1, fs, 1024)
	freqs, psd := Welch(x, fs, 256)
	require.NotEmpty(t, psd)

	inBand, total := 0.0, 0.0
	for i, f := range freqs {
		total += psd[i]
		if f >= 0.05 && f <= 0.15 {
			inBand += psd[i]
		}
	}
	require.Positive(t, total)
	assert.Greater(t, inBand/total, 0.9, "tone power should sit in its band")
}

// TestWelchShortInput verifies the segment length shrinks to the input.
func TestWelchShortInput(t *testing.T) {
	x := sine(0.5, 4, 64)
	freqs, psd := Welch(x, 4, 256)
	require.Len(t, freqs, 33)
	require.Len(t, psd, 33)
}

// TestInterp covers interior interpolation and end clamping.
func TestInterp(t *testing.T) {
	xp := []float64{0, 1, 2}
	fp := []float64{0, 10, 0}

	tests := []struct {
		name     string
		query    float64
		expected float64
	}{
		{name: "node", query: 1, expected: 10},
		{name: "interior", query: 0.5, expected: 5},
		{name: "clamp below", query: -3, expected: 0},
		{name: "clamp above", query: 9, expected: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Interp([]float64{tt.query}, xp, fp)
			assert.InDelta(t, tt.expected, out[0], 1e-12)
		})
	}
}

// TestDetrendLinear verifies a pure ramp detrends to zero and a superimposed
// oscillation survives.
func TestDetrendLinear(t *testing.T) {
	n := 200
	x := make([]float64, n)
	for i := range x {
		x[i] = 2*float64(i) + 5 + math.Sin(2*math.Pi*float64(i)/20)
	}
	y := DetrendLinear(x)

	for i := range y {
		expected := math.Sin(2 * math.Pi * float64(i) / 20)
		assert.InDelta(t, expected, y[i], 0.2)
	}
}
