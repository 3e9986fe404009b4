package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWavedecShapes verifies coefficient ordering and per-level halving.
func TestWavedecShapes(t *testing.T) {
	x := sine(5, 250, 1024)
	coeffs, err := Wavedec(x, 4)
	require.NoError(t, err)
	require.Len(t, coeffs, 5, "approximation plus four detail levels")

	// Finest detail is last; each level holds (n+7)/2 coefficients of the
	// level above it, so 1024 -> 515 -> 261 -> 134 -> 70.
	assert.Len(t, coeffs[4], 515)
	assert.Len(t, coeffs[3], 261)
	assert.Len(t, coeffs[2], 134)
	assert.Len(t, coeffs[1], 70)
	assert.Len(t, coeffs[0], 70)
}

// TestWavedecSmoothVsNoisy verifies the finest-detail energy share separates
// smooth signals from noisy ones.
func TestWavedecSmoothVsNoisy(t *testing.T) {
	n := 1024
	smooth := sine(2, 250, n)
	noisy := make([]float64, n)
	for i := range noisy {
		// Deterministic high-frequency alternation stands in for noise.
		noisy[i] = smooth[i] + 0.8*math.Pow(-1, float64(i))
	}

	ratio := func(x []float64) float64 {
		coeffs, err := Wavedec(x, 4)
		require.NoError(t, err)
		energy := func(c []float64) float64 {
			sum := 0.0
			for _, v := range c {
				sum += v * v
			}
			return sum
		}
		total := 0.0
		for _, c := range coeffs {
			total += energy(c)
		}
		require.Positive(t, total)
		return energy(coeffs[len(coeffs)-1]) / total
	}

	assert.Less(t, ratio(smooth), 0.05)
	assert.Greater(t, ratio(noisy), 0.4)
}

// TestWavedecTooShort verifies the decomposition fails cleanly once the
// approximation falls below the filter length.
func TestWavedecTooShort(t *testing.T) {
	_, err := Wavedec(make([]float64, 6), 1)
	assert.Error(t, err)

	_, err = Wavedec(sine(5, 250, 12), 4)
	assert.Error(t, err, "12 samples cannot sustain four levels")
}
