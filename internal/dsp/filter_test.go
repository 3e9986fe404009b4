package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sine(freq, rate float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / rate)
	}
	return out
}

func rms(x []float64) float64 {
	sum := 0.0
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

// TestLowpassAttenuation verifies a low-pass cascade passes slow components
// and attenuates fast ones.
func TestLowpassAttenuation(t *testing.T) {
	const rate = 250.0
	lp := Lowpass(3, 40, rate)

	slow := lp.FiltFilt(sine(2, rate, 2000))
	fast := lp.FiltFilt(sine(100, rate, 2000))

	assert.InDelta(t, 1/math.Sqrt2, rms(slow), 0.05, "2 Hz should pass")
	assert.Less(t, rms(fast), 0.05, "100 Hz should be rejected")
}

// TestHighpassRemovesDC verifies a high-pass cascade removes a constant
// offset while keeping in-band content.
func TestHighpassRemovesDC(t *testing.T) {
	const rate = 250.0
	hp := Highpass(2, 0.5, rate)

	x := sine(10, rate, 2000)
	for i := range x {
		x[i] += 3.0
	}
	y := hp.FiltFilt(x)

	mean := 0.0
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))

	assert.InDelta(t, 0, mean, 0.01, "offset should be removed")
	assert.InDelta(t, 1/math.Sqrt2, rms(y), 0.05, "10 Hz should pass")
}

// TestHighpassConstantInput verifies a pure baseline offset is rejected
// outright, with no settling transient at the edges.
func TestHighpassConstantInput(t *testing.T) {
	hp := Highpass(2, 0.5, 250)

	x := make([]float64, 500)
	for i := range x {
		x[i] = 3.0
	}
	y := hp.FiltFilt(x)

	for _, v := range y {
		require.InDelta(t, 0, v, 1e-9)
	}
}

// TestNotchRejectsCenter verifies the notch section removes its center
// frequency but leaves distant frequencies intact.
func TestNotchRejectsCenter(t *testing.T) {
	const rate = 250.0
	notch := Notch(50, 30, rate)

	hum := notch.FiltFilt(sine(50, rate, 4000))
	ecgBand := notch.FiltFilt(sine(10, rate, 4000))

	assert.Less(t, rms(hum), 0.1, "50 Hz hum should be rejected")
	assert.InDelta(t, 1/math.Sqrt2, rms(ecgBand), 0.05, "10 Hz should pass")
}

// TestFiltFiltZeroPhase verifies the forward-backward pass does not shift a
// peak in time.
func TestFiltFiltZeroPhase(t *testing.T) {
	const rate = 250.0
	lp := Lowpass(3, 40, rate)

	x := make([]float64, 500)
	center := 250
	for i := range x {
		d := float64(i - center)
		x[i] = math.Exp(-d * d / 50)
	}
	y := lp.FiltFilt(x)

	best := 0
	for i, v := range y {
		if v > y[best] {
			best = i
		}
	}
	assert.Equal(t, center, best, "peak must not shift")
}

// TestFiltFiltShortSignal verifies short inputs do not panic and keep
// their length.
func TestFiltFiltShortSignal(t *testing.T) {
	lp := Lowpass(3, 40, 250)

	tests := []struct {
		name string
		n    int
	}{
		{name: "empty", n: 0},
		{name: "single", n: 1},
		{name: "shorter than pad", n: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := make([]float64, tt.n)
			for i := range x {
				x[i] = float64(i)
			}
			y := lp.FiltFilt(x)
			require.Len(t, y, tt.n)
		})
	}
}

// TestBandpassOrder verifies the cascade order bookkeeping used to size the
// reflection padding.
func TestBandpassOrder(t *testing.T) {
	assert.Equal(t, 6, Bandpass(3, 5, 15, 250).order())
	assert.Equal(t, 2, Highpass(2, 0.5, 250).order())
	assert.Equal(t, 2, Notch(50, 30, 250).order())
}
