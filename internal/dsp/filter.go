// Package dsp implements the signal-processing primitives used by the
// analysis engine: IIR filter design with zero-phase application, peak
// finding, spectral estimation and wavelet decomposition.
package dsp

import "math"

// Section is one normalized IIR filter section (a0 = 1). First-order
// sections leave B2 and A2 at zero.
type Section struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Cascade is a chain of sections applied in sequence.
type Cascade []Section

// order returns the combined filter order of the cascade.
func (c Cascade) order() int {
	n := 0
	for _, s := range c {
		if s.B2 != 0 || s.A2 != 0 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// apply runs the cascade forward over x once. Each section starts in the
// steady state it would reach for a constant input equal to its first
// sample, so a DC offset produces its settled response from sample zero
// instead of decaying across the reflection pad.
func (c Cascade) apply(x []float64) []float64 {
	y := make([]float64, len(x))
	copy(y, x)
	for _, s := range c {
		if len(y) == 0 {
			break
		}
		v0 := y[0]
		o0 := s.dcGain() * v0
		z1 := o0 - s.B0*v0
		z2 := s.B2*v0 - s.A2*o0
		for i, v := range y {
			out := s.B0*v + z1
			z1 = s.B1*v - s.A1*out + z2
			z2 = s.B2*v - s.A2*out
			y[i] = out
		}
	}
	return y
}

// dcGain is the section's response to a constant input, H(z) at z = 1.
func (s Section) dcGain() float64 {
	return (s.B0 + s.B1 + s.B2) / (1 + s.A1 + s.A2)
}

// FiltFilt applies the cascade forward and backward so the net phase
// response is zero. Zero phase matters here because downstream interval
// measurements would be corrupted by group delay. The signal edges are
// extended by odd reflection before filtering to suppress transients.
func (c Cascade) FiltFilt(x []float64) []float64 {
	n := len(x)
	if n == 0 {
		return nil
	}
	pad := 3 * (2*c.order() + 1)
	if pad >= n {
		pad = n - 1
	}

	ext := make([]float64, n+2*pad)
	for i := range pad {
		ext[i] = 2*x[0] - x[pad-i]
	}
	copy(ext[pad:], x)
	for i := range pad {
		ext[pad+n+i] = 2*x[n-1] - x[n-2-i]
	}

	y := c.apply(ext)
	reverse(y)
	y = c.apply(y)
	reverse(y)

	out := make([]float64, n)
	copy(out, y[pad:pad+n])
	return out
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}

// Lowpass designs a Butterworth low-pass cascade of the given order.
func Lowpass(order int, cutoff, rate float64) Cascade {
	return butterworth(order, cutoff, rate, false)
}

// Highpass designs a Butterworth high-pass cascade of the given order.
func Highpass(order int, cutoff, rate float64) Cascade {
	return butterworth(order, cutoff, rate, true)
}

// Bandpass designs a band-pass as a high-pass cascade into a low-pass
// cascade, each of the given order.
func Bandpass(order int, low, high, rate float64) Cascade {
	return append(Highpass(order, low, rate), Lowpass(order, high, rate)...)
}

// Notch designs a single narrow band-stop section centered on freq with the
// given quality factor (RBJ cookbook form).
func Notch(freq, q, rate float64) Cascade {
	w0 := 2 * math.Pi * freq / rate
	cosw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	a0 := 1 + alpha
	return Cascade{{
		B0: 1 / a0,
		B1: -2 * cosw / a0,
		B2: 1 / a0,
		A1: -2 * cosw / a0,
		A2: (1 - alpha) / a0,
	}}
}

// butterworth builds an order-N Butterworth filter as cascaded biquads.
// Pole pair k of a Butterworth prototype sits at angle (2k+1)*pi/(2N) from
// the imaginary axis, giving section quality factor 1/(2*sin(theta)). Odd
// orders carry one extra first-order section for the real pole.
func butterworth(order int, cutoff, rate float64, highpass bool) Cascade {
	var c Cascade
	for k := 0; k < order/2; k++ {
		theta := math.Pi * float64(2*k+1) / float64(2*order)
		q := 1 / (2 * math.Sin(theta))
		if highpass {
			c = append(c, biquadHighpass(cutoff, q, rate))
		} else {
			c = append(c, biquadLowpass(cutoff, q, rate))
		}
	}
	if order%2 == 1 {
		if highpass {
			c = append(c, firstOrderHighpass(cutoff, rate))
		} else {
			c = append(c, firstOrderLowpass(cutoff, rate))
		}
	}
	return c
}

func biquadLowpass(cutoff, q, rate float64) Section {
	w0 := 2 * math.Pi * cutoff / rate
	cosw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	a0 := 1 + alpha
	return Section{
		B0: (1 - cosw) / 2 / a0,
		B1: (1 - cosw) / a0,
		B2: (1 - cosw) / 2 / a0,
		A1: -2 * cosw / a0,
		A2: (1 - alpha) / a0,
	}
}

func biquadHighpass(cutoff, q, rate float64) Section {
	w0 := 2 * math.Pi * cutoff / rate
	cosw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	a0 := 1 + alpha
	return Section{
		B0: (1 + cosw) / 2 / a0,
		B1: -(1 + cosw) / a0,
		B2: (1 + cosw) / 2 / a0,
		A1: -2 * cosw / a0,
		A2: (1 - alpha) / a0,
	}
}

// firstOrderLowpass maps the analog pole through the bilinear transform
// with frequency prewarping.
func firstOrderLowpass(cutoff, rate float64) Section {
	c := 1 / math.Tan(math.Pi*cutoff/rate)
	return Section{
		B0: 1 / (1 + c),
		B1: 1 / (1 + c),
		A1: (1 - c) / (1 + c),
	}
}

func firstOrderHighpass(cutoff, rate float64) Section {
	c := 1 / math.Tan(math.Pi*cutoff/rate)
	return Section{
		B0: c / (1 + c),
		B1: -c / (1 + c),
		A1: (1 - c) / (1 + c),
	}
}
