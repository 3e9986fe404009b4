package dsp

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// Spectrum computes the power spectrum of x at the positive-frequency bins,
// normalized by its maximum. Frequencies are in Hz given the sampling rate.
// Bin zero (DC) and, for even lengths, the Nyquist bin are excluded to keep
// strictly positive frequencies only.
func Spectrum(x []float64, rate float64) (freqs, psd []float64) {
	n := len(x)
	if n < 2 {
		return nil, nil
	}

	spec := fft.FFTReal(x)

	nPos := (n+1)/2 - 1
	if nPos <= 0 {
		return nil, nil
	}
	freqs = make([]float64, nPos)
	psd = make([]float64, nPos)
	maxPower := 0.0
	for k := 1; k <= nPos; k++ {
		power := cmplx.Abs(spec[k])
		power *= power
		freqs[k-1] = float64(k) * rate / float64(n)
		psd[k-1] = power
		if power > maxPower {
			maxPower = power
		}
	}
	if maxPower > 0 {
		for i := range psd {
			psd[i] /= maxPower
		}
	}
	return freqs, psd
}

// Welch estimates the one-sided power spectral density of x using averaged
// Hann-windowed periodograms with 50% overlap. The segment length shrinks to
// len(x) when the signal is shorter than nperseg. Each segment has its mean
// removed before windowing. The output is scaled as a density (power per Hz).
func Welch(x []float64, fs float64, nperseg int) (freqs, psd []float64) {
	n := len(x)
	if n < 2 {
		return nil, nil
	}
	seg := nperseg
	if seg > n {
		seg = n
	}
	step := seg - seg/2

	win := window.Hann(seg)
	winPower := 0.0
	for _, w := range win {
		winPower += w * w
	}
	scale := 1 / (fs * winPower)

	nFreqs := seg/2 + 1
	psd = make([]float64, nFreqs)
	buf := make([]float64, seg)
	segments := 0

	for start := 0; start+seg <= n; start += step {
		chunk := x[start : start+seg]
		mean := 0.0
		for _, v := range chunk {
			mean += v
		}
		mean /= float64(seg)
		for i, v := range chunk {
			buf[i] = (v - mean) * win[i]
		}

		spec := fft.FFTReal(buf)
		for k := range nFreqs {
			power := cmplx.Abs(spec[k])
			psd[k] += power * power * scale
		}
		segments++
	}
	if segments == 0 {
		return nil, nil
	}

	freqs = make([]float64, nFreqs)
	for k := range nFreqs {
		freqs[k] = float64(k) * fs / float64(seg)
		psd[k] /= float64(segments)
		// One-sided doubling, except at DC and Nyquist.
		if k != 0 && !(seg%2 == 0 && k == seg/2) {
			psd[k] *= 2
		}
	}
	return freqs, psd
}

// Interp linearly interpolates fp (sampled at the increasing points xp) onto
// the query points xq, clamping to the end values outside the range.
func Interp(xq, xp, fp []float64) []float64 {
	out := make([]float64, len(xq))
	for i, q := range xq {
		switch {
		case q <= xp[0]:
			out[i] = fp[0]
		case q >= xp[len(xp)-1]:
			out[i] = fp[len(fp)-1]
		default:
			// Binary search for the bracketing interval.
			lo, hi := 0, len(xp)-1
			for hi-lo > 1 {
				mid := (lo + hi) / 2
				if xp[mid] <= q {
					lo = mid
				} else {
					hi = mid
				}
			}
			t := (q - xp[lo]) / (xp[hi] - xp[lo])
			out[i] = fp[lo] + t*(fp[hi]-fp[lo])
		}
	}
	return out
}

// DetrendLinear removes the least-squares straight-line fit from x.
func DetrendLinear(x []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	if n < 2 {
		copy(out, x)
		return out
	}

	var sumT, sumX, sumTT, sumTX float64
	for i, v := range x {
		t := float64(i)
		sumT += t
		sumX += v
		sumTT += t * t
		sumTX += t * v
	}
	fn := float64(n)
	denom := fn*sumTT - sumT*sumT
	slope := 0.0
	if denom != 0 {
		slope = (fn*sumTX - sumT*sumX) / denom
	}
	intercept := (sumX - slope*sumT) / fn

	for i, v := range x {
		out[i] = v - (intercept + slope*float64(i))
	}
	return out
}
