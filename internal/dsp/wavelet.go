package dsp

import "fmt"

// Daubechies-4 decomposition filters. The high-pass taps are the quadrature
// mirror of the low-pass ones.
var (
	db4Lo = []float64{
		-0.010597401784997278,
		0.032883011666982945,
		0.030841381835986965,
		-0.18703481171888114,
		-0.02798376941698385,
		0.6308807679295904,
		0.7148465705525415,
		0.23037781330885523,
	}
	db4Hi = []float64{
		0.23037781330885523,
		-0.7148465705525415,
		0.6308807679295904,
		0.02798376941698385,
		-0.18703481171888114,
		-0.030841381835986965,
		0.032883011666982945,
		0.010597401784997278,
	}
)

// Wavedec performs a multilevel db4 wavelet decomposition of x. The returned
// slices are ordered coarsest first: the final approximation followed by the
// detail coefficients from coarsest down to finest. An error is returned when
// the signal becomes shorter than the filter before all levels complete.
func Wavedec(x []float64, levels int) ([][]float64, error) {
	approx := x
	details := make([][]float64, 0, levels)
	for level := 1; level <= levels; level++ {
		if len(approx) < len(db4Lo) {
			return nil, fmt.Errorf("signal too short for level %d decomposition (%d samples)", level, len(approx))
		}
		a, d := dwtStep(approx)
		approx = a
		details = append(details, d)
	}

	out := make([][]float64, 0, levels+1)
	out = append(out, approx)
	for i := len(details) - 1; i >= 0; i-- {
		out = append(out, details[i])
	}
	return out, nil
}

// dwtStep computes one level of the discrete wavelet transform with
// symmetric (half-sample) boundary extension and a stride of two.
func dwtStep(x []float64) (approx, detail []float64) {
	n := len(x)
	l := len(db4Lo)
	outLen := (n + l - 1) / 2

	approx = make([]float64, outLen)
	detail = make([]float64, outLen)
	for i := range outLen {
		pos := 2*i + 1
		var a, d float64
		for k := range l {
			idx := pos - k
			// Reflect out-of-range indices back into the signal.
			for idx < 0 || idx >= n {
				if idx < 0 {
					idx = -idx - 1
				}
				if idx >= n {
					idx = 2*n - idx - 1
				}
			}
			a += db4Lo[k] * x[idx]
			d += db4Hi[k] * x[idx]
		}
		approx[i] = a
		detail[i] = d
	}
	return approx, detail
}
