package core

import (
	"math"
	"sort"
)

func mean(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}

// std is the population standard deviation.
func std(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	m := mean(x)
	sum := 0.0
	for _, v := range x {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(x)))
}

func diff(x []float64) []float64 {
	if len(x) < 2 {
		return nil
	}
	out := make([]float64, len(x)-1)
	for i := range out {
		out[i] = x[i+1] - x[i]
	}
	return out
}

// medianPositive is the median over the strictly positive values of x.
// Returns NaN when no positive value exists; NaN medians make every
// threshold comparison false downstream, which is the intended fallback.
func medianPositive(x []float64) float64 {
	var pos []float64
	for _, v := range x {
		if v > 0 {
			pos = append(pos, v)
		}
	}
	if len(pos) == 0 {
		return math.NaN()
	}
	sort.Float64s(pos)
	n := len(pos)
	if n%2 == 1 {
		return pos[n/2]
	}
	return (pos[n/2-1] + pos[n/2]) / 2
}

// trapz integrates y with unit spacing using the trapezoidal rule.
func trapz(y []float64) float64 {
	sum := 0.0
	for i := 1; i < len(y); i++ {
		sum += (y[i-1] + y[i]) / 2
	}
	return sum
}

func argmax(x []float64) int {
	best := 0
	for i, v := range x {
		if v > x[best] {
			best = i
		}
	}
	return best
}

func argmin(x []float64) int {
	best := 0
	for i, v := range x {
		if v < x[best] {
			best = i
		}
	}
	return best
}

func maxFloat(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	best := x[0]
	for _, v := range x[1:] {
		if v > best {
			best = v
		}
	}
	return best
}

func clampScore(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}
