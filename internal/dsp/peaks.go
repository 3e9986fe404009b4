package dsp

import "sort"

// LocalMaxima returns the indices of all strict local maxima in x. A plateau
// counts as a single maximum at its midpoint.
func LocalMaxima(x []float64) []int {
	var peaks []int
	i := 1
	for i < len(x)-1 {
		if x[i-1] < x[i] {
			// Scan forward across a possible plateau.
			j := i
			for j < len(x)-1 && x[j+1] == x[i] {
				j++
			}
			if j < len(x)-1 && x[j+1] < x[i] {
				peaks = append(peaks, (i+j)/2)
			}
			i = j + 1
			continue
		}
		i++
	}
	return peaks
}

// FindPeaks returns local maxima of x that reach minHeight, thinned so that
// no two surviving peaks are closer than minDistance samples. When two peaks
// conflict the taller one wins. Pass minDistance <= 1 to skip thinning.
func FindPeaks(x []float64, minHeight float64, minDistance int) []int {
	peaks := LocalMaxima(x)

	filtered := peaks[:0]
	for _, p := range peaks {
		if x[p] >= minHeight {
			filtered = append(filtered, p)
		}
	}
	peaks = filtered

	if minDistance <= 1 || len(peaks) < 2 {
		return peaks
	}

	// Process tallest first; each kept peak suppresses lower neighbors
	// within the exclusion distance.
	order := make([]int, len(peaks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return x[peaks[order[a]]] > x[peaks[order[b]]]
	})

	keep := make([]bool, len(peaks))
	for i := range keep {
		keep[i] = true
	}
	for _, idx := range order {
		if !keep[idx] {
			continue
		}
		for j := idx - 1; j >= 0 && peaks[idx]-peaks[j] < minDistance; j-- {
			keep[j] = false
		}
		for j := idx + 1; j < len(peaks) && peaks[j]-peaks[idx] < minDistance; j++ {
			keep[j] = false
		}
	}

	var out []int
	for i, p := range peaks {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}
