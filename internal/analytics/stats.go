package analytics

import (
	"math"
	"sort"
)

// WeightedMedian estimates the central value of a price sample, biased toward
// price clusters. Prices are rounded to the nearest cent and tallied into a
// frequency table; the estimate is the lowest rounded price whose cumulative
// frequency reaches half the sample. Repeated identical prices therefore pull
// the estimate toward the most commonly observed price rather than the raw
// midpoint.
//
// The second return is false for an empty sample.
func WeightedMedian(prices []float64) (float64, bool) {
	switch len(prices) {
	case 0:
		return 0, false
	case 1:
		return prices[0], true
	}

	freq := make(map[float64]int, len(prices))
	for _, p := range prices {
		cents := math.Round(p*100) / 100
		freq[cents]++
	}

	unique := make([]float64, 0, len(freq))
	for p := range freq {
		unique = append(unique, p)
	}
	sort.Float64s(unique)

	target := (len(prices) + 1) / 2
	cumulative := 0
	for _, p := range unique {
		cumulative += freq[p]
		if cumulative >= target {
			return p, true
		}
	}
	// Unreachable: the walk always covers the whole sample.
	return unique[len(unique)-1], true
}

// StdDev returns the population standard deviation (divisor n, not n-1).
// Empty and singleton samples have zero dispersion.
func StdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)

	var sqSum float64
	for _, v := range values {
		d := v - mean
		sqSum += d * d
	}
	return math.Sqrt(sqSum / float64(n))
}

// mean returns the arithmetic mean, 0 for an empty sample.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// round2 rounds to 2 decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
