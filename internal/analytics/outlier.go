package analytics

import "sort"

// FilterOutliers removes IQR outliers from a price sample while preserving the
// original order of the survivors. Samples smaller than 4 are returned as an
// unmodified copy: too few points to estimate quartiles reliably.
//
// Quartiles are index-based, q1 = sorted[floor(n*0.25)] and
// q3 = sorted[floor(n*0.75)], not interpolated. Bounds are the usual
// [q1 - 1.5*IQR, q3 + 1.5*IQR], inclusive on both ends.
//
// Filtering is not idempotent in general: a second pass recomputes quartiles
// over the smaller sample and may tighten the bounds further.
func FilterOutliers(prices []float64) []float64 {
	n := len(prices)
	if n < 4 {
		out := make([]float64, n)
		copy(out, prices)
		return out
	}

	sorted := make([]float64, n)
	copy(sorted, prices)
	sort.Float64s(sorted)

	q1 := sorted[n/4]
	q3 := sorted[n*3/4]
	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	filtered := make([]float64, 0, n)
	for _, p := range prices {
		if p >= lower && p <= upper {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
