package analytics

// EstimateMarket runs the full FMV pipeline over sold listings: extract
// prices, drop IQR outliers, take the frequency-weighted median as the central
// value, and score consistency and data quality. activeCount is the number of
// active listings the caller observed alongside the sold sample; it only feeds
// the data-quality score.
//
// An empty sold sample yields a zero-valued estimate rather than an error.
func EstimateMarket(sold []Listing, activeCount int) Estimate {
	prices := make([]float64, 0, len(sold))
	for i := range sold {
		if p := ListingPrice(&sold[i]); p > 0 {
			prices = append(prices, p)
		}
	}

	filtered := FilterOutliers(prices)
	confidence := MarketConfidence(filtered)

	est := Estimate{
		Dispersion:  StdDev(filtered),
		Confidence:  confidence,
		SampleSize:  len(filtered),
		DataQuality: DataQuality(len(filtered), activeCount, confidence),
	}
	if central, ok := WeightedMedian(filtered); ok {
		est.CentralValue = central
	}
	return est
}
