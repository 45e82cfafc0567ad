package analytics

import "sort"

// MarketPressure measures how current asking prices compare to FMV. Active
// listings are deduplicated per seller so a single seller relisting the same
// card at many prices cannot dominate the sample: each seller contributes the
// median of their asking prices. With at least 4 sellers the per-seller
// medians are IQR-filtered before the weighted-median ask is taken.
//
// PressurePct is nil when marketValue is non-positive or no asking prices
// survive; MedianAsk is nil when no asking prices survive.
func MarketPressure(active []Listing, marketValue float64) PressureResult {
	askingPrices := sellerMedianPrices(active)
	if len(askingPrices) >= 4 {
		askingPrices = FilterOutliers(askingPrices)
	}

	result := PressureResult{
		SampleSize:      len(askingPrices),
		ConfidenceLabel: sampleConfidence(len(askingPrices)),
	}

	medianAsk, ok := WeightedMedian(askingPrices)
	if !ok {
		return result
	}
	result.MedianAsk = &medianAsk

	if marketValue <= 0 {
		return result
	}
	pressure := (medianAsk - marketValue) / marketValue * 100
	result.PressurePct = &pressure
	result.StatusBand = pressureBand(pressure)
	return result
}

// sellerMedianPrices groups active listings by seller identity and reduces
// each group to its median asking price. Listings without a seller fall back
// to a synthetic per-item key so they still count once each. Groups are
// walked in sorted key order to keep the output deterministic.
func sellerMedianPrices(active []Listing) []float64 {
	bySeller := make(map[string][]float64)
	for i := range active {
		l := &active[i]
		price := ListingPrice(l)
		if price <= 0 {
			continue
		}
		key := "item:" + l.ItemID
		if l.SellerName != nil && *l.SellerName != "" {
			key = "seller:" + *l.SellerName
		}
		bySeller[key] = append(bySeller[key], price)
	}

	keys := make([]string, 0, len(bySeller))
	for k := range bySeller {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	medians := make([]float64, 0, len(keys))
	for _, k := range keys {
		prices := bySeller[k]
		sort.Float64s(prices)
		medians = append(medians, prices[len(prices)/2])
	}
	return medians
}

// sampleConfidence grades the asking-price sample size.
func sampleConfidence(n int) ConfidenceLabel {
	switch {
	case n >= 10:
		return ConfidenceHigh
	case n >= 5:
		return ConfidenceMedium
	case n > 0:
		return ConfidenceLow
	default:
		return ConfidenceNA
	}
}

// pressureBand buckets a pressure percentage into a status band.
func pressureBand(p float64) StatusBand {
	switch {
	case p < 0:
		return BandBelowFMV
	case p <= 15:
		return BandHealthy
	case p <= 30:
		return BandOptimistic
	case p <= 50:
		return BandResistance
	default:
		return BandUnrealistic
	}
}
