package analytics

import "strings"

// Band edges relative to FMV: below is under 90%, at is 90-110% inclusive,
// above is over 110%.
const (
	bandLowerEdge = 0.9
	bandUpperEdge = 1.1
)

// AnalyzePriceBands segments active and sold listings into below/at/above-FMV
// bands and computes per-band absorption ratios (sales per listing).
//
// Only active listings sold in a fixed-price format ("buy it now") are
// counted; auctions carry a live price that says little about asking levels.
// The active price sample is IQR-filtered first so one absurd asking price
// cannot manufacture a phantom band. Sold listings are bucketed by their raw
// total price and are assumed to be already windowed to the relevant lookback
// by the caller. A non-positive marketValue yields empty bands.
func AnalyzePriceBands(active, sold []Listing, marketValue float64) Bands {
	var bands Bands
	if marketValue <= 0 {
		return bands
	}

	askingPrices := make([]float64, 0, len(active))
	for i := range active {
		l := &active[i]
		if !isBuyItNow(l) {
			continue
		}
		if price := ListingPrice(l); price > 0 {
			askingPrices = append(askingPrices, price)
		}
	}
	for _, price := range FilterOutliers(askingPrices) {
		bands.bandFor(price, marketValue).ListingCount++
	}

	for i := range sold {
		if sold[i].TotalPrice == nil {
			continue
		}
		price := *sold[i].TotalPrice
		if price <= 0 {
			continue
		}
		bands.bandFor(price, marketValue).SaleCount++
	}

	for _, b := range []*Band{&bands.BelowFMV, &bands.AtFMV, &bands.AboveFMV} {
		if b.ListingCount > 0 {
			ratio := round2(float64(b.SaleCount) / float64(b.ListingCount))
			b.AbsorptionRatio = &ratio
		}
	}
	return bands
}

// bandFor picks the band a price falls into relative to FMV.
func (b *Bands) bandFor(price, marketValue float64) *Band {
	switch {
	case price < bandLowerEdge*marketValue:
		return &b.BelowFMV
	case price <= bandUpperEdge*marketValue:
		return &b.AtFMV
	default:
		return &b.AboveFMV
	}
}

// isBuyItNow reports whether a listing is sold at a fixed price.
func isBuyItNow(l *Listing) bool {
	if l.BuyingFormat == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*l.BuyingFormat), "buy it now")
}
