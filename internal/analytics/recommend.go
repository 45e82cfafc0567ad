package analytics

// Recommendations derives 1-3 pricing strategies from band absorption,
// market pressure and liquidity. Unlike the scenario table the rules here are
// order-independent; each fires on its own evidence. The only coupling is
// that Premium is considered solely when Patient Sale did not fire. When
// nothing fires, a single Standard recommendation at FMV is returned.
//
// pressurePct may be nil when pressure could not be computed; pressure-gated
// rules simply do not fire then.
func Recommendations(bands Bands, fmv float64, pressurePct *float64, liquidityScore float64) []Recommendation {
	recs := make([]Recommendation, 0, 3)

	if bands.BelowFMV.AbsorptionRatio != nil && *bands.BelowFMV.AbsorptionRatio >= 1.0 &&
		bands.BelowFMV.ListingCount > 0 {
		recs = append(recs, Recommendation{
			StrategyTag: StrategyQuickSale,
			TargetPrice: 0.85 * fmv,
			RangeLow:    0.80 * fmv,
			RangeHigh:   0.90 * fmv,
		})
	}

	if bands.AtFMV.AbsorptionRatio != nil && *bands.AtFMV.AbsorptionRatio >= 0.5 &&
		bands.AtFMV.ListingCount > 0 {
		recs = append(recs, Recommendation{
			StrategyTag: StrategyFairMarket,
			TargetPrice: fmv,
			RangeLow:    0.95 * fmv,
			RangeHigh:   1.05 * fmv,
		})
	}

	if pressurePct != nil && *pressurePct < 15 && liquidityScore >= 60 {
		recs = append(recs, Recommendation{
			StrategyTag: StrategyPatient,
			TargetPrice: 1.10 * fmv,
			RangeLow:    1.05 * fmv,
			RangeHigh:   1.15 * fmv,
		})
	} else if bands.AboveFMV.AbsorptionRatio != nil && *bands.AboveFMV.AbsorptionRatio >= 0.3 &&
		bands.AboveFMV.ListingCount > 0 {
		recs = append(recs, Recommendation{
			StrategyTag: StrategyPremium,
			TargetPrice: 1.12 * fmv,
			RangeLow:    1.10 * fmv,
			RangeHigh:   1.20 * fmv,
		})
	}

	if len(recs) == 0 {
		recs = append(recs, Recommendation{
			StrategyTag: StrategyStandard,
			TargetPrice: fmv,
			RangeLow:    0.90 * fmv,
			RangeHigh:   1.10 * fmv,
		})
	}
	return recs
}
