// Package analytics implements the CardPulse Market Analytics Engine.
//
// The engine turns raw sold/active marketplace listing data into a fair market
// value (FMV) estimate and a qualitative read on current market conditions. It
// is a set of pure, deterministic functions: no I/O, no shared state, same
// input always produces the same output.
//
// # Core Components
//
// The analysis pipeline is built from small composable parts:
//
//  1. Price extraction: derive a usable price from a raw listing record
//  2. Outlier filtering: IQR-based robust filter over a price sample
//  3. Central tendency: frequency-weighted median favoring price clusters
//  4. Dispersion and confidence: population standard deviation mapped into a
//     0-100 consistency score, combined with sample-size adequacy into a
//     data-quality score
//  5. Market pressure: per-seller deduplicated asking prices compared to FMV
//  6. Price bands: below/at/above-FMV segmentation with absorption ratios
//  7. Scenario classification: a precedence-ordered decision table over
//     pressure, confidence, liquidity and absorption signals
//  8. Recommendations: rule-based pricing strategies derived from the above
//
// # Architecture
//
//   - types.go: listing records, results, and enum tags
//   - extract.go: price extraction from listing records
//   - query.go: search query exclusion clauses
//   - outlier.go: IQR outlier filter
//   - stats.go: weighted median and population standard deviation
//   - confidence.go: consistency and data-quality scoring
//   - estimate.go: full FMV estimate pipeline
//   - pressure.go: asking-price pressure analysis
//   - bands.go: price-band segmentation and absorption
//   - scenario.go: ordered scenario decision table
//   - recommend.go: pricing strategy rules
//   - format.go: price rounding and money formatting helpers
//
// The liquidity score consumed by the scenario classifier is an external
// input on a 0-100 scale; this package never computes it.
//
// # Usage Example
//
//	fmv := analytics.EstimateMarket(soldListings, len(activeListings))
//	pressure := analytics.MarketPressure(activeListings, fmv.CentralValue)
//	bands := analytics.AnalyzePriceBands(activeListings, soldListings, fmv.CentralValue)
//
//	assessment := analytics.ClassifyScenario(analytics.ScenarioInput{
//	    PressurePct:     pressure.PressurePct,
//	    Confidence:      fmv.Confidence,
//	    LiquidityScore:  72,
//	    AbsorptionBelow: bands.BelowFMV.AbsorptionRatio,
//	    AbsorptionAbove: bands.AboveFMV.AbsorptionRatio,
//	    BelowCount:      bands.BelowFMV.ListingCount,
//	    AboveCount:      bands.AboveFMV.ListingCount,
//	})
package analytics
