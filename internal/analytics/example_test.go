package analytics

import "fmt"

// Example_fullAnalysis walks the complete pipeline: estimate FMV from sold
// comps, measure asking-price pressure, and classify the market scenario
// against an externally supplied liquidity score.
func Example_fullAnalysis() {
	price := func(v float64) *float64 { return &v }
	seller := func(s string) *string { return &s }
	format := "Buy It Now"

	sold := []Listing{
		{TotalPrice: price(48)},
		{TotalPrice: price(50)},
		{TotalPrice: price(50)},
		{TotalPrice: price(50)},
		{TotalPrice: price(52)},
	}
	active := []Listing{
		{TotalPrice: price(52), SellerName: seller("pulls4days"), BuyingFormat: &format},
		{TotalPrice: price(55), SellerName: seller("mintcondition"), BuyingFormat: &format},
		{TotalPrice: price(50), SellerName: seller("binderdump"), BuyingFormat: &format},
		{TotalPrice: price(54), SellerName: seller("waxbreaker"), BuyingFormat: &format},
	}

	est := EstimateMarket(sold, len(active))
	pressure := MarketPressure(active, est.CentralValue)
	bands := AnalyzePriceBands(active, sold, est.CentralValue)

	assessment := ClassifyScenario(ScenarioInput{
		PressurePct:     *pressure.PressurePct,
		Confidence:      est.Confidence,
		LiquidityScore:  75, // supplied by the caller, never computed here
		AbsorptionBelow: bands.BelowFMV.AbsorptionRatio,
		AbsorptionAbove: bands.AboveFMV.AbsorptionRatio,
		BelowCount:      bands.BelowFMV.ListingCount,
		AboveCount:      bands.AboveFMV.ListingCount,
	})

	fmt.Printf("FMV: %s\n", FormatMoney(&est.CentralValue))
	fmt.Printf("Pressure: %.1f%% (%s)\n", *pressure.PressurePct, pressure.StatusBand)
	fmt.Printf("Scenario: %s\n", assessment.ScenarioTag)

	// Output:
	// FMV: $50.00
	// Pressure: 4.0% (HEALTHY)
	// Scenario: healthyMarketConditions
}
