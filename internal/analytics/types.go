package analytics

import "encoding/json"

// Listing represents a single raw marketplace listing record. Price fields are
// pointers because upstream scrapers routinely fail to extract one or more of
// them; the engine never mutates a Listing.
type Listing struct {
	TotalPrice        *float64 `json:"total_price"`
	ExtractedPrice    *float64 `json:"extracted_price"`
	ExtractedShipping *float64 `json:"extracted_shipping"`
	SellerName        *string  `json:"seller_name"`
	ItemID            string   `json:"item_id"`
	BuyingFormat      *string  `json:"buying_format"`
}

// QueryOptions controls which exclusion clauses BuildSearchQuery appends.
type QueryOptions struct {
	ExcludeLots  bool `json:"exclude_lots"`
	UngradedOnly bool `json:"ungraded_only"`
	BaseOnly     bool `json:"base_only"`
}

// Estimate is the engine's fair-market-value estimate for an item.
type Estimate struct {
	CentralValue float64 `json:"central_value"`
	Dispersion   float64 `json:"dispersion"`
	Confidence   int     `json:"confidence"`
	SampleSize   int     `json:"sample_size"`
	DataQuality  int     `json:"data_quality"`
}

// ConfidenceLabel grades the pressure sample size.
type ConfidenceLabel string

const (
	ConfidenceNA     ConfidenceLabel = "N/A"
	ConfidenceLow    ConfidenceLabel = "Low"
	ConfidenceMedium ConfidenceLabel = "Medium"
	ConfidenceHigh   ConfidenceLabel = "High"
)

// StatusBand classifies how far asking prices sit from FMV.
type StatusBand string

const (
	BandHealthy     StatusBand = "HEALTHY"
	BandOptimistic  StatusBand = "OPTIMISTIC"
	BandResistance  StatusBand = "RESISTANCE"
	BandUnrealistic StatusBand = "UNREALISTIC"
	BandBelowFMV    StatusBand = "BELOW_FMV"
	// BandUnknown is returned when pressure could not be computed, either
	// because no asking prices survived filtering or FMV was non-positive.
	BandUnknown StatusBand = ""
)

// PressureResult reports how current asking prices compare to FMV.
// PressurePct and MedianAsk are nil when they cannot be computed.
type PressureResult struct {
	PressurePct     *float64        `json:"pressure_pct"`
	MedianAsk       *float64        `json:"median_ask"`
	SampleSize      int             `json:"sample_size"`
	ConfidenceLabel ConfidenceLabel `json:"confidence_label"`
	StatusBand      StatusBand      `json:"status_band,omitempty"`
}

// Band aggregates listing and sale activity within one price band.
// A nil AbsorptionRatio means no active listings fell in the band; it is
// serialized as the sentinel "N/A".
type Band struct {
	ListingCount    int
	SaleCount       int
	AbsorptionRatio *float64
}

// MarshalJSON renders a nil absorption ratio as the "N/A" sentinel.
func (b Band) MarshalJSON() ([]byte, error) {
	out := struct {
		ListingCount    int         `json:"listing_count"`
		SaleCount       int         `json:"sale_count"`
		AbsorptionRatio interface{} `json:"absorption_ratio"`
	}{
		ListingCount: b.ListingCount,
		SaleCount:    b.SaleCount,
	}
	if b.AbsorptionRatio != nil {
		out.AbsorptionRatio = *b.AbsorptionRatio
	} else {
		out.AbsorptionRatio = "N/A"
	}
	return json.Marshal(out)
}

// Bands segments market activity relative to FMV: below 90%, within 90-110%,
// and above 110%.
type Bands struct {
	BelowFMV Band `json:"below_fmv"`
	AtFMV    Band `json:"at_fmv"`
	AboveFMV Band `json:"above_fmv"`
}

// ScenarioTag identifies one market scenario. Downstream renderers map tags to
// localized narrative text; the engine emits tags and numeric parameters only.
type ScenarioTag string

const (
	ScenarioDataQualityWarning       ScenarioTag = "dataQualityWarning"
	ScenarioTwoTierMarket            ScenarioTag = "twoTierMarket"
	ScenarioHighRiskConditions       ScenarioTag = "highRiskConditions"
	ScenarioOverpricedActiveMarket   ScenarioTag = "overpricedActiveMarket"
	ScenarioFairPricingLimitedDemand ScenarioTag = "fairPricingLimitedDemand"
	ScenarioStrongBuyOpportunity     ScenarioTag = "strongBuyOpportunity"
	ScenarioHealthyMarketConditions  ScenarioTag = "healthyMarketConditions"
	ScenarioBalancedMarket           ScenarioTag = "balancedMarket"
)

// WarningLevel grades the severity of a scenario.
type WarningLevel string

const (
	LevelInfo    WarningLevel = "info"
	LevelSuccess WarningLevel = "success"
	LevelWarning WarningLevel = "warning"
	LevelDanger  WarningLevel = "danger"
)

// ScenarioInput carries the correlated signals the scenario decision table
// evaluates. AbsorptionBelow/AbsorptionAbove are nil when the corresponding
// band had no active listings.
type ScenarioInput struct {
	PressurePct     float64
	Confidence      int
	LiquidityScore  float64
	AbsorptionBelow *float64
	AbsorptionAbove *float64
	BelowCount      int
	AboveCount      int
}

// Assessment is the scenario classification result. Params echoes the numeric
// inputs a downstream templating layer needs to fill narrative text.
type Assessment struct {
	ScenarioTag  ScenarioTag        `json:"scenario_tag"`
	WarningLevel WarningLevel       `json:"warning_level"`
	Params       map[string]float64 `json:"params,omitempty"`
}

// StrategyTag identifies one pricing strategy.
type StrategyTag string

const (
	StrategyQuickSale  StrategyTag = "quickSale"
	StrategyFairMarket StrategyTag = "fairMarket"
	StrategyPatient    StrategyTag = "patientSale"
	StrategyPremium    StrategyTag = "premium"
	StrategyStandard   StrategyTag = "standard"
)

// Recommendation is a pricing strategy with a target price and range.
type Recommendation struct {
	StrategyTag StrategyTag `json:"strategy_tag"`
	TargetPrice float64     `json:"target_price"`
	RangeLow    float64     `json:"range_low"`
	RangeHigh   float64     `json:"range_high"`
}
