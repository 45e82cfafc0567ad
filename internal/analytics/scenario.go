package analytics

import "math"

// scenarioRule pairs a predicate with its outcome. Rules are evaluated
// strictly top-to-bottom and the first match wins; reordering them changes
// behavior.
type scenarioRule struct {
	match func(ScenarioInput) bool
	tag   ScenarioTag
	level WarningLevel
}

// scenarioRules is the ordered decision table behind ClassifyScenario.
//
// Pressure in (15,30] with liquidity in [50,70) matches no rule and falls to
// the balancedMarket default; that gap is the "nothing remarkable" zone.
var scenarioRules = []scenarioRule{
	{
		// Too little signal to trust a large pressure reading.
		match: func(in ScenarioInput) bool {
			return in.Confidence < 30 && math.Abs(in.PressurePct) > 20
		},
		tag:   ScenarioDataQualityWarning,
		level: LevelWarning,
	},
	{
		// Cheap copies fly while premium copies sit: a split market.
		match: func(in ScenarioInput) bool {
			return in.AbsorptionBelow != nil && in.AbsorptionAbove != nil &&
				*in.AbsorptionBelow >= 1.5 && *in.AbsorptionAbove < 0.3 &&
				in.BelowCount > 0 && in.AboveCount > 0
		},
		tag:   ScenarioTwoTierMarket,
		level: LevelInfo,
	},
	{
		match: func(in ScenarioInput) bool {
			return in.PressurePct > 30 && in.LiquidityScore < 50
		},
		tag:   ScenarioHighRiskConditions,
		level: LevelDanger,
	},
	{
		match: func(in ScenarioInput) bool {
			return in.PressurePct > 30 && in.LiquidityScore >= 50
		},
		tag:   ScenarioOverpricedActiveMarket,
		level: LevelWarning,
	},
	{
		match: func(in ScenarioInput) bool {
			return in.PressurePct <= 15 && in.LiquidityScore < 50
		},
		tag:   ScenarioFairPricingLimitedDemand,
		level: LevelWarning,
	},
	{
		match: func(in ScenarioInput) bool {
			return in.PressurePct < 0 && in.LiquidityScore >= 70
		},
		tag:   ScenarioStrongBuyOpportunity,
		level: LevelSuccess,
	},
	{
		match: func(in ScenarioInput) bool {
			return in.PressurePct >= 0 && in.PressurePct <= 15 && in.LiquidityScore >= 70
		},
		tag:   ScenarioHealthyMarketConditions,
		level: LevelSuccess,
	},
}

// ClassifyScenario maps the combined market signals onto a single scenario
// tag via the ordered decision table above. The numeric inputs are echoed in
// Params so a downstream templating layer can fill narrative text without
// re-deriving them.
func ClassifyScenario(in ScenarioInput) Assessment {
	assessment := Assessment{
		ScenarioTag:  ScenarioBalancedMarket,
		WarningLevel: LevelInfo,
		Params: map[string]float64{
			"pressure_pct":    in.PressurePct,
			"confidence":      float64(in.Confidence),
			"liquidity_score": in.LiquidityScore,
		},
	}
	if in.AbsorptionBelow != nil {
		assessment.Params["absorption_below"] = *in.AbsorptionBelow
	}
	if in.AbsorptionAbove != nil {
		assessment.Params["absorption_above"] = *in.AbsorptionAbove
	}

	for _, rule := range scenarioRules {
		if rule.match(in) {
			assessment.ScenarioTag = rule.tag
			assessment.WarningLevel = rule.level
			break
		}
	}
	return assessment
}
