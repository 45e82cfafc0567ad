package analytics

import "math"

// MarketConfidence maps price dispersion relative to the mean into a 0-100
// consistency score: 100 - CV*100 where CV is the coefficient of variation.
// Identical prices score 100; increasing relative spread monotonically lowers
// the score. Empty samples and zero means score 0.
func MarketConfidence(prices []float64) int {
	if len(prices) == 0 {
		return 0
	}
	m := mean(prices)
	if m == 0 {
		return 0
	}
	cv := StdDev(prices) / m
	return clampScore(math.Round(100 - cv*100))
}

// DataQuality combines sample-size adequacy with price consistency into a
// single 0-100 score, weighted 60/40 toward sample size.
func DataQuality(soldCount, activeCount, confidence int) int {
	var sampleScore float64
	switch {
	case soldCount >= 20 && activeCount >= 10:
		sampleScore = 100
	case soldCount >= 10 && activeCount >= 5:
		sampleScore = 70
	case soldCount >= 5 && activeCount >= 3:
		sampleScore = 40
	default:
		sampleScore = 20
	}
	return clampScore(math.Round(sampleScore*0.6 + float64(confidence)*0.4))
}

// clampScore clamps a score to [0,100].
func clampScore(score float64) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return int(score)
}
