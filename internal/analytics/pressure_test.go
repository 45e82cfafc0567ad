package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func binListing(seller string, price float64) Listing {
	l := Listing{TotalPrice: fptr(price), BuyingFormat: sptr("Buy It Now")}
	if seller != "" {
		l.SellerName = sptr(seller)
	}
	return l
}

func TestMarketPressureSellerDeduplication(t *testing.T) {
	// One seller spamming relists collapses to a single median ask.
	active := []Listing{
		binListing("cardshark99", 100),
		binListing("cardshark99", 110),
		binListing("cardshark99", 120),
		binListing("vaultbreaks", 100),
	}

	result := MarketPressure(active, 100)
	assert.Equal(t, 2, result.SampleSize)
	require.NotNil(t, result.MedianAsk)
	// cardshark99 contributes median 110, vaultbreaks 100; the weighted
	// median of [100, 110] is 100.
	assert.InDelta(t, 100, *result.MedianAsk, 0.0001)
}

func TestMarketPressureSyntheticKeyForUnknownSeller(t *testing.T) {
	active := []Listing{
		{TotalPrice: fptr(50), ItemID: "item-1"},
		{TotalPrice: fptr(60), ItemID: "item-2"},
		{TotalPrice: fptr(70), ItemID: "item-3"},
	}

	result := MarketPressure(active, 50)
	assert.Equal(t, 3, result.SampleSize, "each anonymous listing counts once")
}

func TestMarketPressureStatusBands(t *testing.T) {
	tests := []struct {
		name     string
		ask      float64
		fmv      float64
		expected StatusBand
	}{
		{"healthy at fmv", 100, 100, BandHealthy},
		{"healthy upper edge", 115, 100, BandHealthy},
		{"optimistic", 125, 100, BandOptimistic},
		{"optimistic upper edge", 130, 100, BandOptimistic},
		{"resistance", 140, 100, BandResistance},
		{"unrealistic", 175, 100, BandUnrealistic},
		{"below fmv", 80, 100, BandBelowFMV},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MarketPressure([]Listing{binListing("s1", tt.ask)}, tt.fmv)
			require.NotNil(t, result.PressurePct)
			assert.Equal(t, tt.expected, result.StatusBand)
		})
	}
}

func TestMarketPressureConfidenceLabels(t *testing.T) {
	makeActive := func(n int) []Listing {
		var out []Listing
		for i := 0; i < n; i++ {
			out = append(out, binListing(string(rune('a'+i)), 100))
		}
		return out
	}

	tests := []struct {
		name     string
		sellers  int
		expected ConfidenceLabel
	}{
		{"no sample", 0, ConfidenceNA},
		{"low", 2, ConfidenceLow},
		{"medium", 5, ConfidenceMedium},
		{"high", 12, ConfidenceHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MarketPressure(makeActive(tt.sellers), 100)
			assert.Equal(t, tt.expected, result.ConfidenceLabel)
			assert.Equal(t, tt.sellers, result.SampleSize)
		})
	}
}

func TestMarketPressureFiltersOutlierSellers(t *testing.T) {
	active := []Listing{
		binListing("s1", 100),
		binListing("s2", 102),
		binListing("s3", 98),
		binListing("s4", 101),
		binListing("s5", 5000),
	}

	result := MarketPressure(active, 100)
	assert.Equal(t, 4, result.SampleSize)
	require.NotNil(t, result.PressurePct)
	assert.InDelta(t, 0, *result.PressurePct, 0.0001)
}

func TestMarketPressureNonPositiveFMV(t *testing.T) {
	result := MarketPressure([]Listing{binListing("s1", 100)}, 0)
	assert.Nil(t, result.PressurePct)
	assert.Equal(t, BandUnknown, result.StatusBand)
	require.NotNil(t, result.MedianAsk, "ask is still reported without an FMV")
}

func TestMarketPressureEmptyInput(t *testing.T) {
	result := MarketPressure(nil, 100)
	assert.Nil(t, result.PressurePct)
	assert.Nil(t, result.MedianAsk)
	assert.Equal(t, 0, result.SampleSize)
	assert.Equal(t, ConfidenceNA, result.ConfidenceLabel)
}
