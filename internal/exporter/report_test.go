package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"cardpulse/internal/analytics"
	"cardpulse/internal/services"
)

func fptr(v float64) *float64 { return &v }

func sampleSnapshot() *services.Snapshot {
	return &services.Snapshot{
		ItemID:      "charizard-4-holo",
		GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Estimate: analytics.Estimate{
			CentralValue: 50, Dispersion: 1.26, Confidence: 97,
			SampleSize: 5, DataQuality: 63,
		},
		Pressure: analytics.PressureResult{
			PressurePct: fptr(4), MedianAsk: fptr(52), SampleSize: 4,
			ConfidenceLabel: analytics.ConfidenceLow,
			StatusBand:      analytics.BandHealthy,
		},
		Bands: analytics.Bands{
			AtFMV: analytics.Band{ListingCount: 4, SaleCount: 5, AbsorptionRatio: fptr(1.25)},
		},
		Assessment: analytics.Assessment{
			ScenarioTag:  analytics.ScenarioHealthyMarketConditions,
			WarningLevel: analytics.LevelSuccess,
		},
		Recommendations: []analytics.Recommendation{
			{StrategyTag: analytics.StrategyFairMarket, TargetPrice: 50, RangeLow: 47.5, RangeHigh: 52.5},
		},
		LiquidityScore: 75,
	}
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "analysis.xlsx")
	w := NewReportWriter(nil)

	require.NoError(t, w.WriteXLSX(path, []*services.Snapshot{sampleSnapshot()}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Summary", "Price Bands", "Recommendations"}, f.GetSheetList())

	itemID, err := f.GetCellValue("Summary", "A2")
	require.NoError(t, err)
	assert.Equal(t, "charizard-4-holo", itemID)

	display, err := f.GetCellValue("Summary", "D2")
	require.NoError(t, err)
	assert.Equal(t, "$50.00", display)

	scenario, err := f.GetCellValue("Summary", "L2")
	require.NoError(t, err)
	assert.Equal(t, "healthyMarketConditions", scenario)

	// Below FMV had no listings, so its absorption cell carries the sentinel.
	absorption, err := f.GetCellValue("Price Bands", "E2")
	require.NoError(t, err)
	assert.Equal(t, "N/A", absorption)

	strategy, err := f.GetCellValue("Recommendations", "B2")
	require.NoError(t, err)
	assert.Equal(t, "fairMarket", strategy)
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.csv")
	w := NewReportWriter(nil)

	require.NoError(t, w.WriteCSV(path, []*services.Snapshot{sampleSnapshot()}, CSVOptions{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "item_id,generated_at,fmv"))
	assert.Contains(t, lines[1], "charizard-4-holo")
	assert.Contains(t, lines[1], "healthyMarketConditions")
	assert.Contains(t, lines[1], "4.00")
}

func TestWriteCSVWithBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.csv")
	w := NewReportWriter(nil)

	require.NoError(t, w.WriteCSV(path, nil, CSVOptions{BOMPrefix: true}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
}

func TestWriteCSVNilPressure(t *testing.T) {
	snap := sampleSnapshot()
	snap.Pressure.PressurePct = nil
	path := filepath.Join(t.TempDir(), "analysis.csv")

	require.NoError(t, NewReportWriter(nil).WriteCSV(path, []*services.Snapshot{snap}, CSVOptions{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "N/A")
}
