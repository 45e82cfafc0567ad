package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"cardpulse/internal/analytics"
	"cardpulse/internal/services"
)

// Sheet names in the Excel workbook
const (
	summarySheet         = "Summary"
	bandsSheet           = "Price Bands"
	recommendationsSheet = "Recommendations"
)

// ReportWriter writes analysis snapshots to report files
type ReportWriter struct {
	logger *slog.Logger
}

// NewReportWriter creates a new report writer
func NewReportWriter(logger *slog.Logger) *ReportWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportWriter{logger: logger}
}

// WriteXLSX writes snapshots into a three-sheet Excel workbook.
func (w *ReportWriter) WriteXLSX(path string, snapshots []*services.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), summarySheet)
	if _, err := f.NewSheet(bandsSheet); err != nil {
		return fmt.Errorf("create bands sheet: %w", err)
	}
	if _, err := f.NewSheet(recommendationsSheet); err != nil {
		return fmt.Errorf("create recommendations sheet: %w", err)
	}

	if err := w.writeSummary(f, snapshots); err != nil {
		return err
	}
	if err := w.writeBands(f, snapshots); err != nil {
		return err
	}
	if err := w.writeRecommendations(f, snapshots); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	w.logger.Info("wrote xlsx report",
		slog.String("path", path),
		slog.Int("snapshots", len(snapshots)))
	return nil
}

func (w *ReportWriter) writeSummary(f *excelize.File, snapshots []*services.Snapshot) error {
	headers := []interface{}{
		"Item ID", "Generated At", "FMV", "FMV (display)", "Dispersion",
		"Confidence", "Sample Size", "Data Quality", "Pressure %",
		"Status Band", "Liquidity Score", "Scenario", "Warning Level",
	}
	if err := writeRow(f, summarySheet, 1, headers); err != nil {
		return err
	}

	for i, snap := range snapshots {
		fmv := snap.Estimate.CentralValue
		row := []interface{}{
			snap.ItemID,
			snap.GeneratedAt.Format("2006-01-02 15:04:05"),
			fmv,
			analytics.FormatMoney(&fmv),
			snap.Estimate.Dispersion,
			snap.Estimate.Confidence,
			snap.Estimate.SampleSize,
			snap.Estimate.DataQuality,
			floatOrNA(snap.Pressure.PressurePct),
			string(snap.Pressure.StatusBand),
			snap.LiquidityScore,
			string(snap.Assessment.ScenarioTag),
			string(snap.Assessment.WarningLevel),
		}
		if err := writeRow(f, summarySheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func (w *ReportWriter) writeBands(f *excelize.File, snapshots []*services.Snapshot) error {
	headers := []interface{}{"Item ID", "Band", "Listings", "Sales", "Absorption"}
	if err := writeRow(f, bandsSheet, 1, headers); err != nil {
		return err
	}

	row := 2
	for _, snap := range snapshots {
		bands := []struct {
			name string
			band analytics.Band
		}{
			{"Below FMV", snap.Bands.BelowFMV},
			{"At FMV", snap.Bands.AtFMV},
			{"Above FMV", snap.Bands.AboveFMV},
		}
		for _, b := range bands {
			values := []interface{}{
				snap.ItemID, b.name, b.band.ListingCount, b.band.SaleCount,
				floatOrNA(b.band.AbsorptionRatio),
			}
			if err := writeRow(f, bandsSheet, row, values); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func (w *ReportWriter) writeRecommendations(f *excelize.File, snapshots []*services.Snapshot) error {
	headers := []interface{}{"Item ID", "Strategy", "Target", "Range Low", "Range High"}
	if err := writeRow(f, recommendationsSheet, 1, headers); err != nil {
		return err
	}

	row := 2
	for _, snap := range snapshots {
		for _, rec := range snap.Recommendations {
			values := []interface{}{
				snap.ItemID, string(rec.StrategyTag),
				rec.TargetPrice, rec.RangeLow, rec.RangeHigh,
			}
			if err := writeRow(f, recommendationsSheet, row, values); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

// writeRow sets one row of cells starting at column A
func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("cell coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}

// CSVOptions configures CSV output
type CSVOptions struct {
	// BOMPrefix adds a UTF-8 BOM so Excel opens the file cleanly
	BOMPrefix bool
}

// WriteCSV writes one summary row per snapshot.
func (w *ReportWriter) WriteCSV(path string, snapshots []*services.Snapshot, opts CSVOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer file.Close()

	if opts.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("write BOM: %w", err)
		}
	}

	cw := csv.NewWriter(file)
	header := []string{
		"item_id", "generated_at", "fmv", "dispersion", "confidence",
		"sample_size", "data_quality", "pressure_pct", "status_band",
		"liquidity_score", "scenario", "warning_level",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, snap := range snapshots {
		record := []string{
			snap.ItemID,
			snap.GeneratedAt.Format("2006-01-02 15:04:05"),
			formatFloat(snap.Estimate.CentralValue),
			formatFloat(snap.Estimate.Dispersion),
			strconv.Itoa(snap.Estimate.Confidence),
			strconv.Itoa(snap.Estimate.SampleSize),
			strconv.Itoa(snap.Estimate.DataQuality),
			csvFloatOrNA(snap.Pressure.PressurePct),
			string(snap.Pressure.StatusBand),
			formatFloat(snap.LiquidityScore),
			string(snap.Assessment.ScenarioTag),
			string(snap.Assessment.WarningLevel),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	w.logger.Info("wrote csv report",
		slog.String("path", path),
		slog.Int("snapshots", len(snapshots)))
	return nil
}

// floatOrNA maps a nil float to the "N/A" sentinel for spreadsheet cells
func floatOrNA(v *float64) interface{} {
	if v == nil {
		return "N/A"
	}
	return *v
}

// csvFloatOrNA maps a nil float to the "N/A" sentinel for csv fields
func csvFloatOrNA(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return formatFloat(*v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
