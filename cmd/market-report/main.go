// Command market-report runs the analytics pipeline over a listings file and
// writes an xlsx or csv report. The input is a JSON array of analysis
// requests, each carrying the sold and active listings for one item.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"cardpulse/internal/config"
	"cardpulse/internal/exporter"
	"cardpulse/internal/infrastructure"
	"cardpulse/internal/services"
)

func main() {
	inPath := flag.String("in", "", "path to listings JSON file (required)")
	outDir := flag.String("out", "reports", "output directory for the report")
	format := flag.String("fmt", "xlsx", "report format: xlsx or csv")
	liquidity := flag.Float64("liquidity", -1, "liquidity score override 0-100 (defaults to configured score)")
	flag.Parse()

	if *inPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}

	reqs, err := loadRequests(*inPath)
	if err != nil {
		logger.Error("failed to load listings", "path", *inPath, "error", err)
		os.Exit(1)
	}
	if len(reqs) == 0 {
		logger.Error("no analysis requests found in input", "path", *inPath)
		os.Exit(1)
	}
	logger.Info("loaded analysis requests", "count", len(reqs))

	score := cfg.Analytics.DefaultLiquidityScore
	if *liquidity >= 0 {
		score = *liquidity
	}
	svc := services.NewAnalysisService(cfg.Analytics,
		services.StaticLiquidityProvider{Score: score}, logger)

	snapshots, err := svc.AnalyzeBatch(context.Background(), reqs)
	if err != nil {
		logger.Error("analysis failed", "error", err)
		os.Exit(1)
	}

	writer := exporter.NewReportWriter(logger)
	switch *format {
	case "xlsx":
		path := filepath.Join(*outDir, "market_report.xlsx")
		err = writer.WriteXLSX(path, snapshots)
	case "csv":
		path := filepath.Join(*outDir, "market_report.csv")
		err = writer.WriteCSV(path, snapshots, exporter.CSVOptions{BOMPrefix: true})
	default:
		err = fmt.Errorf("unknown format %q, want xlsx or csv", *format)
	}
	if err != nil {
		logger.Error("failed to write report", "error", err)
		os.Exit(1)
	}

	logger.Info("report complete", "items", len(snapshots), "format", *format)
}

// loadRequests reads a JSON array of analysis requests
func loadRequests(path string) ([]services.AnalysisRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	var reqs []services.AnalysisRequest
	if err := json.Unmarshal(data, &reqs); err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}
	return reqs, nil
}
