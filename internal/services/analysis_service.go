package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"cardpulse/internal/analytics"
	"cardpulse/internal/config"
)

// AnalysisRequest carries the raw listing data for one item analysis.
// SoldListings are expected to be pre-windowed to the relevant lookback
// (typically 90 days) by the caller; listings carry no timestamp.
type AnalysisRequest struct {
	ItemID         string              `json:"item_id"`
	ActiveListings []analytics.Listing `json:"active_listings"`
	SoldListings   []analytics.Listing `json:"sold_listings"`
	// LiquidityScore overrides the provider-supplied score when set.
	LiquidityScore *float64 `json:"liquidity_score,omitempty"`
}

// Snapshot is the complete analysis result for one item.
type Snapshot struct {
	ItemID          string                     `json:"item_id"`
	GeneratedAt     time.Time                  `json:"generated_at"`
	Estimate        analytics.Estimate         `json:"estimate"`
	Pressure        analytics.PressureResult   `json:"pressure"`
	Bands           analytics.Bands            `json:"bands"`
	Assessment      analytics.Assessment       `json:"assessment"`
	Recommendations []analytics.Recommendation `json:"recommendations"`
	LiquidityScore  float64                    `json:"liquidity_score"`
}

// AnalysisService runs the full analytics pipeline over listing samples.
type AnalysisService struct {
	cfg       config.AnalyticsConfig
	liquidity LiquidityProvider
	logger    *slog.Logger
	now       func() time.Time
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(cfg config.AnalyticsConfig, liquidity LiquidityProvider, logger *slog.Logger) *AnalysisService {
	if liquidity == nil {
		liquidity = StaticLiquidityProvider{Score: cfg.DefaultLiquidityScore}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisService{
		cfg:       cfg,
		liquidity: liquidity,
		logger:    logger,
		now:       time.Now,
	}
}

// Analyze runs estimate, pressure, band, scenario and recommendation
// analysis for a single item. The engine itself never fails on malformed
// data; errors here come from input caps and the liquidity provider only.
func (s *AnalysisService) Analyze(ctx context.Context, req *AnalysisRequest) (*Snapshot, error) {
	if req == nil {
		return nil, ErrNoRequest
	}
	if sample := len(req.ActiveListings) + len(req.SoldListings); sample > s.cfg.MaxSampleSize {
		return nil, fmt.Errorf("%w: %d listings, cap %d", ErrSampleTooLarge, sample, s.cfg.MaxSampleSize)
	}

	start := s.now()
	liquidityScore, err := s.resolveLiquidity(ctx, req)
	if err != nil {
		return nil, err
	}

	estimate := analytics.EstimateMarket(req.SoldListings, len(req.ActiveListings))
	pressure := analytics.MarketPressure(req.ActiveListings, estimate.CentralValue)
	bands := analytics.AnalyzePriceBands(req.ActiveListings, req.SoldListings, estimate.CentralValue)

	// Without a pressure reading there is no evidence for the
	// pressure-driven scenarios, so skip the decision table and stay on
	// the neutral default rather than classify on a phantom zero.
	assessment := analytics.Assessment{
		ScenarioTag:  analytics.ScenarioBalancedMarket,
		WarningLevel: analytics.LevelInfo,
		Params: map[string]float64{
			"confidence":      float64(estimate.Confidence),
			"liquidity_score": liquidityScore,
		},
	}
	if pressure.PressurePct != nil {
		assessment = analytics.ClassifyScenario(analytics.ScenarioInput{
			PressurePct:     *pressure.PressurePct,
			Confidence:      estimate.Confidence,
			LiquidityScore:  liquidityScore,
			AbsorptionBelow: bands.BelowFMV.AbsorptionRatio,
			AbsorptionAbove: bands.AboveFMV.AbsorptionRatio,
			BelowCount:      bands.BelowFMV.ListingCount,
			AboveCount:      bands.AboveFMV.ListingCount,
		})
	}

	recommendations := analytics.Recommendations(bands, estimate.CentralValue, pressure.PressurePct, liquidityScore)

	s.logger.InfoContext(ctx, "analysis completed",
		slog.String("item_id", req.ItemID),
		slog.Float64("fmv", estimate.CentralValue),
		slog.Int("sample_size", estimate.SampleSize),
		slog.Int("confidence", estimate.Confidence),
		slog.String("scenario", string(assessment.ScenarioTag)),
		slog.String("duration", time.Since(start).String()),
	)

	return &Snapshot{
		ItemID:          req.ItemID,
		GeneratedAt:     start,
		Estimate:        estimate,
		Pressure:        pressure,
		Bands:           bands,
		Assessment:      assessment,
		Recommendations: recommendations,
		LiquidityScore:  liquidityScore,
	}, nil
}

// AnalyzeBatch analyzes multiple items with bounded concurrency. Results
// keep the order of the requests. One failing item fails the batch; the
// engine itself cannot fail, so this surfaces only caps and provider errors.
func (s *AnalysisService) AnalyzeBatch(ctx context.Context, reqs []AnalysisRequest) ([]*Snapshot, error) {
	snapshots := make([]*Snapshot, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxBatchConcurrency)

	for i := range reqs {
		g.Go(func() error {
			snap, err := s.Analyze(gctx, &reqs[i])
			if err != nil {
				return fmt.Errorf("analyze %q: %w", reqs[i].ItemID, err)
			}
			snapshots[i] = snap
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshots, nil
}

// resolveLiquidity picks the per-request override when present, otherwise
// asks the provider. Scores outside [0,100] are rejected rather than
// clamped: a wild score means a broken upstream, not a hot market.
func (s *AnalysisService) resolveLiquidity(ctx context.Context, req *AnalysisRequest) (float64, error) {
	if req.LiquidityScore != nil {
		score := *req.LiquidityScore
		if score < 0 || score > 100 {
			return 0, fmt.Errorf("%w: got %f", ErrInvalidLiquidity, score)
		}
		return score, nil
	}

	score, err := s.liquidity.LiquidityScore(ctx, req.ItemID)
	if err != nil {
		return 0, fmt.Errorf("liquidity provider: %w", err)
	}
	if score < 0 || score > 100 {
		return 0, fmt.Errorf("%w: provider returned %f", ErrInvalidLiquidity, score)
	}
	return score, nil
}
