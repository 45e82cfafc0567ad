package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"cardpulse/internal/analytics"
	apierrors "cardpulse/internal/errors"
	"cardpulse/internal/infrastructure"
	"cardpulse/internal/services"
)

// AnalysisRequestDTO is the wire format for a single analysis request
type AnalysisRequestDTO struct {
	ItemID         string              `json:"item_id" validate:"required"`
	ActiveListings []analytics.Listing `json:"active_listings"`
	SoldListings   []analytics.Listing `json:"sold_listings"`
	LiquidityScore *float64            `json:"liquidity_score" validate:"omitempty,gte=0,lte=100"`
}

// BatchAnalysisRequestDTO is the wire format for a batch analysis request
type BatchAnalysisRequestDTO struct {
	Items []AnalysisRequestDTO `json:"items" validate:"required,min=1,max=50,dive"`
}

// QueryRequestDTO is the wire format for search query building
type QueryRequestDTO struct {
	Query        string `json:"query" validate:"required"`
	ExcludeLots  bool   `json:"exclude_lots"`
	UngradedOnly bool   `json:"ungraded_only"`
	BaseOnly     bool   `json:"base_only"`
}

// BandsRequestDTO is the wire format for a standalone price-band analysis
type BandsRequestDTO struct {
	ActiveListings []analytics.Listing `json:"active_listings"`
	SoldListings   []analytics.Listing `json:"sold_listings"`
	MarketValue    float64             `json:"market_value" validate:"required,gt=0"`
}

// ScenarioRequestDTO is the wire format for a standalone scenario
// classification over already-computed signals
type ScenarioRequestDTO struct {
	PressurePct     float64  `json:"pressure_pct"`
	Confidence      int      `json:"confidence" validate:"gte=0,lte=100"`
	LiquidityScore  float64  `json:"liquidity_score" validate:"gte=0,lte=100"`
	AbsorptionBelow *float64 `json:"absorption_below"`
	AbsorptionAbove *float64 `json:"absorption_above"`
	BelowCount      int      `json:"below_count" validate:"gte=0"`
	AboveCount      int      `json:"above_count" validate:"gte=0"`
}

// AnalysisHandler handles market analysis HTTP requests
type AnalysisHandler struct {
	service      *services.AnalysisService
	providers    *infrastructure.OTelProviders
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service *services.AnalysisService, providers *infrastructure.OTelProviders, logger *slog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		service:      service,
		providers:    providers,
		logger:       logger.With(slog.String("handler", "analysis")),
		errorHandler: apierrors.NewErrorHandler(logger, false),
		validate:     validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes registers the analysis routes
func (h *AnalysisHandler) RegisterRoutes(r chi.Router) {
	r.Route("/analysis", func(r chi.Router) {
		r.Post("/", h.Analyze)
		r.Post("/batch", h.AnalyzeBatch)
		r.Post("/query", h.BuildQuery)
		r.Post("/bands", h.AnalyzeBands)
		r.Post("/scenario", h.Classify)
	})
}

// Analyze handles POST /api/analysis
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var dto AnalysisRequestDTO
	if !h.decodeAndValidate(w, r, &dto) {
		return
	}

	snap, err := h.service.Analyze(ctx, &services.AnalysisRequest{
		ItemID:         dto.ItemID,
		ActiveListings: dto.ActiveListings,
		SoldListings:   dto.SoldListings,
		LiquidityScore: dto.LiquidityScore,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	h.countAnalysis(r, snap, 1)
	render.JSON(w, r, snap)
}

// AnalyzeBatch handles POST /api/analysis/batch
func (h *AnalysisHandler) AnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var dto BatchAnalysisRequestDTO
	if !h.decodeAndValidate(w, r, &dto) {
		return
	}

	reqs := make([]services.AnalysisRequest, len(dto.Items))
	for i, item := range dto.Items {
		reqs[i] = services.AnalysisRequest{
			ItemID:         item.ItemID,
			ActiveListings: item.ActiveListings,
			SoldListings:   item.SoldListings,
			LiquidityScore: item.LiquidityScore,
		}
	}

	snaps, err := h.service.AnalyzeBatch(ctx, reqs)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	h.countAnalysis(r, nil, int64(len(snaps)))
	render.JSON(w, r, map[string]interface{}{"snapshots": snaps})
}

// BuildQuery handles POST /api/analysis/query
func (h *AnalysisHandler) BuildQuery(w http.ResponseWriter, r *http.Request) {
	var dto QueryRequestDTO
	if !h.decodeAndValidate(w, r, &dto) {
		return
	}

	built := analytics.BuildSearchQuery(dto.Query, analytics.QueryOptions{
		ExcludeLots:  dto.ExcludeLots,
		UngradedOnly: dto.UngradedOnly,
		BaseOnly:     dto.BaseOnly,
	})
	render.JSON(w, r, map[string]string{"query": built})
}

// AnalyzeBands handles POST /api/analysis/bands
func (h *AnalysisHandler) AnalyzeBands(w http.ResponseWriter, r *http.Request) {
	var dto BandsRequestDTO
	if !h.decodeAndValidate(w, r, &dto) {
		return
	}

	bands := analytics.AnalyzePriceBands(dto.ActiveListings, dto.SoldListings, dto.MarketValue)
	render.JSON(w, r, bands)
}

// Classify handles POST /api/analysis/scenario
func (h *AnalysisHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var dto ScenarioRequestDTO
	if !h.decodeAndValidate(w, r, &dto) {
		return
	}

	assessment := analytics.ClassifyScenario(analytics.ScenarioInput{
		PressurePct:     dto.PressurePct,
		Confidence:      dto.Confidence,
		LiquidityScore:  dto.LiquidityScore,
		AbsorptionBelow: dto.AbsorptionBelow,
		AbsorptionAbove: dto.AbsorptionAbove,
		BelowCount:      dto.BelowCount,
		AboveCount:      dto.AboveCount,
	})
	render.JSON(w, r, assessment)
}

// decodeAndValidate decodes the JSON body into dst and runs struct
// validation, rendering an error response on failure.
func (h *AnalysisHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]apierrors.ValidationError, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, apierrors.ValidationError{
					Field:   fe.Field(),
					Message: fe.Tag(),
				})
			}
			h.errorHandler.HandleError(w, r, apierrors.ValidationErrors(fields))
			return false
		}
		h.errorHandler.HandleError(w, r, apierrors.ErrValidationFailed)
		return false
	}
	return true
}

// mapServiceError translates service errors into API errors
func (h *AnalysisHandler) mapServiceError(err error) error {
	switch {
	case errors.Is(err, services.ErrSampleTooLarge):
		return apierrors.NewWithDetails(http.StatusRequestEntityTooLarge,
			"SAMPLE_TOO_LARGE", "Listing sample exceeds the configured cap", err.Error())
	case errors.Is(err, services.ErrInvalidLiquidity):
		return apierrors.ErrValidation("liquidity_score", "must be between 0 and 100")
	case errors.Is(err, services.ErrNoRequest):
		return apierrors.ErrInvalidRequest
	default:
		return err
	}
}

// countAnalysis records the analyses metric when observability is wired
func (h *AnalysisHandler) countAnalysis(r *http.Request, snap *services.Snapshot, n int64) {
	if h.providers == nil || h.providers.AnalysisCounter == nil {
		return
	}
	opts := []metric.AddOption{}
	if snap != nil {
		opts = append(opts, metric.WithAttributes(
			attribute.String("scenario", string(snap.Assessment.ScenarioTag))))
	}
	h.providers.AnalysisCounter.Add(r.Context(), n, opts...)
}
