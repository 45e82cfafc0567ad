package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardpulse/internal/config"
	"cardpulse/internal/services"
)

func newTestRouter(t *testing.T, cfg config.AnalyticsConfig) *chi.Mux {
	t.Helper()

	service := services.NewAnalysisService(cfg,
		services.StaticLiquidityProvider{Score: cfg.DefaultLiquidityScore}, slog.Default())
	handler := NewAnalysisHandler(service, nil, slog.Default())
	health := NewHealthHandler()

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		handler.RegisterRoutes(r)
		health.RegisterRoutes(r)
	})
	return r
}

func defaultTestConfig() config.AnalyticsConfig {
	return config.AnalyticsConfig{
		DefaultLiquidityScore: 75,
		MaxSampleSize:         100,
		MaxBatchConcurrency:   2,
	}
}

func analysisBody(itemID string, soldPrices, activePrices []float64) map[string]interface{} {
	sold := make([]map[string]interface{}, len(soldPrices))
	for i, p := range soldPrices {
		sold[i] = map[string]interface{}{"total_price": p, "item_id": fmt.Sprintf("s%d", i)}
	}
	active := make([]map[string]interface{}, len(activePrices))
	for i, p := range activePrices {
		active[i] = map[string]interface{}{
			"total_price":   p,
			"item_id":       fmt.Sprintf("a%d", i),
			"seller_name":   fmt.Sprintf("seller%d", i),
			"buying_format": "Buy It Now",
		}
	}
	return map[string]interface{}{
		"item_id":         itemID,
		"sold_listings":   sold,
		"active_listings": active,
	}
}

func postJSON(t *testing.T, router *chi.Mux, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAnalyzeEndpoint(t *testing.T) {
	router := newTestRouter(t, defaultTestConfig())

	w := postJSON(t, router, "/api/analysis",
		analysisBody("charizard-4-holo", []float64{48, 50, 50, 50, 52}, []float64{52, 55, 50, 54}))

	require.Equal(t, http.StatusOK, w.Code)

	var snap struct {
		ItemID   string `json:"item_id"`
		Estimate struct {
			CentralValue float64 `json:"central_value"`
		} `json:"estimate"`
		Assessment struct {
			ScenarioTag string `json:"scenario_tag"`
		} `json:"assessment"`
		LiquidityScore float64 `json:"liquidity_score"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, "charizard-4-holo", snap.ItemID)
	assert.InDelta(t, 50, snap.Estimate.CentralValue, 0.0001)
	assert.Equal(t, "healthyMarketConditions", snap.Assessment.ScenarioTag)
	assert.Equal(t, 75.0, snap.LiquidityScore)
}

func TestAnalyzeEndpointBandSentinel(t *testing.T) {
	router := newTestRouter(t, defaultTestConfig())

	// Sold comps only: every band has zero listings, absorption is "N/A".
	w := postJSON(t, router, "/api/analysis",
		analysisBody("x", []float64{50, 50, 50}, nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"absorption_ratio":"N/A"`)
}

func TestAnalyzeEndpointInvalidJSON(t *testing.T) {
	router := newTestRouter(t, defaultTestConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/analysis", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
}

func TestAnalyzeEndpointValidation(t *testing.T) {
	router := newTestRouter(t, defaultTestConfig())

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing item id", map[string]interface{}{"sold_listings": []interface{}{}}},
		{"liquidity over 100", map[string]interface{}{"item_id": "x", "liquidity_score": 150}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, router, "/api/analysis", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "VALIDATION_FAILED")
		})
	}
}

func TestAnalyzeEndpointSampleCap(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.MaxSampleSize = 2
	router := newTestRouter(t, cfg)

	w := postJSON(t, router, "/api/analysis",
		analysisBody("x", []float64{1, 2, 3}, nil))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "SAMPLE_TOO_LARGE")
}

func TestBatchEndpoint(t *testing.T) {
	router := newTestRouter(t, defaultTestConfig())

	body := map[string]interface{}{
		"items": []interface{}{
			analysisBody("a", []float64{10, 10, 10}, nil),
			analysisBody("b", []float64{20, 20, 20}, nil),
		},
	}
	w := postJSON(t, router, "/api/analysis/batch", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Snapshots []struct {
			ItemID string `json:"item_id"`
		} `json:"snapshots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Snapshots, 2)
	assert.Equal(t, "a", resp.Snapshots[0].ItemID)
	assert.Equal(t, "b", resp.Snapshots[1].ItemID)
}

func TestBatchEndpointRejectsEmpty(t *testing.T) {
	router := newTestRouter(t, defaultTestConfig())

	w := postJSON(t, router, "/api/analysis/batch", map[string]interface{}{"items": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBuildQueryEndpoint(t *testing.T) {
	router := newTestRouter(t, defaultTestConfig())

	w := postJSON(t, router, "/api/analysis/query", map[string]interface{}{
		"query":         "charizard base set",
		"exclude_lots":  true,
		"ungraded_only": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "charizard base set -lot -bulk -bundle -psa -bgs -sgc -graded", resp["query"])
}

func TestBandsEndpoint(t *testing.T) {
	router := newTestRouter(t, defaultTestConfig())

	active := make([]map[string]interface{}, 0, 5)
	for i, p := range []float64{80, 85, 90, 95, 200} {
		active = append(active, map[string]interface{}{
			"total_price":   p,
			"item_id":       fmt.Sprintf("a%d", i),
			"buying_format": "Buy It Now",
		})
	}
	w := postJSON(t, router, "/api/analysis/bands", map[string]interface{}{
		"active_listings": active,
		"market_value":    90,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var bands struct {
		BelowFMV struct {
			ListingCount int `json:"listing_count"`
		} `json:"below_fmv"`
		AtFMV struct {
			ListingCount int `json:"listing_count"`
		} `json:"at_fmv"`
		AboveFMV struct {
			ListingCount int `json:"listing_count"`
		} `json:"above_fmv"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bands))
	assert.Equal(t, 1, bands.BelowFMV.ListingCount)
	assert.Equal(t, 3, bands.AtFMV.ListingCount)
	assert.Equal(t, 0, bands.AboveFMV.ListingCount)
}

func TestBandsEndpointRequiresMarketValue(t *testing.T) {
	router := newTestRouter(t, defaultTestConfig())

	w := postJSON(t, router, "/api/analysis/bands", map[string]interface{}{
		"active_listings": []interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_FAILED")
}

func TestScenarioEndpoint(t *testing.T) {
	router := newTestRouter(t, defaultTestConfig())

	w := postJSON(t, router, "/api/analysis/scenario", map[string]interface{}{
		"pressure_pct":    -5,
		"confidence":      60,
		"liquidity_score": 80,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ScenarioTag  string `json:"scenario_tag"`
		WarningLevel string `json:"warning_level"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "strongBuyOpportunity", resp.ScenarioTag)
	assert.Equal(t, "success", resp.WarningLevel)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, defaultTestConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
