package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estoquelab/stocklens/internal/api"
	"github.com/estoquelab/stocklens/internal/domain"
	"github.com/estoquelab/stocklens/internal/service"
)

type stubRepo struct {
	records []domain.RawRecord
}

func (s *stubRepo) GetSnapshot(context.Context, string) ([]domain.RawRecord, error) {
	return s.records, nil
}

func (s *stubRepo) GetAvailableDates(context.Context, int) ([]time.Time, error) {
	return []time.Time{time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)}, nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	repo := &stubRepo{records: []domain.RawRecord{
		{SKUID: "SKU-1", RuptureStatus: "rupture", AvgDailySales: 4, UnitCost: 2, UnitPrice: 5},
		{SKUID: "SKU-2", RuptureStatus: "healthy", QuantityOnHand: 60, CoverageDays: 30, AvgDailySales: 2, UnitCost: 1, UnitPrice: 3},
	}}
	return api.NewRouter(service.NewDashboardService(repo, nil), nil)
}

func doRequest(t *testing.T, router *gin.Engine, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestHealthEndpoint(t *testing.T) {
	recorder := doRequest(t, newTestRouter(), http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestGetMetricsEndpoint(t *testing.T) {
	recorder := doRequest(t, newTestRouter(), http.MethodGet, "/api/v1/inventory/metrics")
	require.Equal(t, http.StatusOK, recorder.Code)

	var metrics domain.DashboardMetrics
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &metrics))
	assert.Equal(t, 2, metrics.TotalItems)
	assert.Equal(t, 1, metrics.RuptureCount)
}

func TestGetSuggestionsEndpoint(t *testing.T) {
	recorder := doRequest(t, newTestRouter(), http.MethodGet, "/api/v1/inventory/suggestions?target_days=30")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Suggestions []domain.PurchaseSuggestion `json:"suggestions"`
		Total       int                         `json:"total"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Equal(t, 2, body.Total)

	// Ruptured SKU comes first and targets the requested 30-day horizon.
	assert.Equal(t, "SKU-1", body.Suggestions[0].SKUID)
	assert.Equal(t, domain.ActionUrgentBuy, body.Suggestions[0].Action)
	assert.Equal(t, 120, body.Suggestions[0].SuggestedQty)
}

func TestGetSuggestionsToleratesBadTargetDays(t *testing.T) {
	recorder := doRequest(t, newTestRouter(), http.MethodGet, "/api/v1/inventory/suggestions?target_days=bogus")
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestGetOverviewEndpoint(t *testing.T) {
	recorder := doRequest(t, newTestRouter(), http.MethodGet, "/api/v1/inventory/overview")
	require.Equal(t, http.StatusOK, recorder.Code)

	var overview service.Overview
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &overview))
	assert.Equal(t, 2, overview.Metrics.TotalItems)
	assert.Len(t, overview.Suggestions, 2)
}

func TestGetAvailableDatesEndpoint(t *testing.T) {
	recorder := doRequest(t, newTestRouter(), http.MethodGet, "/api/v1/inventory/available_dates")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Dates []time.Time `json:"dates"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Len(t, body.Dates, 1)
}

func TestInvalidateCacheEndpoint(t *testing.T) {
	recorder := doRequest(t, newTestRouter(), http.MethodDelete, "/api/v1/inventory/cache")
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}
