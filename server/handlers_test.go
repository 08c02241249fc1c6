package server

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proptech-analytics/chat"
	"proptech-analytics/models"
	"proptech-analytics/services"
	"proptech-analytics/utils"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := utils.NewNopLogger()
	app := services.NewApp(services.Options{}, logger)
	app.Rebuild(
		[]models.RawRecord{
			{Locality: "Thane West", PriceLakh: 60, RateSqft: 10000},
			{Locality: "Thane East", PriceLakh: 80, RateSqft: 8000},
			{Locality: "Andheri West", PriceLakh: 150, RateSqft: 20000},
			{Locality: "Powai", PriceLakh: 120, RateSqft: 16000},
		},
		[]models.RawRentRecord{
			{Locality: "Thane", Rent: 20000},
			{Locality: "Thane West", Rent: 25000},
			{Locality: "Andheri", Rent: 50000},
			{Locality: "Powai", Rent: 40000},
		},
	)
	h := NewHandler(app, chat.NewDispatcher(app, logger), false, logger)
	return NewRouter(h, RouterOptions{RequestTimeout: time.Second}, logger)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, h http.Handler, method, target string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestHealth(t *testing.T) {
	rec, env := do(t, newTestRouter(t), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 3.0, data["localities"])
	assert.Equal(t, 6.0, data["merged_rows"])
}

func TestRequestIDIsEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestLocalities(t *testing.T) {
	_, env := do(t, newTestRouter(t), http.MethodGet, "/api/localities", nil)

	var items []localityItem
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Equal(t, []localityItem{
		{Key: "andheri", Name: "Andheri"},
		{Key: "powai", Name: "Powai"},
		{Key: "thane", Name: "Thane"},
	}, items)
}

func TestLocalityStats(t *testing.T) {
	h := newTestRouter(t)

	rec, env := do(t, h, http.MethodGet, "/api/locality-stats/Thane", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats models.StatsRecord
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 70.0, stats.AvgPrice)

	rec, env = do(t, h, http.MethodGet, "/api/locality-stats/thain", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
	var nf notFoundData
	require.NoError(t, json.Unmarshal(env.Data, &nf))
	assert.Equal(t, "thane", nf.Suggestions[0])
}

func TestInvestmentEndpoint(t *testing.T) {
	h := newTestRouter(t)

	rec, env := do(t, h, http.MethodPost, "/api/investment", map[string]interface{}{
		"locality": "thane", "budget": 60, "horizon": 20, "risk_tolerance": "medium",
	})
	require.Equal(t, http.StatusOK, rec.Code, env.Message)
	var report models.InvestmentReport
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Equal(t, 60.0, report.PropertyPrice)
	assert.Equal(t, 12.0, report.DownPayment)

	rec, _ = do(t, h, http.MethodPost, "/api/investment", map[string]interface{}{
		"locality": "thane", "budget": 60, "horizon": 0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, h, http.MethodPost, "/api/investment", map[string]interface{}{
		"locality": "xyzabc", "budget": 60, "horizon": 20,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompareEndpoint(t *testing.T) {
	h := newTestRouter(t)

	rec, env := do(t, h, http.MethodGet, "/api/compare?loc1=andheri&loc2=thane", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var report models.ComparisonReport
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Equal(t, "Thane", report.Comparison.BetterPrice)

	rec, _ = do(t, h, http.MethodGet, "/api/compare?loc1=andheri", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = do(t, h, http.MethodGet, "/api/compare?loc1=andheri&loc2=xyzabc", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, env.Message, "xyzabc")
}

func TestROIEndpoint(t *testing.T) {
	rec, env := do(t, newTestRouter(t), http.MethodPost, "/api/roi", map[string]interface{}{"locality": "powai", "price": 120})
	require.Equal(t, http.StatusOK, rec.Code)
	var est models.ROIEstimate
	require.NoError(t, json.Unmarshal(env.Data, &est))
	assert.Equal(t, services.MethodStatistical, est.Method)
	assert.Equal(t, 4.0, est.PredictedROI)
}

func TestEMIEndpoint(t *testing.T) {
	h := newTestRouter(t)

	rec, env := do(t, h, http.MethodGet, "/api/emi?principal=4000000&rate=8.5&years=20", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var s models.LoanSchedule
	require.NoError(t, json.Unmarshal(env.Data, &s))
	assert.InDelta(t, 34712.9, s.EMI, 1)

	rec, _ = do(t, h, http.MethodGet, "/api/emi?principal=4000000&years=0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/api/emi?principal=lots", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRankingsEndpoint(t *testing.T) {
	h := newTestRouter(t)

	_, env := do(t, h, http.MethodGet, "/api/rankings", nil)
	var heat []models.RankEntry
	require.NoError(t, json.Unmarshal(env.Data, &heat))
	assert.Len(t, heat, 3)

	rec, env := do(t, h, http.MethodGet, "/api/rankings?budget=100&horizon=15", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var ranks []models.InvestmentRank
	require.NoError(t, json.Unmarshal(env.Data, &ranks))
	assert.Len(t, ranks, 3)
}

func TestChatEndpoint(t *testing.T) {
	_, env := do(t, newTestRouter(t), http.MethodPost, "/api/chat", map[string]string{"message": "compare andheri vs thane"})
	assert.True(t, env.Success)
	assert.Equal(t, string(chat.IntentCompare), env.Message)
}

func TestUnknownRoute(t *testing.T) {
	rec, env := do(t, newTestRouter(t), http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
}

func TestBadJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/roi", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	h := RecoveryMiddleware(utils.NewNopLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWriteJSONUnencodablePayload(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusOK, APIResponse{Success: true, Data: math.NaN()})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
}

func TestLongHorizonEndpoints(t *testing.T) {
	h := newTestRouter(t)

	rec, env := do(t, h, http.MethodPost, "/api/investment", map[string]interface{}{
		"locality": "thane", "budget": 60, "horizon": 10000,
	})
	require.Equal(t, http.StatusOK, rec.Code, env.Message)
	var report models.InvestmentReport
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Equal(t, 34000.0, report.MonthlyEMI)

	rec, env = do(t, h, http.MethodGet, "/api/emi?principal=4000000&years=10000", nil)
	require.Equal(t, http.StatusOK, rec.Code, env.Message)
	var s models.LoanSchedule
	require.NoError(t, json.Unmarshal(env.Data, &s))
	assert.InDelta(t, 4000000*8.5/1200, s.EMI, 0.01)
}

func TestROIEndpointRequiresLocality(t *testing.T) {
	rec, env := do(t, newTestRouter(t), http.MethodPost, "/api/roi", map[string]interface{}{"price": 120})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Message, "locality")
}
