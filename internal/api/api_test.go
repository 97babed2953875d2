package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/andresuchdata/inventory-predictor/backend-go/internal/domain"
	"github.com/andresuchdata/inventory-predictor/backend-go/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, staticDir string) *gin.Engine {
	t.Helper()
	svc := service.NewForecastService(nil, nil, nil)
	return NewRouter(&Services{ForecastService: svc}, Options{AllowedOrigins: []string{"*"}, StaticDir: staticDir})
}

func postJSON(t *testing.T, router http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, t.TempDir())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestPredict(t *testing.T) {
	router := newTestRouter(t, t.TempDir())

	body := domain.PredictionRequest{
		ProductID:    "SKU-42",
		CurrentStock: 10,
		SafetyStock:  2,
		SalesHistory: []domain.SalesRecord{{Date: "2024-06-01", Quantity: 5}},
	}

	for _, path := range []string{"/predict", "/api/v1/predict"} {
		t.Run(path, func(t *testing.T) {
			rec := postJSON(t, router, path, body)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			assert.JSONEq(t, `{
				"productId": "SKU-42",
				"predictedMonthlyDemand": 150,
				"averageDailySales": 5,
				"trend": "stable",
				"reorderQuantity": 142,
				"riskLevel": "critical"
			}`, rec.Body.String())
		})
	}
}

func TestPredict_IncludeGraph(t *testing.T) {
	router := newTestRouter(t, t.TempDir())

	body := domain.PredictionRequest{
		ProductID:    "SKU-42",
		SalesHistory: []domain.SalesRecord{{Date: "2024-06-01", Quantity: 5}},
	}
	rec := postJSON(t, router, "/predict?include_graph=true", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.PredictionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.ForecastGraph, 30)
}

func TestPredict_EmptyHistory(t *testing.T) {
	router := newTestRouter(t, t.TempDir())

	rec := postJSON(t, router, "/predict", map[string]interface{}{
		"productId":    "SKU-1",
		"currentStock": 3,
		"safetyStock":  1,
		"salesHistory": []interface{}{},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.PredictionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "insufficient_data", resp.Trend)
	assert.Equal(t, "unknown", resp.RiskLevel)
}

func TestPredict_MalformedDateIsServerError(t *testing.T) {
	router := newTestRouter(t, t.TempDir())

	rec := postJSON(t, router, "/predict", domain.PredictionRequest{
		ProductID:    "SKU-1",
		SalesHistory: []domain.SalesRecord{{Date: "yesterday", Quantity: 1}},
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "prediction failed", body["error"])
	assert.Contains(t, body["details"], "yesterday")
}

func TestPredict_InvalidBody(t *testing.T) {
	router := newTestRouter(t, t.TempDir())

	req := httptest.NewRequest(http.MethodPost, "/predict", bytes.NewBufferString(`{"salesHistory": [{"date": "2024-01-01", "quantity": "many"}]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPredictions_LogDisabled(t *testing.T) {
	router := newTestRouter(t, t.TempDir())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/predictions?product_id=SKU-1&risk_level=critical", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[],"total":0}`, rec.Body.String())
}

type recordingRepo struct {
	calls  int
	filter domain.PredictionFilter
}

func (r *recordingRepo) SavePrediction(ctx context.Context, record *domain.PredictionRecord) error {
	return nil
}

func (r *recordingRepo) ListPredictions(ctx context.Context, filter domain.PredictionFilter) ([]domain.PredictionRecord, error) {
	r.calls++
	r.filter = filter
	return []domain.PredictionRecord{{ProductID: filter.ProductID, RiskLevel: "critical"}}, nil
}

func newRouterWithRepo(repo *recordingRepo) *gin.Engine {
	svc := service.NewForecastService(nil, repo, nil)
	return NewRouter(&Services{ForecastService: svc}, Options{})
}

func TestGetPredictions_FiltersByRiskLevel(t *testing.T) {
	repo := &recordingRepo{}
	router := newRouterWithRepo(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/predictions?product_id=SKU-1&risk_level=critical,low&limit=5", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, domain.PredictionFilter{ProductID: "SKU-1", RiskLevels: []string{"critical", "low_stock"}, Limit: 5}, repo.filter)
	assert.Contains(t, rec.Body.String(), `"riskLabel":"Critical"`)
}

func TestGetPredictions_UnknownRiskLevelIsRejected(t *testing.T) {
	repo := &recordingRepo{}
	router := newRouterWithRepo(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/predictions?risk_level=dangerous", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"invalid risk_level"`)
	assert.Equal(t, 0, repo.calls)
}

func TestRoot_ServesLandingPage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>predictor</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))
	router := newTestRouter(t, dir)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "predictor")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/app.js", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "console.log")
}

func TestRoot_MissingFrontend(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	router := newTestRouter(t, dir)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "frontend not found")
}

func TestNormalizeAllowedOrigins(t *testing.T) {
	origins, allowAll := normalizeAllowedOrigins([]string{"http://a.test, http://b.test", " "})
	assert.False(t, allowAll)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, origins)

	_, allowAll = normalizeAllowedOrigins([]string{"http://a.test,*"})
	assert.True(t, allowAll)
}
