package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/darkwatch/internal/application"
	appclassify "github.com/bryanwahyu/darkwatch/internal/application/classify"
	apphistory "github.com/bryanwahyu/darkwatch/internal/application/history"
	appintel "github.com/bryanwahyu/darkwatch/internal/application/intel"
	"github.com/bryanwahyu/darkwatch/internal/domain/classifier"
	domain "github.com/bryanwahyu/darkwatch/internal/domain/history"
	"github.com/bryanwahyu/darkwatch/internal/domain/intel"
	"github.com/bryanwahyu/darkwatch/internal/middleware"
)

// fakeClassifier returns canned results without a model backend.
type fakeClassifier struct {
	result *classifier.Result
	err    error
}

func (f *fakeClassifier) Classify(ctx context.Context, text, modelType string) (*classifier.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeClassifier) ClassifyBatch(ctx context.Context, texts []string, modelType string) ([]*classifier.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*classifier.Result, len(texts))
	for i := range texts {
		out[i] = f.result
	}
	return out, nil
}

type memSnapshot struct{ data []byte }

func (m *memSnapshot) Load(ctx context.Context) ([]byte, error) { return m.data, nil }
func (m *memSnapshot) Save(ctx context.Context, data []byte) error {
	m.data = append([]byte(nil), data...)
	return nil
}

func newTestRouter(fc *fakeClassifier) http.Handler {
	historySvc := &apphistory.Service{
		Snapshots: &memSnapshot{},
		Clock:     application.SystemClock{},
	}
	classifySvc := &appclassify.Service{Client: fc, History: historySvc}
	intelSvc := &appintel.Service{
		Client:      fc,
		Prioritizer: intel.NewPrioritizer(),
		Reporter:    intel.NewReportGenerator(""),
		Clock:       application.SystemClock{},
	}
	return NewRouter(classifySvc, historySvc, intelSvc, map[string]middleware.HealthChecker{
		"classifier": middleware.CheckerFunc(func(ctx context.Context) error { return nil }),
	})
}

func defaultFake() *fakeClassifier {
	return &fakeClassifier{result: &classifier.Result{
		Category:   "Drug Sales",
		Confidence: 0.82,
		Keywords:   []string{"pills"},
	}}
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestAnalyzeStoresRecord(t *testing.T) {
	h := newTestRouter(defaultFake())

	rr := doJSON(t, h, http.MethodPost, "/v1/analyze", map[string]string{
		"text":   "pills in bulk, stealth shipping",
		"source": "Manual Input",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var rec domain.Record
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rec))
	require.Equal(t, "Drug Sales", rec.Category)
	require.Equal(t, domain.SeverityHigh, rec.Severity)
	require.NotEmpty(t, rec.ID)

	// record is now visible in history
	rr = doJSON(t, h, http.MethodGet, "/v1/history", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var page domain.PaginatedResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
	require.Equal(t, int64(1), page.Total)
	require.Equal(t, rec.ID, page.Data[0].ID)
}

func TestAnalyzeEmptyTextRejected(t *testing.T) {
	h := newTestRouter(defaultFake())

	rr := doJSON(t, h, http.MethodPost, "/v1/analyze", map[string]string{"text": ""})
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAnalyzeInvalidModelTypeRejected(t *testing.T) {
	h := newTestRouter(defaultFake())

	rr := doJSON(t, h, http.MethodPost, "/v1/analyze", map[string]string{
		"text":       "something",
		"model_type": "llama",
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAnalyzeClassifierQuotaMapsTo429(t *testing.T) {
	h := newTestRouter(&fakeClassifier{err: classifier.ErrQuotaExceeded})

	rr := doJSON(t, h, http.MethodPost, "/v1/analyze", map[string]string{"text": "x"})
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
}

func TestAnalyzeClassifierDownMapsTo502(t *testing.T) {
	h := newTestRouter(&fakeClassifier{err: fmt.Errorf("%w: boom", classifier.ErrUnavailable)})

	rr := doJSON(t, h, http.MethodPost, "/v1/analyze", map[string]string{"text": "x"})
	require.Equal(t, http.StatusBadGateway, rr.Code)

	// a failed classification never touches the store
	rr = doJSON(t, h, http.MethodGet, "/v1/history", nil)
	var page domain.PaginatedResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
	require.Zero(t, page.Total)
}

func TestAnalyzeBatch(t *testing.T) {
	h := newTestRouter(defaultFake())

	rr := doJSON(t, h, http.MethodPost, "/v1/analyze/batch", map[string]any{
		"texts": []string{"a", "b", "c"},
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Results []*classifier.Result `json:"results"`
		Total   int                  `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, 3, body.Total)
	require.Len(t, body.Results, 3)
}

func TestHistoryFilterAndPagination(t *testing.T) {
	h := newTestRouter(defaultFake())

	for i := 0; i < 5; i++ {
		rr := doJSON(t, h, http.MethodPost, "/v1/analyze", map[string]string{
			"text": fmt.Sprintf("pills listing %d", i),
		})
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := doJSON(t, h, http.MethodGet, "/v1/history?category=Drug+Sales&page=2&pageSize=2", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var page domain.PaginatedResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
	require.Equal(t, int64(5), page.Total)
	require.Equal(t, 2, page.Page)
	require.Len(t, page.Data, 2)
	require.Equal(t, 3, page.TotalPages)
}

func TestHistoryInvalidSeverityRejected(t *testing.T) {
	h := newTestRouter(defaultFake())

	rr := doJSON(t, h, http.MethodGet, "/v1/history?severity=EXTREME", nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetAndDeleteRecord(t *testing.T) {
	h := newTestRouter(defaultFake())

	rr := doJSON(t, h, http.MethodPost, "/v1/analyze", map[string]string{"text": "pills"})
	var rec domain.Record
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rec))

	rr = doJSON(t, h, http.MethodGet, "/v1/history/"+string(rec.ID), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, h, http.MethodDelete, "/v1/history/"+string(rec.ID), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, h, http.MethodGet, "/v1/history/"+string(rec.ID), nil)
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(t, h, http.MethodDelete, "/v1/history/"+string(rec.ID), nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestClearHistory(t *testing.T) {
	h := newTestRouter(defaultFake())

	doJSON(t, h, http.MethodPost, "/v1/analyze", map[string]string{"text": "pills"})

	rr := doJSON(t, h, http.MethodDelete, "/v1/history", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, h, http.MethodGet, "/v1/history/stats", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var stats domain.DashboardStats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	require.Zero(t, stats.Total)
	require.Len(t, stats.DailyTrend, domain.TrendDays)
}

func TestStats(t *testing.T) {
	h := newTestRouter(defaultFake())

	doJSON(t, h, http.MethodPost, "/v1/analyze", map[string]string{"text": "pills"})

	rr := doJSON(t, h, http.MethodGet, "/v1/history/stats", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var stats domain.DashboardStats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	require.Equal(t, 1, stats.Total)
	require.Equal(t, 1, stats.Today)
	require.Equal(t, 1, stats.Threats)
	require.Len(t, stats.RecentAlerts, 1)
}

func TestPrioritizeEndpoint(t *testing.T) {
	h := newTestRouter(&fakeClassifier{result: &classifier.Result{
		Category:   "Weapons Sales",
		Confidence: 0.9,
	}})

	rr := doJSON(t, h, http.MethodPost, "/v1/analyze/prioritize", map[string]string{
		"text": "glock 19 untraceable, contact @armsdealer",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var alert intel.Alert
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &alert))
	require.Equal(t, intel.ThreatCritical, alert.ThreatLevel)
	require.NotEmpty(t, alert.AlertID)
	require.NotEmpty(t, alert.Actions)
}

func TestAlertStatsEndpoint(t *testing.T) {
	h := newTestRouter(defaultFake())

	doJSON(t, h, http.MethodPost, "/v1/analyze/prioritize", map[string]string{"text": "pills in bulk"})

	rr := doJSON(t, h, http.MethodGet, "/v1/alerts/stats", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var stats intel.AlertStats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	require.Equal(t, 1, stats.Total24h)
}

func TestReportEndpoint(t *testing.T) {
	h := newTestRouter(defaultFake())

	rr := doJSON(t, h, http.MethodPost, "/v1/analyze/report", map[string]string{
		"text":   "pills in bulk, stealth shipping",
		"source": "Crawler",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var report intel.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	require.True(t, strings.HasPrefix(report.ReportID, "IR-"))
	require.True(t, strings.HasPrefix(report.CaseNumber, "CASE-NAR-"))
	require.Equal(t, "HIGH", report.RiskLevel)
	require.Equal(t, "Crawler", report.ContentSource)
}

func TestReportTextEndpoint(t *testing.T) {
	h := newTestRouter(defaultFake())

	rr := doJSON(t, h, http.MethodPost, "/v1/analyze/report/text", map[string]string{
		"text": "pills in bulk",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Header().Get("Content-Type"), "text/plain")
	require.Contains(t, rr.Body.String(), "INTELLIGENCE REPORT")
	require.Contains(t, rr.Body.String(), "END OF REPORT")
}

func TestCategoriesEndpoint(t *testing.T) {
	h := newTestRouter(defaultFake())

	rr := doJSON(t, h, http.MethodGet, "/v1/categories", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Categories []string          `json:"categories"`
		BaseRisk   map[string]string `json:"base_risk"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Contains(t, body.Categories, "Weapons Sales")
	require.Equal(t, "CRITICAL", body.BaseRisk["Weapons Sales"])
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestRouter(defaultFake())

	rr := doJSON(t, h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var health middleware.HealthStatus
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &health))
	require.Equal(t, "healthy", health.Status)
	require.Equal(t, "healthy", health.Checks["classifier"].Status)
}

func TestProbeEndpoints(t *testing.T) {
	h := newTestRouter(defaultFake())

	require.Equal(t, http.StatusOK, doJSON(t, h, http.MethodGet, "/live", nil).Code)
	require.Equal(t, http.StatusOK, doJSON(t, h, http.MethodGet, "/ready", nil).Code)
	require.Equal(t, http.StatusOK, doJSON(t, h, http.MethodGet, "/metrics", nil).Code)
}

func TestAPIKeyAuthMiddleware(t *testing.T) {
	h := newTestRouter(defaultFake())
	authed := middleware.APIKeyAuth([]string{"sekrit"})(h)

	req := httptest.NewRequest(http.MethodGet, "/v1/history", nil)
	rr := httptest.NewRecorder()
	authed.ServeHTTP(rr, req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/history", nil)
	req.Header.Set("Authorization", "Bearer sekrit")
	rr = httptest.NewRecorder()
	authed.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	// probes stay open
	req = httptest.NewRequest(http.MethodGet, "/live", nil)
	rr = httptest.NewRecorder()
	authed.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
}
