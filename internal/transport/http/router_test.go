package journalhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tradescope/internal/insight"
	"tradescope/internal/journal"
	"tradescope/internal/store"
	"tradescope/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) ImportTrades(ctx context.Context, payload []byte) (int, error) {
	args := m.Called(ctx, payload)
	return args.Int(0), args.Error(1)
}

func (m *MockJournalService) Analyze(ctx context.Context) (*journal.AnalysisResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journal.AnalysisResult), args.Error(1)
}

func (m *MockJournalService) Combined(ctx context.Context) ([]insight.Insight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]insight.Insight), args.Error(1)
}

func (m *MockJournalService) Snapshot(ctx context.Context) (types.AnalyticsSnapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(types.AnalyticsSnapshot), args.Error(1)
}

func (m *MockJournalService) CompareBenchmark(value float64, metric insight.Metric) (insight.Comparison, bool) {
	args := m.Called(value, metric)
	return args.Get(0).(insight.Comparison), args.Bool(1)
}

func (m *MockJournalService) UnlockStatus(ctx context.Context) (insight.UnlockTier, []insight.UnlockTier, error) {
	args := m.Called(ctx)
	return args.Get(0).(insight.UnlockTier), args.Get(1).([]insight.UnlockTier), args.Error(2)
}

func (m *MockJournalService) RecentRuns(ctx context.Context, limit int) ([]store.InsightRun, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.InsightRun), args.Error(1)
}

func newTestServer(t *testing.T, svc JournalService) *Server {
	t.Helper()
	srv, err := NewServer(ServerConfig{Service: svc})
	assert.NoError(t, err)
	return srv
}

func doRequest(srv *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)
	return rec
}

func TestNewServerRequiresService(t *testing.T) {
	_, err := NewServer(ServerConfig{})
	assert.Error(t, err)
}

func TestServerDefaultAddr(t *testing.T) {
	srv := newTestServer(t, new(MockJournalService))
	assert.Equal(t, ":8870", srv.Addr())
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, new(MockJournalService))
	rec := doRequest(srv, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestImportTradesEndpoint(t *testing.T) {
	t.Run("Accepts a valid upload", func(t *testing.T) {
		svc := new(MockJournalService)
		svc.On("ImportTrades", mock.Anything, mock.Anything).Return(3, nil)
		srv := newTestServer(t, svc)

		rec := doRequest(srv, http.MethodPost, "/api/journal/trades", []byte(`[{"symbol":"BTCUSDT","pnl":1}]`))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]int
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 3, resp["imported"])
	})

	t.Run("Rejects a bad upload with 400", func(t *testing.T) {
		svc := new(MockJournalService)
		svc.On("ImportTrades", mock.Anything, mock.Anything).Return(0, assert.AnError)
		srv := newTestServer(t, svc)

		rec := doRequest(srv, http.MethodPost, "/api/journal/trades", []byte(`garbage`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestInsightsEndpoint(t *testing.T) {
	svc := new(MockJournalService)
	svc.On("Analyze", mock.Anything).Return(&journal.AnalysisResult{
		TraceID:     "trace-1",
		TradeCount:  12,
		CurrentTier: insight.CurrentTier(12),
		UnlockTiers: insight.Tiers(),
	}, nil)
	srv := newTestServer(t, svc)

	rec := doRequest(srv, http.MethodGet, "/api/journal/insights", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp journal.AnalysisResult
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "trace-1", resp.TraceID)
	assert.Equal(t, "Pattern Detection", resp.CurrentTier.Name)
}

func TestCombinedEndpointNeverReturnsNull(t *testing.T) {
	svc := new(MockJournalService)
	svc.On("Combined", mock.Anything).Return(nil, nil)
	srv := newTestServer(t, svc)

	rec := doRequest(srv, http.MethodGet, "/api/journal/insights/combined", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"insights":[]`)
}

func TestBenchmarksEndpoint(t *testing.T) {
	t.Run("Known metric", func(t *testing.T) {
		svc := new(MockJournalService)
		svc.On("CompareBenchmark", 70.0, insight.MetricWinRate).
			Return(insight.Comparison{Metric: insight.MetricWinRate, Level: insight.LevelTop10}, true)
		srv := newTestServer(t, svc)

		rec := doRequest(srv, http.MethodGet, "/api/journal/benchmarks?metric=winRate&value=70", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var cmp insight.Comparison
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cmp))
		assert.Equal(t, insight.LevelTop10, cmp.Level)
	})

	t.Run("Unknown metric is 404", func(t *testing.T) {
		svc := new(MockJournalService)
		svc.On("CompareBenchmark", 1.0, insight.Metric("sharpe")).
			Return(insight.Comparison{}, false)
		srv := newTestServer(t, svc)

		rec := doRequest(srv, http.MethodGet, "/api/journal/benchmarks?metric=sharpe&value=1", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Non-numeric value is 400", func(t *testing.T) {
		srv := newTestServer(t, new(MockJournalService))
		rec := doRequest(srv, http.MethodGet, "/api/journal/benchmarks?metric=winRate&value=abc", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUnlockEndpoint(t *testing.T) {
	svc := new(MockJournalService)
	svc.On("UnlockStatus", mock.Anything).
		Return(insight.CurrentTier(42), insight.Tiers(), nil)
	srv := newTestServer(t, svc)

	rec := doRequest(srv, http.MethodGet, "/api/journal/unlock", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Behavioral Insights")
}

func TestRunsEndpoint(t *testing.T) {
	svc := new(MockJournalService)
	svc.On("RecentRuns", mock.Anything, 20).Return([]store.InsightRun{{TraceID: "t1"}}, nil)
	srv := newTestServer(t, svc)

	rec := doRequest(srv, http.MethodGet, "/api/journal/runs", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "t1")
	svc.AssertCalled(t, "RecentRuns", mock.Anything, 20)
}

func TestReportEndpoint(t *testing.T) {
	svc := new(MockJournalService)
	svc.On("Snapshot", mock.Anything).Return(types.AnalyticsSnapshot{TotalTrades: 5}, nil)
	svc.On("Analyze", mock.Anything).Return(&journal.AnalysisResult{}, nil)
	srv := newTestServer(t, svc)

	rec := doRequest(srv, http.MethodGet, "/api/journal/report", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}
