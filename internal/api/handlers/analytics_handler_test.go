package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/bakeshop-backend/internal/domain"
	"github.com/andresuchdata/bakeshop-backend/internal/storage"
)

type stubReportGenerator struct {
	lastTimeframe    int
	refreshTimeframe int
	refreshCalls     int
	report           *domain.AnalysisReport
	archived         []storage.ObjectInfo
	err              error
}

func (s *stubReportGenerator) GenerateUsageReport(_ context.Context, timeframeDays int) (*domain.AnalysisReport, error) {
	s.lastTimeframe = timeframeDays
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

func (s *stubReportGenerator) RefreshUsageReport(_ context.Context, timeframeDays int) (*domain.AnalysisReport, error) {
	s.refreshCalls++
	s.refreshTimeframe = timeframeDays
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

func (s *stubReportGenerator) ListArchivedReports(context.Context) ([]storage.ObjectInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.archived, nil
}

func newAnalyticsRouter(stub *stubReportGenerator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewAnalyticsHandler(stub)
	router.GET("/analytics/usage_report", handler.GetUsageReport)
	router.POST("/analytics/usage_report/refresh", handler.RefreshUsageReport)
	router.GET("/analytics/archives", handler.ListArchivedReports)
	return router
}

func TestGetUsageReport(t *testing.T) {
	stub := &stubReportGenerator{
		report: &domain.AnalysisReport{
			TimeframeDays: 30,
			GeneratedAt:   time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		},
	}
	router := newAnalyticsRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/analytics/usage_report?timeframe=30", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 30, stub.lastTimeframe)

	var body domain.AnalysisReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 30, body.TimeframeDays)
}

func TestGetUsageReportDefaultTimeframe(t *testing.T) {
	stub := &stubReportGenerator{report: &domain.AnalysisReport{TimeframeDays: 30}}
	router := newAnalyticsRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/analytics/usage_report", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// Zero means the service picks its configured default.
	assert.Equal(t, 0, stub.lastTimeframe)
}

func TestGetUsageReportInvalidTimeframe(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"non-numeric", "timeframe=abc"},
		{"zero", "timeframe=0"},
		{"negative", "timeframe=-7"},
		{"fractional", "timeframe=7.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubReportGenerator{report: &domain.AnalysisReport{}}
			router := newAnalyticsRouter(stub)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/analytics/usage_report?"+tt.query, nil)
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, 0, stub.lastTimeframe, "service should not be called")
		})
	}
}

func TestGetUsageReportServiceTimeframeError(t *testing.T) {
	stub := &stubReportGenerator{err: domain.ErrInvalidTimeframe}
	router := newAnalyticsRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/analytics/usage_report?timeframe=30", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUsageReportServiceFailure(t *testing.T) {
	stub := &stubReportGenerator{err: errors.New("db unreachable")}
	router := newAnalyticsRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/analytics/usage_report", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRefreshUsageReport(t *testing.T) {
	stub := &stubReportGenerator{report: &domain.AnalysisReport{TimeframeDays: 14}}
	router := newAnalyticsRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analytics/usage_report/refresh?timeframe=14", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, stub.refreshCalls)
	assert.Equal(t, 14, stub.refreshTimeframe)
	// The plain report path must not be hit on a refresh.
	assert.Equal(t, 0, stub.lastTimeframe)
}

func TestRefreshUsageReportInvalidTimeframe(t *testing.T) {
	stub := &stubReportGenerator{report: &domain.AnalysisReport{}}
	router := newAnalyticsRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analytics/usage_report/refresh?timeframe=never", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, stub.refreshCalls)
}

func TestListArchivedReports(t *testing.T) {
	stub := &stubReportGenerator{
		archived: []storage.ObjectInfo{
			{Key: "reports/2025-03-01/usage_report_30d.json", Size: 2048},
		},
	}
	router := newAnalyticsRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/analytics/archives", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data  []storage.ObjectInfo `json:"data"`
		Total int                  `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
	assert.Equal(t, "reports/2025-03-01/usage_report_30d.json", body.Data[0].Key)
}
