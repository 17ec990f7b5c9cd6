package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/bakeshop-backend/internal/domain"
	"github.com/andresuchdata/bakeshop-backend/internal/storage"
)

// ReportGenerator is what the analytics handler needs from the service
// layer. A timeframe of zero asks for the service default.
type ReportGenerator interface {
	GenerateUsageReport(ctx context.Context, timeframeDays int) (*domain.AnalysisReport, error)
	RefreshUsageReport(ctx context.Context, timeframeDays int) (*domain.AnalysisReport, error)
	ListArchivedReports(ctx context.Context) ([]storage.ObjectInfo, error)
}

type AnalyticsHandler struct {
	service ReportGenerator
}

func NewAnalyticsHandler(service ReportGenerator) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// GetUsageReport serves GET /analytics/usage_report. The timeframe query
// parameter is optional; when present it must parse to a positive integer,
// never silently coerced.
func (h *AnalyticsHandler) GetUsageReport(c *gin.Context) {
	timeframeDays, ok := timeframeFromQuery(c)
	if !ok {
		return
	}

	report, err := h.service.GenerateUsageReport(c.Request.Context(), timeframeDays)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTimeframe) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate usage report", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// RefreshUsageReport serves POST /analytics/usage_report/refresh: the cached
// report for the window is discarded and rebuilt. Omitting the timeframe
// clears every cached window and rebuilds the default one.
func (h *AnalyticsHandler) RefreshUsageReport(c *gin.Context) {
	timeframeDays, ok := timeframeFromQuery(c)
	if !ok {
		return
	}

	report, err := h.service.RefreshUsageReport(c.Request.Context(), timeframeDays)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTimeframe) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to refresh usage report", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// ListArchivedReports serves GET /analytics/archives.
func (h *AnalyticsHandler) ListArchivedReports(c *gin.Context) {
	objects, err := h.service.ListArchivedReports(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list archived reports", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  objects,
		"total": len(objects),
	})
}

// timeframeFromQuery parses the optional timeframe query parameter. On an
// invalid value it writes the 400 response itself and reports false.
func timeframeFromQuery(c *gin.Context) (int, bool) {
	raw := strings.TrimSpace(c.Query("timeframe"))
	if raw == "" {
		return 0, true
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidTimeframe.Error()})
		return 0, false
	}

	return parsed, true
}
