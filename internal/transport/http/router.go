package journalhttp

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tradescope/internal/insight"
	"tradescope/internal/journal"
	"tradescope/internal/report"
	"tradescope/internal/store"
	"tradescope/internal/types"
)

// JournalService is the application surface the router exposes.
type JournalService interface {
	ImportTrades(ctx context.Context, payload []byte) (int, error)
	Analyze(ctx context.Context) (*journal.AnalysisResult, error)
	Combined(ctx context.Context) ([]insight.Insight, error)
	Snapshot(ctx context.Context) (types.AnalyticsSnapshot, error)
	CompareBenchmark(value float64, metric insight.Metric) (insight.Comparison, bool)
	UnlockStatus(ctx context.Context) (insight.UnlockTier, []insight.UnlockTier, error)
	RecentRuns(ctx context.Context, limit int) ([]store.InsightRun, error)
}

// Router registers the /api/journal endpoints.
type Router struct {
	svc JournalService
}

func NewRouter(svc JournalService) *Router {
	return &Router{svc: svc}
}

func (r *Router) Register(group *gin.RouterGroup) {
	group.POST("/trades", r.importTrades)
	group.GET("/insights", r.insights)
	group.GET("/insights/combined", r.combined)
	group.GET("/unlock", r.unlock)
	group.GET("/benchmarks", r.benchmarks)
	group.GET("/runs", r.runs)
	group.GET("/report", r.reportPage)
}

func (r *Router) importTrades(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, 16<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read body"})
		return
	}
	imported, err := r.svc.ImportTrades(c.Request.Context(), payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": imported})
}

func (r *Router) insights(c *gin.Context) {
	result, err := r.svc.Analyze(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (r *Router) combined(c *gin.Context) {
	insights, err := r.svc.Combined(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if insights == nil {
		insights = []insight.Insight{}
	}
	c.JSON(http.StatusOK, gin.H{"insights": insights})
}

func (r *Router) unlock(c *gin.Context) {
	current, tiers, err := r.svc.UnlockStatus(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"current_tier": current, "tiers": tiers})
}

func (r *Router) benchmarks(c *gin.Context) {
	metric := insight.Metric(c.Query("metric"))
	value, err := strconv.ParseFloat(c.Query("value"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value must be a number"})
		return
	}
	cmp, ok := r.svc.CompareBenchmark(value, metric)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown metric"})
		return
	}
	c.JSON(http.StatusOK, cmp)
}

func (r *Router) runs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	runs, err := r.svc.RecentRuns(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if runs == nil {
		runs = []store.InsightRun{}
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (r *Router) reportPage(c *gin.Context) {
	snap, err := r.svc.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	result, err := r.svc.Analyze(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := report.RenderDashboard(c.Writer, snap, result.Insights); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
