// Package journal orchestrates the trade store, analytics derivation and
// the insight engine into the operations the transport layer exposes.
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tradescope/internal/analytics"
	"tradescope/internal/ingest"
	"tradescope/internal/insight"
	"tradescope/internal/logger"
	"tradescope/internal/store"
	"tradescope/internal/types"
)

// lowActivityCutoff routes sparse accounts to the low-activity generator.
const lowActivityCutoff = 30

// TradeStore is the persistence surface the service needs.
type TradeStore interface {
	SaveTrades(ctx context.Context, trades []types.Trade) error
	ListTrades(ctx context.Context) ([]types.Trade, error)
	CountTrades(ctx context.Context) (int64, error)
	RecordRun(ctx context.Context, run store.InsightRun) error
	RecentRuns(ctx context.Context, limit int) ([]store.InsightRun, error)
}

// Benchmarks yields the active benchmark table.
type Benchmarks interface {
	Table() insight.Table
}

// Service is safe for concurrent use; all state lives in the store.
type Service struct {
	store      TradeStore
	benchmarks Benchmarks
	policy     insight.ScoringPolicy
}

func NewService(st TradeStore, benchmarks Benchmarks) *Service {
	return &Service{
		store:      st,
		benchmarks: benchmarks,
		policy:     insight.DefaultScoringPolicy(),
	}
}

// ImportTrades validates, normalizes and persists an uploaded trade export.
// Returns the number of imported records.
func (s *Service) ImportTrades(ctx context.Context, payload []byte) (int, error) {
	trades, err := ingest.NormalizeTrades(payload)
	if err != nil {
		return 0, err
	}
	if len(trades) == 0 {
		return 0, nil
	}
	if err := s.store.SaveTrades(ctx, trades); err != nil {
		return 0, fmt.Errorf("persist trades: %w", err)
	}
	return len(trades), nil
}

// AnalysisResult is one complete insight pass.
type AnalysisResult struct {
	TraceID     string               `json:"trace_id"`
	GeneratedAt time.Time            `json:"generated_at"`
	TradeCount  int                  `json:"trade_count"`
	CurrentTier insight.UnlockTier   `json:"current_tier"`
	UnlockTiers []insight.UnlockTier `json:"unlock_tiers"`
	Insights    []insight.Insight    `json:"insights"` // canonical order, display-enhanced
	Buckets     insight.Prioritized  `json:"buckets"`
}

// Analyze runs one full generation pass: tier-routed candidate generation,
// prioritization, display enhancement, and run persistence. The pass itself
// is pure; re-running on unchanged trades returns identical insights under a
// fresh trace ID.
func (s *Service) Analyze(ctx context.Context) (*AnalysisResult, error) {
	trades, err := s.store.ListTrades(ctx)
	if err != nil {
		return nil, fmt.Errorf("load trades: %w", err)
	}
	snap := analytics.ComputeSnapshot(trades)
	table := s.benchmarks.Table()

	var candidates []insight.Insight
	result := &AnalysisResult{
		TraceID:     uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		TradeCount:  snap.TotalTrades,
		CurrentTier: insight.CurrentTier(snap.TotalTrades),
		UnlockTiers: insight.Tiers(),
	}
	if snap.TotalTrades < lowActivityCutoff {
		report := insight.GenerateLowActivity(snap, table)
		candidates = report.Insights
	} else {
		candidates = insight.GenerateValueFirst(snap)
	}

	result.Buckets = s.prioritizeAndEnhance(candidates, snap, table)
	result.Insights = result.Buckets.AllScored

	if err := s.persistRun(ctx, result); err != nil {
		logger.Warnf("insight run not persisted (trace=%s): %v", result.TraceID, err)
	}
	return result, nil
}

// Combined produces the re-ranked top-5 dashboard summary.
func (s *Service) Combined(ctx context.Context) ([]insight.Insight, error) {
	trades, err := s.store.ListTrades(ctx)
	if err != nil {
		return nil, fmt.Errorf("load trades: %w", err)
	}
	snap := analytics.ComputeSnapshot(trades)
	combined := insight.GenerateCombined(insight.CombinedInput{
		Analytics:  snap,
		Psychology: analytics.AssessPsychology(trades),
		Drawdowns:  analytics.DetectDrawdowns(trades),
	}, s.policy)
	return insight.Enhance(combined, snap, s.benchmarks.Table()), nil
}

// Snapshot exposes the computed analytics for the report page.
func (s *Service) Snapshot(ctx context.Context) (types.AnalyticsSnapshot, error) {
	trades, err := s.store.ListTrades(ctx)
	if err != nil {
		return types.AnalyticsSnapshot{}, fmt.Errorf("load trades: %w", err)
	}
	return analytics.ComputeSnapshot(trades), nil
}

// CompareBenchmark answers a single comparator query.
func (s *Service) CompareBenchmark(value float64, metric insight.Metric) (insight.Comparison, bool) {
	return s.benchmarks.Table().Compare(value, metric)
}

// UnlockStatus reports the tier ladder and current position.
func (s *Service) UnlockStatus(ctx context.Context) (insight.UnlockTier, []insight.UnlockTier, error) {
	n, err := s.store.CountTrades(ctx)
	if err != nil {
		return insight.UnlockTier{}, nil, err
	}
	return insight.CurrentTier(int(n)), insight.Tiers(), nil
}

// RecentRuns lists persisted analysis passes.
func (s *Service) RecentRuns(ctx context.Context, limit int) ([]store.InsightRun, error) {
	return s.store.RecentRuns(ctx, limit)
}

// Digest renders a loggable text summary of the current top insights for
// the scheduled digest loop.
func (s *Service) Digest(ctx context.Context) (string, error) {
	combined, err := s.Combined(ctx)
	if err != nil {
		return "", err
	}
	if len(combined) == 0 {
		return "insight digest: no findings yet", nil
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("insight digest: %d findings\n", len(combined)))
	for i, in := range combined {
		line := fmt.Sprintf("%d. [%s] %s (score=%d", i+1, in.Type, in.Title, in.Score)
		if in.FormattedSavings != "" {
			line += ", " + in.FormattedSavings
		}
		line += ")"
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (s *Service) prioritizeAndEnhance(candidates []insight.Insight, snap types.AnalyticsSnapshot, table insight.Table) insight.Prioritized {
	buckets := insight.Prioritize(candidates, s.policy)
	buckets.AllScored = insight.Enhance(buckets.AllScored, snap, table)
	buckets.Critical = insight.Enhance(buckets.Critical, snap, table)
	buckets.Opportunities = insight.Enhance(buckets.Opportunities, snap, table)
	buckets.Behavioral = insight.Enhance(buckets.Behavioral, snap, table)
	return buckets
}

func (s *Service) persistRun(ctx context.Context, result *AnalysisResult) error {
	raw, err := json.Marshal(result.Insights)
	if err != nil {
		return err
	}
	return s.store.RecordRun(ctx, store.InsightRun{
		TraceID:    result.TraceID,
		TradeCount: result.TradeCount,
		Tier:       result.CurrentTier.Name,
		Insights:   raw,
	})
}
