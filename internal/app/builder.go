package app

import (
	"context"
	"fmt"

	tscfg "tradescope/internal/config"
	"tradescope/internal/insight"
	"tradescope/internal/journal"
	"tradescope/internal/logger"
	"tradescope/internal/scheduler"
	"tradescope/internal/store"
	journalhttp "tradescope/internal/transport/http"
)

// AppBuilder assembles the application graph. Construction steps are
// swappable so tests can inject in-memory stores or fake benchmark
// sources without touching the wiring order.
type AppBuilder struct {
	cfg *tscfg.Config

	storeFn      func(tscfg.StoreConfig) (*store.Store, error)
	benchmarksFn func(tscfg.InsightConfig) (journal.Benchmarks, error)
	httpFn       func(tscfg.AppConfig, *journal.Service) (*journalhttp.Server, error)

	storeOverride journal.TradeStore
}

type AppBuilderOption func(*AppBuilder)

// WithTradeStore replaces the sqlite store with an arbitrary TradeStore.
func WithTradeStore(st journal.TradeStore) AppBuilderOption {
	return func(b *AppBuilder) { b.storeOverride = st }
}

func NewAppBuilder(cfg *tscfg.Config, opts ...AppBuilderOption) *AppBuilder {
	b := &AppBuilder{
		cfg:          cfg,
		storeFn:      buildStore,
		benchmarksFn: buildBenchmarks,
		httpFn:       buildHTTPServer,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

func buildStore(cfg tscfg.StoreConfig) (*store.Store, error) {
	return store.New(cfg.Path)
}

func buildBenchmarks(cfg tscfg.InsightConfig) (journal.Benchmarks, error) {
	return insight.NewBenchmarkSource(cfg.BenchmarksPath)
}

func buildHTTPServer(cfg tscfg.AppConfig, svc *journal.Service) (*journalhttp.Server, error) {
	return journalhttp.NewServer(journalhttp.ServerConfig{
		Addr:    cfg.HTTPAddr,
		Service: svc,
	})
}

func (b *AppBuilder) Build(ctx context.Context) (*App, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if b.cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	cfg := b.cfg
	logger.SetLevel(cfg.App.LogLevel)

	var (
		tradeStore journal.TradeStore
		sqlStore   *store.Store
		err        error
	)
	if b.storeOverride != nil {
		tradeStore = b.storeOverride
	} else {
		sqlStore, err = b.storeFn(cfg.Store)
		if err != nil {
			return nil, fmt.Errorf("open store failed: %w", err)
		}
		tradeStore = sqlStore
		logger.Infof("✓ journal store ready (%s)", cfg.Store.Path)
	}

	benchmarks, err := b.benchmarksFn(cfg.Insight)
	if err != nil {
		return nil, fmt.Errorf("load benchmarks failed: %w", err)
	}
	if cfg.Insight.BenchmarksPath != "" {
		logger.Infof("✓ benchmark overrides loaded (%s)", cfg.Insight.BenchmarksPath)
	}

	svc := journal.NewService(tradeStore, benchmarks)

	httpSrv, err := b.httpFn(cfg.App, svc)
	if err != nil {
		return nil, fmt.Errorf("init http server failed: %w", err)
	}

	a := &App{
		cfg:     cfg,
		service: svc,
		httpSrv: httpSrv,
		store:   sqlStore,
	}
	if cfg.Digest.Enabled {
		interval, ok := scheduler.ParseIntervalDuration(cfg.Digest.Interval)
		if !ok {
			return nil, fmt.Errorf("invalid digest interval: %q", cfg.Digest.Interval)
		}
		a.digest = scheduler.NewDigest(interval, svc.Digest)
	}
	return a, nil
}
