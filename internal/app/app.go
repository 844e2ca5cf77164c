package app

import (
	"context"
	"errors"
	"fmt"

	tscfg "tradescope/internal/config"
	"tradescope/internal/journal"
	"tradescope/internal/logger"
	"tradescope/internal/scheduler"
	"tradescope/internal/store"
	journalhttp "tradescope/internal/transport/http"

	"golang.org/x/sync/errgroup"
)

// App owns application-level orchestration: config, store, journal
// service, HTTP transport and the optional digest loop.
type App struct {
	cfg     *tscfg.Config
	service *journal.Service
	httpSrv *journalhttp.Server
	digest  *scheduler.Digest
	store   *store.Store
}

// NewApp builds the application object without starting it.
func NewApp(cfg *tscfg.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	logger.SetLevel(cfg.App.LogLevel)
	return buildAppWithWire(context.Background(), cfg)
}

// Run starts the HTTP server and the digest loop and blocks until the
// context is cancelled or a component fails.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.cfg == nil {
		return fmt.Errorf("app not initialized")
	}
	if a.httpSrv == nil {
		return fmt.Errorf("http server not initialized")
	}

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := a.httpSrv.Start(ctx); err != nil {
			return fmt.Errorf("journal http server error: %w", err)
		}
		return nil
	})

	if a.digest != nil {
		group.Go(func() error {
			err := a.digest.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	err := group.Wait()
	if a.store != nil {
		if cerr := a.store.Close(); cerr != nil {
			logger.Warnf("closing store failed: %v", cerr)
		}
	}
	return err
}

// Service exposes the journal service (for replay and test harnesses).
func (a *App) Service() *journal.Service {
	if a == nil {
		return nil
	}
	return a.service
}
