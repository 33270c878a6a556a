package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/BraceroInSabot/ArquiVia-sub000/internal/adapters/cli"
	"github.com/BraceroInSabot/ArquiVia-sub000/internal/config"
	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/domain"
	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/ports"
	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/usecase"
	"github.com/BraceroInSabot/ArquiVia-sub000/internal/infrastructure/api/arquivia"
	"github.com/BraceroInSabot/ArquiVia-sub000/internal/infrastructure/draftstore/sqlstore"
	natsevents "github.com/BraceroInSabot/ArquiVia-sub000/internal/infrastructure/events/nats"
	"github.com/BraceroInSabot/ArquiVia-sub000/internal/infrastructure/export/xlsx"
	"github.com/BraceroInSabot/ArquiVia-sub000/internal/infrastructure/resilience"
	"github.com/BraceroInSabot/ArquiVia-sub000/internal/observability/metrics"
)

type App struct {
	Config   config.Config
	Metrics  *metrics.ClientMetrics
	Services cli.Services

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	clientMetrics := metrics.NewClientMetrics(cfg.MetricsJob)
	executor := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:    cfg.RetryMaxAttempts,
		RetryInitialBackoff: cfg.RetryInitialBackoff,
		RetryMaxBackoff:     cfg.RetryMaxBackoff,

		BreakerEnabled:      cfg.BreakerEnabled,
		BreakerMinRequests:  uint32(max(cfg.BreakerMinRequests, 0)),
		BreakerFailureRatio: cfg.BreakerFailureRatio,
		BreakerOpenTimeout:  cfg.BreakerOpenTimeout,
	})

	client := arquivia.New(cfg.APIURL, arquivia.Options{
		Version:        cfg.APIVersion,
		Token:          cfg.APIToken,
		Timeout:        cfg.HTTPTimeout,
		RateLimitRPS:   cfg.APIRateLimitRPS,
		RateLimitBurst: cfg.APIRateLimitBurst,
		Executor:       executor,
		Observer:       clientMetrics,
	})

	db, err := sqlstore.OpenDB(cfg.DraftStoreDriver, cfg.DraftStoreDSN)
	if err != nil {
		return nil, fmt.Errorf("open draft store: %w", err)
	}
	drafts := sqlstore.New(db, cfg.DraftStoreDriver)
	if err := drafts.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure draft schema: %w", err)
	}

	var publisher ports.EventPublisher = natsevents.NoopPublisher{}
	var watcher cli.EventWatcher
	closeBus := func() {}
	if cfg.NATSURL != "" {
		bus, err := natsevents.New(cfg.NATSURL, cfg.NATSSubject, natsevents.Options{ResilienceExecutor: executor})
		if err != nil {
			slog.Warn("nats_unavailable", "url", cfg.NATSURL, "error", err)
		} else {
			publisher, watcher, closeBus = bus, bus, bus.Close
		}
	}

	session := domain.Session{
		Token: cfg.APIToken,
		User:  domain.UserRef{ID: cfg.UserID, Name: cfg.UserName},
	}
	workspace := usecase.NewClassificationWorkspace(session, client, client, drafts, publisher, clientMetrics, time.Now)

	return &App{
		Config:  cfg,
		Metrics: clientMetrics,

		Services: cli.Services{
			Documents:   client,
			Browser:     usecase.NewDocumentBrowser(client, clientMetrics, cfg.PageSize),
			Creator:     usecase.NewDocumentCreator(client),
			Workspace:   workspace,
			Links:       client,
			Catalog:     client,
			Enterprises: client,
			Sectors:     client,
			Users:       client,
			Dashboard:   client,
			Export:      xlsx.WriteDocuments,
			Watcher:     watcher,
		},
		closeFn: func() {
			closeBus()
			_ = drafts.Close()
		},
	}, nil
}

// PushMetrics sends the collected series to the configured Pushgateway, if any.
func (a *App) PushMetrics(ctx context.Context) {
	if a.Config.PushgatewayURL == "" {
		return
	}
	pushCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := a.Metrics.Push(pushCtx, a.Config.PushgatewayURL, a.Config.MetricsJob); err != nil {
		slog.Warn("metrics_push_failed", "gateway", a.Config.PushgatewayURL, "error", err)
	}
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
