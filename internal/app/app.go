package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"cayyap-notifier/internal/domain/ports"
	"cayyap-notifier/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

// App manages the lifecycle of event sources, the HTTP ingress and the
// summary scheduler.
type App struct {
	cron     *cron.Cron
	summary  *usecase.DeliverySummary
	handler  ports.EventHandler
	sources  []ports.EventSource
	server   *http.Server
	logger   ports.Logger
	schedule string
}

// New constructs an App instance. server may be nil to disable the HTTP ingress.
func New(summary *usecase.DeliverySummary, handler ports.EventHandler, sources []ports.EventSource, server *http.Server, logger ports.Logger, schedule Schedule) *App {
	return &App{
		cron:     cron.New(),
		summary:  summary,
		handler:  handler,
		sources:  sources,
		server:   server,
		logger:   logger,
		schedule: string(schedule),
	}
}

// Schedule is the cron spec of the delivery summary; empty disables it.
type Schedule string

// Run blocks until ctx is cancelled or a source fails.
func (a *App) Run(ctx context.Context) error {
	if err := a.scheduleSummary(); err != nil {
		return err
	}
	if a.schedule != "" {
		a.logger.Info(ctx, "starting scheduler", "cron", a.schedule)
		a.cron.Start()
		defer a.stopCron()
	}

	g, ctx := errgroup.WithContext(ctx)

	for _, src := range a.sources {
		g.Go(func() error {
			a.logger.Info(ctx, "event source started", "source", src.Name())
			err := src.Listen(ctx, a.handler)
			a.logger.Info(context.Background(), "event source stopped", "source", src.Name(), "error", err)
			return err
		})
	}

	if a.server != nil {
		g.Go(func() error {
			a.logger.Info(ctx, "http ingress listening", "addr", a.server.Addr)
			if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return a.server.Shutdown(shutdownCtx)
		})
	}

	err := g.Wait()
	a.logger.Info(context.Background(), "notifier stopped")
	return err
}

func (a *App) scheduleSummary() error {
	if a.schedule == "" || a.summary == nil {
		return nil
	}
	_, err := a.cron.AddFunc(a.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := a.summary.Run(ctx); err != nil {
			a.logger.Error(ctx, "scheduled summary failed", "error", err)
		}
	})
	return err
}

func (a *App) stopCron() {
	stopCtx := a.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
	}
	a.logger.Info(context.Background(), "scheduler stopped")
}
