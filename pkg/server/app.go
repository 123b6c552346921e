package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CloudLab/internal/middleware"
	"CloudLab/internal/usecase"
	"CloudLab/pkg/cache"
	"CloudLab/pkg/config"
	xhttp "CloudLab/pkg/http"
	applogger "CloudLab/pkg/logger"
)

type closer struct {
	name string
	fn   func() error
}

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	log         *applogger.Logger
	httpHandler xhttp.Handler
	httpServer  *xhttp.Server
	pipeline    *middleware.AlertPipeline
	alerts      *usecase.AlertProcessor
	cache       cache.Cache
	collector   *applogger.CollectionConfig
	closers     []closer
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	h xhttp.Handler,
	pipeline *middleware.AlertPipeline,
	alerts *usecase.AlertProcessor,
	c cache.Cache,
) *App {
	if l == nil {
		l = applogger.Nop()
	}
	return &App{
		cfg:         cfg,
		log:         l,
		httpHandler: h,
		pipeline:    pipeline,
		alerts:      alerts,
		cache:       c,
	}
}

// SetLogPublisher forwards aggregated error logs to topic while running.
func (a *App) SetLogPublisher(p applogger.Publisher, topic string, interval time.Duration) {
	a.collector = &applogger.CollectionConfig{
		TimeInterval:   interval,
		CountThreshold: 100,
		Topic:          topic,
		Publisher:      p,
	}
}

// SetCloser registers a resource closed after the alert backend on shutdown.
func (a *App) SetCloser(name string, fn func() error) {
	a.closers = append(a.closers, closer{name: name, fn: fn})
}

// Start brings up background workers and the HTTP server.
func (a *App) Start(ctx context.Context) error {
	if a.collector != nil {
		a.log.AddCollector(a.collector)
		a.log.Info("log collector attached", applogger.String("topic", a.collector.Topic))
	}

	if a.pipeline != nil {
		a.pipeline.Start(ctx)
	}
	if a.alerts != nil {
		a.log.Info("alert sink ready", applogger.String("backend", a.alerts.Backend()))
	}

	a.httpServer = xhttp.NewServer(a.httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(a.cfg.Server.CORS),
		xhttp.WithMetricsPath(a.metricsPath()),
		xhttp.WithLogger(a.log),
	)
	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	return nil
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := a.Start(ctx); err != nil {
		return err
	}

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.Shutdown(ctx)
}

// Shutdown stops the HTTP server first, then drains the alert pipeline,
// then closes backends.
func (a *App) Shutdown(ctx context.Context) error {
	a.log.Info("shutting down...")

	if a.httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := a.httpServer.Stop(shutdownCtx); err != nil {
			a.log.Error("http shutdown error", applogger.Error(err))
		}
	}

	if a.pipeline != nil {
		a.pipeline.Stop()
		if n := a.pipeline.Buffered(); n > 0 {
			a.log.Warn("alerts dropped on shutdown", applogger.Int("buffered", n))
		}
	}

	// The collector publishes through the Kafka producer; detach it first.
	if a.collector != nil {
		a.log.RemoveCollector()
	}

	if a.alerts != nil {
		a.alerts.Close()
	}
	for _, c := range a.closers {
		if err := c.fn(); err != nil {
			a.log.Warn("close error", applogger.String("resource", c.name), applogger.Error(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.log.Warn("cache close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}

func (a *App) metricsPath() string {
	if !a.cfg.Metrics.Enabled {
		return ""
	}
	return a.cfg.Metrics.Path
}
