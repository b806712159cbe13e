package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/merttpolat/portfolio/internal/config"
	"github.com/merttpolat/portfolio/internal/events"
	"github.com/merttpolat/portfolio/internal/feed"
	"github.com/merttpolat/portfolio/internal/metrics"
	"github.com/merttpolat/portfolio/internal/service"
	fshttp "github.com/merttpolat/portfolio/internal/transport/http"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	// .env необязателен: его отсутствие не ошибка.
	_ = godotenv.Load()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting feed-service", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled() {
		m = metrics.New(prometheus.DefaultRegisterer)
	}

	parser := feed.New(&http.Client{Timeout: cfg.Feed.Timeout}, cfg.Feed.UserAgent)
	loader := events.NewLoader(cfg.Events.Dir, cfg.Events.Manifest, cfg.Events.ImagePrefix)
	svc := service.New(parser, loader, cfg.Feed.SourceList(), m)
	log.Info("service_initialized",
		slog.Int("feed_sources", len(cfg.Feed.SourceList())),
		slog.String("events_dir", cfg.Events.Dir),
	)

	var ready atomic.Bool

	opts := fshttp.Options{
		Logger:   log,
		Timeout:  cfg.HTTP.RequestTimeout,
		BasePath: cfg.HTTP.BasePath,
		Ready:    &ready,
	}
	if cfg.Metrics.Enabled() {
		opts.Metrics = promhttp.Handler()
		opts.MetricsPath = cfg.Metrics.Path
	}

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           fshttp.NewRouter(svc, opts),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		log.Error("http_listen_failed", slog.String("addr", httpAddr), slog.String("err", err.Error()))
		os.Exit(1)
	}

	log.Info("http_listen_start", slog.String("addr", httpAddr))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	ready.Store(true)
	log.Info("feed_service_ready")

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	ready.Store(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		log.Info("http_stopped")
	}

	log.Info("service_stopped")
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
