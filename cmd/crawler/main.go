package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/user/docfeed-crawler/internal/adapter/chromedp_renderer"
	"github.com/user/docfeed-crawler/internal/adapter/jsonfile"
	"github.com/user/docfeed-crawler/internal/adapter/postgres"
	redis_adapter "github.com/user/docfeed-crawler/internal/adapter/redis"
	"github.com/user/docfeed-crawler/internal/delivery/http/handler"
	"github.com/user/docfeed-crawler/internal/delivery/http/router"
	"github.com/user/docfeed-crawler/internal/repository"
	"github.com/user/docfeed-crawler/internal/usecase"
	"github.com/user/docfeed-crawler/pkg/config"
	"github.com/user/docfeed-crawler/pkg/logger"
	"github.com/user/docfeed-crawler/pkg/metrics"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Crawl failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	startedAt := time.Now()

	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		logger.Init(os.Stdout, slog.LevelInfo, "json")
		return err
	}

	// --- Logger ---
	logLevel := logger.ParseLevel(cfg.LogLevel)
	logger.Init(os.Stdout, logLevel, cfg.LogFormat)
	slog.Info("Logger initialized", "level", logLevel.String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Metrics ---
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	if cfg.MetricsAddr != "" {
		server := &http.Server{
			Addr:         cfg.MetricsAddr,
			Handler:      router.New(handler.NewHandler(startedAt), reg),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		}
		go func() {
			slog.Info("Starting ops server", "addr", cfg.MetricsAddr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Ops server stopped", "addr", cfg.MetricsAddr, "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()
	}

	// --- Optional feed indexes ---
	var sinks []namedSink

	if cfg.PostgresURL != "" {
		dbpool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return err
		}
		defer dbpool.Close()

		feedIndex := postgres.NewFeedIndexRepo(dbpool)
		if err := feedIndex.Migrate(ctx); err != nil {
			slog.Warn("PostgreSQL feed index disabled", "error", err)
		} else {
			slog.Info("PostgreSQL feed index enabled")
			sinks = append(sinks, namedSink{name: "postgres", repo: feedIndex})
		}
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			slog.Warn("Redis feed index disabled", "addr", cfg.RedisAddr, "error", err)
		} else {
			slog.Info("Redis feed index enabled", "addr", cfg.RedisAddr)
			sinks = append(sinks, namedSink{name: "redis", repo: redis_adapter.NewFeedIndexRepo(rdb)})
		}
	}

	// --- Renderer ---
	renderer, err := chromedp_renderer.NewChromedpRenderer(chromedp_renderer.Options{
		PageLoadTimeout: cfg.PageLoadTimeout,
		UserAgent:       cfg.UserAgent,
		AcceptLanguage:  cfg.AcceptLanguage,
		ExecPath:        cfg.ChromePath,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := renderer.Close(); err != nil {
			slog.Warn("Failed to close browser", "error", err)
		}
	}()

	// --- Crawl ---
	crawler := usecase.NewCrawlerUseCase(renderer, usecase.Options{
		LandingURL: cfg.LandingURL,
		DocHost:    cfg.DocHost,
		Settle: usecase.SettleDelays{
			Landing:  cfg.LandingSettleDelay,
			Document: cfg.DocumentSettleDelay,
			History:  cfg.HistorySettleDelay,
		},
		Selectors: usecase.DefaultSelectors(),
	}, m)

	slog.Info("Starting crawl", "landing_url", cfg.LandingURL)
	result, err := crawler.Run(ctx)
	if err != nil {
		return err
	}

	if err := jsonfile.NewResultRepo(cfg.OutputPath).Save(ctx, result); err != nil {
		return err
	}
	slog.Info("Result written", "path", cfg.OutputPath)

	for _, sink := range sinks {
		if err := sink.repo.Save(ctx, result); err != nil {
			slog.Error("Failed to update feed index", "sink", sink.name, "error", err)
			continue
		}
		slog.Info("Feed index updated", "sink", sink.name)
	}

	return nil
}

type namedSink struct {
	name string
	repo repository.ResultRepository
}
