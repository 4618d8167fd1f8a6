package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"premium-store/internal/config"
	"premium-store/internal/domain/ports/adapter"
	"premium-store/internal/domain/ports/repository"
	"premium-store/internal/infra/api"
	"premium-store/internal/infra/catalog"
	pg "premium-store/internal/infra/db/postgres"
	"premium-store/internal/infra/i18n"
	"premium-store/internal/infra/logging"
	"premium-store/internal/infra/metrics"
	red "premium-store/internal/infra/redis"
	"premium-store/internal/infra/sched"
	"premium-store/internal/infra/telegram"
	"premium-store/internal/usecase"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (invalid durations panic)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("[DEV MODE] Enabled")
	}

	metrics.MustRegister(nil)
	metrics.SetBuildInfo(version, commit)

	tr, err := i18n.NewTranslator(i18n.LocalesFS, cfg.Pricing.Locale, cfg.Pricing.CurrencySymbol)
	if err != nil {
		logger.Fatal().Err(err).Msg("i18n")
	}

	// ---- Catalog source ----
	var source repository.CatalogSource
	switch cfg.Catalog.Kind {
	case "http":
		source = catalog.NewHTTPSource(cfg.Catalog.URL, cfg.Catalog.Timeout)
	case "postgres":
		pool, err := pg.NewPgxPool(ctx, cfg.Database)
		if err != nil {
			logger.Fatal().Err(err).Msg("postgres")
		}
		defer pool.Close()
		go sched.ReportPoolStats(ctx, pool, 15*time.Second)
		source = pg.NewPostgresProviderSource(pool)
	default:
		source = catalog.NewFileSource(cfg.Catalog.Path)
	}

	// ---- Redis (optional) ----
	var limiter api.Limiter
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		limiter = red.NewRateLimiter(redisClient)
		if cfg.Catalog.CacheTTL > 0 {
			source = catalog.NewCachedSource(source, redisClient, cfg.Catalog.CacheTTL, logger)
		}
	}

	// ---- Order notifications (optional) ----
	var orders adapter.OrderNotifier
	if cfg.Telegram.Token != "" {
		n, err := telegram.NewOrderNotifier(&cfg.Telegram, tr, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("telegram")
		}
		orders = n
	}

	sessions := api.NewSessionManager(cfg.Session.Secret, cfg.Session.CookieName, cfg.Session.Secure, cfg.Session.TTL)
	srv := api.NewServer(api.Deps{
		Source:            source,
		Localizer:         tr,
		Pricing:           usecase.NewPricingPolicy(),
		HeadlineThreshold: cfg.Pricing.HeadlineThreshold,
		Channels:          cfg.Checkout.Channels,
		Contact:           cfg.Checkout.Contact,
		Orders:            orders,
		Sessions:          sessions,
		Limiter:           limiter,
		Dev:               cfg.Runtime.Dev,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		Logger:            logger,
	})

	sweeper := sched.NewSessionSweeper(time.Minute, cfg.Session.TTL, srv.Store(), logger)
	go func() { _ = sweeper.Run(ctx) }()

	// ---- HTTP server ----
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Str("catalog", source.Locator()).Str("lang", tr.Lang()).Msg("storefront listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server error")
			cancel()
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigc:
	case <-ctx.Done():
	}
	logger.Info().Msg("shutdown requested")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
}
