package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	"github.com/lumenfoto/studio-backend/api/routes"
	"github.com/lumenfoto/studio-backend/internal/admins"
	"github.com/lumenfoto/studio-backend/internal/contracts"
	"github.com/lumenfoto/studio-backend/internal/documents"
	"github.com/lumenfoto/studio-backend/internal/payments"
	"github.com/lumenfoto/studio-backend/internal/users"
	"github.com/lumenfoto/studio-backend/pkg/config"
	"github.com/lumenfoto/studio-backend/pkg/db"
	"github.com/lumenfoto/studio-backend/pkg/logger"
	"github.com/lumenfoto/studio-backend/pkg/mercadopago"
	"github.com/lumenfoto/studio-backend/pkg/metrics"
	"github.com/lumenfoto/studio-backend/pkg/migrate"
	"github.com/lumenfoto/studio-backend/pkg/pdf"
	"github.com/lumenfoto/studio-backend/pkg/redis"
)

const shutdownTimeout = 20 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		_ = dbClient.Close()
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		_ = dbClient.Close()
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	documentMetrics := metrics.NewDocumentMetrics(registry)
	retrievalMetrics := metrics.NewRetrievalMetrics(registry)
	providerMetrics := metrics.NewProviderMetrics(registry)

	browser := pdf.NewBrowser(cfg.PDF)

	handler, err := buildHandler(cfg, logg, dbClient, redisClient, browser, registry, documentMetrics, retrievalMetrics, providerMetrics)
	if err != nil {
		logg.Error(ctx, "failed to wire api services", err)
		_ = closeAll(dbClient, redisClient, browser)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	runCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(runCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	exitCode := 0
	select {
	case err := <-serveErr:
		if err != nil {
			logg.Error(runCtx, "api server stopped unexpectedly", err)
			exitCode = 1
		}
	case <-ctx.Done():
		logg.Info(runCtx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	shutdownErr := multierr.Combine(
		server.Shutdown(shutdownCtx),
		closeAll(dbClient, redisClient, browser),
	)
	if shutdownErr != nil {
		logg.Error(runCtx, "error during shutdown", shutdownErr)
		exitCode = 1
	} else {
		logg.Info(runCtx, "api server stopped")
	}

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func buildHandler(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	redisClient *redis.Client,
	browser *pdf.Browser,
	registry *prometheus.Registry,
	documentMetrics *metrics.DocumentMetrics,
	retrievalMetrics *metrics.RetrievalMetrics,
	providerMetrics *metrics.ProviderMetrics,
) (http.Handler, error) {
	contractsService, err := contracts.NewService(contracts.NewRepository(dbClient.DB()), logg, cfg.Contracts.QueryTimeout)
	if err != nil {
		return nil, err
	}

	formatter, err := documents.NewFormatter(cfg.Studio.Locale, cfg.Studio.Currency)
	if err != nil {
		return nil, err
	}
	documentService, err := documents.NewService(
		pdf.NewRenderer(browser, cfg.PDF.RenderTimeout),
		formatter,
		documents.Business{
			Name:     cfg.Studio.BusinessName,
			Slug:     cfg.Studio.BusinessSlug,
			Document: cfg.Studio.BusinessDocument,
			City:     cfg.Studio.BusinessCity,
		},
		logg,
		documentMetrics,
	)
	if err != nil {
		return nil, err
	}

	mpClient, err := mercadopago.NewClient(cfg.MercadoPago, logg, providerMetrics)
	if err != nil {
		return nil, err
	}
	paymentsService, err := payments.NewService(payments.NewRepository(dbClient.DB()), mpClient, cfg.MercadoPago.AccessToken, logg)
	if err != nil {
		return nil, err
	}

	adminService, err := admins.NewService(users.NewRepository(dbClient.DB()), cfg.Studio.AdminEmail, logg)
	if err != nil {
		return nil, err
	}

	return routes.NewRouter(
		cfg,
		logg,
		dbClient,
		redisClient,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		retrievalMetrics,
		contractsService,
		documentService,
		paymentsService,
		adminService,
	), nil
}

func closeAll(dbClient *db.Client, redisClient *redis.Client, browser *pdf.Browser) error {
	return multierr.Combine(
		browser.Shutdown(),
		redisClient.Close(),
		dbClient.Close(),
	)
}
