// Package bootstrap wires the search-coordinator components together and
// owns the service lifecycle.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"search-coordinator/config"
	"search-coordinator/gateway"
	"search-coordinator/logger"
	"search-coordinator/port"
	"search-coordinator/rest"
	"search-coordinator/server"
	"search-coordinator/usecase"
	appOtel "search-coordinator/utils/otel"
)

// App holds all components of the search-coordinator service.
type App struct {
	httpServer   *server.Server
	sessions     *usecase.Manager
	cacheClose   func() error
	otelShutdown appOtel.ShutdownFunc
}

// Run initializes all components and starts the service.
// It blocks until ctx is cancelled, then performs graceful shutdown.
func Run(ctx context.Context) error {
	// ── OpenTelemetry ──
	otelCfg := appOtel.ConfigFromEnv()
	otelShutdown, err := appOtel.InitProvider(ctx, otelCfg)
	if err != nil {
		fmt.Printf("Failed to initialize OpenTelemetry: %v\n", err)
		otelCfg.Enabled = false
		otelShutdown = func(context.Context) error { return nil }
	}

	// ── Logger ──
	logger.InitWithOTel(otelCfg.Enabled)
	logger.Logger.Info("Starting search-coordinator",
		"service", otelCfg.ServiceName,
		"otel_enabled", otelCfg.Enabled,
	)

	// ── Load config ──
	appCfg, err := config.Load()
	if err != nil {
		logger.Logger.Error("Failed to load config", "err", err)
		return err
	}

	// ── Drivers (infrastructure layer) ──
	cacheStore, err := initCacheStore(ctx, appCfg)
	if err != nil {
		logger.Logger.Error("Failed to initialize cache store", "err", err)
		return err
	}

	catalogDriver := initCatalogClient(appCfg)

	// ── Gateways (anti-corruption layer) ──
	catalog := gateway.NewCatalogGateway(catalogDriver, appCfg.Search.ListCacheTTL)
	trending := gateway.NewTrendingGateway(cacheStore)

	// ── Use cases (application layer) ──
	sessionCfg := usecase.Config{
		Debounce:       appCfg.Search.Debounce,
		MinQueryLength: appCfg.Search.MinQueryLength,
		PageSize:       appCfg.Search.PageSize,
		MaxPages:       appCfg.Search.MaxPages,
		FilterLimit:    appCfg.Search.FilterLimit,
		HistoryLimit:   appCfg.Search.HistoryLimit,
		ViewedLimit:    appCfg.Search.ViewedLimit,
		TrendingLimit:  appCfg.Search.TrendingLimit,
		TrendingTTL:    appCfg.Search.TrendingTTL,
	}

	sessions := usecase.NewManager(func(identity string) *usecase.SearchSession {
		var recent port.RecentSearchStore = gateway.NewRecentSearchGateway(cacheStore, identity)
		var viewed port.RecentlyViewedStore = gateway.NewRecentlyViewedGateway(cacheStore, identity)
		return usecase.NewSearchSession(catalog, recent, trending, viewed, sessionCfg, logger.Logger)
	})

	// ── HTTP server ──
	restHandler := rest.NewHandler(sessions, cacheStore)
	httpServer := server.New(restHandler, appCfg.HTTP, otelCfg.Enabled)

	app := &App{
		httpServer:   httpServer,
		sessions:     sessions,
		cacheClose:   cacheStore.Close,
		otelShutdown: otelShutdown,
	}

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Logger.Error("http", "err", err)
		}
	}()

	// ── Wait for shutdown signal ──
	<-ctx.Done()
	app.shutdown()
	return nil
}

// shutdown performs graceful shutdown of all components.
func (a *App) shutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error("http shutdown error", "err", err)
	}
	a.sessions.Close()
	if a.cacheClose != nil {
		if err := a.cacheClose(); err != nil {
			logger.Logger.Error("cache close error", "err", err)
		}
	}

	otelCtx, otelCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer otelCancel()
	if err := a.otelShutdown(otelCtx); err != nil {
		fmt.Printf("Failed to shutdown OpenTelemetry: %v\n", err)
	}
}
