package bootstrap

import (
	"context"
	"fmt"
	"time"

	"search-coordinator/config"
	"search-coordinator/driver/catalogapi"
	"search-coordinator/driver/rediscache"
	"search-coordinator/logger"
)

// initCacheStore connects to the Redis cache store with retry logic. The
// store is required at startup; individual operations later degrade to
// cache misses on failure.
func initCacheStore(ctx context.Context, cfg *config.Config) (*rediscache.Store, error) {
	const maxRetries = 5
	const retryDelay = 5 * time.Second

	store, err := rediscache.NewStore(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("redis init: %w", err)
	}

	for i := range maxRetries {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err = store.Ping(pingCtx)
		cancel()
		if err == nil {
			logger.Logger.Info("Connected to Redis successfully")
			return store, nil
		}

		logger.Logger.Warn("Redis not ready, retrying", "attempt", i+1, "max", maxRetries, "err", err)
		if i < maxRetries-1 {
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return nil, fmt.Errorf("failed to connect to Redis after %d attempts: %w", maxRetries, err)
}

// initCatalogClient builds the catalog API HTTP client.
func initCatalogClient(cfg *config.Config) *catalogapi.Client {
	logger.Logger.Info("Catalog API client configured", "base_url", cfg.Catalog.BaseURL)
	return catalogapi.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.ServiceToken, cfg.Catalog.Timeout)
}
