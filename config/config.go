package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

type Config struct {
	Catalog CatalogConfig
	Redis   RedisConfig
	HTTP    HTTPConfig
	Search  SearchConfig
}

type CatalogConfig struct {
	BaseURL      string
	ServiceToken string
	Timeout      time.Duration
}

type RedisConfig struct {
	URL string
}

type HTTPConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
}

// SearchConfig holds the orchestration tunables. The page and limit
// values are deployment configuration, not contracts.
type SearchConfig struct {
	Debounce       time.Duration
	MinQueryLength int
	PageSize       int
	MaxPages       int
	FilterLimit    int
	HistoryLimit   int
	ViewedLimit    int
	TrendingLimit  int
	TrendingTTL    time.Duration
	ListCacheTTL   time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Catalog: CatalogConfig{
			BaseURL:      getEnvRequired("CATALOG_API_URL"),
			ServiceToken: getEnvOrDefault("CATALOG_SERVICE_TOKEN", ""),
			Timeout:      CatalogTimeout,
		},
		Redis: RedisConfig{
			URL: getEnvRequired("REDIS_URL"),
		},
		HTTP: HTTPConfig{
			Addr:              HTTPAddr,
			ReadHeaderTimeout: 5 * time.Second,
		},
		Search: SearchConfig{
			Debounce:       SearchDebounce,
			MinQueryLength: MinQueryLength,
			PageSize:       SearchPageSize,
			MaxPages:       SearchMaxPages,
			FilterLimit:    FilterLimit,
			HistoryLimit:   HistoryLimit,
			ViewedLimit:    ViewedLimit,
			TrendingLimit:  TrendingLimit,
			TrendingTTL:    TrendingTTL,
			ListCacheTTL:   ListCacheTTL,
		},
	}

	if cfg.Search.MaxPages < 1 {
		return nil, fmt.Errorf("SEARCH_MAX_PAGES must be at least 1")
	}

	slog.Info("Configuration loaded",
		"catalog_url", cfg.Catalog.BaseURL,
		"http_addr", cfg.HTTP.Addr,
		"debounce", cfg.Search.Debounce,
		"trending_ttl", cfg.Search.TrendingTTL,
	)

	return cfg, nil
}

func getEnvRequired(key string) string {
	// Check for _FILE suffix
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	value := os.Getenv(key)
	if value == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return value
}

func getEnvOrDefault(key, defaultValue string) string {
	// Check for _FILE suffix
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
