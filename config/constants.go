package config

import (
	"os"
	"strconv"
	"time"
)

// Service constants with env var override support.
var (
	HTTPAddr       = stringEnv("HTTP_ADDR", ":9400")
	CatalogTimeout = durationEnv("CATALOG_TIMEOUT", 10*time.Second)

	SearchDebounce = durationEnv("SEARCH_DEBOUNCE", 300*time.Millisecond)
	MinQueryLength = intEnv("SEARCH_MIN_QUERY_LENGTH", 2)
	SearchPageSize = intEnv("SEARCH_PAGE_SIZE", 50)
	SearchMaxPages = intEnv("SEARCH_MAX_PAGES", 3)
	FilterLimit    = intEnv("SEARCH_FILTER_LIMIT", 5)
	HistoryLimit   = intEnv("SEARCH_HISTORY_LIMIT", 10)
	ViewedLimit    = intEnv("RECENTLY_VIEWED_LIMIT", 10)
	TrendingLimit  = intEnv("TRENDING_LIMIT", 10)
	TrendingTTL    = durationEnv("TRENDING_TTL", 10*time.Minute)
	ListCacheTTL   = durationEnv("LIST_CACHE_TTL", 1*time.Minute)
)

func stringEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func intEnv(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func durationEnv(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
