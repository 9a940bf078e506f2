package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all OTel metric instruments for search-coordinator.
var Metrics *SearchCoordinatorMetrics

// SearchCoordinatorMetrics contains all metric instruments.
type SearchCoordinatorMetrics struct {
	SearchesTotal     metric.Int64Counter
	SupersededTotal   metric.Int64Counter
	FallbackTotal     metric.Int64Counter
	ErrorsTotal       metric.Int64Counter
	SearchDuration    metric.Float64Histogram
	CacheRefreshTotal metric.Int64Counter
}

// InitMetrics initializes all metric instruments.
func InitMetrics() error {
	meter := otel.Meter("search-coordinator")

	searchesTotal, err := meter.Int64Counter("search_coordinator_searches_total",
		metric.WithDescription("Total number of searches executed"),
	)
	if err != nil {
		return err
	}

	supersededTotal, err := meter.Int64Counter("search_coordinator_superseded_total",
		metric.WithDescription("Total number of searches discarded because a newer one took over"),
	)
	if err != nil {
		return err
	}

	fallbackTotal, err := meter.Int64Counter("search_coordinator_fallback_total",
		metric.WithDescription("Total number of searches that needed the multi-page fallback"),
	)
	if err != nil {
		return err
	}

	errorsTotal, err := meter.Int64Counter("search_coordinator_errors_total",
		metric.WithDescription("Total number of errors"),
	)
	if err != nil {
		return err
	}

	searchDuration, err := meter.Float64Histogram("search_coordinator_search_duration_seconds",
		metric.WithDescription("Search request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	cacheRefreshTotal, err := meter.Int64Counter("search_coordinator_cache_refresh_total",
		metric.WithDescription("Total number of local-first cache refreshes"),
	)
	if err != nil {
		return err
	}

	Metrics = &SearchCoordinatorMetrics{
		SearchesTotal:     searchesTotal,
		SupersededTotal:   supersededTotal,
		FallbackTotal:     fallbackTotal,
		ErrorsTotal:       errorsTotal,
		SearchDuration:    searchDuration,
		CacheRefreshTotal: cacheRefreshTotal,
	}

	return nil
}
