package usecase

import (
	"context"
	"time"

	appOtel "search-coordinator/utils/otel"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// recordSearch records one settled search attempt.
func recordSearch(ctx context.Context, outcome string, fallback bool, duration time.Duration) {
	m := appOtel.Metrics
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.SearchesTotal.Add(ctx, 1, attrs)
	m.SearchDuration.Record(ctx, duration.Seconds(), attrs)
	if fallback {
		m.FallbackTotal.Add(ctx, 1)
	}
}

// recordSuperseded records a search discarded by a newer one.
func recordSuperseded(ctx context.Context) {
	if m := appOtel.Metrics; m != nil {
		m.SupersededTotal.Add(ctx, 1)
	}
}

// recordError records a failed collaborator operation.
func recordError(ctx context.Context, operation string) {
	if m := appOtel.Metrics; m != nil {
		m.ErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
	}
}

// recordCacheRefresh records one local-first refresh pass.
func recordCacheRefresh(ctx context.Context, kind string) {
	if m := appOtel.Metrics; m != nil {
		m.CacheRefreshTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
	}
}
