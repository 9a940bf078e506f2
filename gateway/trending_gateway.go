package gateway

import (
	"context"
	"time"

	"search-coordinator/domain"
	"search-coordinator/driver/rediscache"
)

// TrendingGateway persists the site-wide trending terms with their fetch
// timestamp.
type TrendingGateway struct {
	driver CacheDriver
}

func NewTrendingGateway(driver CacheDriver) *TrendingGateway {
	return &TrendingGateway{driver: driver}
}

func (g *TrendingGateway) Get(ctx context.Context, limit int) ([]string, *time.Time, error) {
	var record rediscache.TrendingRecord
	found, err := g.driver.GetJSON(ctx, rediscache.TrendingKey, &record)
	if err != nil {
		return nil, nil, &domain.CacheError{Op: "Trending.Get", Err: err.Error()}
	}
	if !found {
		return nil, nil, nil
	}

	items := record.Items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	var fetchedAt *time.Time
	if record.FetchedAtMillis != nil {
		t := time.UnixMilli(*record.FetchedAtMillis)
		fetchedAt = &t
	}
	return items, fetchedAt, nil
}

func (g *TrendingGateway) Set(ctx context.Context, items []string, fetchedAt time.Time) error {
	millis := fetchedAt.UnixMilli()
	record := rediscache.TrendingRecord{
		Items:           items,
		FetchedAtMillis: &millis,
	}
	if err := g.driver.SetJSON(ctx, rediscache.TrendingKey, record); err != nil {
		return &domain.CacheError{Op: "Trending.Set", Err: err.Error()}
	}
	return nil
}
