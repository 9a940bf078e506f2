package gateway

import (
	"context"

	"search-coordinator/domain"
	"search-coordinator/driver/rediscache"
)

// RecentlyViewedGateway persists the viewed-product list for one identity.
type RecentlyViewedGateway struct {
	driver   CacheDriver
	identity string
}

func NewRecentlyViewedGateway(driver CacheDriver, identity string) *RecentlyViewedGateway {
	return &RecentlyViewedGateway{driver: driver, identity: identity}
}

func (g *RecentlyViewedGateway) key() string {
	return rediscache.RecentlyViewedKey(g.identity)
}

func (g *RecentlyViewedGateway) Get(ctx context.Context, limit int) ([]domain.Product, error) {
	var records []rediscache.ProductRecord
	found, err := g.driver.GetJSON(ctx, g.key(), &records)
	if err != nil {
		return nil, &domain.CacheError{Op: "RecentlyViewed.Get", Err: err.Error()}
	}
	if !found {
		return nil, nil
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	products := make([]domain.Product, len(records))
	for i, r := range records {
		products[i] = domain.Product{
			ID:        r.ID,
			Name:      r.Name,
			LocalName: r.LocalName,
			Slug:      r.Slug,
			SKU:       r.SKU,
		}
	}
	return products, nil
}

func (g *RecentlyViewedGateway) Set(ctx context.Context, items []domain.Product, limit int) error {
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	records := make([]rediscache.ProductRecord, len(items))
	for i, p := range items {
		records[i] = rediscache.ProductRecord{
			ID:        p.ID,
			Name:      p.Name,
			LocalName: p.LocalName,
			Slug:      p.Slug,
			SKU:       p.SKU,
		}
	}
	if err := g.driver.SetJSON(ctx, g.key(), records); err != nil {
		return &domain.CacheError{Op: "RecentlyViewed.Set", Err: err.Error()}
	}
	return nil
}
