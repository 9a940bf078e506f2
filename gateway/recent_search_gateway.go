package gateway

import (
	"context"

	"search-coordinator/domain"
	"search-coordinator/driver/rediscache"
	"search-coordinator/merge"
)

// RecentSearchGateway persists the recent-search list for one identity.
type RecentSearchGateway struct {
	driver   CacheDriver
	identity string
}

func NewRecentSearchGateway(driver CacheDriver, identity string) *RecentSearchGateway {
	return &RecentSearchGateway{driver: driver, identity: identity}
}

func (g *RecentSearchGateway) key() string {
	return rediscache.RecentSearchKey(g.identity)
}

func (g *RecentSearchGateway) Get(ctx context.Context, limit int) ([]string, error) {
	var items []string
	found, err := g.driver.GetJSON(ctx, g.key(), &items)
	if err != nil {
		return nil, &domain.CacheError{Op: "RecentSearches.Get", Err: err.Error()}
	}
	if !found {
		return nil, nil
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (g *RecentSearchGateway) Set(ctx context.Context, items []string, limit int) error {
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	if err := g.driver.SetJSON(ctx, g.key(), items); err != nil {
		return &domain.CacheError{Op: "RecentSearches.Set", Err: err.Error()}
	}
	return nil
}

// Save prepends query to the stored list in one logical read-merge-write
// step. A failed read is treated as an empty list so the new query still
// lands.
func (g *RecentSearchGateway) Save(ctx context.Context, query string, limit int) ([]string, error) {
	existing, err := g.Get(ctx, 0)
	if err != nil {
		existing = nil
	}
	merged := merge.StringLists([]string{query}, existing, limit)
	if err := g.Set(ctx, merged, limit); err != nil {
		return merged, err
	}
	return merged, nil
}

func (g *RecentSearchGateway) Clear(ctx context.Context) error {
	if err := g.driver.Delete(ctx, g.key()); err != nil {
		return &domain.CacheError{Op: "RecentSearches.Clear", Err: err.Error()}
	}
	return nil
}
