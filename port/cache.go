package port

import (
	"context"
	"time"

	"search-coordinator/domain"
)

// The cache stores are backed by a persistent key-value collaborator and
// may fail at any time. Callers treat every failure as a cache miss;
// nothing here is fatal.

// RecentSearchStore persists the bounded most-recent-first search history
// for one identity.
type RecentSearchStore interface {
	Get(ctx context.Context, limit int) ([]string, error)
	Set(ctx context.Context, items []string, limit int) error
	// Save prepends query to the stored list in one logical
	// read-merge-write step and returns the merged list.
	Save(ctx context.Context, query string, limit int) ([]string, error)
	Clear(ctx context.Context) error
}

// TrendingStore persists trending terms together with the time they were
// fetched from the remote API. fetchedAt is nil when never fetched.
type TrendingStore interface {
	Get(ctx context.Context, limit int) (items []string, fetchedAt *time.Time, err error)
	Set(ctx context.Context, items []string, fetchedAt time.Time) error
}

// RecentlyViewedStore persists the bounded most-recently-viewed product
// list, namespaced by identity so switching accounts never leaks another
// identity's items.
type RecentlyViewedStore interface {
	Get(ctx context.Context, limit int) ([]domain.Product, error)
	Set(ctx context.Context, items []domain.Product, limit int) error
}
