package port

import (
	"context"

	"search-coordinator/domain"
)

// CatalogAPI is the remote catalog and search-history collaborator. Brand
// and category listings are full lists; the client filters them.
type CatalogAPI interface {
	SearchProducts(ctx context.Context, query string, page, limit int) ([]domain.Product, error)
	ListBrands(ctx context.Context) ([]domain.Brand, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetSearchHistory(ctx context.Context, limit int) ([]string, error)
	SaveSearchQuery(ctx context.Context, query string) error
	ClearSearchHistory(ctx context.Context) error
	GetTrendingSearches(ctx context.Context, limit int) ([]string, error)
	GetRecentlyViewedProducts(ctx context.Context, limit int) ([]domain.Product, error)
}
