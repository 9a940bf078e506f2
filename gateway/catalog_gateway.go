package gateway

import (
	"context"
	"time"

	"search-coordinator/domain"
	"search-coordinator/driver/catalogapi"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CatalogDriver is the remote catalog client surface the gateway wraps.
// Implemented by catalogapi.Client.
type CatalogDriver interface {
	SearchProducts(ctx context.Context, query string, page, limit int) ([]catalogapi.Product, error)
	ListBrands(ctx context.Context) ([]catalogapi.Brand, error)
	ListCategories(ctx context.Context) ([]catalogapi.Category, error)
	GetSearchHistory(ctx context.Context, limit int) ([]string, error)
	SaveSearchQuery(ctx context.Context, query string) error
	ClearSearchHistory(ctx context.Context) error
	GetTrendingSearches(ctx context.Context, limit int) ([]string, error)
	GetRecentlyViewedProducts(ctx context.Context, limit int) ([]catalogapi.Product, error)
}

const (
	brandsCacheKey     = "brands"
	categoriesCacheKey = "categories"
)

// CatalogGateway converts wire models to domain entities and wraps driver
// failures in domain.CatalogError. The full brand and category lists are
// memoized for listTTL so rapid typing does not refetch them on every
// fan-out.
type CatalogGateway struct {
	driver     CatalogDriver
	brands     *expirable.LRU[string, []domain.Brand]
	categories *expirable.LRU[string, []domain.Category]
}

func NewCatalogGateway(driver CatalogDriver, listTTL time.Duration) *CatalogGateway {
	return &CatalogGateway{
		driver:     driver,
		brands:     expirable.NewLRU[string, []domain.Brand](1, nil, listTTL),
		categories: expirable.NewLRU[string, []domain.Category](1, nil, listTTL),
	}
}

func (g *CatalogGateway) SearchProducts(ctx context.Context, query string, page, limit int) ([]domain.Product, error) {
	models, err := g.driver.SearchProducts(ctx, query, page, limit)
	if err != nil {
		return nil, &domain.CatalogError{Op: "SearchProducts", Err: err.Error()}
	}
	return toProducts(models), nil
}

func (g *CatalogGateway) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	if cached, ok := g.brands.Get(brandsCacheKey); ok {
		return cached, nil
	}

	models, err := g.driver.ListBrands(ctx)
	if err != nil {
		return nil, &domain.CatalogError{Op: "ListBrands", Err: err.Error()}
	}

	brands := make([]domain.Brand, len(models))
	for i, m := range models {
		brands[i] = domain.Brand{ID: m.ID, Name: m.Name, LocalName: m.NameEn, Slug: m.Slug}
	}
	g.brands.Add(brandsCacheKey, brands)
	return brands, nil
}

func (g *CatalogGateway) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if cached, ok := g.categories.Get(categoriesCacheKey); ok {
		return cached, nil
	}

	models, err := g.driver.ListCategories(ctx)
	if err != nil {
		return nil, &domain.CatalogError{Op: "ListCategories", Err: err.Error()}
	}

	categories := make([]domain.Category, len(models))
	for i, m := range models {
		categories[i] = domain.Category{ID: m.ID, Name: m.Name, LocalName: m.NameEn, Slug: m.Slug}
	}
	g.categories.Add(categoriesCacheKey, categories)
	return categories, nil
}

func (g *CatalogGateway) GetSearchHistory(ctx context.Context, limit int) ([]string, error) {
	terms, err := g.driver.GetSearchHistory(ctx, limit)
	if err != nil {
		return nil, &domain.CatalogError{Op: "GetSearchHistory", Err: err.Error()}
	}
	return terms, nil
}

func (g *CatalogGateway) SaveSearchQuery(ctx context.Context, query string) error {
	if err := g.driver.SaveSearchQuery(ctx, query); err != nil {
		return &domain.CatalogError{Op: "SaveSearchQuery", Err: err.Error()}
	}
	return nil
}

func (g *CatalogGateway) ClearSearchHistory(ctx context.Context) error {
	if err := g.driver.ClearSearchHistory(ctx); err != nil {
		return &domain.CatalogError{Op: "ClearSearchHistory", Err: err.Error()}
	}
	return nil
}

func (g *CatalogGateway) GetTrendingSearches(ctx context.Context, limit int) ([]string, error) {
	terms, err := g.driver.GetTrendingSearches(ctx, limit)
	if err != nil {
		return nil, &domain.CatalogError{Op: "GetTrendingSearches", Err: err.Error()}
	}
	return terms, nil
}

func (g *CatalogGateway) GetRecentlyViewedProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	models, err := g.driver.GetRecentlyViewedProducts(ctx, limit)
	if err != nil {
		return nil, &domain.CatalogError{Op: "GetRecentlyViewedProducts", Err: err.Error()}
	}
	return toProducts(models), nil
}

func toProducts(models []catalogapi.Product) []domain.Product {
	products := make([]domain.Product, len(models))
	for i, m := range models {
		products[i] = domain.Product{
			ID:        m.ID,
			Name:      m.Name,
			LocalName: m.NameEn,
			Slug:      m.Slug,
			SKU:       m.SKU,
		}
	}
	return products
}
