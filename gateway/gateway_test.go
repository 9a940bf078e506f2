package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"search-coordinator/domain"
	"search-coordinator/driver/catalogapi"
	"search-coordinator/driver/rediscache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCacheDriver keeps marshalled values in memory, round-tripping
// through JSON like the real store does.
type fakeCacheDriver struct {
	values map[string]any
	getErr error
	setErr error
}

func newFakeCacheDriver() *fakeCacheDriver {
	return &fakeCacheDriver{values: map[string]any{}}
}

func (f *fakeCacheDriver) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if f.getErr != nil {
		return false, f.getErr
	}
	v, ok := f.values[key]
	if !ok {
		return false, nil
	}
	switch d := dest.(type) {
	case *[]string:
		*d = append([]string{}, v.([]string)...)
	case *rediscache.TrendingRecord:
		*d = v.(rediscache.TrendingRecord)
	case *[]rediscache.ProductRecord:
		*d = append([]rediscache.ProductRecord{}, v.([]rediscache.ProductRecord)...)
	}
	return true, nil
}

func (f *fakeCacheDriver) SetJSON(ctx context.Context, key string, value any) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = value
	return nil
}

func (f *fakeCacheDriver) Delete(ctx context.Context, key string) error {
	delete(f.values, key)
	return nil
}

func TestRecentSearchGatewaySaveMergesAndCaps(t *testing.T) {
	driver := newFakeCacheDriver()
	g := NewRecentSearchGateway(driver, "user-1")
	ctx := context.Background()

	for _, q := range []string{"shoes", "bags", "Shoes", "hats"} {
		_, err := g.Save(ctx, q, 3)
		require.NoError(t, err)
	}

	items, err := g.Get(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"hats", "Shoes", "bags"}, items)
}

func TestRecentSearchGatewayGetMissIsEmpty(t *testing.T) {
	g := NewRecentSearchGateway(newFakeCacheDriver(), "")

	items, err := g.Get(context.Background(), 10)

	require.NoError(t, err)
	assert.Nil(t, items)
}

func TestRecentSearchGatewayWrapsDriverErrors(t *testing.T) {
	driver := newFakeCacheDriver()
	driver.getErr = errors.New("connection refused")
	g := NewRecentSearchGateway(driver, "user-1")

	_, err := g.Get(context.Background(), 10)

	var cacheErr *domain.CacheError
	require.ErrorAs(t, err, &cacheErr)
	assert.Equal(t, "RecentSearches.Get", cacheErr.Op)
}

func TestRecentSearchGatewayClear(t *testing.T) {
	driver := newFakeCacheDriver()
	g := NewRecentSearchGateway(driver, "user-1")
	ctx := context.Background()

	_, err := g.Save(ctx, "shoes", 10)
	require.NoError(t, err)
	require.NoError(t, g.Clear(ctx))

	items, err := g.Get(ctx, 10)
	require.NoError(t, err)
	assert.Nil(t, items)
}

func TestRecentSearchGatewayIdentityScoping(t *testing.T) {
	driver := newFakeCacheDriver()
	userGw := NewRecentSearchGateway(driver, "user-1")
	guestGw := NewRecentSearchGateway(driver, "")
	ctx := context.Background()

	_, err := userGw.Save(ctx, "private query", 10)
	require.NoError(t, err)

	items, err := guestGw.Get(ctx, 10)
	require.NoError(t, err)
	assert.Nil(t, items, "guest must not see another identity's history")
}

func TestTrendingGatewayRoundTrip(t *testing.T) {
	driver := newFakeCacheDriver()
	g := NewTrendingGateway(driver)
	ctx := context.Background()

	fetchedAt := time.Now().Truncate(time.Millisecond)
	require.NoError(t, g.Set(ctx, []string{"sneakers", "sandals"}, fetchedAt))

	items, got, err := g.Get(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"sneakers", "sandals"}, items)
	require.NotNil(t, got)
	assert.True(t, got.Equal(fetchedAt))
}

func TestTrendingGatewayNeverFetched(t *testing.T) {
	g := NewTrendingGateway(newFakeCacheDriver())

	items, fetchedAt, err := g.Get(context.Background(), 10)

	require.NoError(t, err)
	assert.Nil(t, items)
	assert.Nil(t, fetchedAt)
}

func TestRecentlyViewedGatewayRoundTripAndCap(t *testing.T) {
	driver := newFakeCacheDriver()
	g := NewRecentlyViewedGateway(driver, "user-1")
	ctx := context.Background()

	products := []domain.Product{
		{ID: 1, Name: "one", LocalName: "un", Slug: "one", SKU: "S1"},
		{ID: 2, Name: "two"},
		{ID: 3, Name: "three"},
	}
	require.NoError(t, g.Set(ctx, products, 2))

	got, err := g.Get(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2, "set truncates to limit")
	assert.Equal(t, products[0], got[0])
}

// fakeCatalogDriver counts calls so the memoization is observable.
type fakeCatalogDriver struct {
	brandCalls    int
	categoryCalls int
	err           error
}

func (f *fakeCatalogDriver) SearchProducts(ctx context.Context, query string, page, limit int) ([]catalogapi.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []catalogapi.Product{{ID: 1, Name: "Shoe", NameEn: "Shoe EN", Slug: "shoe", SKU: "SH-1"}}, nil
}

func (f *fakeCatalogDriver) ListBrands(ctx context.Context) ([]catalogapi.Brand, error) {
	f.brandCalls++
	if f.err != nil {
		return nil, f.err
	}
	return []catalogapi.Brand{{ID: 1, Name: "Nike"}}, nil
}

func (f *fakeCatalogDriver) ListCategories(ctx context.Context) ([]catalogapi.Category, error) {
	f.categoryCalls++
	if f.err != nil {
		return nil, f.err
	}
	return []catalogapi.Category{{ID: 1, Name: "Shoes"}}, nil
}

func (f *fakeCatalogDriver) GetSearchHistory(ctx context.Context, limit int) ([]string, error) {
	return []string{"shoes"}, nil
}

func (f *fakeCatalogDriver) SaveSearchQuery(ctx context.Context, query string) error { return f.err }

func (f *fakeCatalogDriver) ClearSearchHistory(ctx context.Context) error { return f.err }

func (f *fakeCatalogDriver) GetTrendingSearches(ctx context.Context, limit int) ([]string, error) {
	return []string{"sneakers"}, nil
}

func (f *fakeCatalogDriver) GetRecentlyViewedProducts(ctx context.Context, limit int) ([]catalogapi.Product, error) {
	return nil, f.err
}

func TestCatalogGatewayConvertsWireModels(t *testing.T) {
	g := NewCatalogGateway(&fakeCatalogDriver{}, time.Minute)

	products, err := g.SearchProducts(context.Background(), "shoe", 1, 50)

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, domain.Product{ID: 1, Name: "Shoe", LocalName: "Shoe EN", Slug: "shoe", SKU: "SH-1"}, products[0])
}

func TestCatalogGatewayMemoizesBrandAndCategoryLists(t *testing.T) {
	driver := &fakeCatalogDriver{}
	g := NewCatalogGateway(driver, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := g.ListBrands(ctx)
		require.NoError(t, err)
		_, err = g.ListCategories(ctx)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, driver.brandCalls)
	assert.Equal(t, 1, driver.categoryCalls)
}

func TestCatalogGatewayWrapsDriverErrors(t *testing.T) {
	driver := &fakeCatalogDriver{err: errors.New("upstream down")}
	g := NewCatalogGateway(driver, time.Minute)

	_, err := g.SearchProducts(context.Background(), "shoe", 1, 50)

	var catalogErr *domain.CatalogError
	require.ErrorAs(t, err, &catalogErr)
	assert.Equal(t, "SearchProducts", catalogErr.Op)
}
