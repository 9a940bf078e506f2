package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"search-coordinator/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshMergesRecentSearches(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.history = []string{"Shoes", "hats"}
	s, recent, _, _ := newTestSession(catalog, Config{})
	defer s.Close()
	recent.items = []string{"shoes", "bags"}

	s.Refresh(context.Background())

	state := s.Snapshot()
	assert.Equal(t, []string{"shoes", "bags", "hats"}, state.RecentSearches)
	assert.Equal(t, []string{"shoes", "bags", "hats"}, recent.items, "merged list written back")
}

func TestRefreshRecentDegradesOnCacheFailure(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.history = []string{"hats"}
	s, recent, _, _ := newTestSession(catalog, Config{})
	defer s.Close()
	recent.getErr = errors.New("storage down")

	s.Refresh(context.Background())

	assert.Equal(t, []string{"hats"}, s.Snapshot().RecentSearches, "remote-only fallback")
}

func TestRefreshTrendingSkipsRemoteWhenFresh(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.trendingTerms = []string{"from remote"}
	s, _, trending, _ := newTestSession(catalog, Config{})
	defer s.Close()

	fetched := time.Now().Add(-5 * time.Minute)
	trending.items = []string{"cached"}
	trending.fetchedAt = &fetched

	s.Refresh(context.Background())

	assert.Equal(t, []string{"cached"}, s.Snapshot().TrendingSearches)
	assert.Equal(t, 0, trending.setCalls, "fresh cache skips the network refresh")
}

func TestRefreshTrendingRefetchesWhenStale(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.trendingTerms = []string{"from remote"}
	s, _, trending, _ := newTestSession(catalog, Config{})
	defer s.Close()

	fetched := time.Now().Add(-11 * time.Minute)
	trending.items = []string{"cached"}
	trending.fetchedAt = &fetched

	s.Refresh(context.Background())

	assert.Equal(t, []string{"from remote"}, s.Snapshot().TrendingSearches)
	assert.Equal(t, 1, trending.setCalls)
	require.NotNil(t, trending.fetchedAt)
	assert.WithinDuration(t, time.Now(), *trending.fetchedAt, time.Minute)
}

func TestRefreshTrendingNeverFetched(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.trendingTerms = []string{"sneakers"}
	s, _, trending, _ := newTestSession(catalog, Config{})
	defer s.Close()

	s.Refresh(context.Background())

	assert.Equal(t, []string{"sneakers"}, s.Snapshot().TrendingSearches)
	assert.Equal(t, 1, trending.setCalls)
}

func TestRefreshViewedMergesLocalAndRemote(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.viewed = []domain.Product{{ID: 2, Name: "remote two"}, {ID: 3, Name: "three"}}
	s, _, _, viewed := newTestSession(catalog, Config{ViewedLimit: 10})
	defer s.Close()
	viewed.items = []domain.Product{{ID: 1, Name: "one"}, {ID: 2, Name: "local two"}}

	s.Refresh(context.Background())

	state := s.Snapshot()
	require.Len(t, state.RecentlyViewed, 3)
	assert.Equal(t, "one", state.RecentlyViewed[0].Name)
	assert.Equal(t, "local two", state.RecentlyViewed[1].Name, "local wins on id conflict")
	assert.Equal(t, "three", state.RecentlyViewed[2].Name)
	assert.Len(t, viewed.items, 3, "merged list written back")
}
