package usecase

import (
	"context"

	"search-coordinator/domain"
	"search-coordinator/merge"
)

// Refresh reloads recent searches, trending terms and recently viewed
// products. Each list is served from the local cache first for an
// immediate snapshot, then reconciled with the remote API and written
// back. Called on mount and on every screen-focus event.
func (s *SearchSession) Refresh(ctx context.Context) {
	s.refreshRecent(ctx)
	s.refreshTrending(ctx)
	s.refreshViewed(ctx)
}

// TrendingSearches refreshes the trending list (respecting the TTL gate)
// and returns it.
func (s *SearchSession) TrendingSearches(ctx context.Context) []string {
	s.refreshTrending(ctx)
	return s.Snapshot().TrendingSearches
}

// RecentlyViewed refreshes the recently viewed list and returns it.
func (s *SearchSession) RecentlyViewed(ctx context.Context) []domain.Product {
	s.refreshViewed(ctx)
	return s.Snapshot().RecentlyViewed
}

func (s *SearchSession) refreshRecent(ctx context.Context) {
	recordCacheRefresh(ctx, "recent_searches")

	local, err := s.recent.Get(ctx, s.cfg.HistoryLimit)
	if err != nil {
		s.logger.Warn("recent search cache read failed", "session_id", s.id, "err", err)
		local = nil
	}
	if len(local) > 0 {
		s.setRecent(local)
	}

	remote, err := s.catalog.GetSearchHistory(ctx, s.cfg.HistoryLimit)
	if err != nil {
		s.logger.Warn("remote search history fetch failed", "session_id", s.id, "err", err)
		return
	}

	merged := merge.StringLists(local, remote, s.cfg.HistoryLimit)
	if err := s.recent.Set(ctx, merged, s.cfg.HistoryLimit); err != nil {
		s.logger.Warn("recent search cache write failed", "session_id", s.id, "err", err)
	}
	s.setRecent(merged)
}

func (s *SearchSession) refreshTrending(ctx context.Context) {
	recordCacheRefresh(ctx, "trending")

	local, fetchedAt, err := s.trending.Get(ctx, s.cfg.TrendingLimit)
	if err != nil {
		s.logger.Warn("trending cache read failed", "session_id", s.id, "err", err)
		local, fetchedAt = nil, nil
	}
	if len(local) > 0 {
		s.setTrending(local)
	}

	if domain.IsFresh(fetchedAt, s.cfg.TrendingTTL, s.now()) {
		return
	}

	remote, err := s.catalog.GetTrendingSearches(ctx, s.cfg.TrendingLimit)
	if err != nil {
		s.logger.Warn("trending fetch failed", "session_id", s.id, "err", err)
		return
	}

	if err := s.trending.Set(ctx, remote, s.now()); err != nil {
		s.logger.Warn("trending cache write failed", "session_id", s.id, "err", err)
	}
	s.setTrending(remote)
}

func (s *SearchSession) refreshViewed(ctx context.Context) {
	recordCacheRefresh(ctx, "recently_viewed")

	local, err := s.viewed.Get(ctx, s.cfg.ViewedLimit)
	if err != nil {
		s.logger.Warn("recently viewed cache read failed", "session_id", s.id, "err", err)
		local = nil
	}
	if len(local) > 0 {
		s.setViewed(local)
	}

	remote, err := s.catalog.GetRecentlyViewedProducts(ctx, s.cfg.ViewedLimit)
	if err != nil {
		s.logger.Warn("remote recently viewed fetch failed", "session_id", s.id, "err", err)
		return
	}

	combined := make([]domain.Product, 0, len(local)+len(remote))
	combined = append(combined, local...)
	combined = append(combined, remote...)
	merged := merge.ByID(combined)
	if len(merged) > s.cfg.ViewedLimit {
		merged = merged[:s.cfg.ViewedLimit]
	}

	if err := s.viewed.Set(ctx, merged, s.cfg.ViewedLimit); err != nil {
		s.logger.Warn("recently viewed cache write failed", "session_id", s.id, "err", err)
	}
	s.setViewed(merged)
}
