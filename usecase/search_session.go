// Package usecase contains the search orchestration logic: debounce,
// request fencing, fan-out, fallback pagination and the local-first cache
// refresh.
package usecase

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"search-coordinator/domain"
	"search-coordinator/merge"
	"search-coordinator/normalize"
	"search-coordinator/port"
	"search-coordinator/rank"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Config carries the orchestration tunables. Zero values fall back to the
// storefront defaults.
type Config struct {
	Debounce       time.Duration
	MinQueryLength int
	PageSize       int
	MaxPages       int
	FilterLimit    int
	HistoryLimit   int
	ViewedLimit    int
	TrendingLimit  int
	TrendingTTL    time.Duration
}

func (c Config) withDefaults() Config {
	if c.Debounce <= 0 {
		c.Debounce = 300 * time.Millisecond
	}
	if c.MinQueryLength <= 0 {
		c.MinQueryLength = 2
	}
	if c.PageSize <= 0 {
		c.PageSize = 50
	}
	if c.MaxPages <= 0 {
		c.MaxPages = 3
	}
	if c.FilterLimit <= 0 {
		c.FilterLimit = 5
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = 10
	}
	if c.ViewedLimit <= 0 {
		c.ViewedLimit = 10
	}
	if c.TrendingLimit <= 0 {
		c.TrendingLimit = 10
	}
	if c.TrendingTTL <= 0 {
		c.TrendingTTL = domain.TrendingTTL
	}
	return c
}

// State is the snapshot the UI layer observes. Slices are replaced
// wholesale on publish, never mutated in place, so a snapshot stays valid
// after newer searches complete.
type State struct {
	Query            string
	Searching        bool
	Products         []domain.Product
	Brands           []domain.Brand
	Categories       []domain.Category
	RecentSearches   []string
	TrendingSearches []string
	RecentlyViewed   []domain.Product
}

// Listener receives a snapshot after every published change.
type Listener func(State)

// SearchSession orchestrates search-as-you-type for one UI session. A
// monotonically increasing fence is captured when a search starts and
// compared before every state mutation; a mismatch means a newer search
// superseded this one and its results are silently discarded. Failures
// degrade to empty result buckets, never to errors surfacing upward.
type SearchSession struct {
	id       string
	cfg      Config
	catalog  port.CatalogAPI
	recent   port.RecentSearchStore
	trending port.TrendingStore
	viewed   port.RecentlyViewedStore
	logger   *slog.Logger
	now      func() time.Time

	// historyLimiter bounds the fire-and-forget remote history sync.
	historyLimiter *rate.Limiter

	mu       sync.Mutex
	fence    uint64
	state    State
	timer    *time.Timer
	listener Listener
	closed   bool
}

func NewSearchSession(
	catalog port.CatalogAPI,
	recent port.RecentSearchStore,
	trending port.TrendingStore,
	viewed port.RecentlyViewedStore,
	cfg Config,
	logger *slog.Logger,
) *SearchSession {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchSession{
		id:             uuid.NewString(),
		cfg:            cfg.withDefaults(),
		catalog:        catalog,
		recent:         recent,
		trending:       trending,
		viewed:         viewed,
		logger:         logger,
		now:            time.Now,
		historyLimiter: rate.NewLimiter(rate.Every(time.Second), 5),
	}
}

// ID identifies the session in logs.
func (s *SearchSession) ID() string {
	return s.id
}

// Subscribe registers the listener notified on every published change.
// Only one listener is supported; a later call replaces the earlier one.
func (s *SearchSession) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener = l
}

// Snapshot returns the current observable state.
func (s *SearchSession) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetQuery records a keystroke and (re)starts the debounce timer. The
// search itself runs on the timer goroutine once typing pauses.
func (s *SearchSession) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.state.Query = query
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.cfg.Debounce, func() {
		s.runSearch(context.Background(), query)
	})
}

// SelectRecentTerm searches a history or trending term immediately,
// bypassing the debounce.
func (s *SearchSession) SelectRecentTerm(ctx context.Context, term string) State {
	return s.SearchNow(ctx, term)
}

// SearchNow runs a search for query synchronously, bypassing the debounce,
// and returns the snapshot after it settles. Fence semantics still apply:
// if a newer search starts meanwhile, this one publishes nothing.
func (s *SearchSession) SearchNow(ctx context.Context, query string) State {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return s.Snapshot()
	}
	s.state.Query = query
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	s.runSearch(ctx, query)
	return s.Snapshot()
}

// ClearRecentSearches empties the history locally and, best-effort, on the
// remote API.
func (s *SearchSession) ClearRecentSearches(ctx context.Context) {
	if err := s.recent.Clear(ctx); err != nil {
		s.logger.Warn("recent search cache clear failed", "session_id", s.id, "err", err)
	}

	s.mu.Lock()
	s.state.RecentSearches = nil
	snapshot := s.state
	s.mu.Unlock()
	s.notify(snapshot)

	go func() {
		syncCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.catalog.ClearSearchHistory(syncCtx); err != nil {
			s.logger.Warn("remote history clear failed", "session_id", s.id, "err", err)
		}
	}()
}

// RecordProductView prepends p to the identity-scoped recently viewed
// list, deduplicated by id and capped.
func (s *SearchSession) RecordProductView(ctx context.Context, p domain.Product) {
	existing, err := s.viewed.Get(ctx, s.cfg.ViewedLimit)
	if err != nil {
		s.logger.Warn("recently viewed cache read failed", "session_id", s.id, "err", err)
		existing = nil
	}

	items := merge.ByID(append([]domain.Product{p}, existing...))
	if len(items) > s.cfg.ViewedLimit {
		items = items[:s.cfg.ViewedLimit]
	}

	if err := s.viewed.Set(ctx, items, s.cfg.ViewedLimit); err != nil {
		s.logger.Warn("recently viewed cache write failed", "session_id", s.id, "err", err)
	}
	s.setViewed(items)
}

// Close stops any pending debounce timer and invalidates in-flight
// searches. Safe to call more than once.
func (s *SearchSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.fence++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// runSearch performs one fenced search attempt.
func (s *SearchSession) runSearch(ctx context.Context, query string) {
	start := s.now()
	normalized := normalize.Normalize(query)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.fence++
	myFence := s.fence

	if utf8.RuneCountInString(normalized) < s.cfg.MinQueryLength {
		// Too short: reset result buckets without touching the network.
		// The fence bump above already invalidates older in-flight
		// searches.
		s.state.Products = nil
		s.state.Brands = nil
		s.state.Categories = nil
		s.state.Searching = false
		snapshot := s.state
		s.mu.Unlock()
		s.notify(snapshot)
		return
	}

	s.state.Searching = true
	snapshot := s.state
	s.mu.Unlock()
	s.notify(snapshot)

	products, brands, categories, err := s.fanOut(ctx, normalized)
	if err != nil {
		s.failSearch(myFence, normalized, err)
		return
	}
	if !s.fenceHolds(myFence) {
		s.logger.Debug("search superseded", "session_id", s.id, "query", normalized)
		recordSuperseded(ctx)
		return
	}

	usedFallback := false
	ranked := rank.Entities(products, normalized)
	if !rank.AnyExactMatch(ranked, normalized) {
		usedFallback = true
		extra, err := s.fetchFallbackPages(ctx, normalized)
		if err != nil {
			s.failSearch(myFence, normalized, err)
			return
		}
		union := merge.ByID(append(append([]domain.Product{}, ranked...), extra...))
		ranked = rank.Entities(union, normalized)
	}

	s.mu.Lock()
	if s.closed || myFence != s.fence {
		s.mu.Unlock()
		s.logger.Debug("search superseded", "session_id", s.id, "query", normalized)
		recordSuperseded(ctx)
		return
	}
	s.state.Products = ranked
	s.state.Brands = rank.FilterSubstring(brands, normalized, s.cfg.FilterLimit)
	s.state.Categories = rank.FilterSubstring(categories, normalized, s.cfg.FilterLimit)
	s.state.Searching = false
	snapshot = s.state
	s.mu.Unlock()
	s.notify(snapshot)

	recordSearch(ctx, "ok", usedFallback, s.now().Sub(start))
	s.persistQuery(ctx, query)
}

// fanOut issues the three concurrent fetches for one search: products
// page 1, all brands, all categories.
func (s *SearchSession) fanOut(ctx context.Context, query string) ([]domain.Product, []domain.Brand, []domain.Category, error) {
	var (
		products   []domain.Product
		brands     []domain.Brand
		categories []domain.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.catalog.SearchProducts(gctx, query, 1, s.cfg.PageSize)
		return err
	})
	g.Go(func() error {
		var err error
		brands, err = s.catalog.ListBrands(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.catalog.ListCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return products, brands, categories, nil
}

// fetchFallbackPages fetches pages 2..MaxPages concurrently when page 1
// held no exact match. Results come back in page order.
func (s *SearchSession) fetchFallbackPages(ctx context.Context, query string) ([]domain.Product, error) {
	pages := make([][]domain.Product, s.cfg.MaxPages-1)

	g, gctx := errgroup.WithContext(ctx)
	for i := range pages {
		page := i + 2
		g.Go(func() error {
			got, err := s.catalog.SearchProducts(gctx, query, page, s.cfg.PageSize)
			if err != nil {
				return err
			}
			pages[page-2] = got
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []domain.Product
	for _, p := range pages {
		all = append(all, p...)
	}
	return all, nil
}

// persistQuery saves a meaningful query to the recent-search history:
// local read-merge-write first, then a rate-limited fire-and-forget remote
// mirror.
func (s *SearchSession) persistQuery(ctx context.Context, query string) {
	trimmed := strings.TrimSpace(query)
	if utf8.RuneCountInString(normalize.Normalize(trimmed)) < s.cfg.MinQueryLength {
		return
	}

	items, err := s.recent.Save(ctx, trimmed, s.cfg.HistoryLimit)
	if err != nil {
		s.logger.Warn("recent search save failed", "session_id", s.id, "err", err)
	}
	if len(items) > 0 {
		s.setRecent(items)
	}

	go func() {
		if !s.historyLimiter.Allow() {
			return
		}
		syncCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.catalog.SaveSearchQuery(syncCtx, trimmed); err != nil {
			s.logger.Warn("remote history sync failed", "session_id", s.id, "err", err)
		}
	}()
}

// failSearch clears the result buckets if this attempt still owns the
// fence. Errors are logged, never surfaced; an empty result set is valid
// feedback.
func (s *SearchSession) failSearch(myFence uint64, query string, err error) {
	s.mu.Lock()
	if s.closed || myFence != s.fence {
		s.mu.Unlock()
		return
	}
	s.logger.Error("search failed", "session_id", s.id, "query", query, "err", err)
	recordError(context.Background(), "search")
	s.state.Products = nil
	s.state.Brands = nil
	s.state.Categories = nil
	s.state.Searching = false
	snapshot := s.state
	s.mu.Unlock()
	s.notify(snapshot)
}

func (s *SearchSession) fenceHolds(myFence uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && myFence == s.fence
}

func (s *SearchSession) setRecent(items []string) {
	s.mu.Lock()
	s.state.RecentSearches = items
	snapshot := s.state
	s.mu.Unlock()
	s.notify(snapshot)
}

func (s *SearchSession) setTrending(items []string) {
	s.mu.Lock()
	s.state.TrendingSearches = items
	snapshot := s.state
	s.mu.Unlock()
	s.notify(snapshot)
}

func (s *SearchSession) setViewed(items []domain.Product) {
	s.mu.Lock()
	s.state.RecentlyViewed = items
	snapshot := s.state
	s.mu.Unlock()
	s.notify(snapshot)
}

// notify delivers a snapshot to the listener. Callers must not hold mu.
func (s *SearchSession) notify(snapshot State) {
	s.mu.Lock()
	l := s.listener
	s.mu.Unlock()
	if l != nil {
		l(snapshot)
	}
}
