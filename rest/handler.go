// Package rest exposes the search coordinator over HTTP for clients that
// do their own debouncing.
package rest

import (
	"context"
	"net/http"

	"search-coordinator/domain"
	"search-coordinator/usecase"

	"github.com/labstack/echo/v4"
)

// identityHeader carries the authenticated user id; absent means guest.
const identityHeader = "X-User-ID"

// Pinger reports whether the local cache store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler contains all HTTP handlers for the search coordinator.
type Handler struct {
	sessions *usecase.Manager
	cache    Pinger
}

func NewHandler(sessions *usecase.Manager, cache Pinger) *Handler {
	return &Handler{sessions: sessions, cache: cache}
}

// Register wires the routes onto e.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/v1/health", h.Health)
	e.GET("/v1/search", h.Search)
	e.GET("/v1/session/state", h.State)
	e.POST("/v1/session/query", h.SetQuery)
	e.POST("/v1/session/recent-term", h.SelectRecentTerm)
	e.POST("/v1/session/refresh", h.Refresh)
	e.DELETE("/v1/search/history", h.ClearHistory)
	e.GET("/v1/search/trending", h.Trending)
	e.GET("/v1/products/recently-viewed", h.RecentlyViewed)
	e.POST("/v1/products/viewed", h.RecordView)
}

func (h *Handler) session(c echo.Context) *usecase.SearchSession {
	return h.sessions.Session(c.Request().Header.Get(identityHeader))
}

type productJSON struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
	SKU  string `json:"sku,omitempty"`
}

type namedJSON struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

type stateJSON struct {
	Query            string        `json:"query"`
	Searching        bool          `json:"searching"`
	Products         []productJSON `json:"products"`
	Brands           []namedJSON   `json:"brands"`
	Categories       []namedJSON   `json:"categories"`
	RecentSearches   []string      `json:"recent_searches"`
	TrendingSearches []string      `json:"trending_searches"`
	RecentlyViewed   []productJSON `json:"recently_viewed"`
}

func toStateJSON(s usecase.State) stateJSON {
	out := stateJSON{
		Query:            s.Query,
		Searching:        s.Searching,
		Products:         make([]productJSON, len(s.Products)),
		Brands:           make([]namedJSON, len(s.Brands)),
		Categories:       make([]namedJSON, len(s.Categories)),
		RecentSearches:   s.RecentSearches,
		TrendingSearches: s.TrendingSearches,
		RecentlyViewed:   make([]productJSON, len(s.RecentlyViewed)),
	}
	for i, p := range s.Products {
		out.Products[i] = productJSON{ID: p.ID, Name: p.DisplayName(), Slug: p.Slug, SKU: p.SKU}
	}
	for i, b := range s.Brands {
		out.Brands[i] = namedJSON{ID: b.ID, Name: b.DisplayName(), Slug: b.Slug}
	}
	for i, cat := range s.Categories {
		out.Categories[i] = namedJSON{ID: cat.ID, Name: cat.DisplayName(), Slug: cat.Slug}
	}
	for i, p := range s.RecentlyViewed {
		out.RecentlyViewed[i] = productJSON{ID: p.ID, Name: p.DisplayName(), Slug: p.Slug, SKU: p.SKU}
	}
	return out
}

// Search runs a blocking search and returns the settled session state.
func (h *Handler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q parameter is required")
	}

	state := h.session(c).SearchNow(c.Request().Context(), query)
	return c.JSON(http.StatusOK, toStateJSON(state))
}

// State returns the current session snapshot without searching.
func (h *Handler) State(c echo.Context) error {
	return c.JSON(http.StatusOK, toStateJSON(h.session(c).Snapshot()))
}

type queryRequest struct {
	Query string `json:"query"`
}

// SetQuery records a keystroke; the debounced search runs asynchronously.
func (h *Handler) SetQuery(c echo.Context) error {
	var req queryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	h.session(c).SetQuery(req.Query)
	return c.NoContent(http.StatusAccepted)
}

type termRequest struct {
	Term string `json:"term"`
}

// SelectRecentTerm searches a history or trending term immediately.
func (h *Handler) SelectRecentTerm(c echo.Context) error {
	var req termRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Term == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "term is required")
	}

	state := h.session(c).SelectRecentTerm(c.Request().Context(), req.Term)
	return c.JSON(http.StatusOK, toStateJSON(state))
}

// Refresh reloads history, trending and recently viewed lists.
func (h *Handler) Refresh(c echo.Context) error {
	session := h.session(c)
	session.Refresh(c.Request().Context())
	return c.JSON(http.StatusOK, toStateJSON(session.Snapshot()))
}

// Trending returns the trending search terms, refreshed when stale.
func (h *Handler) Trending(c echo.Context) error {
	terms := h.session(c).TrendingSearches(c.Request().Context())
	if terms == nil {
		terms = []string{}
	}
	return c.JSON(http.StatusOK, terms)
}

// RecentlyViewed returns the caller's recently viewed products.
func (h *Handler) RecentlyViewed(c echo.Context) error {
	items := h.session(c).RecentlyViewed(c.Request().Context())
	out := make([]productJSON, len(items))
	for i, p := range items {
		out[i] = productJSON{ID: p.ID, Name: p.DisplayName(), Slug: p.Slug, SKU: p.SKU}
	}
	return c.JSON(http.StatusOK, out)
}

// ClearHistory empties the recent-search history.
func (h *Handler) ClearHistory(c echo.Context) error {
	h.session(c).ClearRecentSearches(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

type viewRequest struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	LocalName string `json:"local_name"`
	Slug      string `json:"slug"`
	SKU       string `json:"sku"`
}

// RecordView marks a product as viewed for the caller's identity.
func (h *Handler) RecordView(c echo.Context) error {
	var req viewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}

	h.session(c).RecordProductView(c.Request().Context(), domain.Product{
		ID:        req.ID,
		Name:      req.Name,
		LocalName: req.LocalName,
		Slug:      req.Slug,
		SKU:       req.SKU,
	})
	return c.NoContent(http.StatusNoContent)
}

// Health reports service and cache-store liveness. A cache outage is
// reported but does not fail the check; search degrades to remote-only.
func (h *Handler) Health(c echo.Context) error {
	resp := map[string]string{"status": "ok", "cache": "ok"}
	if h.cache != nil {
		if err := h.cache.Ping(c.Request().Context()); err != nil {
			resp["cache"] = "unavailable"
		}
	}
	return c.JSON(http.StatusOK, resp)
}
