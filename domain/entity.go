// Package domain holds the catalog entities and pure policies shared by
// every layer of the search coordinator.
package domain

// Entity is anything the catalog returns that can be matched against a
// text query: products, brands, categories.
type Entity interface {
	EntityID() int64
	// SearchFields returns the textual fields to match a query against,
	// in display-priority order. Empty fields are allowed.
	SearchFields() []string
}

// Product is an immutable snapshot fetched per query. LocalName is the
// localized name and wins over Name for display when present.
type Product struct {
	ID        int64
	Name      string
	LocalName string
	Slug      string
	SKU       string
}

func (p Product) EntityID() int64 { return p.ID }

func (p Product) SearchFields() []string {
	return []string{p.LocalName, p.Name, p.Slug, p.SKU}
}

// DisplayName picks the first non-empty name field.
func (p Product) DisplayName() string {
	return firstNonEmpty(p.LocalName, p.Name, p.Slug)
}

type Brand struct {
	ID        int64
	Name      string
	LocalName string
	Slug      string
}

func (b Brand) EntityID() int64 { return b.ID }

func (b Brand) SearchFields() []string {
	return []string{b.LocalName, b.Name, b.Slug}
}

func (b Brand) DisplayName() string {
	return firstNonEmpty(b.LocalName, b.Name, b.Slug)
}

type Category struct {
	ID        int64
	Name      string
	LocalName string
	Slug      string
}

func (c Category) EntityID() int64 { return c.ID }

func (c Category) SearchFields() []string {
	return []string{c.LocalName, c.Name, c.Slug}
}

func (c Category) DisplayName() string {
	return firstNonEmpty(c.LocalName, c.Name, c.Slug)
}

func firstNonEmpty(fields ...string) string {
	for _, f := range fields {
		if f != "" {
			return f
		}
	}
	return ""
}
