package rediscache

// GuestIdentity scopes cache keys when no user is signed in.
const GuestIdentity = "guest"

// RecentSearchKey returns the history key for one identity.
func RecentSearchKey(identity string) string {
	return "search:recent:" + orGuest(identity)
}

// TrendingKey is shared by all identities; trending terms are site-wide.
const TrendingKey = "search:trending"

// RecentlyViewedKey returns the viewed-products key for one identity.
func RecentlyViewedKey(identity string) string {
	return "products:viewed:" + orGuest(identity)
}

func orGuest(identity string) string {
	if identity == "" {
		return GuestIdentity
	}
	return identity
}

// TrendingRecord is the stored shape for trending terms. FetchedAtMillis
// is epoch milliseconds, nil when never fetched from the remote API.
type TrendingRecord struct {
	Items           []string `json:"items"`
	FetchedAtMillis *int64   `json:"fetched_at"`
}

// ProductRecord is the stored shape for a recently viewed product.
type ProductRecord struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	LocalName string `json:"local_name"`
	Slug      string `json:"slug"`
	SKU       string `json:"sku"`
}
