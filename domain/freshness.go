package domain

import "time"

// TrendingTTL bounds how long a cached trending fetch is served without a
// network refresh.
const TrendingTTL = 10 * time.Minute

// IsFresh reports whether a value fetched at fetchedAt is still usable at
// now. A nil fetchedAt means never fetched. The boundary is exclusive: a
// value aged exactly ttl is stale.
func IsFresh(fetchedAt *time.Time, ttl time.Duration, now time.Time) bool {
	if fetchedAt == nil {
		return false
	}
	return now.Sub(*fetchedAt) < ttl
}
