// Package rank scores catalog entities against a user query using
// field-level match tiers. All functions are pure; inputs are never
// mutated.
package rank

import (
	"sort"
	"strings"

	"search-coordinator/domain"
	"search-coordinator/normalize"
)

// Match tiers. Higher wins; a field takes its single best tier, tiers do
// not accumulate across fields.
const (
	ScoreExact     = 100
	ScorePrefix    = 80
	ScoreSubstring = 60
)

type scored[T domain.Entity] struct {
	entity T
	score  int
	index  int
}

// Entities orders entities by how well their fields match query, best
// first. An empty normalized query returns the input unchanged. Entities
// without any match stay in the result with score zero, ranked last.
// Equal scores keep their original fetch order; the captured index makes
// the ordering deterministic independent of the sort primitive.
func Entities[T domain.Entity](entities []T, query string) []T {
	q := normalize.Normalize(query)
	if q == "" {
		return entities
	}

	ranked := make([]scored[T], len(entities))
	for i, e := range entities {
		ranked[i] = scored[T]{entity: e, score: Score(e, q), index: i}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].index < ranked[j].index
	})

	out := make([]T, len(ranked))
	for i, r := range ranked {
		out[i] = r.entity
	}
	return out
}

// Score returns the best match tier across the entity's fields.
// normalizedQuery must already be in normalized form.
func Score(e domain.Entity, normalizedQuery string) int {
	best := 0
	for _, f := range e.SearchFields() {
		nf := normalize.Normalize(f)
		if nf == "" {
			continue
		}
		s := 0
		switch {
		case nf == normalizedQuery:
			s = ScoreExact
		case strings.HasPrefix(nf, normalizedQuery):
			s = ScorePrefix
		case strings.Contains(" "+nf+" ", " "+normalizedQuery+" ") || strings.Contains(nf, normalizedQuery):
			s = ScoreSubstring
		}
		if s > best {
			best = s
		}
	}
	return best
}

// HasExactMatch reports whether any field of e normalizes to exactly the
// normalized query.
func HasExactMatch(e domain.Entity, query string) bool {
	q := normalize.Normalize(query)
	if q == "" {
		return false
	}
	for _, f := range e.SearchFields() {
		if normalize.Normalize(f) == q {
			return true
		}
	}
	return false
}

// AnyExactMatch reports whether at least one entity has an exact field
// match for query.
func AnyExactMatch[T domain.Entity](entities []T, query string) bool {
	for _, e := range entities {
		if HasExactMatch(e, query) {
			return true
		}
	}
	return false
}

// FilterSubstring keeps entities whose normalized fields contain the
// normalized query, preserving input order, capped at limit. limit <= 0
// means no cap. An empty normalized query matches everything.
func FilterSubstring[T domain.Entity](entities []T, query string, limit int) []T {
	q := normalize.Normalize(query)
	out := make([]T, 0, len(entities))
	for _, e := range entities {
		if q == "" || Score(e, q) > 0 {
			out = append(out, e)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}
