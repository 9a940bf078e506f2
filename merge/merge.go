// Package merge reconciles local and remote lists. All functions are pure
// and never mutate their inputs.
package merge

import (
	"strings"

	"search-coordinator/domain"
	"search-coordinator/normalize"
)

// StringLists concatenates primary then secondary, trims each entry, drops
// empties, deduplicates by normalized form keeping the first occurrence
// (so primary's casing wins on conflict), and truncates to limit. Order is
// preserved from the concatenation. limit <= 0 means unbounded.
func StringLists(primary, secondary []string, limit int) []string {
	seen := make(map[string]struct{}, len(primary)+len(secondary))
	out := make([]string, 0, len(primary)+len(secondary))

	for _, list := range [][]string{primary, secondary} {
		for _, s := range list {
			trimmed := strings.TrimSpace(s)
			if trimmed == "" {
				continue
			}
			key := normalize.Normalize(trimmed)
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, trimmed)
			if limit > 0 && len(out) == limit {
				return out
			}
		}
	}
	return out
}

// ByID keeps the first occurrence per entity identifier in a single pass,
// preserving order.
func ByID[T domain.Entity](entities []T) []T {
	seen := make(map[int64]struct{}, len(entities))
	out := make([]T, 0, len(entities))
	for _, e := range entities {
		if _, dup := seen[e.EntityID()]; dup {
			continue
		}
		seen[e.EntityID()] = struct{}{}
		out = append(out, e)
	}
	return out
}
