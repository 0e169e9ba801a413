package domain

import (
	"sort"
	"strings"
)

// SortOption orders project listings.
type SortOption string

const (
	// SortNameAsc orders by name, case-insensitively.
	SortNameAsc SortOption = "name-asc"
	// SortNameDesc orders by name in reverse, case-insensitively.
	SortNameDesc SortOption = "name-desc"
	// SortDurationAsc orders shortest project first.
	SortDurationAsc SortOption = "duration-asc"
	// SortDurationDesc orders longest project first.
	SortDurationDesc SortOption = "duration-desc"
	// SortCreatedAsc orders oldest project first.
	SortCreatedAsc SortOption = "created-asc"
	// SortCreatedDesc orders newest project first.
	SortCreatedDesc SortOption = "created-desc"
	// SortUpdatedAsc orders least recently edited first.
	SortUpdatedAsc SortOption = "updated-asc"
	// SortUpdatedDesc orders most recently edited first. This is the
	// default for unknown options.
	SortUpdatedDesc SortOption = "updated-desc"
)

// FilterAndSortMetadata returns a new slice holding the entries whose name
// contains query (case-insensitive), ordered by the sort option. The input
// slice is never mutated.
func FilterAndSortMetadata(entries []Metadata, query string, option SortOption) []Metadata {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]Metadata, 0, len(entries))
	for _, entry := range entries {
		if query == "" || strings.Contains(strings.ToLower(entry.Name), query) {
			out = append(out, entry)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch option {
		case SortNameAsc:
			return lessName(a.Name, b.Name)
		case SortNameDesc:
			return lessName(b.Name, a.Name)
		case SortDurationAsc:
			return a.Duration < b.Duration
		case SortDurationDesc:
			return a.Duration > b.Duration
		case SortCreatedAsc:
			return a.CreatedAt.Before(b.CreatedAt)
		case SortCreatedDesc:
			return a.CreatedAt.After(b.CreatedAt)
		case SortUpdatedAsc:
			return a.UpdatedAt.Before(b.UpdatedAt)
		default:
			return a.UpdatedAt.After(b.UpdatedAt)
		}
	})

	return out
}

// lessName compares names the way the filter matches them: ignoring
// case.
func lessName(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}
