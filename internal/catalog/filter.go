// Package catalog implements the network-tiered visibility filter over a
// resource catalogue. Filtering is a pure function: no side effects, stable
// ordering, identical output for identical input.
package catalog

import (
	"strings" // Case-insensitive substring matching

	"cognihub/internal/domain" // Resource model and visibility tags
)

// CategoryAll is the sentinel facet value that matches every category.
const CategoryAll = "All"

// VisibleTo reports whether a resource may be shown to a viewer on the
// given network. EDU users never see GENERAL resources and vice versa;
// PUBLIC resources cross both tiers.
func VisibleTo(r domain.Resource, viewerNetwork string) bool {
	return r.Visibility == viewerNetwork || r.Visibility == domain.VisibilityPublic
}

// matchesQuery checks a case-insensitive substring match of query against
// the resource title or subject. An empty query matches everything.
func matchesQuery(r domain.Resource, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(r.Title), q) ||
		strings.Contains(strings.ToLower(r.Subject), q)
}

// matchesCategory checks the category facet. CategoryAll matches every
// resource; any other value requires exact equality. An unrecognized
// category therefore matches nothing - it never falls back to CategoryAll.
func matchesCategory(r domain.Resource, category string) bool {
	return category == CategoryAll || r.Category == category
}

// Filter returns the ordered subsequence of resources the viewer may
// browse: visible on the viewer's network, matching the search query and
// the category facet. All three predicates are ANDed. Input order is
// preserved; the input slice is never mutated.
func Filter(resources []domain.Resource, viewerNetwork, query, category string) []domain.Resource {
	filtered := make([]domain.Resource, 0, len(resources))
	for _, r := range resources {
		if VisibleTo(r, viewerNetwork) && matchesQuery(r, query) && matchesCategory(r, category) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
