package domain

import (
	"sort"
	"strings"
)

// CategoryAll is the synthetic catch-all category. It is never a real
// category of a link.
const CategoryAll = "All"

// NormalizeQuery trims the query and lowercases it for matching.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Filter returns the links of all that belong to category and match query,
// in their original order.
//
// category is either CategoryAll or an exact category label; an unknown
// label simply matches nothing. query is trimmed and matched
// case-insensitively as a plain substring of the title, the description or
// any keyword. Filter never mutates all and returns an empty, non-nil slice
// when nothing matches.
func Filter(all []Link, query, category string) []Link {
	q := NormalizeQuery(query)

	result := make([]Link, 0, len(all))
	for _, link := range all {
		if !MatchesCategory(link, category) {
			continue
		}
		if !MatchesQuery(link, q) {
			continue
		}
		result = append(result, link)
	}
	return result
}

// MatchesCategory reports whether link passes the category step.
func MatchesCategory(link Link, category string) bool {
	return category == CategoryAll || link.Category == category
}

// MatchesQuery reports whether link passes the text step.
// q must already be normalized (see NormalizeQuery).
func MatchesQuery(link Link, q string) bool {
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(link.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(link.Description), q) {
		return true
	}
	for _, kw := range link.Keywords {
		if strings.Contains(strings.ToLower(kw), q) {
			return true
		}
	}
	return false
}

// Categories returns CategoryAll followed by the distinct categories of
// links, sorted lexicographically. Labels are compared exactly, so
// "Identity" and "identity" are two categories.
func Categories(links []Link) []string {
	seen := make(map[string]struct{}, len(links))
	distinct := make([]string, 0, len(links))
	for _, link := range links {
		// A literal "All" label is already covered by the catch-all.
		if link.Category == CategoryAll {
			continue
		}
		if _, ok := seen[link.Category]; ok {
			continue
		}
		seen[link.Category] = struct{}{}
		distinct = append(distinct, link.Category)
	}
	sort.Strings(distinct)

	return append([]string{CategoryAll}, distinct...)
}
