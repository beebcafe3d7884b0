// Package search implements the free-text restroom filter used by the list
// view: any query token found in a restroom's searchable text is a match.
package search

import (
	"strings"

	"pottyspotty/internal/models"
)

// SearchableText is the lower-cased blob a restroom is matched against.
func SearchableText(r models.Restroom) string {
	parts := []string{
		r.Name,
		r.Address.Street,
		r.Address.City,
		r.Address.ZipCode,
		r.Comments,
		flag(r.IsAccessible, "accessible"),
		flag(r.IsGenderNeutral, "unisex"),
		flag(r.HasChangingTable, "changing table station"),
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Filter returns the restrooms matching at least one whitespace-separated
// token of query, in input order. An empty query matches nothing.
func Filter(query string, records []models.Restroom) []models.Restroom {
	tokens := strings.Fields(strings.ToLower(strings.TrimSpace(query)))
	matched := make([]models.Restroom, 0)
	if len(tokens) == 0 {
		return matched
	}

	for _, r := range records {
		text := SearchableText(r)
		for _, token := range tokens {
			if strings.Contains(text, token) {
				matched = append(matched, r)
				break
			}
		}
	}
	return matched
}

func flag(set bool, label string) string {
	if set {
		return label
	}
	return ""
}
