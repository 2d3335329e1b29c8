package impl

import (
	"strings"

	"cafefinder/internal/domain/entity"
)

// Filter keeps cafes whose name or area contains query, ignoring case and
// surrounding whitespace. An empty query returns cafes itself, order intact.
func Filter(cafes []entity.Cafe, query string) []entity.Cafe {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return cafes
	}

	filtered := make([]entity.Cafe, 0, len(cafes))
	for _, cafe := range cafes {
		if strings.Contains(strings.ToLower(cafe.Name), needle) ||
			strings.Contains(strings.ToLower(cafe.Area), needle) {
			filtered = append(filtered, cafe)
		}
	}

	return filtered
}
