package usecase

import (
	"context"

	"cafefinder/internal/domain/entity"
)

// NearbyResult is the outcome of a fetch-with-fallback search.
type NearbyResult struct {
	Cafes   []entity.Cafe        `json:"cafes"`
	Source  entity.SourceKind    `json:"source,omitempty"`
	Message string               `json:"message"`
	State   entity.SearchState   `json:"state"`
	Trail   []entity.SearchState `json:"trail"` // States visited, in order.
}

// CafeUsecase defines the cafe search use cases
type CafeUsecase interface {
	// FindNearby queries the primary source, falling back to the static
	// dataset on error or empty result, and returns cafes sorted by distance
	// from origin. A failed fallback yields a result in StateFailed together
	// with an error matching ErrFallbackUnavailable.
	FindNearby(ctx context.Context, origin entity.Point, radiusMeters int) (*NearbyResult, error)

	// Filter keeps cafes whose name or area contains query, case-insensitively.
	Filter(cafes []entity.Cafe, query string) []entity.Cafe
}
