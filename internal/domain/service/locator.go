package service

import (
	"context"

	"cafefinder/internal/domain/entity"
)

// Locator acquires the device position once. Implementations apply their own
// acquisition timeout and never reuse a cached position.
type Locator interface {
	Locate(ctx context.Context) (entity.Point, error)
}
