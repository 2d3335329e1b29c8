// Package repository defines the interfaces for the data layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"cafefinder/internal/domain/entity"
)

// PrimarySource is the live geodata query service.
type PrimarySource interface {
	// FindCafes returns tagged cafe elements within radiusMeters of origin.
	// An empty slice with a nil error is a valid, if untrusted, answer.
	FindCafes(ctx context.Context, origin entity.Point, radiusMeters int) ([]entity.OSMElement, error)
}

// FallbackSource is the static dataset used when the primary source fails.
type FallbackSource interface {
	// LoadAll returns every record of the dataset. It is not radius filtered.
	LoadAll(ctx context.Context) ([]entity.DatasetRecord, error)
}
