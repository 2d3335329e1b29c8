package repository

import (
	"context"

	"cafefinder/internal/errors"
)

// ErrPreferenceNotFound is returned when nothing has been stored under a key.
var ErrPreferenceNotFound = errors.New("preferences not found")

// PreferenceRepository is a durable key-value store holding one serialized
// preference blob per key. Writes are last-write-wins.
type PreferenceRepository interface {
	// Get returns the raw blob stored under key, or ErrPreferenceNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the blob stored under key.
	Put(ctx context.Context, key string, value []byte) error
}
