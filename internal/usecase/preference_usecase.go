package usecase

import (
	"context"

	"cafefinder/internal/domain/entity"
)

// PreferenceUsecase defines the preference persistence use cases.
// scope narrows the stored key to one client; an empty scope uses the
// shared namespace key.
type PreferenceUsecase interface {
	// Load never fails: missing or corrupt data yields empty preferences.
	Load(ctx context.Context, scope string) entity.Preferences

	// Save merges partial into the stored preferences and writes them back.
	Save(ctx context.Context, scope string, partial entity.Preferences) error
}
