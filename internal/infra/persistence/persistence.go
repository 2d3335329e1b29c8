// Package persistence selects the preference store backend from config.
package persistence

import (
	"log/slog"

	"cafefinder/config"
	"cafefinder/internal/domain/repository"
	"cafefinder/internal/errors"
	"cafefinder/internal/infra/persistence/blobstore"
	"cafefinder/internal/infra/persistence/postgres"

	"go.uber.org/fx"
)

// Params holds dependencies for the preference store, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewPreferenceRepository opens the backend named by preferences.driver.
// Only the selected backend is connected.
func NewPreferenceRepository(params Params) (repository.PreferenceRepository, error) {
	switch params.Config.Preferences.Driver {
	case config.PreferenceDriverBlob:
		return blobstore.New(blobstore.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
	case config.PreferenceDriverPostgres:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return nil, err
		}
		params.Logger.Info("Preferences stored in PostgreSQL")

		return postgres.NewPreferenceRepository(db), nil
	default:
		return nil, errors.Errorf("unknown preferences driver %q", params.Config.Preferences.Driver)
	}
}
