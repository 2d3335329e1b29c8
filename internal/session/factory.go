package session

import (
	"log/slog"

	"cafefinder/config"
	"cafefinder/internal/domain/service"
	"cafefinder/internal/usecase"

	"go.uber.org/fx"
)

// FactoryParams holds the shared dependencies of every session, injected by Fx.
type FactoryParams struct {
	fx.In

	Cafes       usecase.CafeUsecase
	Preferences usecase.PreferenceUsecase
	Config      *config.Config
	Logger      *slog.Logger
}

// Factory builds sessions bound to one client's presenter and locator.
type Factory struct {
	cafes       usecase.CafeUsecase
	preferences usecase.PreferenceUsecase
	logger      *slog.Logger
	radius      int
	maxRadius   int
	minZoom     int
}

// NewFactory creates a session factory from the search config.
func NewFactory(params FactoryParams) *Factory {
	return &Factory{
		cafes:       params.Cafes,
		preferences: params.Preferences,
		logger:      params.Logger,
		radius:      params.Config.Search.DefaultRadius,
		maxRadius:   params.Config.Search.MaxRadius,
		minZoom:     params.Config.Search.MinZoom,
	}
}

// New creates an idle session for one client.
func (f *Factory) New(scope string, presenter service.Presenter, locator service.Locator) *Session {
	return New(f.cafes, f.preferences, presenter, locator, f.logger, Options{
		Scope:         scope,
		DefaultRadius: f.radius,
		MaxRadius:     f.maxRadius,
		MinZoom:       f.minZoom,
	})
}
