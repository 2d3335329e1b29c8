package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"cafefinder/config"
	deliverycontext "cafefinder/internal/delivery/context"
	"cafefinder/internal/domain/entity"
	domainerrors "cafefinder/internal/domain/errors"
	"cafefinder/internal/domain/repository"
	"cafefinder/internal/errors"
	"cafefinder/internal/usecase"

	"go.uber.org/fx"
)

const defaultPreferenceNamespace = "cafe-finder-prefs"

// PreferenceServiceParams holds dependencies for the preference service, injected by Fx.
type PreferenceServiceParams struct {
	fx.In

	Repo   repository.PreferenceRepository
	Config *config.Config
	Logger *slog.Logger
}

type preferenceService struct {
	repo      repository.PreferenceRepository
	namespace string
	logger    *slog.Logger
}

// NewPreferenceService creates the preference persistence service.
func NewPreferenceService(params PreferenceServiceParams) usecase.PreferenceUsecase {
	namespace := defaultPreferenceNamespace
	if params.Config != nil && params.Config.Preferences != nil && params.Config.Preferences.Namespace != "" {
		namespace = params.Config.Preferences.Namespace
	}

	return &preferenceService{
		repo:      params.Repo,
		namespace: namespace,
		logger:    params.Logger,
	}
}

func (s *preferenceService) loggerFrom(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// Load implements usecase.PreferenceUsecase.
func (s *preferenceService) Load(ctx context.Context, scope string) entity.Preferences {
	key := s.key(scope)

	prefs, err := s.read(ctx, key)
	if err != nil {
		s.loggerFrom(ctx).Warn("Failed to read preferences, using defaults",
			slog.String("key", key),
			slog.Any("error", err),
		)

		return entity.Preferences{}
	}

	return prefs
}

// Save implements usecase.PreferenceUsecase. Nothing is written when the
// stored value cannot be read, so a storage hiccup never drops fields.
func (s *preferenceService) Save(ctx context.Context, scope string, partial entity.Preferences) error {
	key := s.key(scope)

	stored, err := s.read(ctx, key)
	if err != nil {
		return errors.Wrap(err, "read preferences")
	}

	data, err := json.Marshal(stored.Merge(partial))
	if err != nil {
		return errors.Wrap(err, "marshal preferences")
	}

	if err := s.repo.Put(ctx, key, data); err != nil {
		return errors.Wrap(err, "save preferences")
	}

	return nil
}

// read returns the stored preferences. A missing or corrupt value reads as
// empty; only storage failures are returned.
func (s *preferenceService) read(ctx context.Context, key string) (entity.Preferences, error) {
	data, err := s.repo.Get(ctx, key)
	if errors.Is(err, repository.ErrPreferenceNotFound) {
		return entity.Preferences{}, nil
	}
	if err != nil {
		return entity.Preferences{}, err
	}

	var prefs entity.Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		s.loggerFrom(ctx).Warn("Ignoring stored preferences",
			slog.String("key", key),
			slog.String("code", domainerrors.ErrPreferenceCorrupt.ErrorCode()),
			slog.Any("error", err),
		)

		return entity.Preferences{}, nil
	}

	return prefs, nil
}

// key narrows the namespace to one client. Characters outside [A-Za-z0-9_-]
// are dropped so a scope can never address another key.
func (s *preferenceService) key(scope string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return -1
		}
	}, scope)

	if cleaned == "" {
		return s.namespace
	}

	return s.namespace + "/" + cleaned
}
