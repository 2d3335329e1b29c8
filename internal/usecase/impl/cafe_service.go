package impl

import (
	"context"
	"fmt"
	"log/slog"

	"cafefinder/config"
	deliverycontext "cafefinder/internal/delivery/context"
	"cafefinder/internal/domain/entity"
	domainerrors "cafefinder/internal/domain/errors"
	"cafefinder/internal/domain/repository"
	"cafefinder/internal/errors"
	"cafefinder/internal/usecase"

	"go.uber.org/fx"
)

// CafeServiceParams holds dependencies for the cafe service, injected by Fx.
type CafeServiceParams struct {
	fx.In

	Primary  repository.PrimarySource
	Fallback repository.FallbackSource
	Config   *config.Config
	Logger   *slog.Logger
}

type cafeService struct {
	primary   repository.PrimarySource
	fallback  repository.FallbackSource
	maxRadius int
	logger    *slog.Logger
}

// NewCafeService creates the fetch-with-fallback coordinator.
func NewCafeService(params CafeServiceParams) usecase.CafeUsecase {
	maxRadius := 0
	if params.Config != nil && params.Config.Search != nil {
		maxRadius = params.Config.Search.MaxRadius
	}

	return &cafeService{
		primary:   params.Primary,
		fallback:  params.Fallback,
		maxRadius: maxRadius,
		logger:    params.Logger,
	}
}

func (s *cafeService) loggerFrom(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// FindNearby implements usecase.CafeUsecase.
func (s *cafeService) FindNearby(ctx context.Context, origin entity.Point, radiusMeters int) (*usecase.NearbyResult, error) {
	if err := s.validate(origin, radiusMeters); err != nil {
		return nil, err
	}

	logger := s.loggerFrom(ctx).With(
		slog.Float64("lat", origin.Lat),
		slog.Float64("lng", origin.Lng),
		slog.Int("radius", radiusMeters),
	)

	result := &usecase.NearbyResult{
		State: entity.StateQueryingPrimary,
		Trail: []entity.SearchState{entity.StateQueryingPrimary},
	}

	cafes, err := s.queryPrimary(ctx, origin, radiusMeters)
	if err == nil {
		AttachDistancesAndSort(cafes, origin)
		logger.Debug("Primary cafe source answered", slog.Int("count", len(cafes)))

		return s.succeed(result, cafes, entity.SourcePrimary,
			fmt.Sprintf("Found %d cafes nearby.", len(cafes))), nil
	}

	logger.Warn("Primary cafe source unavailable, using fallback dataset", slog.Any("error", err))

	if ctxErr := ctx.Err(); ctxErr != nil {
		return s.fail(result, errors.Wrap(ctxErr, "find nearby cafes"))
	}

	result.State = entity.StateQueryingFallback
	result.Trail = append(result.Trail, entity.StateQueryingFallback)

	records, err := s.fallback.LoadAll(ctx)
	if err != nil {
		logger.Error("Fallback cafe dataset unavailable", slog.Any("error", err))

		return s.fail(result, domainerrors.ErrFallbackUnavailable.WithDetails(err.Error()).
			WrapMessage("find nearby cafes"))
	}

	cafes = Normalize(entity.RawBatch{Kind: entity.SourceFallback, Records: records})
	AttachDistancesAndSort(cafes, origin)

	message := fmt.Sprintf("Live data unavailable. Showing %d cafes from the offline list.", len(cafes))
	if len(cafes) == 0 {
		message = "No cafes found."
	}

	return s.succeed(result, cafes, entity.SourceFallback, message), nil
}

// Filter implements usecase.CafeUsecase.
func (s *cafeService) Filter(cafes []entity.Cafe, query string) []entity.Cafe {
	return Filter(cafes, query)
}

// queryPrimary treats transport errors and empty answers alike: the live
// source is not trusted to report zero cafes for small radii.
func (s *cafeService) queryPrimary(ctx context.Context, origin entity.Point, radiusMeters int) ([]entity.Cafe, error) {
	elements, err := s.primary.FindCafes(ctx, origin, radiusMeters)
	if err != nil {
		return nil, domainerrors.ErrPrimarySourceUnavailable.WithDetails(err.Error()).
			WrapMessage("query primary source")
	}

	cafes := Normalize(entity.RawBatch{Kind: entity.SourcePrimary, Elements: elements})
	if len(cafes) == 0 {
		return nil, domainerrors.ErrPrimarySourceUnavailable.WithDetails("no cafes with coordinates returned")
	}

	return cafes, nil
}

func (s *cafeService) succeed(result *usecase.NearbyResult, cafes []entity.Cafe, source entity.SourceKind, message string) *usecase.NearbyResult {
	result.Cafes = cafes
	result.Source = source
	result.Message = message
	result.State = entity.StateSuccess
	result.Trail = append(result.Trail, entity.StateSuccess)

	return result
}

func (s *cafeService) fail(result *usecase.NearbyResult, err error) (*usecase.NearbyResult, error) {
	result.Cafes = nil
	result.Message = domainerrors.ErrFallbackUnavailable.Message()
	result.State = entity.StateFailed
	result.Trail = append(result.Trail, entity.StateFailed)

	return result, err
}

func (s *cafeService) validate(origin entity.Point, radiusMeters int) error {
	if !origin.Valid() {
		return domainerrors.ErrInvalidSearch.WithDetails("origin is outside valid coordinates")
	}

	if radiusMeters <= 0 {
		return domainerrors.ErrInvalidSearch.WithDetails("radius must be positive")
	}

	if s.maxRadius > 0 && radiusMeters > s.maxRadius {
		return domainerrors.ErrInvalidSearch.WithDetails(fmt.Sprintf("radius must not exceed %d meters", s.maxRadius))
	}

	return nil
}
