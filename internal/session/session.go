// Package session holds the per-client state of the cafe finder: the
// canonical and filtered result sets, the selection, the origin and radius,
// and the generation counter that decides which search result wins.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"cafefinder/internal/domain/entity"
	domainerrors "cafefinder/internal/domain/errors"
	"cafefinder/internal/domain/service"
	"cafefinder/internal/errors"
	"cafefinder/internal/usecase"
)

const (
	msgLocating  = "Finding your location..."
	msgSearching = "Searching for cafes within %s..."
	msgPickPoint = "Click on the map to choose a point."
)

// Options configures a single session.
type Options struct {
	// Scope narrows the preference key to one client.
	Scope         string
	DefaultRadius int
	// MaxRadius bounds accepted radii; zero means unbounded.
	MaxRadius int
	MinZoom   int
}

// Session coordinates one client. All state is guarded by mu, which is
// never held across a Locate or FindNearby call. Presenter calls are made
// under mu so render order follows state order; presenters must not block.
type Session struct {
	cafes       usecase.CafeUsecase
	preferences usecase.PreferenceUsecase
	presenter   service.Presenter
	locator     service.Locator
	logger      *slog.Logger
	opts        Options

	mu         sync.Mutex
	origin     *entity.Point
	radius     int
	query      string
	canonical  []entity.Cafe
	filtered   []entity.Cafe
	rendered   map[string]entity.Cafe
	selected   string
	state      entity.SearchState
	message    string
	source     entity.SourceKind
	generation uint64
}

// New creates an idle session.
func New(
	cafes usecase.CafeUsecase,
	preferences usecase.PreferenceUsecase,
	presenter service.Presenter,
	locator service.Locator,
	logger *slog.Logger,
	opts Options,
) *Session {
	return &Session{
		cafes:       cafes,
		preferences: preferences,
		presenter:   presenter,
		locator:     locator,
		logger:      logger.With(slog.String("scope", opts.Scope)),
		opts:        opts,
		radius:      opts.DefaultRadius,
		rendered:    make(map[string]entity.Cafe),
		state:       entity.StateIdle,
	}
}

// Start restores preferences. A remembered location is placed, persisted
// again and searched; otherwise the device is located.
func (s *Session) Start(ctx context.Context) {
	prefs := s.preferences.Load(ctx, s.opts.Scope)

	s.mu.Lock()
	if prefs.Radius != nil {
		if err := s.checkRadius(*prefs.Radius); err == nil {
			s.radius = *prefs.Radius
		} else {
			s.logger.Warn("Ignoring stored radius", slog.Int("radius", *prefs.Radius), slog.Any("error", err))
		}
	}
	s.presenter.ShowRadius(s.radius)
	s.mu.Unlock()

	if last, ok := prefs.LastLocation(); ok && last.Valid() {
		s.logger.Debug("Restoring last location", slog.Float64("lat", last.Lat), slog.Float64("lng", last.Lng))
		s.PickLocation(ctx, last)

		return
	}

	s.Locate(ctx)
}

// Locate acquires the device position once and searches around it. A
// failure leaves the session waiting for a manual pick.
func (s *Session) Locate(ctx context.Context) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.setState(entity.StateLocating, msgLocating)
	s.mu.Unlock()

	point, err := s.locator.Locate(ctx)
	if err == nil && !point.Valid() {
		err = errors.Errorf("invalid position %v", point)
	}

	if err != nil {
		s.logger.Warn("Location unavailable", slog.Any("error", err))

		s.mu.Lock()
		if gen == s.generation {
			s.setState(entity.StateIdle, domainerrors.ErrLocationUnavailable.Message())
		}
		s.mu.Unlock()

		return
	}

	s.mu.Lock()
	stale := gen != s.generation
	s.mu.Unlock()
	if stale {
		s.logger.Debug("Discarding position superseded by a newer request")

		return
	}

	s.PickLocation(ctx, point)
}

// PickLocation places the origin at p, persists it and searches.
func (s *Session) PickLocation(ctx context.Context, p entity.Point) {
	s.placeOrigin(p)
	s.persist(ctx, entity.LocationPreference(p))
	s.search(ctx)
}

// SetRadius persists the radius and searches again when an origin is known.
func (s *Session) SetRadius(ctx context.Context, radiusMeters int) error {
	if err := s.checkRadius(radiusMeters); err != nil {
		return err
	}

	s.mu.Lock()
	s.radius = radiusMeters
	s.presenter.ShowRadius(radiusMeters)
	hasOrigin := s.origin != nil
	s.mu.Unlock()

	s.persist(ctx, entity.RadiusPreference(radiusMeters))

	if hasOrigin {
		s.search(ctx)
	}

	return nil
}

// SetQuery recomputes the filtered set and re-renders it.
func (s *Session) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.query = query
	s.refilter()
}

// Reset clears results, selection, origin and query. A search still in
// flight is discarded when it completes.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.origin = nil
	s.query = ""
	s.canonical = nil
	s.selected = ""
	s.source = ""
	s.refilter()
	s.setState(entity.StateIdle, msgPickPoint)
}

func (s *Session) checkRadius(radiusMeters int) error {
	if radiusMeters <= 0 {
		return domainerrors.ErrInvalidSearch.WithDetails("radius must be positive")
	}
	if s.opts.MaxRadius > 0 && radiusMeters > s.opts.MaxRadius {
		return domainerrors.ErrInvalidSearch.WithDetails(
			fmt.Sprintf("radius must not exceed %d meters", s.opts.MaxRadius))
	}

	return nil
}

func (s *Session) placeOrigin(p entity.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.origin = &p
	s.presenter.PlaceOrigin(p)
}

func (s *Session) persist(ctx context.Context, partial entity.Preferences) {
	if err := s.preferences.Save(ctx, s.opts.Scope, partial); err != nil {
		s.logger.Warn("Failed to save preferences", slog.Any("error", err))
	}
}

// search runs one fetch-with-fallback for the current origin and radius.
// Only the latest generation is applied; a failure keeps the canonical set.
func (s *Session) search(ctx context.Context) {
	s.mu.Lock()
	if s.origin == nil {
		s.mu.Unlock()

		return
	}
	s.generation++
	gen := s.generation
	origin, radius := *s.origin, s.radius
	s.setState(entity.StateQueryingPrimary, fmt.Sprintf(msgSearching, formatRadius(radius)))
	s.mu.Unlock()

	result, err := s.cafes.FindNearby(ctx, origin, radius)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.logger.Debug("Discarding stale search result", slog.Uint64("generation", gen))

		return
	}

	if err != nil {
		s.logger.Error("Cafe search failed", slog.Any("error", err))
		s.setState(entity.StateFailed, failureMessage(result, err))

		return
	}

	s.canonical = result.Cafes
	s.source = result.Source
	s.refilter()
	s.setState(result.State, result.Message)
}

// refilter derives the filtered set and re-renders list and markers. Caller
// holds mu.
func (s *Session) refilter() {
	s.filtered = s.cafes.Filter(s.canonical, s.query)

	s.rendered = make(map[string]entity.Cafe, len(s.filtered))
	for _, cafe := range s.filtered {
		s.rendered[cafe.ID] = cafe
	}

	s.presenter.RenderMarkers(s.filtered)
	s.presenter.RenderList(s.filtered)
}

// setState records and shows the workflow state. Caller holds mu.
func (s *Session) setState(state entity.SearchState, message string) {
	s.state = state
	s.message = message
	s.presenter.ShowStatus(state, message)
}

func failureMessage(result *usecase.NearbyResult, err error) string {
	if result != nil && result.Message != "" {
		return result.Message
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message()
	}

	return domainerrors.ErrFallbackUnavailable.Message()
}

func formatRadius(meters int) string {
	if meters >= 1000 && meters%100 == 0 {
		return fmt.Sprintf("%g km", float64(meters)/1000)
	}

	return fmt.Sprintf("%d m", meters)
}
