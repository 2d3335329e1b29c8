package impl

import (
	"context"
	"testing"

	"cafefinder/config"
	"cafefinder/internal/domain/entity"
	domainerrors "cafefinder/internal/domain/errors"
	"cafefinder/internal/errors"
	mockRepo "cafefinder/internal/mocks/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var centralIndia = entity.Point{Lat: 22.97, Lng: 78.66}

func newTestCafeService(t *testing.T) (*cafeService, *mockRepo.MockPrimarySource, *mockRepo.MockFallbackSource) {
	t.Helper()

	primary := mockRepo.NewMockPrimarySource(t)
	fallback := mockRepo.NewMockFallbackSource(t)
	svc := NewCafeService(CafeServiceParams{
		Primary:  primary,
		Fallback: fallback,
		Config:   config.Defaults(),
		Logger:   discardLogger(),
	}).(*cafeService)

	return svc, primary, fallback
}

func fallbackRecords() []entity.DatasetRecord {
	return []entity.DatasetRecord{
		{ID: "far", Name: "Far Cafe", Lat: ptr(23.25), Lng: ptr(77.41)},
		{ID: "near", Name: "Near Cafe", Lat: ptr(22.98), Lng: ptr(78.67)},
		{ID: "broken", Name: "No coords"},
	}
}

func TestCafeService_FindNearby_PrimarySuccess(t *testing.T) {
	svc, primary, _ := newTestCafeService(t)
	ctx := context.Background()

	primary.On("FindCafes", ctx, centralIndia, 1000).Return([]entity.OSMElement{
		{ID: 2, Type: "node", Lat: 22.975, Lon: 78.665, HasCoords: true, Tags: map[string]string{"name": "B"}},
		{ID: 1, Type: "node", Lat: 22.971, Lon: 78.661, HasCoords: true, Tags: map[string]string{"name": "A"}},
	}, nil)

	result, err := svc.FindNearby(ctx, centralIndia, 1000)
	require.NoError(t, err)

	assert.Equal(t, entity.SourcePrimary, result.Source)
	assert.Equal(t, entity.StateSuccess, result.State)
	assert.Equal(t, []entity.SearchState{entity.StateQueryingPrimary, entity.StateSuccess}, result.Trail)
	assert.Equal(t, "Found 2 cafes nearby.", result.Message)
	require.Len(t, result.Cafes, 2)
	assert.Equal(t, "node/1", result.Cafes[0].ID)
	assert.Less(t, *result.Cafes[0].DistanceMeters, *result.Cafes[1].DistanceMeters)
}

func TestCafeService_FindNearby_EmptyPrimaryFallsBack(t *testing.T) {
	svc, primary, fallback := newTestCafeService(t)
	ctx := context.Background()

	primary.On("FindCafes", ctx, centralIndia, 1000).Return([]entity.OSMElement{}, nil)
	fallback.On("LoadAll", ctx).Return(fallbackRecords(), nil)

	result, err := svc.FindNearby(ctx, centralIndia, 1000)
	require.NoError(t, err)

	assert.Equal(t, entity.SourceFallback, result.Source)
	assert.Equal(t, entity.StateSuccess, result.State)
	assert.Equal(t, []entity.SearchState{
		entity.StateQueryingPrimary,
		entity.StateQueryingFallback,
		entity.StateSuccess,
	}, result.Trail)
	require.Len(t, result.Cafes, 2, "fallback is not radius filtered, only records without coordinates are dropped")
	assert.Equal(t, "near", result.Cafes[0].ID)
	assert.Equal(t, "far", result.Cafes[1].ID)
	assert.Contains(t, result.Message, "offline list")
}

func TestCafeService_FindNearby_PrimaryErrorFallsBack(t *testing.T) {
	svc, primary, fallback := newTestCafeService(t)
	ctx := context.Background()

	primary.On("FindCafes", ctx, centralIndia, 500).Return(nil, errors.New("overpass: 504 gateway timeout"))
	fallback.On("LoadAll", ctx).Return(fallbackRecords(), nil)

	result, err := svc.FindNearby(ctx, centralIndia, 500)
	require.NoError(t, err)
	assert.Equal(t, entity.SourceFallback, result.Source)
}

func TestCafeService_FindNearby_ElementsWithoutCoordinatesCountAsEmpty(t *testing.T) {
	svc, primary, fallback := newTestCafeService(t)
	ctx := context.Background()

	primary.On("FindCafes", ctx, centralIndia, 1000).Return([]entity.OSMElement{
		{ID: 3, Type: "way", HasCoords: false},
	}, nil)
	fallback.On("LoadAll", ctx).Return(fallbackRecords(), nil)

	result, err := svc.FindNearby(ctx, centralIndia, 1000)
	require.NoError(t, err)
	assert.Equal(t, entity.SourceFallback, result.Source)
}

func TestCafeService_FindNearby_FallbackFailure(t *testing.T) {
	svc, primary, fallback := newTestCafeService(t)
	ctx := context.Background()

	primary.On("FindCafes", ctx, centralIndia, 1000).Return(nil, errors.New("connection refused"))
	fallback.On("LoadAll", ctx).Return(nil, errors.New("read cafes.json: input/output error"))

	result, err := svc.FindNearby(ctx, centralIndia, 1000)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrFallbackUnavailable))
	assert.Contains(t, err.Error(), "input/output error")

	require.NotNil(t, result)
	assert.Equal(t, entity.StateFailed, result.State)
	assert.NotEmpty(t, result.Message)
	assert.Empty(t, result.Cafes)
	assert.Empty(t, result.Source)
	assert.Equal(t, entity.StateFailed, result.Trail[len(result.Trail)-1])
}

func TestCafeService_FindNearby_CanceledContextSkipsFallback(t *testing.T) {
	svc, primary, _ := newTestCafeService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	primary.On("FindCafes", mock.Anything, centralIndia, 1000).Return(nil, context.Canceled)

	result, err := svc.FindNearby(ctx, centralIndia, 1000)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, entity.StateFailed, result.State)
}

func TestCafeService_FindNearby_Validation(t *testing.T) {
	svc, _, _ := newTestCafeService(t)

	tests := []struct {
		name   string
		origin entity.Point
		radius int
	}{
		{name: "zero radius", origin: centralIndia, radius: 0},
		{name: "radius above max", origin: centralIndia, radius: 50000},
		{name: "invalid origin", origin: entity.Point{Lat: 100, Lng: 0}, radius: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.FindNearby(context.Background(), tt.origin, tt.radius)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, domainerrors.ErrInvalidSearch))
		})
	}
}
