package impl

import (
	"context"
	"sync"
	"testing"

	"cafefinder/config"
	"cafefinder/internal/domain/entity"
	"cafefinder/internal/domain/repository"
	"cafefinder/internal/errors"
	mockRepo "cafefinder/internal/mocks/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type memoryPreferenceRepo struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryPreferenceRepo() *memoryPreferenceRepo {
	return &memoryPreferenceRepo{data: make(map[string][]byte)}
}

func (r *memoryPreferenceRepo) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	value, ok := r.data[key]
	if !ok {
		return nil, repository.ErrPreferenceNotFound
	}

	return value, nil
}

func (r *memoryPreferenceRepo) Put(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = value

	return nil
}

func newTestPreferenceService(repo repository.PreferenceRepository) *preferenceService {
	cfg := config.Defaults()
	cfg.Preferences.Namespace = "prefs"

	return NewPreferenceService(PreferenceServiceParams{
		Repo:   repo,
		Config: cfg,
		Logger: discardLogger(),
	}).(*preferenceService)
}

func TestPreferenceService_SaveRadiusKeepsLastLocation(t *testing.T) {
	svc := newTestPreferenceService(newMemoryPreferenceRepo())
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, "", entity.LocationPreference(entity.Point{Lat: 22.97, Lng: 78.66})))
	require.NoError(t, svc.Save(ctx, "", entity.RadiusPreference(2000)))

	prefs := svc.Load(ctx, "")
	require.NotNil(t, prefs.Radius)
	assert.Equal(t, 2000, *prefs.Radius)
	require.NotNil(t, prefs.LastLat)
	require.NotNil(t, prefs.LastLng)
	assert.InDelta(t, 22.97, *prefs.LastLat, 1e-9)
	assert.InDelta(t, 78.66, *prefs.LastLng, 1e-9)
}

func TestPreferenceService_LastWriteWins(t *testing.T) {
	svc := newTestPreferenceService(newMemoryPreferenceRepo())
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, "", entity.RadiusPreference(500)))
	require.NoError(t, svc.Save(ctx, "", entity.RadiusPreference(5000)))

	assert.Equal(t, 5000, *svc.Load(ctx, "").Radius)
}

func TestPreferenceService_ScopesAreIsolated(t *testing.T) {
	repo := newMemoryPreferenceRepo()
	svc := newTestPreferenceService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, "alice", entity.RadiusPreference(500)))

	assert.Nil(t, svc.Load(ctx, "").Radius)
	assert.Nil(t, svc.Load(ctx, "bob").Radius)
	assert.Equal(t, 500, *svc.Load(ctx, "alice").Radius)
	assert.Contains(t, repo.data, "prefs/alice")
}

func TestPreferenceService_KeySanitizesScope(t *testing.T) {
	svc := newTestPreferenceService(newMemoryPreferenceRepo())

	assert.Equal(t, "prefs", svc.key(""))
	assert.Equal(t, "prefs", svc.key("../.."))
	assert.Equal(t, "prefs/abc-1_2", svc.key("a/b.c-1_2"))
}

func TestPreferenceService_LoadToleratesCorruptAndMissing(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		data []byte
		err  error
	}{
		{name: "missing", err: repository.ErrPreferenceNotFound},
		{name: "storage error", err: errors.New("bucket unavailable")},
		{name: "not json", data: []byte("radius=2000")},
		{name: "wrong types", data: []byte(`{"radius":"far"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mockRepo.NewMockPreferenceRepository(t)
			repo.On("Get", ctx, "prefs").Return(tt.data, tt.err)

			svc := newTestPreferenceService(repo)
			assert.Equal(t, entity.Preferences{}, svc.Load(ctx, ""))
		})
	}
}

func TestPreferenceService_SaveOverwritesCorruptBlob(t *testing.T) {
	ctx := context.Background()
	repo := mockRepo.NewMockPreferenceRepository(t)
	repo.On("Get", ctx, "prefs").Return([]byte("{not json"), nil)
	repo.On("Put", ctx, "prefs", []byte(`{"radius":1000}`)).Return(nil)

	svc := newTestPreferenceService(repo)
	require.NoError(t, svc.Save(ctx, "", entity.RadiusPreference(1000)))
}

func TestPreferenceService_SaveReturnsWriteError(t *testing.T) {
	ctx := context.Background()
	repo := mockRepo.NewMockPreferenceRepository(t)
	repo.On("Get", ctx, "prefs").Return(nil, repository.ErrPreferenceNotFound)
	repo.On("Put", ctx, "prefs", mock.Anything).Return(errors.New("disk full"))

	svc := newTestPreferenceService(repo)
	err := svc.Save(ctx, "", entity.RadiusPreference(1000))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestPreferenceService_SaveSkipsWriteWhenReadFails(t *testing.T) {
	ctx := context.Background()
	repo := mockRepo.NewMockPreferenceRepository(t)
	repo.On("Get", ctx, "prefs").Return(nil, errors.New("bucket temporarily unavailable"))

	svc := newTestPreferenceService(repo)
	err := svc.Save(ctx, "", entity.RadiusPreference(2000))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket temporarily unavailable")
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
}

func TestPreferenceService_SaveAfterReadRecoveryKeepsLocation(t *testing.T) {
	repo := &flakyPreferenceRepo{memoryPreferenceRepo: newMemoryPreferenceRepo()}
	svc := newTestPreferenceService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, "", entity.LocationPreference(entity.Point{Lat: 22.97, Lng: 78.66})))

	repo.failNextGet = true
	require.Error(t, svc.Save(ctx, "", entity.RadiusPreference(2000)))
	require.NoError(t, svc.Save(ctx, "", entity.RadiusPreference(2000)))

	prefs := svc.Load(ctx, "")
	require.NotNil(t, prefs.LastLat)
	assert.InDelta(t, 22.97, *prefs.LastLat, 1e-9)
	assert.Equal(t, 2000, *prefs.Radius)
}

// flakyPreferenceRepo fails a single read on demand.
type flakyPreferenceRepo struct {
	*memoryPreferenceRepo
	failNextGet bool
}

func (r *flakyPreferenceRepo) Get(ctx context.Context, key string) ([]byte, error) {
	if r.failNextGet {
		r.failNextGet = false

		return nil, errors.New("bucket temporarily unavailable")
	}

	return r.memoryPreferenceRepo.Get(ctx, key)
}
