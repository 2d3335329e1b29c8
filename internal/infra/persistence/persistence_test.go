package persistence

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"cafefinder/config"
	"cafefinder/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func TestNewPreferenceRepository_Blob(t *testing.T) {
	cfg := config.Defaults()
	cfg.Preferences.BucketURL = "mem://"

	lc := fxtest.NewLifecycle(t)
	repo, err := NewPreferenceRepository(Params{
		Lifecycle: lc,
		Config:    cfg,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	lc.RequireStart()
	defer lc.RequireStop()

	_, err = repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrPreferenceNotFound)

	require.NoError(t, repo.Put(context.Background(), "k", []byte(`{"radius":500}`)))
	data, err := repo.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"radius":500}`, string(data))
}

func TestNewPreferenceRepository_UnknownDriver(t *testing.T) {
	cfg := config.Defaults()
	cfg.Preferences.Driver = "redis"

	_, err := NewPreferenceRepository(Params{
		Lifecycle: fxtest.NewLifecycle(t),
		Config:    cfg,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	assert.ErrorContains(t, err, "unknown preferences driver")
}

func TestNewPreferenceRepository_PostgresWithoutConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Preferences.Driver = config.PreferenceDriverPostgres
	cfg.Postgres = nil

	_, err := NewPreferenceRepository(Params{
		Lifecycle: fxtest.NewLifecycle(t),
		Config:    cfg,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	assert.ErrorContains(t, err, "postgres config is missing")
}
