// Package blobstore keeps preference blobs in a gocloud.dev bucket: a local
// directory, memory, GCS or S3 depending on the bucket URL.
package blobstore

import (
	"context"
	"log/slog"

	"cafefinder/config"
	domainerrors "cafefinder/internal/domain/errors"
	"cafefinder/internal/domain/repository"
	"cafefinder/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"
)

const contentType = "application/json"

// Params holds dependencies for the blob preference repository, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

type preferenceRepository struct {
	bucket *blob.Bucket
}

// New opens the preferences bucket and closes it when the app stops.
func New(params Params) (repository.PreferenceRepository, error) {
	url := params.Config.Preferences.BucketURL

	bucket, err := blob.OpenBucket(context.Background(), url)
	if err != nil {
		return nil, errors.Wrapf(err, "open preferences bucket %s", url)
	}

	params.Logger.Info("Preferences stored in bucket", slog.String("url", url))

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return bucket.Close()
		},
	})

	return NewPreferenceRepository(bucket), nil
}

// NewPreferenceRepository wraps an open bucket. The caller keeps ownership.
func NewPreferenceRepository(bucket *blob.Bucket) repository.PreferenceRepository {
	return &preferenceRepository{bucket: bucket}
}

// Get implements repository.PreferenceRepository.
func (r *preferenceRepository) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, repository.ErrPreferenceNotFound
		}

		return nil, domainerrors.NewStorageError(err, "read preferences")
	}

	return data, nil
}

// Put implements repository.PreferenceRepository.
func (r *preferenceRepository) Put(ctx context.Context, key string, value []byte) error {
	if err := r.bucket.WriteAll(ctx, key, value, &blob.WriterOptions{ContentType: contentType}); err != nil {
		return domainerrors.NewStorageError(err, "write preferences")
	}

	return nil
}
