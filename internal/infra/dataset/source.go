// Package dataset implements the fallback cafe source: a static JSON dataset
// bundled into the binary or read from an object storage bucket.
package dataset

import (
	"context"
	_ "embed"
	"encoding/json"
	"log/slog"

	"cafefinder/config"
	"cafefinder/internal/domain/entity"
	"cafefinder/internal/domain/repository"
	"cafefinder/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
	"golang.org/x/sync/singleflight"
)

//go:embed cafes.json
var bundled []byte

// Params holds dependencies for the dataset source, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

type staticSource struct {
	bucket *blob.Bucket // nil means the bundled dataset
	key    string
	group  singleflight.Group
	logger *slog.Logger
}

// New opens the configured bucket, or serves the bundled dataset when no
// bucket URL is configured.
func New(params Params) (repository.FallbackSource, error) {
	cfg := params.Config.Fallback
	if cfg.BucketURL == "" {
		params.Logger.Info("Fallback dataset served from the bundled copy")

		return &staticSource{key: cfg.Key, logger: params.Logger}, nil
	}

	bucket, err := blob.OpenBucket(context.Background(), cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open fallback bucket %s", cfg.BucketURL)
	}

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return bucket.Close()
		},
	})

	return NewFromBucket(bucket, cfg.Key, params.Logger), nil
}

// NewFromBucket reads the dataset from key in bucket on every load. The
// caller keeps ownership of the bucket.
func NewFromBucket(bucket *blob.Bucket, key string, logger *slog.Logger) repository.FallbackSource {
	return &staticSource{bucket: bucket, key: key, logger: logger}
}

// NewBundled serves the dataset compiled into the binary.
func NewBundled(logger *slog.Logger) repository.FallbackSource {
	return &staticSource{key: "cafes.json", logger: logger}
}

// LoadAll implements repository.FallbackSource. Concurrent loads share one
// read. Nothing is cached between loads so a replaced object is picked up.
func (s *staticSource) LoadAll(ctx context.Context) ([]entity.DatasetRecord, error) {
	ch := s.group.DoChan(s.key, func() (any, error) {
		return s.load(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "load fallback dataset")
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}

		records := res.Val.([]entity.DatasetRecord)

		// Shared callers must not see each other's mutations.
		return append([]entity.DatasetRecord(nil), records...), nil
	}
}

func (s *staticSource) load(ctx context.Context) ([]entity.DatasetRecord, error) {
	data := bundled
	if s.bucket != nil {
		var err error
		data, err = s.bucket.ReadAll(ctx, s.key)
		if err != nil {
			return nil, errors.Wrapf(err, "read fallback dataset %s", s.key)
		}
	}

	var records []entity.DatasetRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrapf(err, "decode fallback dataset %s", s.key)
	}

	s.logger.Debug("Fallback dataset loaded", slog.String("key", s.key), slog.Int("records", len(records)))

	return records, nil
}
