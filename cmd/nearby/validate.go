package main

import (
	"context"
	"fmt"

	"cafefinder/internal/domain/entity"
	"cafefinder/internal/usecase/impl"

	"github.com/pkg/errors"
)

type validateFlags struct {
	bucket string
	key    string
}

// runValidate loads the fallback dataset and reports records that would be
// dropped during normalization.
func runValidate(ctx context.Context, flags validateFlags) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	bucketURL, key := cfg.Fallback.BucketURL, cfg.Fallback.Key
	if flags.bucket != "" {
		bucketURL = flags.bucket
	}
	if flags.key != "" {
		key = flags.key
	}

	fallback, closeFallback, err := openFallback(ctx, bucketURL, key, logger)
	if err != nil {
		return err
	}
	defer closeFallback()

	records, err := fallback.LoadAll(ctx)
	if err != nil {
		return errors.Wrap(err, "load dataset")
	}

	cafes := impl.Normalize(entity.RawBatch{Kind: entity.SourceFallback, Records: records})

	fmt.Printf("Records: %d\n", len(records))
	fmt.Printf("Usable cafes: %d\n", len(cafes))
	if dropped := len(records) - len(cafes); dropped > 0 {
		return errors.Errorf("%d records lack coordinates or repeat an id", dropped)
	}

	fmt.Println("Dataset OK")

	return nil
}
