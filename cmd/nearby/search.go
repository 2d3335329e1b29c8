package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"

	"cafefinder/config"
	"cafefinder/internal/domain/entity"
	"cafefinder/internal/domain/repository"
	"cafefinder/internal/geo"
	"cafefinder/internal/infra/dataset"
	logs "cafefinder/internal/infra/log"
	"cafefinder/internal/infra/overpass"
	"cafefinder/internal/usecase"
	"cafefinder/internal/usecase/impl"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
)

type searchFlags struct {
	cmd     *flag.FlagSet
	lat     float64
	lng     float64
	radius  int
	query   string
	offline bool
}

// offlineSource stands in for the live query when -offline is set, sending
// every search to the fallback dataset.
type offlineSource struct{}

func (offlineSource) FindCafes(context.Context, entity.Point, int) ([]entity.OSMElement, error) {
	return nil, errors.New("live query disabled by -offline")
}

func runSearch(ctx context.Context, flags searchFlags) error {
	if !isFlagSet(flags.cmd, "lat") || !isFlagSet(flags.cmd, "lng") {
		return errors.New("-lat and -lng are required")
	}

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	radius := flags.radius
	if radius == 0 {
		radius = cfg.Search.DefaultRadius
	}

	var primary repository.PrimarySource = offlineSource{}
	if !flags.offline {
		primary = overpass.NewRepository(overpass.Params{Config: cfg, Logger: logger})
	}

	fallback, closeFallback, err := openFallback(ctx, cfg.Fallback.BucketURL, cfg.Fallback.Key, logger)
	if err != nil {
		return err
	}
	defer closeFallback()

	cafeUC := impl.NewCafeService(impl.CafeServiceParams{
		Primary:  primary,
		Fallback: fallback,
		Config:   cfg,
		Logger:   logger,
	})

	result, err := cafeUC.FindNearby(ctx, entity.Point{Lat: flags.lat, Lng: flags.lng}, radius)
	if err != nil {
		return errors.Wrap(err, "search failed")
	}

	return printResult(os.Stdout, result, cafeUC.Filter(result.Cafes, flags.query))
}

func printResult(w io.Writer, result *usecase.NearbyResult, cafes []entity.Cafe) error {
	fmt.Fprintf(w, "%s (source: %s)\n\n", result.Message, result.Source)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tKM\tNAME\tAREA\tRATING\tADDRESS")
	for i, cafe := range cafes {
		km := "-"
		if cafe.DistanceMeters != nil {
			km = strconv.FormatFloat(geo.ToKilometers(*cafe.DistanceMeters), 'f', 2, 64)
		}
		rating := "-"
		if cafe.Rating != nil {
			rating = strconv.FormatFloat(*cafe.Rating, 'f', 1, 64)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", i+1, km, cafe.Name, cafe.Area, rating, cafe.Address)
	}

	return errors.WithStack(tw.Flush())
}

// loadConfig reads config.yaml when present and falls back to defaults so
// the tool also works outside the repository. Logs go to stderr.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Using default config: %v\n", err)
		cfg = config.Defaults()
		cfg.Env.Log.Level = "warn"
	}

	logger, err := logs.New(logs.Params{Config: cfg, Output: os.Stderr})
	if err != nil {
		return nil, nil, err
	}

	return cfg, logger, nil
}

func openFallback(ctx context.Context, bucketURL, key string, logger *slog.Logger) (repository.FallbackSource, func(), error) {
	if bucketURL == "" {
		return dataset.NewBundled(logger), func() {}, nil
	}

	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open fallback bucket %s", bucketURL)
	}

	return dataset.NewFromBucket(bucket, key, logger), func() { _ = bucket.Close() }, nil
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})

	return found
}
