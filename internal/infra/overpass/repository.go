// Package overpass implements the primary cafe source on top of the
// OpenStreetMap Overpass API.
package overpass

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"time"

	"cafefinder/config"
	"cafefinder/internal/domain/entity"
	"cafefinder/internal/domain/repository"
	"cafefinder/internal/errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/serjvanilla/go-overpass"
	"go.uber.org/fx"
)

const cafeQuery = `[out:json][timeout:%d];
(
	node["amenity"="cafe"](around:%d,%s,%s);
	way["amenity"="cafe"](around:%d,%s,%s);
);
out body;
>;
out skel qt;`

// Params holds dependencies for the Overpass repository, injected by Fx.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

type overpassRepository struct {
	client        *overpass.Client
	timeout       time.Duration
	serverTimeout time.Duration
	logger        *slog.Logger
}

// NewRepository creates the Overpass-backed primary source.
func NewRepository(params Params) repository.PrimarySource {
	cfg := params.Config.Overpass

	httpClient := &http.Client{
		Timeout: cfg.Timeout,
	}
	client := overpass.NewWithSettings(cfg.Endpoint, cfg.MaxParallel, httpClient)

	return &overpassRepository{
		client:        &client,
		timeout:       cfg.Timeout,
		serverTimeout: cfg.ServerTimeout,
		logger:        params.Logger,
	}
}

// FindCafes implements repository.PrimarySource.
func (r *overpassRepository) FindCafes(ctx context.Context, origin entity.Point, radiusMeters int) ([]entity.OSMElement, error) {
	query := buildCafeQuery(origin, radiusMeters, r.serverTimeout)

	start := time.Now()
	result, err := r.executeQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	elements := convertToElements(result)
	r.logger.Debug("Overpass query finished",
		slog.Int("nodes", len(result.Nodes)),
		slog.Int("ways", len(result.Ways)),
		slog.Int("cafes", len(elements)),
		slog.Duration("elapsed", time.Since(start)),
	)

	return elements, nil
}

// executeQuery runs the blocking client call off the caller's goroutine so
// that cancellation returns immediately; the HTTP client timeout bounds the
// abandoned request.
func (r *overpassRepository) executeQuery(ctx context.Context, query string) (*overpass.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	type queryResult struct {
		result overpass.Result
		err    error
	}

	done := make(chan queryResult, 1)
	go func() {
		result, err := r.client.Query(query)
		done <- queryResult{result: result, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "overpass query aborted")
	case res := <-done:
		if res.err != nil {
			return nil, errors.Wrap(res.err, "overpass query failed")
		}

		return &res.result, nil
	}
}

func buildCafeQuery(origin entity.Point, radiusMeters int, serverTimeout time.Duration) string {
	seconds := int(serverTimeout.Seconds())
	if seconds <= 0 {
		seconds = 25
	}

	lat := strconv.FormatFloat(origin.Lat, 'f', -1, 64)
	lng := strconv.FormatFloat(origin.Lng, 'f', -1, 64)

	return fmt.Sprintf(cafeQuery, seconds, radiusMeters, lat, lng, radiusMeters, lat, lng)
}

// convertToElements keeps only cafe-tagged nodes and ways. Untagged nodes in
// the result are way members pulled in by the recurse step; they only serve
// to locate their way.
func convertToElements(result *overpass.Result) []entity.OSMElement {
	elements := make([]entity.OSMElement, 0, len(result.Nodes)+len(result.Ways))

	for _, node := range result.Nodes {
		if !isCafe(node.Tags) {
			continue
		}

		elements = append(elements, entity.OSMElement{
			ID:        node.ID,
			Type:      string(overpass.ElementTypeNode),
			Lat:       node.Lat,
			Lon:       node.Lon,
			HasCoords: true,
			Tags:      node.Tags,
		})
	}

	for _, way := range result.Ways {
		if !isCafe(way.Tags) {
			continue
		}

		element := entity.OSMElement{
			ID:   way.ID,
			Type: string(overpass.ElementTypeWay),
			Tags: way.Tags,
		}

		if centroid, ok := wayCentroid(way); ok {
			element.Lat = centroid.Lat()
			element.Lon = centroid.Lon()
			element.HasCoords = true
		}

		elements = append(elements, element)
	}

	// Result maps have no order; keep output deterministic.
	slices.SortFunc(elements, func(a, b entity.OSMElement) int {
		if c := cmp.Compare(a.Type, b.Type); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})

	return elements
}

// wayCentroid averages the member nodes whose coordinates were returned.
// Members the response did not include stay at the zero value and are skipped.
func wayCentroid(way *overpass.Way) (orb.Point, bool) {
	points := make(orb.MultiPoint, 0, len(way.Nodes))
	for _, node := range way.Nodes {
		if node == nil || (node.Lat == 0 && node.Lon == 0) {
			continue
		}
		points = append(points, orb.Point{node.Lon, node.Lat})
	}

	if len(points) == 0 {
		return orb.Point{}, false
	}

	centroid, _ := planar.CentroidArea(points)

	return centroid, true
}

func isCafe(tags map[string]string) bool {
	return tags["amenity"] == "cafe"
}
