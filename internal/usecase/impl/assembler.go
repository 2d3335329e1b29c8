package impl

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"cafefinder/internal/domain/entity"
	"cafefinder/internal/geo"
)

// Address tags joined, in order, into Cafe.Address.
var addressTags = []string{
	"addr:housename",
	"addr:housenumber",
	"addr:street",
	"addr:suburb",
	"addr:city",
}

// Normalize maps source-specific records into canonical cafes. Records
// without usable coordinates are dropped, as are later records repeating an
// ID already seen in the batch.
func Normalize(batch entity.RawBatch) []entity.Cafe {
	var cafes []entity.Cafe

	switch batch.Kind {
	case entity.SourcePrimary:
		cafes = make([]entity.Cafe, 0, len(batch.Elements))
		for _, element := range batch.Elements {
			if cafe, ok := fromElement(element); ok {
				cafes = append(cafes, cafe)
			}
		}
	case entity.SourceFallback:
		cafes = make([]entity.Cafe, 0, len(batch.Records))
		for idx, record := range batch.Records {
			if cafe, ok := fromRecord(idx, record); ok {
				cafes = append(cafes, cafe)
			}
		}
	default:
		return []entity.Cafe{}
	}

	return dedupeByID(cafes)
}

// AttachDistancesAndSort sets DistanceMeters on every cafe relative to origin
// and stable-sorts the slice in place, nearest first.
func AttachDistancesAndSort(cafes []entity.Cafe, origin entity.Point) {
	for idx := range cafes {
		distance := geo.Distance(origin.Lat, origin.Lng, cafes[idx].Lat, cafes[idx].Lng)
		cafes[idx].DistanceMeters = &distance
	}

	slices.SortStableFunc(cafes, compareDistance)
}

// compareDistance orders by distance with unknown distances last.
func compareDistance(a, b entity.Cafe) int {
	switch {
	case a.DistanceMeters == nil && b.DistanceMeters == nil:
		return 0
	case a.DistanceMeters == nil:
		return 1
	case b.DistanceMeters == nil:
		return -1
	default:
		return cmp.Compare(*a.DistanceMeters, *b.DistanceMeters)
	}
}

func fromElement(element entity.OSMElement) (entity.Cafe, bool) {
	if !element.HasCoords {
		return entity.Cafe{}, false
	}

	point := entity.Point{Lat: element.Lat, Lng: element.Lon}
	if !point.Valid() {
		return entity.Cafe{}, false
	}

	elementType := element.Type
	if elementType == "" {
		elementType = "node"
	}

	tags := element.Tags

	return entity.Cafe{
		ID:      fmt.Sprintf("%s/%d", elementType, element.ID),
		Name:    displayName(tags["name"]),
		Area:    firstTag(tags, "addr:suburb", "addr:city"),
		Address: composeAddress(tags),
		Contact: firstTag(tags, "phone", "contact:phone"),
		Lat:     point.Lat,
		Lng:     point.Lng,
	}, true
}

func fromRecord(idx int, record entity.DatasetRecord) (entity.Cafe, bool) {
	if record.Lat == nil || record.Lng == nil {
		return entity.Cafe{}, false
	}

	point := entity.Point{Lat: *record.Lat, Lng: *record.Lng}
	if !point.Valid() {
		return entity.Cafe{}, false
	}

	id := strings.TrimSpace(record.ID)
	if id == "" {
		id = fmt.Sprintf("fallback-%d", idx)
	}

	return entity.Cafe{
		ID:      id,
		Name:    displayName(record.Name),
		Area:    strings.TrimSpace(record.Area),
		Address: strings.TrimSpace(record.Location),
		Contact: strings.TrimSpace(record.Contact),
		Lat:     point.Lat,
		Lng:     point.Lng,
		Rating:  validRating(record.Rating),
	}, true
}

func composeAddress(tags map[string]string) string {
	parts := make([]string, 0, len(addressTags))
	for _, key := range addressTags {
		if value := strings.TrimSpace(tags[key]); value != "" {
			parts = append(parts, value)
		}
	}

	return strings.Join(parts, ", ")
}

func firstTag(tags map[string]string, keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(tags[key]); value != "" {
			return value
		}
	}

	return ""
}

func displayName(name string) string {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return trimmed
	}

	return entity.UnnamedCafe
}

// validRating drops ratings outside 0 to 5 rather than clamping them.
func validRating(rating *float64) *float64 {
	if rating == nil || *rating < 0 || *rating > 5 {
		return nil
	}

	value := *rating

	return &value
}

func dedupeByID(cafes []entity.Cafe) []entity.Cafe {
	seen := make(map[string]struct{}, len(cafes))

	return slices.DeleteFunc(cafes, func(cafe entity.Cafe) bool {
		if _, dup := seen[cafe.ID]; dup {
			return true
		}
		seen[cafe.ID] = struct{}{}

		return false
	})
}
