package impl

import (
	"math/rand/v2"
	"testing"

	"cafefinder/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_PrimaryElements(t *testing.T) {
	t.Parallel()

	batch := entity.RawBatch{
		Kind: entity.SourcePrimary,
		Elements: []entity.OSMElement{
			{
				ID: 42, Type: "node", Lat: 22.971, Lon: 78.661, HasCoords: true,
				Tags: map[string]string{
					"name":             "Indian Coffee House",
					"addr:housenumber": "12",
					"addr:street":      "MG Road",
					"addr:city":        "Bhopal",
					"contact:phone":    "+91 755 000 0000",
				},
			},
			{ID: 7, Type: "way", Lat: 22.98, Lon: 78.67, HasCoords: true, Tags: map[string]string{"addr:suburb": "Arera Colony", "phone": "12345"}},
			{ID: 8, Type: "way", HasCoords: false, Tags: map[string]string{"name": "No Geometry"}},
			{ID: 9, Type: "node", Lat: 95, Lon: 10, HasCoords: true},
		},
	}

	cafes := Normalize(batch)
	require.Len(t, cafes, 2)

	assert.Equal(t, entity.Cafe{
		ID:      "node/42",
		Name:    "Indian Coffee House",
		Area:    "Bhopal",
		Address: "12, MG Road, Bhopal",
		Contact: "+91 755 000 0000",
		Lat:     22.971,
		Lng:     78.661,
	}, cafes[0])

	assert.Equal(t, "way/7", cafes[1].ID)
	assert.Equal(t, entity.UnnamedCafe, cafes[1].Name)
	assert.Equal(t, "Arera Colony", cafes[1].Area)
	assert.Equal(t, "Arera Colony", cafes[1].Address)
	assert.Equal(t, "12345", cafes[1].Contact)
	assert.Nil(t, cafes[1].DistanceMeters)
}

func TestNormalize_AddressSkipsBlankParts(t *testing.T) {
	t.Parallel()

	tags := map[string]string{
		"addr:housename": "  ",
		"addr:street":    "Hamidia Road",
		"addr:city":      "Bhopal",
	}
	assert.Equal(t, "Hamidia Road, Bhopal", composeAddress(tags))
	assert.Equal(t, "", composeAddress(nil))
}

func TestNormalize_FallbackRecords(t *testing.T) {
	t.Parallel()

	batch := entity.RawBatch{
		Kind: entity.SourceFallback,
		Records: []entity.DatasetRecord{
			{ID: "c1", Name: "Brew Lab", Area: "New Market", Location: "Shop 4, New Market", Contact: "0755", Lat: ptr(23.23), Lng: ptr(77.4), Rating: ptr(4.5)},
			{ID: "c2", Name: "Missing Lng", Lat: ptr(23.2)},
			{ID: "c3", Name: "", Lat: ptr(23.1), Lng: ptr(77.3), Rating: ptr(7.0)},
			{ID: "c1", Name: "Duplicate", Lat: ptr(23.0), Lng: ptr(77.0)},
			{ID: "", Name: "No ID", Lat: ptr(23.3), Lng: ptr(77.5)},
		},
	}

	cafes := Normalize(batch)
	require.Len(t, cafes, 3)

	assert.Equal(t, "c1", cafes[0].ID)
	assert.Equal(t, "Brew Lab", cafes[0].Name)
	assert.Equal(t, "Shop 4, New Market", cafes[0].Address)
	require.NotNil(t, cafes[0].Rating)
	assert.InDelta(t, 4.5, *cafes[0].Rating, 1e-9)

	assert.Equal(t, "c3", cafes[1].ID)
	assert.Equal(t, entity.UnnamedCafe, cafes[1].Name)
	assert.Nil(t, cafes[1].Rating, "out of range rating is dropped")
	assert.Equal(t, "", cafes[1].Address)

	assert.Equal(t, "fallback-4", cafes[2].ID)
}

func TestNormalize_UnknownKind(t *testing.T) {
	t.Parallel()

	cafes := Normalize(entity.RawBatch{Kind: "other", Records: []entity.DatasetRecord{{ID: "x", Lat: ptr(1.0), Lng: ptr(1.0)}}})
	assert.Empty(t, cafes)
}

func TestAttachDistancesAndSort_NonDecreasing(t *testing.T) {
	t.Parallel()

	origin := entity.Point{Lat: 22.97, Lng: 78.66}
	rng := rand.New(rand.NewPCG(1, 2))

	for round := range 20 {
		cafes := make([]entity.Cafe, 1+rng.IntN(50))
		for idx := range cafes {
			cafes[idx] = entity.Cafe{
				ID:  string(rune('a' + idx%26)),
				Lat: origin.Lat + rng.Float64()*0.2 - 0.1,
				Lng: origin.Lng + rng.Float64()*0.2 - 0.1,
			}
		}

		AttachDistancesAndSort(cafes, origin)

		for idx := range cafes {
			require.NotNil(t, cafes[idx].DistanceMeters, "round %d index %d", round, idx)
			if idx > 0 {
				assert.LessOrEqual(t, *cafes[idx-1].DistanceMeters, *cafes[idx].DistanceMeters)
			}
		}
	}
}

func TestAttachDistancesAndSort_StableForTies(t *testing.T) {
	t.Parallel()

	origin := entity.Point{Lat: 0, Lng: 0}
	cafes := []entity.Cafe{
		{ID: "far", Lat: 0, Lng: 0.02},
		{ID: "tie-1", Lat: 0, Lng: 0.01},
		{ID: "tie-2", Lat: 0, Lng: -0.01},
		{ID: "here", Lat: 0, Lng: 0},
	}

	AttachDistancesAndSort(cafes, origin)

	ids := make([]string, 0, len(cafes))
	for _, cafe := range cafes {
		ids = append(ids, cafe.ID)
	}
	assert.Equal(t, []string{"here", "tie-1", "tie-2", "far"}, ids)
	assert.Zero(t, *cafes[0].DistanceMeters)
}

func TestCompareDistance_NilLast(t *testing.T) {
	t.Parallel()

	known := entity.Cafe{DistanceMeters: ptr(10.0)}
	unknown := entity.Cafe{}

	assert.Equal(t, -1, compareDistance(known, unknown))
	assert.Equal(t, 1, compareDistance(unknown, known))
	assert.Equal(t, 0, compareDistance(unknown, unknown))
}
