package entity

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferences_MergeKeepsUntouchedFields(t *testing.T) {
	t.Parallel()

	stored := LocationPreference(Point{Lat: 22.97, Lng: 78.66})
	merged := stored.Merge(RadiusPreference(2000))

	require.NotNil(t, merged.Radius)
	assert.Equal(t, 2000, *merged.Radius)

	loc, ok := merged.LastLocation()
	require.True(t, ok)
	assert.Equal(t, Point{Lat: 22.97, Lng: 78.66}, loc)
}

func TestPreferences_LastLocationRequiresBoth(t *testing.T) {
	t.Parallel()

	lat := 1.0
	_, ok := Preferences{LastLat: &lat}.LastLocation()
	assert.False(t, ok)
}

func TestPoint_OrbRoundTrip(t *testing.T) {
	t.Parallel()

	p := Point{Lat: 25.033, Lng: 121.5654}
	assert.Equal(t, orb.Point{121.5654, 25.033}, p.Orb())
	assert.Equal(t, p, NewPointFromOrb(p.Orb()))
}

func TestPoint_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		point Point
		want  bool
	}{
		{name: "central india", point: Point{Lat: 22.97, Lng: 78.66}, want: true},
		{name: "null island", point: Point{}, want: true},
		{name: "north of pole", point: Point{Lat: 91}, want: false},
		{name: "west of antimeridian", point: Point{Lng: -181}, want: false},
		{name: "nan", point: Point{Lat: math.NaN()}, want: false},
		{name: "inf", point: Point{Lng: math.Inf(1)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.point.Valid())
		})
	}
}
