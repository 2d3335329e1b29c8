package entity

import (
	"math"

	"github.com/paulmach/orb"
)

// Point is a WGS84 coordinate. It is used for search origins, either the
// device position or a point picked on the map.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NewPointFromOrb converts an orb point, which stores longitude first.
func NewPointFromOrb(p orb.Point) Point {
	return Point{Lat: p.Lat(), Lng: p.Lon()}
}

// Orb returns the point in orb's [lon, lat] order.
func (p Point) Orb() orb.Point {
	return orb.Point{p.Lng, p.Lat}
}

// Valid reports whether the point is finite and within Earth bounds.
func (p Point) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) ||
		math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return false
	}

	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}
