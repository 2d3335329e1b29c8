// Package dto holds the wire shapes shared by the HTTP API and the live session.
package dto

import (
	"cafefinder/internal/domain/entity"
	"cafefinder/internal/geo"
)

// Cafe is a cafe as sent to the browser.
type Cafe struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Area           string   `json:"area,omitempty"`
	Address        string   `json:"address"`
	Contact        string   `json:"contact,omitempty"`
	Lat            float64  `json:"lat"`
	Lng            float64  `json:"lng"`
	Rating         *float64 `json:"rating,omitempty"`
	DistanceMeters *float64 `json:"distanceMeters,omitempty"`
	DistanceKm     *float64 `json:"distanceKm,omitempty"`
}

// NewCafe converts an entity, adding the rounded kilometre distance.
func NewCafe(cafe entity.Cafe) Cafe {
	out := Cafe{
		ID:             cafe.ID,
		Name:           cafe.Name,
		Area:           cafe.Area,
		Address:        cafe.Address,
		Contact:        cafe.Contact,
		Lat:            cafe.Lat,
		Lng:            cafe.Lng,
		Rating:         cafe.Rating,
		DistanceMeters: cafe.DistanceMeters,
	}
	if cafe.DistanceMeters != nil {
		km := geo.ToKilometers(*cafe.DistanceMeters)
		out.DistanceKm = &km
	}

	return out
}

// NewCafes converts a result set, keeping its order. Never returns nil so
// an empty set encodes as [].
func NewCafes(cafes []entity.Cafe) []Cafe {
	out := make([]Cafe, 0, len(cafes))
	for _, cafe := range cafes {
		out = append(out, NewCafe(cafe))
	}

	return out
}
