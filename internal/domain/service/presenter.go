package service

import (
	"cafefinder/internal/domain/entity"
)

// Presenter is the presentation surface a session drives: the map widget and
// the list view. Handles for list entries and markers belong to the
// presentation layer and are referenced by cafe ID only.
type Presenter interface {
	// ShowStatus displays a status line along with the workflow state.
	ShowStatus(state entity.SearchState, message string)

	// PlaceOrigin places or moves the user's location marker.
	PlaceOrigin(origin entity.Point)

	// ShowRadius reflects the active radius selection.
	ShowRadius(radiusMeters int)

	// RenderMarkers replaces the marker set.
	RenderMarkers(cafes []entity.Cafe)

	// RenderList replaces the list entries, in order.
	RenderList(cafes []entity.Cafe)

	// Highlight toggles the highlight of a list entry.
	Highlight(id string, on bool)

	// OpenPopup opens the info popup of a marker.
	OpenPopup(id string)

	// Focus centers the map on a marker, zooming in to at least minZoom.
	Focus(id string, at entity.Point, minZoom int)
}
