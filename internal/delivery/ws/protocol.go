package ws

import (
	"cafefinder/internal/delivery/dto"
	"cafefinder/internal/domain/entity"
)

// Client to server event types.
const (
	EventStart         = "start"
	EventLocate        = "locate"
	EventLocation      = "location"
	EventLocationError = "location_error"
	EventPick          = "pick"
	EventRadius        = "radius"
	EventQuery         = "query"
	EventSelectList    = "select_list"
	EventSelectMarker  = "select_marker"
	EventReset         = "reset"
)

// Server to client command types.
const (
	CommandStatus    = "status"
	CommandOrigin    = "origin"
	CommandRadius    = "radius"
	CommandMarkers   = "markers"
	CommandList      = "list"
	CommandHighlight = "highlight"
	CommandPopup     = "popup"
	CommandFocus     = "focus"
	CommandGeolocate = "geolocate"
)

// Event is a client message. Fields are populated according to Type.
type Event struct {
	Type      string   `json:"type"`
	RequestID string   `json:"requestId,omitempty"`
	Lat       *float64 `json:"lat,omitempty"`
	Lng       *float64 `json:"lng,omitempty"`
	Message   string   `json:"message,omitempty"`
	Radius    int      `json:"radius,omitempty"`
	Query     string   `json:"query,omitempty"`
	ID        string   `json:"id,omitempty"`
}

// Point returns the coordinates carried by location and pick events.
func (e Event) Point() (entity.Point, bool) {
	if e.Lat == nil || e.Lng == nil {
		return entity.Point{}, false
	}

	p := entity.Point{Lat: *e.Lat, Lng: *e.Lng}

	return p, p.Valid()
}

type statusCommand struct {
	Type    string             `json:"type"`
	Message string             `json:"message"`
	State   entity.SearchState `json:"state"`
}

type originCommand struct {
	Type string  `json:"type"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type radiusCommand struct {
	Type   string `json:"type"`
	Radius int    `json:"radius"`
}

type cafesCommand struct {
	Type  string     `json:"type"`
	Cafes []dto.Cafe `json:"cafes"`
}

type highlightCommand struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	On   bool   `json:"on"`
}

type popupCommand struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type focusCommand struct {
	Type    string  `json:"type"`
	ID      string  `json:"id"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	MinZoom int     `json:"minZoom"`
}

type geolocateCommand struct {
	Type         string `json:"type"`
	RequestID    string `json:"requestId"`
	HighAccuracy bool   `json:"highAccuracy"`
	TimeoutMs    int64  `json:"timeoutMs"`
	MaximumAge   int64  `json:"maximumAge"`
}
