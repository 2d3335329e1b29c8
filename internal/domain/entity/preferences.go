package entity

// Preferences is the persisted blob restored when a session starts.
// Every field is optional; a zero value means nothing has been saved.
type Preferences struct {
	Radius  *int     `json:"radius,omitempty"`
	LastLat *float64 `json:"lastLat,omitempty"`
	LastLng *float64 `json:"lastLng,omitempty"`
}

// Merge returns a copy of p with every field set in partial taking precedence.
func (p Preferences) Merge(partial Preferences) Preferences {
	merged := p
	if partial.Radius != nil {
		merged.Radius = partial.Radius
	}
	if partial.LastLat != nil {
		merged.LastLat = partial.LastLat
	}
	if partial.LastLng != nil {
		merged.LastLng = partial.LastLng
	}

	return merged
}

// LastLocation returns the remembered origin, if both coordinates were saved.
func (p Preferences) LastLocation() (Point, bool) {
	if p.LastLat == nil || p.LastLng == nil {
		return Point{}, false
	}

	return Point{Lat: *p.LastLat, Lng: *p.LastLng}, true
}

// RadiusPreference builds a partial update carrying only the radius.
func RadiusPreference(radius int) Preferences {
	return Preferences{Radius: &radius}
}

// LocationPreference builds a partial update carrying only the last location.
func LocationPreference(p Point) Preferences {
	lat, lng := p.Lat, p.Lng

	return Preferences{LastLat: &lat, LastLng: &lng}
}
