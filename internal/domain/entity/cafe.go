// Package entity contains the core business objects of the project.
package entity

// UnnamedCafe is the display name used when a source record carries none.
const UnnamedCafe = "Unnamed Cafe"

// Cafe is the canonical, post-normalization shape every source is mapped into.
type Cafe struct {
	ID             string   `json:"id"`                       // Unique within a result set.
	Name           string   `json:"name"`                     // Never empty; UnnamedCafe when absent.
	Area           string   `json:"area,omitempty"`           // Neighbourhood or locality label.
	Address        string   `json:"address"`                  // Composed address, may be "".
	Contact        string   `json:"contact,omitempty"`        // Phone or other contact string.
	Lat            float64  `json:"lat"`                      // Always present.
	Lng            float64  `json:"lng"`                      // Always present.
	Rating         *float64 `json:"rating,omitempty"`         // 0 to 5 when known.
	DistanceMeters *float64 `json:"distanceMeters,omitempty"` // Set relative to an origin.
}

// Point returns the cafe's coordinates.
func (c Cafe) Point() Point {
	return Point{Lat: c.Lat, Lng: c.Lng}
}
