package entity

// OSMElement is a tagged element returned by the geodata query. Nodes carry
// coordinates directly; for ways HasCoords reflects whether a centroid could
// be computed from the member nodes.
type OSMElement struct {
	ID        int64
	Type      string // "node" or "way"
	Lat       float64
	Lon       float64
	HasCoords bool
	Tags      map[string]string
}

// DatasetRecord is a flat record of the static fallback dataset.
type DatasetRecord struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Area     string   `json:"area,omitempty"`
	Location string   `json:"location,omitempty"`
	Contact  string   `json:"contact,omitempty"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	Rating   *float64 `json:"rating,omitempty"`
}

// RawBatch groups source records of one kind before normalization.
type RawBatch struct {
	Kind     SourceKind
	Elements []OSMElement
	Records  []DatasetRecord
}
