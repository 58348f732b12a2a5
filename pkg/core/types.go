// pkg/core/types.go
package core

// Position3D is a geographic position with altitude.
type Position3D struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
	Alt float64 `json:"alt"` // metres, absolute
}

// LonLat is a 2-D boundary vertex.
type LonLat struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// At lifts the vertex to the given altitude in metres.
func (p LonLat) At(alt float64) Position3D {
	return Position3D{Lon: p.Lon, Lat: p.Lat, Alt: alt}
}

// Attributes holds the fields of a record that have no named counterpart,
// plus named fields that were present but null.
// Values are whatever the decoded document carried: string, int64, float64,
// bool, nil, time.Time (for strings the normalizer recognised), or nested
// []any / map[string]any.
type Attributes map[string]any
