// pkg/core/airspace.go
package core

// SectorVolume is a boundary ring extruded over an altitude band.
// The ring is closed: Boundary[0] == Boundary[len-1].
type SectorVolume struct {
	MinAltFt float64
	MaxAltFt float64
	Boundary []LonLat
}

// Sector is a named group of volumes.
type Sector struct {
	Name    string
	Volumes []SectorVolume
}

// NamedPoint is a labelled reference point of an airspace.
type NamedPoint struct {
	Name string
	Lon  float64
	Lat  float64
}

// Airspace is one control centre's airspace.
type Airspace struct {
	Name     string
	CentreID string
	Points   []NamedPoint
	Sectors  []Sector
}

// Solid is the closed 3-D geometry of a sector volume.
// Lower and Upper hold the n ring vertices (not repeated at the end);
// Sides holds one closed 5-vertex quad per boundary edge.
type Solid struct {
	Lower []Position3D
	Upper []Position3D
	Sides [][]Position3D
}

// Polygons returns every face of the solid as a closed ring:
// lower cap, upper cap, then the side walls.
func (s Solid) Polygons() [][]Position3D {
	out := make([][]Position3D, 0, 2+len(s.Sides))
	out = append(out, closeRing(s.Lower), closeRing(s.Upper))
	out = append(out, s.Sides...)
	return out
}

func closeRing(pts []Position3D) []Position3D {
	ring := make([]Position3D, 0, len(pts)+1)
	ring = append(ring, pts...)
	if len(pts) > 0 {
		ring = append(ring, pts[0])
	}
	return ring
}
