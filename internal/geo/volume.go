package geo

import (
	"fmt"

	"github.com/lfvdata/atcviz/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// BuildSolid turns a sector volume into two horizontal caps and one wall per
// boundary edge. The boundary must repeat its first vertex at the end: the
// last vertex only serves as the wrap partner of the one before it, so a ring
// of n+1 points yields caps of n vertices and n walls. On an unclosed
// boundary the last vertex is left out of the caps, which Solid.Polygons then
// close on the first vertex; no wall joins the last vertex back to the first.
//
// No validation is done here. Degenerate input gives degenerate geometry;
// see ValidateVolume.
func BuildSolid(vol core.SectorVolume) core.Solid {
	minAlt := FeetToMetres(vol.MinAltFt)
	maxAlt := FeetToMetres(vol.MaxAltFt)

	n := len(vol.Boundary) - 1
	if n < 0 {
		n = 0
	}
	s := core.Solid{
		Lower: make([]core.Position3D, 0, n),
		Upper: make([]core.Position3D, 0, n),
		Sides: make([][]core.Position3D, 0, n),
	}
	for i := 0; i < n; i++ {
		p0, p1 := vol.Boundary[i], vol.Boundary[i+1]
		s.Lower = append(s.Lower, p0.At(minAlt))
		s.Upper = append(s.Upper, p0.At(maxAlt))
		s.Sides = append(s.Sides, []core.Position3D{
			p0.At(minAlt),
			p0.At(maxAlt),
			p1.At(maxAlt),
			p1.At(minAlt),
			p0.At(minAlt),
		})
	}
	return s
}

// InvalidVolumeError describes why a sector volume cannot form a proper solid.
type InvalidVolumeError struct {
	Reason string
	Err    error
}

func (e *InvalidVolumeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid sector volume: %s: %v", e.Reason, e.Err)
	}
	return "invalid sector volume: " + e.Reason
}

func (e *InvalidVolumeError) Unwrap() error {
	return e.Err
}

// ValidateVolume checks what BuildSolid takes for granted: at least three
// distinct vertices in a closed ring, a band with positive height, and a
// boundary that does not cross itself.
func ValidateVolume(vol core.SectorVolume) error {
	if len(vol.Boundary) < 4 {
		return &InvalidVolumeError{Reason: fmt.Sprintf("boundary has %d points, need at least 4", len(vol.Boundary))}
	}
	if vol.Boundary[0] != vol.Boundary[len(vol.Boundary)-1] {
		return &InvalidVolumeError{Reason: "boundary ring is not closed"}
	}
	if vol.MinAltFt >= vol.MaxAltFt {
		return &InvalidVolumeError{Reason: fmt.Sprintf("min altitude %g ft is not below max altitude %g ft", vol.MinAltFt, vol.MaxAltFt)}
	}
	if err := BoundaryPolygon(vol).Validate(); err != nil {
		return &InvalidVolumeError{Reason: "boundary is not a simple polygon", Err: err}
	}
	return nil
}

// BoundaryPolygon returns the 2-D footprint of a volume.
func BoundaryPolygon(vol core.SectorVolume) geom.Polygon {
	flat := make([]float64, 0, len(vol.Boundary)*2)
	for _, p := range vol.Boundary {
		flat = append(flat, p.Lon, p.Lat)
	}
	ring := geom.NewLineString(geom.NewSequence(flat, geom.DimXY))
	return geom.NewPolygon([]geom.LineString{ring})
}
