package geo

import (
	"github.com/lfvdata/atcviz/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// TrackLineString builds a 3-D line string from a sequence of positions.
func TrackLineString(positions []core.Position3D) geom.LineString {
	return geom.NewLineString(sequence(positions))
}

// SolidMultiPolygon returns every face of a solid as a 3-D polygon, in the
// order caps first, then walls.
func SolidMultiPolygon(s core.Solid) geom.MultiPolygon {
	faces := s.Polygons()
	polys := make([]geom.Polygon, 0, len(faces))
	for _, ring := range faces {
		if len(ring) == 0 {
			continue
		}
		polys = append(polys, geom.NewPolygon([]geom.LineString{geom.NewLineString(sequence(ring))}))
	}
	return geom.NewMultiPolygon(polys)
}

func sequence(positions []core.Position3D) geom.Sequence {
	flat := make([]float64, 0, len(positions)*3)
	for _, p := range positions {
		flat = append(flat, p.Lon, p.Lat, p.Alt)
	}
	return geom.NewSequence(flat, geom.DimXYZ)
}
