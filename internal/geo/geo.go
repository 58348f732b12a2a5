package geo

import (
	"errors"
	"math"

	"github.com/lfvdata/atcviz/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"
)

const (
	// metresPerFoot converts sector altitudes, given in feet.
	metresPerFoot = 0.3048
	// metresPerFlightLevel converts flight levels (hundreds of feet).
	metresPerFlightLevel = 30.48
)

// ErrInvalidCoordinates is returned when the coordinates are invalid
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// FeetToMetres converts an altitude in feet to metres.
func FeetToMetres(ft float64) float64 {
	return ft * metresPerFoot
}

// FlightLevelToMetres converts a flight level to metres.
func FlightLevelToMetres(fl float64) float64 {
	return fl * metresPerFlightLevel
}

// Coords3857From4326 converts a longitude and latitude to a Web Mercator
// point carrying the altitude as Z.
// Index tables store positions as EPSG:3857 so the SQLite and Postgres sinks
// hold the same values without spatial extensions.
func Coords3857From4326(pos core.Position3D) (geom.Point, error) {
	if math.IsNaN(pos.Lon) || math.IsNaN(pos.Lat) ||
		math.Abs(pos.Lon) > 180 || math.Abs(pos.Lat) >= 90 {
		return geom.NewEmptyPoint(geom.DimXYZ), ErrInvalidCoordinates
	}
	epsg := wgs84.EPSG()
	f := epsg.Transform(4326, 3857)
	x, y, _ := f(pos.Lon, pos.Lat, 0)
	point := geom.NewPoint(
		geom.Coordinates{
			XY:   geom.XY{X: x, Y: y},
			Z:    pos.Alt,
			Type: geom.DimXYZ,
		},
	)
	return point, nil
}

// Coords4326From3857 is the inverse of Coords3857From4326. It reports false
// for an empty point.
func Coords4326From3857(p geom.Point) (core.Position3D, bool) {
	c, ok := p.Coordinates()
	if !ok {
		return core.Position3D{}, false
	}
	f := wgs84.EPSG().Transform(3857, 4326)
	lon, lat, _ := f(c.X, c.Y, 0)
	return core.Position3D{Lon: lon, Lat: lat, Alt: c.Z}, true
}
