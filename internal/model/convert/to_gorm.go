// Package convert provides functions to convert between core records and GORM models
package convert

import (
	"database/sql"
	"time"

	"github.com/lfvdata/atcviz/internal/geo"
	"github.com/lfvdata/atcviz/internal/model"
	"github.com/lfvdata/atcviz/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
)

// position3DToPoint projects a WGS84 position to an EPSG:3857 point. Positions
// outside the projection's domain become the empty point.
func position3DToPoint(p *core.Position3D) geom.Point {
	if p == nil {
		return geom.Point{}
	}
	pt, err := geo.Coords3857From4326(*p)
	if err != nil {
		return geom.Point{}
	}
	return pt
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func positionAttr(p *core.Position3D) map[string]any {
	return map[string]any{"lon": p.Lon, "lat": p.Lat, "alt": p.Alt}
}

// IndexEntryToFlightIndex converts a core.IndexEntry to a GORM model.FlightIndex.
// source names the document the entry was read from.
func IndexEntryToFlightIndex(e core.IndexEntry, source string) model.FlightIndex {
	attrs := datatypes.JSONMap{}
	if e.TrackStart != nil {
		attrs["track_start"] = positionAttr(e.TrackStart)
	}
	if e.TrackEnd != nil {
		attrs["track_end"] = positionAttr(e.TrackEnd)
	}

	return model.FlightIndex{
		FlightID:     e.ID,
		Callsign:     e.Callsign,
		Adep:         e.Adep,
		Ades:         e.Ades,
		Adar:         e.Adar,
		AircraftType: e.AircraftType,
		Wtc:          e.Wtc,
		PlotsStart:   nullTime(e.PlotsStart),
		PlotsEnd:     nullTime(e.PlotsEnd),
		PlotCount:    e.PlotCount,
		TrackStart:   position3DToPoint(e.TrackStart),
		TrackEnd:     position3DToPoint(e.TrackEnd),
		Source:       source,
		Attributes:   attrs,
	}
}
