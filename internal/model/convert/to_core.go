package convert

import (
	"github.com/lfvdata/atcviz/internal/geo"
	"github.com/lfvdata/atcviz/internal/model"
	"github.com/lfvdata/atcviz/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// pointToPosition3D projects an EPSG:3857 point back to WGS84.
func pointToPosition3D(p geom.Point) *core.Position3D {
	pos, ok := geo.Coords4326From3857(p)
	if !ok {
		return nil
	}
	return &pos
}

// FlightIndexToIndexEntry converts a GORM model.FlightIndex to a core.IndexEntry.
func FlightIndexToIndexEntry(m model.FlightIndex) core.IndexEntry {
	e := core.IndexEntry{
		ID:           m.FlightID,
		Callsign:     m.Callsign,
		Adep:         m.Adep,
		Ades:         m.Ades,
		Adar:         m.Adar,
		AircraftType: m.AircraftType,
		Wtc:          m.Wtc,
		PlotCount:    m.PlotCount,
		TrackStart:   pointToPosition3D(m.TrackStart),
		TrackEnd:     pointToPosition3D(m.TrackEnd),
	}
	if m.PlotsStart.Valid {
		t := m.PlotsStart.Time.UTC()
		e.PlotsStart = &t
	}
	if m.PlotsEnd.Valid {
		t := m.PlotsEnd.Time.UTC()
		e.PlotsEnd = &t
	}
	return e
}
