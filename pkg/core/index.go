// pkg/core/index.go
package core

import "time"

// IndexEntry summarises one flight document of an archive.
type IndexEntry struct {
	ID           string
	Callsign     string
	Adep         string
	Ades         string
	Adar         string
	AircraftType string
	Wtc          string
	PlotsStart   *time.Time
	PlotsEnd     *time.Time
	PlotCount    int

	// First and last radar positions, when the flight has plots.
	TrackStart *Position3D
	TrackEnd   *Position3D
}
