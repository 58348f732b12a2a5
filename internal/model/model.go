package model

import (
	"database/sql"
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&FlightIndex{},
}

////////////////////////
// INDEX MODELS
////////////////////////

// FlightIndex is one row of the archive summary index.
// Track endpoints are stored in EPSG:3857; the WGS84 originals are kept
// in Attributes under "track_start" and "track_end".
type FlightIndex struct {
	ID           uint              `json:"-" gorm:"primarykey;autoIncrement;"`
	FlightID     string            `json:"id" gorm:"size:32;index:idx_flight_index_flight_id"`
	Callsign     string            `json:"callsign" gorm:"size:16;index:idx_flight_index_callsign"`
	Adep         string            `json:"adep" gorm:"size:8"`
	Ades         string            `json:"ades" gorm:"size:8"`
	Adar         string            `json:"adar" gorm:"size:8"`
	AircraftType string            `json:"aircraftType" gorm:"size:16"`
	Wtc          string            `json:"wtc" gorm:"size:4"`
	PlotsStart   sql.NullTime      `json:"plotsStart" gorm:"index:idx_flight_index_plots_start"`
	PlotsEnd     sql.NullTime      `json:"plotsEnd"`
	PlotCount    int               `json:"plotCount"`
	TrackStart   geom.Point        `json:"trackStart"`
	TrackEnd     geom.Point        `json:"trackEnd"`
	Source       string            `json:"source" gorm:"size:255"`
	Attributes   datatypes.JSONMap `json:"attributes"`
	IndexedAt    time.Time         `json:"indexedAt" gorm:"autoCreateTime"`
}

func (*FlightIndex) TableName() string {
	return "flight_index"
}
