// Package scene assembles flights and airspaces into a renderer-neutral
// tree of folders, placemarks and styles. The kml package serializes it.
package scene

import "github.com/lfvdata/atcviz/pkg/core"

// AltitudeMode says how a geometry's altitude is interpreted.
type AltitudeMode string

const (
	// ClampToGround drops altitude entirely; coordinates are written as lon,lat.
	ClampToGround AltitudeMode = ""
	// Absolute places altitude in metres above mean sea level.
	Absolute AltitudeMode = "absolute"
)

// Geometry is one of Point, LineString or MultiPolygon.
type Geometry interface {
	geometry()
}

type Point struct {
	Coord        core.Position3D
	AltitudeMode AltitudeMode
}

type LineString struct {
	Coords       []core.Position3D
	Extrude      bool
	AltitudeMode AltitudeMode
}

// MultiPolygon holds closed outer rings, one per polygon.
type MultiPolygon struct {
	Polygons     [][]core.Position3D
	AltitudeMode AltitudeMode
}

func (Point) geometry()        {}
func (LineString) geometry()   {}
func (MultiPolygon) geometry() {}

type Placemark struct {
	Name        string
	Description string
	Visible     bool
	StyleURL    string
	Geometry    Geometry
}

type Folder struct {
	Name       string
	ID         string
	Visible    bool
	Folders    []Folder
	Placemarks []Placemark
}

// Document is the root of a scene.
type Document struct {
	Name    string
	Styles  []Style
	Folders []Folder
}

// Icons returns the distinct icon references used by the document's styles,
// in style order.
func (d *Document) Icons() []string {
	seen := make(map[string]bool, len(d.Styles))
	var out []string
	for _, s := range d.Styles {
		if s.IconHref == "" || seen[s.IconHref] {
			continue
		}
		seen[s.IconHref] = true
		out = append(out, s.IconHref)
	}
	return out
}

// PlacemarkCount returns the number of placemarks in the whole tree.
func (d *Document) PlacemarkCount() int {
	n := 0
	for i := range d.Folders {
		n += d.Folders[i].placemarkCount()
	}
	return n
}

func (f *Folder) placemarkCount() int {
	n := len(f.Placemarks)
	for i := range f.Folders {
		n += f.Folders[i].placemarkCount()
	}
	return n
}

func styleRef(id string) string {
	return "#" + id
}
