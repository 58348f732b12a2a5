package scene

import (
	"github.com/lfvdata/atcviz/internal/geo"
	"github.com/lfvdata/atcviz/pkg/core"
)

// Airspaces builds the scene of a set of airspaces. Every placemark of an
// airspace uses the style named after it.
func Airspaces(as []core.Airspace) Document {
	doc := Document{
		Name:    "airspace",
		Styles:  AirspaceStyles(as),
		Folders: make([]Folder, 0, len(as)),
	}
	for i := range as {
		doc.Folders = append(doc.Folders, airspaceFolder(&as[i]))
	}
	return doc
}

// CentreFolderID is the folder id of an airspace.
func CentreFolderID(centreID string) string {
	return "CENTRE_" + centreID
}

func airspaceFolder(a *core.Airspace) Folder {
	style := styleRef(CentreStyle(a.Name).ID)

	points := Folder{Name: "Points", Visible: true, Placemarks: make([]Placemark, 0, len(a.Points))}
	for _, p := range a.Points {
		points.Placemarks = append(points.Placemarks, Placemark{
			Name:     p.Name,
			Visible:  true,
			StyleURL: style,
			Geometry: Point{Coord: core.Position3D{Lon: p.Lon, Lat: p.Lat}, AltitudeMode: ClampToGround},
		})
	}

	sectors := Folder{Name: "Sectors", Visible: true, Folders: make([]Folder, 0, len(a.Sectors))}
	for _, s := range a.Sectors {
		sf := Folder{Name: s.Name, Visible: true, Placemarks: make([]Placemark, 0, len(s.Volumes))}
		for _, vol := range s.Volumes {
			sf.Placemarks = append(sf.Placemarks, Placemark{
				Visible:  true,
				StyleURL: style,
				Geometry: MultiPolygon{Polygons: geo.BuildSolid(vol).Polygons(), AltitudeMode: Absolute},
			})
		}
		sectors.Folders = append(sectors.Folders, sf)
	}

	return Folder{
		Name:    a.Name,
		ID:      CentreFolderID(a.CentreID),
		Visible: true,
		Folders: []Folder{points, sectors},
	}
}
