package scene

import (
	"github.com/lfvdata/atcviz/internal/align"
	"github.com/lfvdata/atcviz/internal/util"
	"github.com/lfvdata/atcviz/pkg/core"
)

// FixFolderLayout names the per-fix folders of the predicted trajectory.
const FixFolderLayout = "2006-01-02T15:04:05.000000"

// Flight builds the scene of one aligned flight. events must be the
// positioned events returned by align.Flight; f's route points must have
// been positioned by the same call.
func Flight(f *core.Flight, events []*core.FplEvent) Document {
	root := Folder{
		Name:    f.ID,
		Visible: true,
		Placemarks: []Placemark{{
			Name:     "plots",
			Visible:  true,
			StyleURL: styleRef(StyleFor(CategoryRadarTrack).ID),
			Geometry: LineString{Coords: trackCoords(f.Plots), Extrude: true, AltitudeMode: Absolute},
		}},
	}
	root.Folders = append(root.Folders, fplFolder(events), predictedFolder(f.Predicted))

	return Document{
		Name:    f.ID,
		Styles:  FlightStyles(),
		Folders: []Folder{root},
	}
}

func trackCoords(plots []core.Plot) []core.Position3D {
	coords := make([]core.Position3D, len(plots))
	for i, p := range plots {
		coords[i] = align.PlotPosition(p)
	}
	return coords
}

func fplFolder(events []*core.FplEvent) Folder {
	folder := Folder{Name: "fpl", Placemarks: make([]Placemark, 0, len(events))}
	for _, ev := range events {
		if ev.Position == nil {
			continue
		}
		folder.Placemarks = append(folder.Placemarks, Placemark{
			Name:        ev.Kind.Label(),
			Description: util.TitledDescription(ev.Kind.Key(), ev.Fields()),
			StyleURL:    styleRef(StyleFor(FplCategory(ev.Kind)).ID),
			Geometry:    Point{Coord: *ev.Position, AltitudeMode: Absolute},
		})
	}
	return folder
}

func predictedFolder(fixes []core.PredictedFix) Folder {
	folder := Folder{Name: "predicted_trajectory", Folders: make([]Folder, 0, len(fixes))}
	for _, fix := range fixes {
		folder.Folders = append(folder.Folders, fixFolder(fix))
	}
	return folder
}

func fixFolder(fix core.PredictedFix) Folder {
	folder := Folder{
		Name:       fix.TimeStamp.Format(FixFolderLayout),
		Placemarks: make([]Placemark, 0, 2*len(fix.Route)+1),
	}
	coords := make([]core.Position3D, 0, len(fix.Route))
	for i := range fix.Route {
		rp := &fix.Route[i]
		if rp.Position == nil {
			continue
		}
		folder.Placemarks = append(folder.Placemarks, Placemark{
			Name:        rp.FixName,
			Description: util.Description(rp.Fields()),
			StyleURL:    styleRef(StyleFor(CategoryRoutePoint).ID),
			Geometry:    Point{Coord: *rp.Position, AltitudeMode: Absolute},
		})
		if rp.Observed != nil {
			folder.Placemarks = append(folder.Placemarks, observedPlacemark(rp))
		}
		coords = append(coords, *rp.Position)
	}
	folder.Placemarks = append(folder.Placemarks, Placemark{
		Name:     "trajectory",
		StyleURL: styleRef(StyleFor(CategoryPredictedTrack).ID),
		Geometry: LineString{Coords: coords, Extrude: true, AltitudeMode: Absolute},
	})
	return folder
}

// observedPlacemark joins a predicted route point to the radar position
// recorded at its ETO.
func observedPlacemark(rp *core.RoutePoint) Placemark {
	return Placemark{
		Name: rp.FixName + " observed",
		Description: util.Description(map[string]any{
			"eto": *rp.Eto,
			"lat": rp.Observed.Lat,
			"lon": rp.Observed.Lon,
			"alt": rp.Observed.Alt,
		}),
		StyleURL: styleRef(StyleFor(CategoryRadarTrack).ID),
		Geometry: LineString{Coords: []core.Position3D{*rp.Position, *rp.Observed}, AltitudeMode: Absolute},
	}
}
