package kml

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/lfvdata/atcviz/internal/scene"
	"github.com/lfvdata/atcviz/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() *scene.Document {
	return &scene.Document{
		Name:   "100042",
		Styles: []scene.Style{scene.StyleFor(scene.CategoryDeparture), scene.StyleFor(scene.CategoryRadarTrack)},
		Folders: []scene.Folder{{
			Name:    "100042",
			ID:      "CENTRE_1",
			Visible: true,
			Placemarks: []scene.Placemark{
				{
					Name:     "plots",
					Visible:  true,
					StyleURL: "#radar_track",
					Geometry: scene.LineString{
						Coords:       []core.Position3D{{Lon: 17.9, Lat: 59.6, Alt: 0}, {Lon: 18, Lat: 59.7, Alt: 3657.6}},
						Extrude:      true,
						AltitudeMode: scene.Absolute,
					},
				},
				{
					Name:        "dep",
					Description: "fpl_dep\nadep: ESSA & co",
					StyleURL:    "#fpl_dep",
					Geometry:    scene.Point{Coord: core.Position3D{Lon: 18, Lat: 59.7, Alt: 3657.6}, AltitudeMode: scene.Absolute},
				},
				{
					Name:     "ARS",
					Visible:  true,
					Geometry: scene.Point{Coord: core.Position3D{Lon: 17.5, Lat: 59.5, Alt: 100}},
				},
			},
			Folders: []scene.Folder{{
				Name: "S1",
				Placemarks: []scene.Placemark{{
					StyleURL: "#ESOS",
					Geometry: scene.MultiPolygon{
						Polygons: [][]core.Position3D{
							{{Lon: 0, Lat: 0, Alt: 304.8}, {Lon: 1, Lat: 0, Alt: 304.8}, {Lon: 1, Lat: 1, Alt: 304.8}, {Lon: 0, Lat: 0, Alt: 304.8}},
							{},
						},
						AltitudeMode: scene.Absolute,
					},
				}},
			}},
		}},
	}
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, testDocument()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, xml.Header))
	assert.Contains(t, out, `<kml xmlns="http://www.opengis.net/kml/2.2">`)
	assert.Contains(t, out, `<Style id="fpl_dep">`)
	assert.Contains(t, out, `<href>icons/blue_circle.png</href>`)
	assert.Contains(t, out, `<hotSpot x="0.5" y="0.5" xunits="fraction" yunits="fraction"></hotSpot>`)
	assert.Contains(t, out, `<color>ff00ffff</color>`)
	assert.Contains(t, out, `<Folder id="CENTRE_1">`)
	assert.Contains(t, out, `<coordinates>17.9,59.6,0 18,59.7,3657.6</coordinates>`)
	assert.Contains(t, out, `<extrude>1</extrude>`)
	assert.Contains(t, out, `<![CDATA[fpl_dep`+"\n"+`adep: ESSA & co]]>`)
	assert.Contains(t, out, `<coordinates>17.5,59.5</coordinates>`)
	assert.Equal(t, 1, strings.Count(out, "<Polygon>"))
	assert.Contains(t, out, `<outerBoundaryIs>`)
}

func TestEncode_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, testDocument()))

	var root kmlRoot
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &root))

	require.Len(t, root.Document.Styles, 2)
	assert.Nil(t, root.Document.Styles[0].PolyStyle)
	assert.Nil(t, root.Document.Styles[1].IconStyle)

	require.Len(t, root.Document.Folders, 1)
	folder := root.Document.Folders[0]
	assert.Equal(t, 1, folder.Visibility)
	require.Len(t, folder.Placemarks, 3)

	dep := folder.Placemarks[1]
	assert.Equal(t, 0, dep.Visibility)
	require.NotNil(t, dep.Description)
	assert.Equal(t, "fpl_dep\nadep: ESSA & co", dep.Description.Text)
	require.NotNil(t, dep.Point)
	assert.Equal(t, "absolute", dep.Point.AltitudeMode)

	require.Len(t, folder.Folders, 1)
	mg := folder.Folders[0].Placemarks[0].MultiGeometry
	require.NotNil(t, mg)
	require.Len(t, mg.Polygons, 1)
	assert.Equal(t, "0,0,304.8 1,0,304.8 1,1,304.8 0,0,304.8", mg.Polygons[0].Outer.Ring.Coordinates)
}
