// Package kml serializes scene documents as KML 2.2 and packages them as
// KMZ archives.
package kml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lfvdata/atcviz/internal/scene"
	"github.com/lfvdata/atcviz/pkg/core"
)

// Namespace is the KML 2.2 namespace.
const Namespace = "http://www.opengis.net/kml/2.2"

type kmlRoot struct {
	XMLName  xml.Name    `xml:"kml"`
	Xmlns    string      `xml:"xmlns,attr"`
	Document kmlDocument `xml:"Document"`
}

type kmlDocument struct {
	Name    string      `xml:"name,omitempty"`
	Styles  []kmlStyle  `xml:"Style"`
	Folders []kmlFolder `xml:"Folder"`
}

type kmlStyle struct {
	ID        string         `xml:"id,attr"`
	IconStyle *kmlIconStyle  `xml:"IconStyle,omitempty"`
	PolyStyle *kmlColorStyle `xml:"PolyStyle,omitempty"`
	LineStyle *kmlColorStyle `xml:"LineStyle,omitempty"`
}

type kmlIconStyle struct {
	Scale   float64    `xml:"scale"`
	Icon    kmlIcon    `xml:"Icon"`
	HotSpot kmlHotSpot `xml:"hotSpot"`
}

type kmlIcon struct {
	Href string `xml:"href"`
}

type kmlHotSpot struct {
	X      string `xml:"x,attr"`
	Y      string `xml:"y,attr"`
	XUnits string `xml:"xunits,attr"`
	YUnits string `xml:"yunits,attr"`
}

type kmlColorStyle struct {
	Color string `xml:"color"`
}

type kmlFolder struct {
	ID         string         `xml:"id,attr,omitempty"`
	Name       string         `xml:"name"`
	Visibility int            `xml:"visibility"`
	Folders    []kmlFolder    `xml:"Folder"`
	Placemarks []kmlPlacemark `xml:"Placemark"`
}

type kmlPlacemark struct {
	Name          string            `xml:"name,omitempty"`
	Visibility    int               `xml:"visibility"`
	Description   *kmlText          `xml:"description,omitempty"`
	StyleURL      string            `xml:"styleUrl,omitempty"`
	Point         *kmlPoint         `xml:"Point,omitempty"`
	LineString    *kmlLineString    `xml:"LineString,omitempty"`
	MultiGeometry *kmlMultiGeometry `xml:"MultiGeometry,omitempty"`
}

type kmlText struct {
	Text string `xml:",cdata"`
}

type kmlPoint struct {
	AltitudeMode string `xml:"altitudeMode,omitempty"`
	Coordinates  string `xml:"coordinates"`
}

type kmlLineString struct {
	Extrude      int    `xml:"extrude,omitempty"`
	AltitudeMode string `xml:"altitudeMode,omitempty"`
	Coordinates  string `xml:"coordinates"`
}

type kmlMultiGeometry struct {
	Polygons []kmlPolygon `xml:"Polygon"`
}

type kmlPolygon struct {
	AltitudeMode string      `xml:"altitudeMode,omitempty"`
	Outer        kmlBoundary `xml:"outerBoundaryIs"`
}

type kmlBoundary struct {
	Ring kmlRing `xml:"LinearRing"`
}

type kmlRing struct {
	Coordinates string `xml:"coordinates"`
}

// Encode writes doc as an indented KML document.
func Encode(w io.Writer, doc *scene.Document) error {
	root := kmlRoot{Xmlns: Namespace, Document: convertDocument(doc)}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode kml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func convertDocument(doc *scene.Document) kmlDocument {
	out := kmlDocument{
		Name:    doc.Name,
		Styles:  make([]kmlStyle, len(doc.Styles)),
		Folders: make([]kmlFolder, len(doc.Folders)),
	}
	for i, s := range doc.Styles {
		out.Styles[i] = convertStyle(s)
	}
	for i := range doc.Folders {
		out.Folders[i] = convertFolder(&doc.Folders[i])
	}
	return out
}

func convertStyle(s scene.Style) kmlStyle {
	out := kmlStyle{ID: s.ID}
	if s.IconHref != "" {
		out.IconStyle = &kmlIconStyle{
			Scale:   s.IconScale,
			Icon:    kmlIcon{Href: s.IconHref},
			HotSpot: kmlHotSpot{X: "0.5", Y: "0.5", XUnits: "fraction", YUnits: "fraction"},
		}
	}
	if s.PolyColor != "" {
		out.PolyStyle = &kmlColorStyle{Color: s.PolyColor}
	}
	if s.LineColor != "" {
		out.LineStyle = &kmlColorStyle{Color: s.LineColor}
	}
	return out
}

func convertFolder(f *scene.Folder) kmlFolder {
	out := kmlFolder{
		ID:         f.ID,
		Name:       f.Name,
		Visibility: visibility(f.Visible),
		Folders:    make([]kmlFolder, len(f.Folders)),
		Placemarks: make([]kmlPlacemark, len(f.Placemarks)),
	}
	for i := range f.Folders {
		out.Folders[i] = convertFolder(&f.Folders[i])
	}
	for i := range f.Placemarks {
		out.Placemarks[i] = convertPlacemark(&f.Placemarks[i])
	}
	return out
}

func convertPlacemark(p *scene.Placemark) kmlPlacemark {
	out := kmlPlacemark{
		Name:       p.Name,
		Visibility: visibility(p.Visible),
		StyleURL:   p.StyleURL,
	}
	if p.Description != "" {
		out.Description = &kmlText{Text: p.Description}
	}

	switch g := p.Geometry.(type) {
	case scene.Point:
		out.Point = &kmlPoint{
			AltitudeMode: string(g.AltitudeMode),
			Coordinates:  coordinate(g.Coord, g.AltitudeMode),
		}
	case scene.LineString:
		ls := &kmlLineString{
			AltitudeMode: string(g.AltitudeMode),
			Coordinates:  coordinates(g.Coords, g.AltitudeMode),
		}
		if g.Extrude {
			ls.Extrude = 1
		}
		out.LineString = ls
	case scene.MultiPolygon:
		mg := &kmlMultiGeometry{Polygons: make([]kmlPolygon, 0, len(g.Polygons))}
		for _, ring := range g.Polygons {
			if len(ring) == 0 {
				continue
			}
			mg.Polygons = append(mg.Polygons, kmlPolygon{
				AltitudeMode: string(g.AltitudeMode),
				Outer:        kmlBoundary{Ring: kmlRing{Coordinates: coordinates(ring, g.AltitudeMode)}},
			})
		}
		out.MultiGeometry = mg
	}
	return out
}

func visibility(v bool) int {
	if v {
		return 1
	}
	return 0
}

func coordinate(p core.Position3D, mode scene.AltitudeMode) string {
	s := formatFloat(p.Lon) + "," + formatFloat(p.Lat)
	if mode != scene.ClampToGround {
		s += "," + formatFloat(p.Alt)
	}
	return s
}

func coordinates(ps []core.Position3D, mode scene.AltitudeMode) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = coordinate(p, mode)
	}
	return strings.Join(parts, " ")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
