package scene

import "github.com/lfvdata/atcviz/pkg/core"

// Category selects an entry of the static style table.
type Category int

const (
	CategoryDeparture Category = iota
	CategoryArrival
	CategoryClearance
	CategoryBase
	CategoryPlanUpdate
	CategoryHolding
	CategoryRoutePoint
	CategoryRadarTrack
	CategoryPredictedTrack
)

// Style is a shared look referenced by placemarks through "#<ID>".
// Colours are KML aabbggrr hex strings.
type Style struct {
	ID        string
	IconHref  string
	IconScale float64
	PolyColor string
	LineColor string
}

const iconScale = 0.5

var flightStyles = []struct {
	cat   Category
	style Style
}{
	{CategoryDeparture, Style{ID: "fpl_dep", IconHref: "icons/blue_circle.png", IconScale: iconScale}},
	{CategoryArrival, Style{ID: "fpl_arr", IconHref: "icons/yellow_circle.png", IconScale: iconScale}},
	{CategoryClearance, Style{ID: "fpl_clearance", IconHref: "icons/green_circle.png", IconScale: iconScale}},
	{CategoryBase, Style{ID: "fpl_base", IconHref: "icons/magenta_circle.png", IconScale: iconScale}},
	{CategoryPlanUpdate, Style{ID: "fpl_plan_update", IconHref: "icons/turquoise_circle.png", IconScale: iconScale}},
	{CategoryHolding, Style{ID: "fpl_holding", IconHref: "icons/red_circle.png", IconScale: iconScale}},
	{CategoryRoutePoint, Style{ID: "tp_point", IconHref: "icons/pink_dimond.png", IconScale: iconScale}},
	{CategoryRadarTrack, Style{ID: "radar_track", PolyColor: "9900ffff", LineColor: "ff00ffff"}},
	{CategoryPredictedTrack, Style{ID: "tp_track", PolyColor: "992299ff", LineColor: "ff2299ff"}},
}

var centreStyles = map[string]Style{
	"ESOS": {ID: "ESOS", IconHref: "icons/red_triangle.png", IconScale: iconScale, PolyColor: "994444ff", LineColor: "ff4444ff"},
	"ESMM": {ID: "ESMM", IconHref: "icons/blue_triangle.png", IconScale: iconScale, PolyColor: "99ffcc33", LineColor: "ffffcc33"},
}

// airspace names without an entry in centreStyles fall back to this look
var fallbackCentre = Style{IconHref: "icons/red_triangle.png", IconScale: iconScale, PolyColor: "99aaaaaa", LineColor: "ffaaaaaa"}

// StyleFor returns the style of a flight category.
func StyleFor(c Category) Style {
	for _, e := range flightStyles {
		if e.cat == c {
			return e.style
		}
	}
	return Style{}
}

// FlightStyles returns the complete flight style set in table order.
func FlightStyles() []Style {
	out := make([]Style, len(flightStyles))
	for i, e := range flightStyles {
		out[i] = e.style
	}
	return out
}

// FplCategory maps a flight-plan kind to its style category.
func FplCategory(k core.FplKind) Category {
	switch k {
	case core.FplArr:
		return CategoryArrival
	case core.FplBase:
		return CategoryBase
	case core.FplDep:
		return CategoryDeparture
	case core.FplClearance:
		return CategoryClearance
	case core.FplPlanUpdate:
		return CategoryPlanUpdate
	default:
		return CategoryHolding
	}
}

// CentreStyle returns the style for an airspace, keyed by airspace name.
func CentreStyle(name string) Style {
	if s, ok := centreStyles[name]; ok {
		return s
	}
	s := fallbackCentre
	s.ID = name
	return s
}

// AirspaceStyles returns ESOS and ESMM, followed by a fallback style for
// every other airspace name in as, in first-seen order.
func AirspaceStyles(as []core.Airspace) []Style {
	out := []Style{centreStyles["ESOS"], centreStyles["ESMM"]}
	seen := map[string]bool{"ESOS": true, "ESMM": true}
	for _, a := range as {
		if seen[a.Name] {
			continue
		}
		seen[a.Name] = true
		out = append(out, CentreStyle(a.Name))
	}
	return out
}
