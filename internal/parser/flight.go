package parser

import (
	"fmt"
	"io"
	"time"

	"github.com/lfvdata/atcviz/pkg/core"
)

// DecodeFlight reads and parses one flight document.
func (p *Parser) DecodeFlight(r io.Reader) (*core.Flight, error) {
	doc, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return p.ParseFlight(doc)
}

// ParseFlight converts a normalized flight document.
// Any missing or malformed field fails the whole flight.
func (p *Parser) ParseFlight(doc any) (*core.Flight, error) {
	root, err := newObject("", "", doc)
	if err != nil {
		return nil, err
	}

	id, err := root.text("id")
	if err != nil {
		return nil, err
	}
	root.record = id

	f := &core.Flight{
		ID:  id,
		Fpl: make(map[core.FplKind][]core.FplEvent),
	}

	fpl, err := root.child("fpl")
	if err != nil {
		return nil, err
	}
	for key := range fpl.m {
		kind, ok := core.FplKindFromKey(key)
		if !ok {
			return nil, &RecordError{Record: id, Field: fpl.fieldPath(key), Err: ErrUnknownEventKind}
		}
		items, err := fpl.list(key)
		if err != nil {
			return nil, err
		}
		events := make([]core.FplEvent, 0, len(items))
		for i, item := range items {
			ev, err := parseFplEvent(id, fmt.Sprintf("fpl.%s[%d]", key, i), kind, item)
			if err != nil {
				return nil, err
			}
			events = append(events, ev)
		}
		f.Fpl[kind] = events
	}

	plots, err := root.list("plots")
	if err != nil {
		return nil, err
	}
	f.Plots = make([]core.Plot, 0, len(plots))
	for i, item := range plots {
		plot, err := parsePlot(id, fmt.Sprintf("plots[%d]", i), item)
		if err != nil {
			return nil, err
		}
		f.Plots = append(f.Plots, plot)
	}

	fixes, err := root.list("predicted_trajectory")
	if err != nil {
		return nil, err
	}
	f.Predicted = make([]core.PredictedFix, 0, len(fixes))
	for i, item := range fixes {
		fix, err := parseFix(id, fmt.Sprintf("predicted_trajectory[%d]", i), item)
		if err != nil {
			return nil, err
		}
		f.Predicted = append(f.Predicted, fix)
	}

	p.logger.Debug("Parsed flight",
		"id", f.ID,
		"plots", len(f.Plots),
		"events", f.EventCount(),
		"fixes", len(f.Predicted))

	return f, nil
}

func parseFplEvent(record, path string, kind core.FplKind, v any) (core.FplEvent, error) {
	o, err := newObject(record, path, v)
	if err != nil {
		return core.FplEvent{}, err
	}
	ev := core.FplEvent{Kind: kind}
	if ev.TimeStamp, err = o.instant("time_stamp"); err != nil {
		return core.FplEvent{}, err
	}
	named := []struct {
		key string
		dst **string
	}{
		{"callsign", &ev.Callsign},
		{"adep", &ev.Adep},
		{"ades", &ev.Ades},
		{"adar", &ev.Adar},
		{"aircraft_type", &ev.AircraftType},
		{"wtc", &ev.Wtc},
	}
	var nulls []string
	for _, n := range named {
		if *n.dst, err = o.optText(n.key); err != nil {
			return core.FplEvent{}, err
		}
		if *n.dst == nil && o.has(n.key) {
			nulls = append(nulls, n.key)
		}
	}
	ev.Attributes = o.rest()
	for _, key := range nulls {
		ev.Attributes[key] = nil
	}
	return ev, nil
}

// Upstream plot records nest the position and the measured flight level
// under their ASTERIX item names.
const (
	itemPosition    = "I062/105"
	itemFlightLevel = "I062/136"
)

func parsePlot(record, path string, v any) (core.Plot, error) {
	o, err := newObject(record, path, v)
	if err != nil {
		return core.Plot{}, err
	}
	var plot core.Plot
	if plot.TimeOfTrack, err = o.instant("time_of_track"); err != nil {
		return core.Plot{}, err
	}

	pos, err := o.child(itemPosition)
	if err != nil {
		return core.Plot{}, err
	}
	if plot.Lat, err = pos.number("lat"); err != nil {
		return core.Plot{}, err
	}
	if plot.Lon, err = pos.number("lon"); err != nil {
		return core.Plot{}, err
	}

	if raw, ok := o.get(itemFlightLevel); ok && raw != nil {
		fl, err := newObject(record, o.fieldPath(itemFlightLevel), raw)
		if err != nil {
			return core.Plot{}, err
		}
		level, err := fl.number("measured_flight_level")
		if err != nil {
			return core.Plot{}, err
		}
		plot.FlightLevel = &level
	}

	plot.Attributes = o.rest()
	return plot, nil
}

func parseFix(record, path string, v any) (core.PredictedFix, error) {
	o, err := newObject(record, path, v)
	if err != nil {
		return core.PredictedFix{}, err
	}
	var fix core.PredictedFix
	if fix.TimeStamp, err = o.instant("time_stamp"); err != nil {
		return core.PredictedFix{}, err
	}
	route, err := o.list("route")
	if err != nil {
		return core.PredictedFix{}, err
	}
	fix.Route = make([]core.RoutePoint, 0, len(route))
	for i, item := range route {
		rp, err := parseRoutePoint(record, fmt.Sprintf("%s.route[%d]", path, i), item)
		if err != nil {
			return core.PredictedFix{}, err
		}
		fix.Route = append(fix.Route, rp)
	}
	fix.Attributes = o.rest()
	return fix, nil
}

func parseRoutePoint(record, path string, v any) (core.RoutePoint, error) {
	o, err := newObject(record, path, v)
	if err != nil {
		return core.RoutePoint{}, err
	}
	var rp core.RoutePoint
	if rp.FixName, err = o.text("fix_name"); err != nil {
		return core.RoutePoint{}, err
	}
	if rp.Lat, err = o.number("lat"); err != nil {
		return core.RoutePoint{}, err
	}
	if rp.Lon, err = o.number("lon"); err != nil {
		return core.RoutePoint{}, err
	}
	if rp.AflValue, err = o.number("afl_value"); err != nil {
		return core.RoutePoint{}, err
	}
	// An eto that did not parse stays behind as a plain attribute.
	if raw, ok := o.m["eto"]; ok {
		if t, isTime := raw.(time.Time); isTime {
			o.used["eto"] = true
			rp.Eto = &t
		}
	}
	rp.Attributes = o.rest()
	return rp, nil
}
