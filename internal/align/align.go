// Package align attaches positions from a flight's radar track to its
// flight-plan events and predicted route points.
//
// Matching is by time: an item is given the first plot whose time of track
// is not earlier than the item's time, or the last plot when the track ends
// before it. Items are visited in ascending time order so a single forward
// cursor serves all of them.
package align

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/lfvdata/atcviz/internal/geo"
	"github.com/lfvdata/atcviz/pkg/core"
)

// ErrNoTrackData is returned for a flight without plots; nothing can be
// positioned against an empty track.
var ErrNoTrackData = errors.New("flight has no track data")

// Cursor walks a plot sequence forward in time. Plots must be in ascending
// time-of-track order. The zero Cursor is not usable; see NewCursor.
type Cursor struct {
	plots []core.Plot
	idx   int
}

// NewCursor returns a cursor positioned at the first plot.
func NewCursor(plots []core.Plot) Cursor {
	return Cursor{plots: plots}
}

// Seek advances to the first plot at or after t, stopping at the last plot,
// and returns it. The cursor never moves backwards, so successive calls must
// use non-decreasing times.
func (c *Cursor) Seek(t time.Time) core.Plot {
	for c.idx < len(c.plots)-1 && c.plots[c.idx].TimeOfTrack.Before(t) {
		c.idx++
	}
	return c.plots[c.idx]
}

// Index returns the position of the plot the cursor rests on.
func (c *Cursor) Index() int {
	return c.idx
}

// PlotPosition returns the position of a plot with its altitude in metres,
// or altitude 0 when the plot has no flight level reading.
func PlotPosition(p core.Plot) core.Position3D {
	pos := core.Position3D{Lon: p.Lon, Lat: p.Lat}
	if p.FlightLevel != nil {
		pos.Alt = geo.FlightLevelToMetres(*p.FlightLevel)
	}
	return pos
}

// SortedEvents flattens every flight-plan category, in canonical kind order,
// and sorts the result by time stamp. The sort is stable, so events with equal
// time stamps keep the kind order and then their document order.
func SortedEvents(f *core.Flight) []*core.FplEvent {
	events := make([]*core.FplEvent, 0, f.EventCount())
	for _, kind := range core.FplKinds {
		list := f.Fpl[kind]
		for i := range list {
			events = append(events, &list[i])
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].TimeStamp.Before(events[j].TimeStamp)
	})
	return events
}

// Events positions every flight-plan event of f and returns the events in
// ascending time order.
func Events(f *core.Flight) ([]*core.FplEvent, error) {
	if len(f.Plots) == 0 {
		return nil, fmt.Errorf("flight %s: %w", f.ID, ErrNoTrackData)
	}
	events := SortedEvents(f)
	cur := NewCursor(f.Plots)
	for _, ev := range events {
		pos := PlotPosition(cur.Seek(ev.TimeStamp))
		ev.Position = &pos
	}
	return events, nil
}

// Fixes positions the route points of every predicted fix. Each point gets
// its predicted position; points carrying an estimated time over are also
// given the radar position observed at that time. The cursor starts afresh
// for every fix since each is an independent prediction run.
func Fixes(f *core.Flight) error {
	if len(f.Plots) == 0 {
		return fmt.Errorf("flight %s: %w", f.ID, ErrNoTrackData)
	}
	for i := range f.Predicted {
		alignRoute(f.Plots, f.Predicted[i].Route)
	}
	return nil
}

func alignRoute(plots []core.Plot, route []core.RoutePoint) {
	timed := make([]*core.RoutePoint, 0, len(route))
	for i := range route {
		rp := &route[i]
		pos := core.Position3D{Lon: rp.Lon, Lat: rp.Lat, Alt: geo.FlightLevelToMetres(rp.AflValue)}
		rp.Position = &pos
		if rp.Eto != nil {
			timed = append(timed, rp)
		}
	}

	// Route order is normally ETO order. When it is not, walk a sorted view
	// instead of letting the cursor hand out stale plots.
	if !sort.SliceIsSorted(timed, func(i, j int) bool { return timed[i].Eto.Before(*timed[j].Eto) }) {
		sort.SliceStable(timed, func(i, j int) bool { return timed[i].Eto.Before(*timed[j].Eto) })
	}

	cur := NewCursor(plots)
	for _, rp := range timed {
		obs := PlotPosition(cur.Seek(*rp.Eto))
		rp.Observed = &obs
	}
}

// Flight enriches every event and route point of f. Either everything is
// positioned or, for a flight without plots, nothing is.
func Flight(f *core.Flight) ([]*core.FplEvent, error) {
	if err := Fixes(f); err != nil {
		return nil, err
	}
	return Events(f)
}
