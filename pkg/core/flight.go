// pkg/core/flight.go
package core

import "time"

// FplKind identifies the category of a flight-plan event.
type FplKind int

const (
	FplArr FplKind = iota
	FplBase
	FplDep
	FplClearance
	FplPlanUpdate
	FplHolding
)

// FplKinds lists every kind in canonical order.
var FplKinds = []FplKind{FplArr, FplBase, FplDep, FplClearance, FplPlanUpdate, FplHolding}

var fplKeys = [...]string{"fpl_arr", "fpl_base", "fpl_dep", "fpl_clearance", "fpl_plan_update", "fpl_holding"}

var fplLabels = [...]string{"arr", "base", "dep", "clr", "upd", "hold"}

// Key returns the category key used in flight documents, e.g. "fpl_dep".
func (k FplKind) Key() string {
	if k < 0 || int(k) >= len(fplKeys) {
		return "fpl_unknown"
	}
	return fplKeys[k]
}

// Label returns the short display label, e.g. "clr".
func (k FplKind) Label() string {
	if k < 0 || int(k) >= len(fplLabels) {
		return "?"
	}
	return fplLabels[k]
}

func (k FplKind) String() string {
	return k.Key()
}

// FplKindFromKey maps a document category key back to its kind.
func FplKindFromKey(key string) (FplKind, bool) {
	for i, k := range fplKeys {
		if k == key {
			return FplKind(i), true
		}
	}
	return 0, false
}

// Plot is a single radar observation of a flight.
type Plot struct {
	TimeOfTrack time.Time
	Lat         float64
	Lon         float64
	FlightLevel *float64 // hundreds of feet; nil when the plot has no altitude reading
	Attributes  Attributes
}

// FplEvent is one flight-plan message.
// Position is filled in by the alignment engine.
type FplEvent struct {
	Kind         FplKind
	TimeStamp    time.Time
	Callsign     *string
	Adep         *string
	Ades         *string
	Adar         *string
	AircraftType *string
	Wtc          *string
	Attributes   Attributes

	Position *Position3D
}

// Fields returns every field of the event keyed by its document name.
func (e *FplEvent) Fields() map[string]any {
	out := make(map[string]any, len(e.Attributes)+7)
	for k, v := range e.Attributes {
		out[k] = v
	}
	out["time_stamp"] = e.TimeStamp
	putOptional(out, "callsign", e.Callsign)
	putOptional(out, "adep", e.Adep)
	putOptional(out, "ades", e.Ades)
	putOptional(out, "adar", e.Adar)
	putOptional(out, "aircraft_type", e.AircraftType)
	putOptional(out, "wtc", e.Wtc)
	return out
}

func putOptional(m map[string]any, key string, v *string) {
	if v != nil {
		m[key] = *v
	}
}

// RoutePoint is a waypoint of a predicted trajectory.
type RoutePoint struct {
	FixName    string
	Lat        float64
	Lon        float64
	AflValue   float64    // predicted flight level
	Eto        *time.Time // estimated time over, when the prediction carries one
	Attributes Attributes

	// Position is the predicted position with altitude in metres.
	Position *Position3D
	// Observed is the radar position at Eto.
	Observed *Position3D
}

// Fields returns every field of the route point keyed by its document name.
func (rp *RoutePoint) Fields() map[string]any {
	out := make(map[string]any, len(rp.Attributes)+5)
	for k, v := range rp.Attributes {
		out[k] = v
	}
	out["fix_name"] = rp.FixName
	out["lat"] = rp.Lat
	out["lon"] = rp.Lon
	out["afl_value"] = rp.AflValue
	if rp.Eto != nil {
		out["eto"] = *rp.Eto
	}
	return out
}

// PredictedFix is one prediction run of the planning system.
type PredictedFix struct {
	TimeStamp  time.Time
	Route      []RoutePoint
	Attributes Attributes
}

// Flight is everything recorded for one flight.
type Flight struct {
	ID        string
	Fpl       map[FplKind][]FplEvent
	Plots     []Plot
	Predicted []PredictedFix
}

// EventCount returns the number of flight-plan events across all kinds.
func (f *Flight) EventCount() int {
	n := 0
	for _, evs := range f.Fpl {
		n += len(evs)
	}
	return n
}
