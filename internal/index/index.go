// Package index builds the flat summary row of a flight document.
package index

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/lfvdata/atcviz/internal/align"
	"github.com/lfvdata/atcviz/internal/parser"
	"github.com/lfvdata/atcviz/pkg/core"
)

// Columns is the column order of the index.
var Columns = []string{
	"id", "callsign", "adep", "ades", "adar", "aircraft_type", "wtc",
	"plots_start", "plots_end", "plot_count",
}

// Extract summarises f. Identity fields come from the fpl_base events, a
// later non-null value replacing an earlier one.
func Extract(f *core.Flight) core.IndexEntry {
	e := core.IndexEntry{ID: f.ID, PlotCount: len(f.Plots)}

	for i := range f.Fpl[core.FplBase] {
		ev := &f.Fpl[core.FplBase][i]
		latest(&e.Callsign, ev.Callsign)
		latest(&e.Adep, ev.Adep)
		latest(&e.Ades, ev.Ades)
		latest(&e.Adar, ev.Adar)
		latest(&e.AircraftType, ev.AircraftType)
		latest(&e.Wtc, ev.Wtc)
	}

	if n := len(f.Plots); n > 0 {
		first, last := f.Plots[0], f.Plots[n-1]
		start, end := first.TimeOfTrack, last.TimeOfTrack
		e.PlotsStart, e.PlotsEnd = &start, &end

		startPos, endPos := align.PlotPosition(first), align.PlotPosition(last)
		e.TrackStart, e.TrackEnd = &startPos, &endPos
	}
	return e
}

func latest(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Indexer reads flight documents and summarises them.
type Indexer struct {
	parser *parser.Parser
	logger *slog.Logger
}

// NewIndexer returns an indexer logging to logger.
func NewIndexer(p *parser.Parser, logger *slog.Logger) *Indexer {
	if logger == nil {
		logger = slog.Default()
	}
	if p == nil {
		p = parser.NewParser(logger)
	}
	return &Indexer{parser: p, logger: logger}
}

// Entry decodes one flight document and returns its index row. A flight
// without plots is still indexed, with a warning.
func (ix *Indexer) Entry(name string, r io.Reader) (core.IndexEntry, error) {
	f, err := ix.parser.DecodeFlight(r)
	if err != nil {
		return core.IndexEntry{}, fmt.Errorf("index %s: %w", name, err)
	}
	e := Extract(f)
	if e.PlotCount == 0 {
		ix.logger.Warn("Flight has empty plots", "flight", f.ID, "entry", name)
	}
	return e, nil
}
