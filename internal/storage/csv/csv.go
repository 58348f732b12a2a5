// Package csvstorage writes the flight index as a CSV file.
package csvstorage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/lfvdata/atcviz/internal/timestamp"
	"github.com/lfvdata/atcviz/pkg/core"
)

// Row is one CSV record. Column order follows the field order.
type Row struct {
	ID           string `csv:"id"`
	Callsign     string `csv:"callsign"`
	Adep         string `csv:"adep"`
	Ades         string `csv:"ades"`
	Adar         string `csv:"adar"`
	AircraftType string `csv:"aircraft_type"`
	Wtc          string `csv:"wtc"`
	PlotsStart   string `csv:"plots_start"`
	PlotsEnd     string `csv:"plots_end"`
	PlotCount    string `csv:"plot_count"`
}

// NewRow flattens an entry. Missing plot times become empty cells.
func NewRow(e *core.IndexEntry) Row {
	return Row{
		ID:           e.ID,
		Callsign:     e.Callsign,
		Adep:         e.Adep,
		Ades:         e.Ades,
		Adar:         e.Adar,
		AircraftType: e.AircraftType,
		Wtc:          e.Wtc,
		PlotsStart:   formatTime(e.PlotsStart),
		PlotsEnd:     formatTime(e.PlotsEnd),
		PlotCount:    strconv.Itoa(e.PlotCount),
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return timestamp.Format(*t)
}

// Backend collects rows in memory and writes the file on Close.
type Backend struct {
	path string

	mu   sync.Mutex
	rows []*Row
}

// New creates a CSV sink writing to path.
func New(path string) *Backend {
	return &Backend{path: path}
}

// Init checks that the output directory exists.
func (b *Backend) Init() error {
	if b.path == "" {
		return fmt.Errorf("csv index: no output path")
	}
	dir := filepath.Dir(b.path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("csv index: output directory %s is not usable", dir)
	}
	return nil
}

func (b *Backend) WriteEntry(e *core.IndexEntry, _ string) error {
	row := NewRow(e)
	b.mu.Lock()
	b.rows = append(b.rows, &row)
	b.mu.Unlock()
	return nil
}

// Close writes the header and every row.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := os.Create(b.path)
	if err != nil {
		return fmt.Errorf("csv index: %w", err)
	}
	if b.rows == nil {
		// gocsv needs a slice to derive the header from
		b.rows = []*Row{}
	}
	if err := gocsv.Marshal(&b.rows, f); err != nil {
		f.Close()
		return fmt.Errorf("csv index: %w", err)
	}
	return f.Close()
}

// Len returns the number of rows collected so far.
func (b *Backend) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.rows)
}
