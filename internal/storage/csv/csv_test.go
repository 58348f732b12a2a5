package csvstorage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lfvdata/atcviz/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRow(t *testing.T) {
	start := time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC)
	end := time.Date(2023, 3, 1, 12, 40, 5, 500000000, time.UTC)

	row := NewRow(&core.IndexEntry{ID: "1", Callsign: "SAS1", PlotsStart: &start, PlotsEnd: &end, PlotCount: 12})
	assert.Equal(t, "2023-03-01 12:00:00", row.PlotsStart)
	assert.Equal(t, "2023-03-01 12:40:05.500000", row.PlotsEnd)
	assert.Equal(t, "12", row.PlotCount)

	empty := NewRow(&core.IndexEntry{ID: "2"})
	assert.Equal(t, "", empty.PlotsStart)
	assert.Equal(t, "", empty.PlotsEnd)
	assert.Equal(t, "0", empty.PlotCount)
}

func TestBackend_WritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.csv")
	start := time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC)

	b := New(path)
	require.NoError(t, b.Init())
	require.NoError(t, b.WriteEntry(&core.IndexEntry{
		ID: "100042", Callsign: "SAS401", Adep: "ESSA", Ades: "EKCH", AircraftType: "A320", Wtc: "M",
		PlotsStart: &start, PlotsEnd: &start, PlotCount: 1,
	}, "100042.json"))
	require.NoError(t, b.WriteEntry(&core.IndexEntry{ID: "100043", Adar: "ESGG"}, "100043.json"))
	assert.Equal(t, 2, b.Len())
	require.NoError(t, b.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"id,callsign,adep,ades,adar,aircraft_type,wtc,plots_start,plots_end,plot_count\n"+
			"100042,SAS401,ESSA,EKCH,,A320,M,2023-03-01 12:00:00,2023-03-01 12:00:00,1\n"+
			"100043,,,,ESGG,,,,,0\n",
		string(data))
}

func TestBackend_EmptyIndexHasHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.csv")
	b := New(path)
	require.NoError(t, b.Init())
	require.NoError(t, b.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,callsign,adep,ades,adar,aircraft_type,wtc,plots_start,plots_end,plot_count\n", string(data))
}

func TestBackend_InitErrors(t *testing.T) {
	assert.Error(t, New("").Init())
	assert.Error(t, New(filepath.Join(t.TempDir(), "missing", "index.csv")).Init())
}
