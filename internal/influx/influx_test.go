package influx

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/lfvdata/atcviz/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readBackupRaw(t *testing.T, path string) string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	data, err := io.ReadAll(zr)
	require.NoError(t, err)
	return string(data)
}

func readBackup(t *testing.T, path string) []string {
	t.Helper()
	return strings.Split(strings.TrimSpace(readBackupRaw(t, path)), "\n")
}

func TestStats_Point(t *testing.T) {
	at := time.Date(2020, 5, 1, 12, 0, 0, 0, time.UTC)
	p := Stats{
		Kind:       "flight",
		Name:       "123456",
		Plots:      120,
		Events:     4,
		Fixes:      9,
		Placemarks: 133,
		Duration:   1500 * time.Millisecond,
		OK:         true,
		At:         at,
	}.Point()

	assert.Equal(t, Measurement, p.Name())
	assert.Equal(t, at, p.Time())

	tags := map[string]string{}
	for _, tag := range p.TagList() {
		tags[tag.Key] = tag.Value
	}
	assert.Equal(t, map[string]string{"kind": "flight", "name": "123456"}, tags)

	fields := map[string]interface{}{}
	for _, f := range p.FieldList() {
		fields[f.Key] = f.Value
	}
	assert.EqualValues(t, 120, fields["plots"])
	assert.EqualValues(t, 1500, fields["duration_ms"])
	assert.Equal(t, true, fields["ok"])
}

func TestConnect_Disabled(t *testing.T) {
	m := NewManager(zerolog.Nop(), config.InfluxConfig{Enabled: false})
	assert.ErrorIs(t, m.Connect(context.Background()), ErrDisabled)
}

func TestWritePoint_NoBackend(t *testing.T) {
	m := NewManager(zerolog.Nop(), config.InfluxConfig{})
	err := m.WriteStats(Stats{Kind: "flight", Name: "1"})
	assert.Error(t, err)
}

func TestNilManager_Discards(t *testing.T) {
	var m *Manager
	assert.NoError(t, m.WriteStats(Stats{Kind: "flight"}))
	assert.NoError(t, m.Close())
}

func TestBackup_WritesLineProtocol(t *testing.T) {
	path := filepath.Join(t.TempDir(), "influx_backup.log.gzip")
	m := NewManager(zerolog.Nop(), config.InfluxConfig{BackupPath: path})
	require.NoError(t, m.OpenBackup())
	require.NoError(t, m.OpenBackup(), "second open is a no-op")

	at := time.Date(2020, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, m.WriteStats(Stats{Kind: "flight", Name: "123456", Plots: 3, OK: true, At: at}))
	require.NoError(t, m.WriteStats(Stats{Kind: "airspace", Name: "sectors.json", Placemarks: 12, At: at}))
	require.NoError(t, m.Close())

	lines := readBackup(t, path)
	require.Len(t, lines, 2)

	assert.True(t, strings.HasPrefix(lines[0], "conversion,kind=flight,name=123456 "))
	assert.Contains(t, lines[0], "plots=3i")
	assert.Contains(t, lines[0], "ok=true")
	assert.True(t, strings.HasSuffix(lines[0], " 1588334400000000000"))

	assert.True(t, strings.HasPrefix(lines[1], "conversion,kind=airspace,name=sectors.json "))
	assert.Contains(t, lines[1], "placemarks=12i")
	assert.Contains(t, lines[1], "ok=false")
}

func TestBackup_OneLinePerPoint(t *testing.T) {
	at := time.Date(2020, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		stats []Stats
	}{
		{"single", []Stats{{Kind: "flight", Name: "100234", At: at}}},
		{"several", []Stats{
			{Kind: "flight", Name: "100234", At: at},
			{Kind: "flight", Name: "100235", At: at},
			{Kind: "airspace", Name: "airspace.json", At: at},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "influx_backup.log.gzip")
			m := NewManager(zerolog.Nop(), config.InfluxConfig{BackupPath: path})
			require.NoError(t, m.OpenBackup())
			for _, s := range tt.stats {
				require.NoError(t, m.WriteStats(s))
			}
			require.NoError(t, m.Close())

			data := readBackupRaw(t, path)
			assert.NotContains(t, data, "\n\n")
			assert.True(t, strings.HasSuffix(data, "\n"))
			assert.Equal(t, len(tt.stats), strings.Count(data, "\n"))
		})
	}
}

func TestBackup_OpenFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "backup.gzip")
	m := NewManager(zerolog.Nop(), config.InfluxConfig{BackupPath: path})
	assert.Error(t, m.OpenBackup())
}
