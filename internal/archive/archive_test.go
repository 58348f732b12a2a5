package archive

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArchive(t *testing.T, entries map[string]string, order []string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "recording.zip")
	f, err := os.Create(p)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, name := range order {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(w, entries[name])
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return p
}

func TestIsFlightEntry(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"100042.json", true},
		{"flights/0001.json", true},
		{"airspace.json", false},
		{"README", false},
		{"flights/", false},
		{"9", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsFlightEntry(tt.name))
		})
	}
}

func TestArchive(t *testing.T) {
	p := writeArchive(t, map[string]string{
		"data/200.json":  `{"id": "200"}`,
		"airspace.json":  `[]`,
		"data/100.json":  `{"id": "100"}`,
		"data/notes.txt": `x`,
	}, []string{"data/200.json", "airspace.json", "data/100.json", "data/notes.txt"})

	a, err := Open(p)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, p, a.Path())
	assert.Equal(t, 4, a.Len())
	assert.Equal(t, []string{"data/200.json", "data/100.json"}, a.FlightEntries())

	rc, err := a.Open("data/100.json")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, `{"id": "100"}`, string(data))

	rc, err = a.OpenAirspace()
	require.NoError(t, err)
	rc.Close()

	_, err = a.Open("data/missing.json")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestArchive_NoAirspace(t *testing.T) {
	p := writeArchive(t, map[string]string{"1.json": "{}"}, []string{"1.json"})
	a, err := Open(p)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.OpenAirspace()
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestOpen_NotAZip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "plain.zip")
	require.NoError(t, os.WriteFile(p, []byte("not a zip"), 0o644))
	_, err := Open(p)
	assert.Error(t, err)
}

func TestFiles(t *testing.T) {
	p := filepath.Join(t.TempDir(), "100.json")
	require.NoError(t, os.WriteFile(p, []byte("{}"), 0o644))

	var src Source = Files{}
	rc, err := src.Open(p)
	require.NoError(t, err)
	rc.Close()

	_, err = src.Open(p + ".missing")
	assert.Error(t, err)
}
