// Package archive reads flight and airspace documents out of a recording
// archive (a ZIP file) or from plain files.
package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/klauspost/compress/zip"
)

// AirspaceEntry is the archive entry holding the airspace document.
const AirspaceEntry = "airspace.json"

// ErrEntryNotFound is returned when a named entry is not in the archive.
var ErrEntryNotFound = errors.New("archive entry not found")

// Source opens documents by name.
type Source interface {
	Open(name string) (io.ReadCloser, error)
}

// Archive is an open recording archive.
type Archive struct {
	path    string
	zr      *zip.ReadCloser
	entries map[string]*zip.File
}

// Open opens the archive at path.
func Open(path string) (*Archive, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	a := &Archive{path: path, zr: zr, entries: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		a.entries[f.Name] = f
	}
	return a, nil
}

// Close releases the archive.
func (a *Archive) Close() error {
	return a.zr.Close()
}

// Path returns the file the archive was opened from.
func (a *Archive) Path() string {
	return a.path
}

// Len returns the total number of entries.
func (a *Archive) Len() int {
	return len(a.zr.File)
}

// FlightEntries returns the names of all flight documents in archive order.
func (a *Archive) FlightEntries() []string {
	var names []string
	for _, f := range a.zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if IsFlightEntry(f.Name) {
			names = append(names, f.Name)
		}
	}
	return names
}

// Open opens the named entry.
func (a *Archive) Open(name string) (io.ReadCloser, error) {
	f, ok := a.entries[name]
	if !ok {
		return nil, fmt.Errorf("%s in %s: %w", name, a.path, ErrEntryNotFound)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s in %s: %w", name, a.path, err)
	}
	return rc, nil
}

// OpenAirspace opens the airspace document.
func (a *Archive) OpenAirspace() (io.ReadCloser, error) {
	return a.Open(AirspaceEntry)
}

// IsFlightEntry reports whether an entry name denotes a flight document:
// its base name starts with a decimal digit.
func IsFlightEntry(name string) bool {
	base := path.Base(name)
	return base != "" && base[0] >= '0' && base[0] <= '9'
}

// Files opens documents straight from the file system.
type Files struct{}

func (Files) Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return f, nil
}
