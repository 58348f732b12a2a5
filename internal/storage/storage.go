// internal/storage/storage.go
package storage

import "github.com/lfvdata/atcviz/pkg/core"

// Backend is the interface all index sinks must satisfy.
// Entries are written in call order; nothing is visible at the
// destination before Close returns successfully.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// WriteEntry records one flight row. source names the document the
	// entry was read from.
	WriteEntry(e *core.IndexEntry, source string) error
}
