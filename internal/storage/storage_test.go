// internal/storage/storage_test.go
package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/lfvdata/atcviz/internal/config"
	"github.com/lfvdata/atcviz/internal/storage"
	csvstorage "github.com/lfvdata/atcviz/internal/storage/csv"
	gormstorage "github.com/lfvdata/atcviz/internal/storage/gorm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time interface checks
var (
	_ storage.Backend = (*csvstorage.Backend)(nil)
	_ storage.Backend = (*gormstorage.Backend)(nil)
)

func TestNewBackend(t *testing.T) {
	out := filepath.Join(t.TempDir(), "index")

	tests := []struct {
		sink     string
		expected any
	}{
		{"csv", &csvstorage.Backend{}},
		{"", &csvstorage.Backend{}},
		{"sqlite", &gormstorage.Backend{}},
		{"postgres", &gormstorage.Backend{}},
	}

	for _, tt := range tests {
		t.Run(tt.sink, func(t *testing.T) {
			b, err := storage.NewBackend(config.IndexConfig{Sink: tt.sink, Output: out}, zerolog.Nop())
			require.NoError(t, err)
			assert.IsType(t, tt.expected, b)
		})
	}
}

func TestNewBackend_Unknown(t *testing.T) {
	_, err := storage.NewBackend(config.IndexConfig{Sink: "parquet"}, zerolog.Nop())
	assert.ErrorContains(t, err, "unknown index sink")
}
