// internal/storage/factory.go
package storage

import (
	"fmt"

	"github.com/lfvdata/atcviz/internal/config"
	"github.com/lfvdata/atcviz/internal/database"
	csvstorage "github.com/lfvdata/atcviz/internal/storage/csv"
	gormstorage "github.com/lfvdata/atcviz/internal/storage/gorm"
	"github.com/rs/zerolog"
)

// NewBackend creates an index sink based on configuration
func NewBackend(cfg config.IndexConfig, log zerolog.Logger) (Backend, error) {
	switch cfg.Sink {
	case "csv", "":
		return csvstorage.New(cfg.Output), nil
	case "sqlite":
		return gormstorage.New(database.NewManager(log), database.DriverSqlite, cfg.Output), nil
	case "postgres":
		return gormstorage.New(database.NewManager(log), database.DriverPostgres, ""), nil
	default:
		return nil, fmt.Errorf("unknown index sink: %s", cfg.Sink)
	}
}
