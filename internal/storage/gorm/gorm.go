// Package gormstorage writes the flight index to a SQL table through GORM.
// Rows are queued and inserted in batches.
package gormstorage

import (
	"fmt"

	"github.com/lfvdata/atcviz/internal/database"
	"github.com/lfvdata/atcviz/internal/model"
	"github.com/lfvdata/atcviz/internal/model/convert"
	"github.com/lfvdata/atcviz/internal/queue"
	"github.com/lfvdata/atcviz/pkg/core"
)

// BatchSize is the number of queued rows that triggers an insert.
const BatchSize = 500

// Backend implements storage.Backend on a database.Manager.
// It is not safe for concurrent use.
type Backend struct {
	db         *database.Manager
	driver     string
	sqlitePath string
	batch      *queue.Batch[model.FlightIndex]
	written    int
}

// New creates a sink for driver. sqlitePath is only used by the sqlite
// driver and names the file the database is written to.
func New(db *database.Manager, driver, sqlitePath string) *Backend {
	return &Backend{
		db:         db,
		driver:     driver,
		sqlitePath: sqlitePath,
		batch:      queue.NewBatch[model.FlightIndex](BatchSize),
	}
}

// Init connects and recreates the index table.
func (b *Backend) Init() error {
	if err := b.db.Connect(b.driver, b.sqlitePath); err != nil {
		return err
	}
	if err := b.db.Setup(); err != nil {
		b.db.Close()
		return fmt.Errorf("failed to setup DB: %w", err)
	}
	return nil
}

func (b *Backend) WriteEntry(e *core.IndexEntry, source string) error {
	if rows, ok := b.batch.Add(convert.IndexEntryToFlightIndex(*e, source)); ok {
		return b.insert(rows)
	}
	return nil
}

func (b *Backend) flush() error {
	return b.insert(b.batch.Drain())
}

func (b *Backend) insert(rows []model.FlightIndex) error {
	if len(rows) == 0 {
		return nil
	}
	if err := b.db.DB.CreateInBatches(&rows, BatchSize).Error; err != nil {
		return fmt.Errorf("failed to insert %d index rows: %w", len(rows), err)
	}
	b.written += len(rows)
	b.db.Logger.Debug().Int("rows", len(rows)).Int("total", b.written).Msg("Flushed index rows")
	return nil
}

// Close inserts what is still queued and closes the database.
func (b *Backend) Close() error {
	flushErr := b.flush()
	closeErr := b.db.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// Written returns the number of rows inserted so far.
func (b *Backend) Written() int {
	return b.written
}
