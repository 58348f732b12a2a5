package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/lfvdata/atcviz/internal/model"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"
)

// ErrUnknownDriver is returned for a driver other than postgres or sqlite.
var ErrUnknownDriver = errors.New("unknown database driver")

var memoryDBSeq atomic.Uint64

// Manager handles database connections and operations.
type Manager struct {
	DB     *gorm.DB
	SqlDB  *sql.DB
	Driver string
	// SqliteFilePath is where the in-memory SQLite database is written on Close.
	SqliteFilePath string
	Logger         zerolog.Logger
}

// NewManager creates a new database manager.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{Logger: log}
}

// Connect opens the database for driver. For SQLite the database lives in
// memory and is dumped to sqlitePath on Close; an empty path keeps it in
// memory only.
func (m *Manager) Connect(driver, sqlitePath string) error {
	var err error

	switch driver {
	case DriverPostgres:
		m.DB, err = m.GetPostgresDB()
	case DriverSqlite:
		m.SqliteFilePath = sqlitePath
		m.DB, err = m.GetSqliteDB("")
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	if err != nil {
		return fmt.Errorf("failed to open %s DB: %w", driver, err)
	}
	m.Driver = driver

	// test connection
	m.SqlDB, err = m.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	if err = m.SqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to validate connection: %w", err)
	}
	if driver == DriverPostgres {
		m.SqlDB.SetMaxOpenConns(10)
	}

	m.Logger.Info().Str("driver", driver).Msg("Connected to database")
	return nil
}

// PostgresDSN builds the connection string from the db.* settings.
func PostgresDSN() string {
	return fmt.Sprintf(`host=%s port=%s user=%s password=%s dbname=%s sslmode=disable`,
		viper.GetString("db.host"),
		viper.GetString("db.port"),
		viper.GetString("db.username"),
		viper.GetString("db.password"),
		viper.GetString("db.database"),
	)
}

// GetPostgresDB returns a connection to the Postgres database.
func (m *Manager) GetPostgresDB() (*gorm.DB, error) {
	m.Logger.Debug().
		Str("host", viper.GetString("db.host")).
		Str("database", viper.GetString("db.database")).
		Msg("Connecting to Postgres DB")

	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  PostgresDSN(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        10000,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
}

// GetSqliteDB returns a connection to a SQLite database.
// If path is empty, uses a private in-memory database.
func (m *Manager) GetSqliteDB(path string) (*gorm.DB, error) {
	dsn := path
	if dsn == "" {
		dsn = fmt.Sprintf("file:atcviz_%d?mode=memory&cache=shared", memoryDBSeq.Add(1))
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		CreateBatchSize:        2000,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if path != "" {
		m.Logger.Info().Str("path", path).Msg("Using local SQLite DB")
	} else {
		m.Logger.Info().Msg("Using local SQLite DB in memory")
	}

	// set PRAGMAS
	pragmas := []string{
		"PRAGMA user_version = 1;",
		"PRAGMA journal_mode = MEMORY;",
		"PRAGMA synchronous = OFF;",
		"PRAGMA cache_size = -32000;",
		"PRAGMA temp_store = MEMORY;",
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %w", err)
		}
	}

	return db, nil
}

// Setup recreates the index tables. Earlier contents are dropped: every
// run writes its index from scratch.
func (m *Manager) Setup() error {
	migrator := m.DB.Migrator()
	for _, mdl := range model.DatabaseModels {
		if migrator.HasTable(mdl) {
			if err := migrator.DropTable(mdl); err != nil {
				return fmt.Errorf("failed to drop %T: %w", mdl, err)
			}
		}
	}

	m.Logger.Info().Msg("Migrating schema")
	if err := m.DB.AutoMigrate(model.DatabaseModels...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	m.Logger.Info().Msg("Database setup complete")
	return nil
}

// Close writes an in-memory SQLite database to its file, if one is set,
// and closes the connection.
func (m *Manager) Close() error {
	var dumpErr error
	if m.Driver == DriverSqlite && m.SqliteFilePath != "" {
		dumpErr = m.DumpMemoryToDisk()
	}
	if m.SqlDB == nil {
		return dumpErr
	}
	return errors.Join(dumpErr, m.SqlDB.Close())
}

// DumpMemoryToDisk vacuums the in-memory database to a file.
func (m *Manager) DumpMemoryToDisk() error {
	if m.SqliteFilePath == "" {
		return fmt.Errorf("sqlite file path not set")
	}

	// remove existing file if it exists
	if exists, err := os.Stat(m.SqliteFilePath); err == nil && exists != nil {
		if err := os.Remove(m.SqliteFilePath); err != nil {
			return fmt.Errorf("error removing existing DB file: %w", err)
		}
	}

	start := time.Now()
	target := strings.ReplaceAll(m.SqliteFilePath, "'", "''")
	err := m.DB.Exec("VACUUM INTO 'file:" + target + "';").Error
	if err != nil {
		return fmt.Errorf("error dumping memory DB to disk: %w", err)
	}

	m.Logger.Debug().Dur("duration", time.Since(start)).Str("path", m.SqliteFilePath).Msg("Dumped memory DB to disk")
	return nil
}
