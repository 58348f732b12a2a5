package influx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/influxdata/influxdb-client-go/v2/domain"
	"github.com/klauspost/compress/gzip"
	"github.com/lfvdata/atcviz/internal/config"
	"github.com/rs/zerolog"
)

// Measurement is the measurement name of conversion stats points.
const Measurement = "conversion"

// ErrDisabled is returned by Connect when influx.enabled is false.
var ErrDisabled = errors.New("influx is disabled")

// Stats describes one converted flight record or airspace file.
type Stats struct {
	Kind       string // flight, airspace or index
	Name       string
	Plots      int
	Events     int
	Fixes      int
	Placemarks int
	Duration   time.Duration
	OK         bool
	At         time.Time
}

// Point returns the stats as an InfluxDB point.
func (s Stats) Point() *influxdb2_write.Point {
	at := s.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	return influxdb2_write.NewPoint(
		Measurement,
		map[string]string{
			"kind": s.Kind,
			"name": s.Name,
		},
		map[string]interface{}{
			"plots":       s.Plots,
			"events":      s.Events,
			"fixes":       s.Fixes,
			"placemarks":  s.Placemarks,
			"duration_ms": s.Duration.Milliseconds(),
			"ok":          s.OK,
		},
		at,
	)
}

// Manager writes conversion stats to InfluxDB, or to a gzip'd line
// protocol backup file when the server cannot be reached.
type Manager struct {
	Client  influxdb2.Client
	Writer  influxdb2_api.WriteAPI
	IsValid bool
	Config  config.InfluxConfig
	Logger  zerolog.Logger

	mu         sync.Mutex
	backupFile *os.File
	backup     *gzip.Writer
}

// NewManager creates a new InfluxDB manager.
func NewManager(log zerolog.Logger, cfg config.InfluxConfig) *Manager {
	return &Manager{
		Config: cfg,
		Logger: log,
	}
}

// Connect establishes a connection to InfluxDB, falling back to the backup
// file when the server does not answer a ping.
func (m *Manager) Connect(ctx context.Context) error {
	if !m.Config.Enabled {
		return ErrDisabled
	}

	m.Client = influxdb2.NewClientWithOptions(
		m.Config.URL,
		m.Config.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(500).
			SetFlushInterval(1000),
	)

	running, err := m.Client.Ping(ctx)
	if err != nil || !running {
		m.IsValid = false
		m.Logger.Warn().Err(err).Str("backupPath", m.Config.BackupPath).
			Msg("InfluxDB not reachable, writing to backup file")
		return m.OpenBackup()
	}

	if err := m.setupOrganizationAndBucket(ctx); err != nil {
		return err
	}
	m.createWriter()
	m.IsValid = true
	m.Logger.Info().Str("url", m.Config.URL).Msg("InfluxDB client initialized")
	return nil
}

// OpenBackup opens the backup file for appending.
func (m *Manager) OpenBackup() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.backup != nil {
		return nil
	}

	file, err := os.OpenFile(m.Config.BackupPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error creating backup file: %w", err)
	}
	m.backupFile = file
	m.backup = gzip.NewWriter(file)
	return nil
}

func (m *Manager) setupOrganizationAndBucket(ctx context.Context) error {
	orgName := m.Config.Org

	org, err := m.Client.OrganizationsAPI().FindOrganizationByName(ctx, orgName)
	if err != nil {
		m.Logger.Info().Str("org", orgName).Msg("Organization not found, creating")
		org, err = m.Client.OrganizationsAPI().CreateOrganizationWithName(ctx, orgName)
		if err != nil {
			m.Logger.Error().Err(err).Str("org", orgName).Msg("Error creating organization")
			return err
		}
	}

	bucket := m.Config.Bucket
	if _, err = m.Client.BucketsAPI().FindBucketByName(ctx, bucket); err != nil {
		m.Logger.Info().Str("bucket", bucket).Msg("Bucket not found, creating")

		rule := domain.RetentionRuleTypeExpire
		_, err = m.Client.BucketsAPI().CreateBucketWithName(ctx, org, bucket, domain.RetentionRule{
			Type:         &rule,
			EverySeconds: 60 * 60 * 24 * 90, // 90 days
		})
		if err != nil {
			m.Logger.Error().Err(err).Str("bucket", bucket).Msg("Error creating bucket")
			return err
		}
	}

	return nil
}

func (m *Manager) createWriter() {
	m.Writer = m.Client.WriteAPI(m.Config.Org, m.Config.Bucket)

	go func(errorsCh <-chan error) {
		for writeErr := range errorsCh {
			m.Logger.Error().Err(writeErr).Str("bucket", m.Config.Bucket).
				Msg("Error sending data to InfluxDB")
		}
	}(m.Writer.Errors())
}

// WriteStats records one conversion. A nil manager discards the stats.
func (m *Manager) WriteStats(s Stats) error {
	if m == nil {
		return nil
	}
	return m.WritePoint(s.Point())
}

// WritePoint writes a point to InfluxDB or the backup file.
func (m *Manager) WritePoint(point *influxdb2_write.Point) error {
	if m.IsValid {
		m.Writer.WritePoint(point)
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.backup == nil {
		return errors.New("influxDB client not initialized and backup writer not available")
	}

	lineProtocol := influxdb2_write.PointToLineProtocol(point, time.Nanosecond)
	if _, err := m.backup.Write([]byte(lineProtocol)); err != nil {
		return fmt.Errorf("error writing to InfluxDB backup file: %w", err)
	}
	return nil
}

// Close flushes pending points and releases the client or backup file.
func (m *Manager) Close() error {
	if m == nil {
		return nil
	}

	if m.Writer != nil {
		m.Writer.Flush()
	}
	if m.Client != nil {
		m.Client.Close()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.backup == nil {
		return nil
	}
	err := errors.Join(m.backup.Close(), m.backupFile.Close())
	m.backup, m.backupFile = nil, nil
	return err
}
