package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/rs/zerolog"
)

// ParseZerologLevel maps a config level name to a zerolog level.
func ParseZerologLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewZerolog builds the logger used by the storage and metrics layers.
// Console output always goes to stdout; file, when non-nil, gets the same
// records without colors. Extra writers receive raw JSON.
func NewZerolog(file io.Writer, level string, extra ...io.Writer) zerolog.Logger {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	writers := []io.Writer{
		zerolog.ConsoleWriter{
			Out:        stdout,
			TimeFormat: time.RFC3339,
		},
	}
	if file != nil {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        file,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		})
	}
	for _, w := range extra {
		if w != nil {
			writers = append(writers, w)
		}
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(ParseZerologLevel(level)).
		With().Timestamp().Logger()
}

// NewGraylogWriter dials a GELF UDP endpoint and tags records with facility.
func NewGraylogWriter(address, facility string) (*gelf.Writer, error) {
	w, err := gelf.NewWriter(address)
	if err != nil {
		return nil, fmt.Errorf("graylog %s: %w", address, err)
	}
	w.Facility = facility
	return w, nil
}
