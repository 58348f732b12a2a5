package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// stdout is the console destination; tests swap it.
var stdout io.Writer = os.Stdout

// Options configures SlogManager.Setup.
type Options struct {
	// File receives text output. When nil, the console is used instead.
	File io.Writer
	// Level is one of debug, info, warn, error. Unknown values mean info.
	Level string
	// Extra writers receive JSON records, e.g. a Graylog writer.
	Extra []io.Writer
	// Context adds dynamic attributes to every record.
	Context ContextProvider
}

// SlogManager manages slog-based logging for the converters.
type SlogManager struct {
	logger  *slog.Logger
	closers []io.Closer
}

// NewSlogManager creates a new slog-based logging manager.
func NewSlogManager() *SlogManager {
	return &SlogManager{}
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "TRACE", "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup initializes the logging system. Calling it again replaces the
// previous handlers.
func (m *SlogManager) Setup(opts Options) {
	lvl := parseLevel(opts.Level)

	handlerOpts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
				}
			}
			return a
		},
	}

	var handlers []slog.Handler
	if opts.File != nil {
		handlers = append(handlers, slog.NewTextHandler(opts.File, handlerOpts))
	} else {
		handlers = append(handlers, slog.NewTextHandler(stdout, handlerOpts))
	}
	m.closers = m.closers[:0]
	for _, w := range opts.Extra {
		if w == nil {
			continue
		}
		handlers = append(handlers, slog.NewJSONHandler(w, handlerOpts))
		if c, ok := w.(io.Closer); ok {
			m.closers = append(m.closers, c)
		}
	}

	m.logger = slog.New(newFanout(opts.Context, handlers...))
	m.logger.Debug("Logging initialized", "level", opts.Level)
}

// Logger returns the configured slog.Logger.
func (m *SlogManager) Logger() *slog.Logger {
	if m.logger == nil {
		return slog.Default()
	}
	return m.logger
}

// Close releases extra writers that hold connections.
func (m *SlogManager) Close(ctx context.Context) error {
	var firstErr error
	for _, c := range m.closers {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	return firstErr
}

// WriteLog writes a log entry tagged with the calling operation.
func (m *SlogManager) WriteLog(operation, data, level string) {
	if m.logger == nil {
		return
	}

	switch parseLevel(level) {
	case slog.LevelDebug:
		m.logger.Debug(data, "operation", operation)
	case slog.LevelWarn:
		m.logger.Warn(data, "operation", operation)
	case slog.LevelError:
		m.logger.Error(data, "operation", operation)
	default:
		m.logger.Info(data, "operation", operation)
	}
}
