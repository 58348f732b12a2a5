package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textHandler(buf *bytes.Buffer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(buf, &slog.HandlerOptions{Level: level})
}

type failingHandler struct{ slog.Handler }

func (failingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (failingHandler) Handle(context.Context, slog.Record) error {
	return errors.New("sink down")
}

func TestFanout_LevelsPerHandler(t *testing.T) {
	var info, warn bytes.Buffer
	h := newFanout(nil, textHandler(&info, slog.LevelInfo), nil, textHandler(&warn, slog.LevelWarn))
	require.Len(t, h.handlers, 2)

	log := slog.New(h)
	log.Info("Batch finished")
	log.Warn("Job failed")

	assert.Contains(t, info.String(), "Batch finished")
	assert.Contains(t, info.String(), "Job failed")
	assert.NotContains(t, warn.String(), "Batch finished")
	assert.Contains(t, warn.String(), "Job failed")
}

func TestFanout_Enabled(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		handlers []slog.Handler
		level    slog.Level
		want     bool
	}{
		{"no handlers", nil, slog.LevelError, false},
		{"below all", []slog.Handler{textHandler(&bytes.Buffer{}, slog.LevelInfo)}, slog.LevelDebug, false},
		{"any handler accepts", []slog.Handler{
			textHandler(&bytes.Buffer{}, slog.LevelWarn),
			textHandler(&bytes.Buffer{}, slog.LevelDebug),
		}, slog.LevelDebug, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newFanout(nil, tt.handlers...).Enabled(ctx, tt.level))
		})
	}
}

func TestFanout_FailingHandlerDoesNotStarveOthers(t *testing.T) {
	var buf bytes.Buffer
	h := newFanout(nil, failingHandler{}, textHandler(&buf, slog.LevelInfo))

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "Converted flight", 0)
	err := h.Handle(context.Background(), r)

	assert.EqualError(t, err, "sink down")
	assert.Contains(t, buf.String(), "Converted flight")
}

func TestFanout_AttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	h := newFanout(nil, textHandler(&buf, slog.LevelInfo))

	assert.Same(t, h, h.WithGroup(""))

	log := slog.New(h.WithAttrs([]slog.Attr{slog.String("kind", "flight")}).WithGroup("job"))
	log.Info("done", "name", "100234.json")

	assert.Contains(t, buf.String(), "kind=flight job.name=100234.json")
}

func TestFanout_ContextSurvivesDerivation(t *testing.T) {
	var buf bytes.Buffer
	h := newFanout(func() []slog.Attr {
		return []slog.Attr{slog.Int("worker", 7)}
	}, textHandler(&buf, slog.LevelInfo))

	slog.New(h.WithAttrs(nil)).Info("scheduled")

	assert.Contains(t, buf.String(), "worker=7")
}
