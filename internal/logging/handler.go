package logging

import (
	"context"
	"errors"
	"log/slog"
	"slices"
)

// ContextProvider returns attributes computed at log time, such as the
// archive being processed.
type ContextProvider func() []slog.Attr

// fanout sends each record to every handler enabled for its level. Nil
// handlers are dropped. A failing handler does not keep the record from the
// others; its error is joined into the result.
type fanout struct {
	handlers []slog.Handler
	context  ContextProvider
}

func newFanout(provider ContextProvider, handlers ...slog.Handler) *fanout {
	return &fanout{
		handlers: slices.DeleteFunc(slices.Clone(handlers), func(h slog.Handler) bool { return h == nil }),
		context:  provider,
	}
}

func (f *fanout) Enabled(ctx context.Context, level slog.Level) bool {
	return slices.ContainsFunc(f.handlers, func(h slog.Handler) bool {
		return h.Enabled(ctx, level)
	})
}

func (f *fanout) Handle(ctx context.Context, r slog.Record) error {
	if f.context != nil {
		r.AddAttrs(f.context()...)
	}
	var errs []error
	for _, h := range f.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	return f.derive(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (f *fanout) WithGroup(name string) slog.Handler {
	if name == "" {
		return f
	}
	return f.derive(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (f *fanout) derive(fn func(slog.Handler) slog.Handler) *fanout {
	out := &fanout{handlers: make([]slog.Handler, len(f.handlers)), context: f.context}
	for i, h := range f.handlers {
		out.handlers[i] = fn(h)
	}
	return out
}
