// Package worker fans batch conversions out over a bounded number of
// goroutines. A failed job is recorded in the batch report and never
// cancels its siblings.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"
)

// ErrNotScheduled marks jobs left unstarted because the context was done.
var ErrNotScheduled = errors.New("job not scheduled")

// Logger interface for pluggable logging. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
}

// JobFunc processes one named input.
type JobFunc[T any] func(ctx context.Context, name string) (T, error)

// Result is the outcome of one job.
type Result[T any] struct {
	Name     string
	Value    T
	Err      error
	Duration time.Duration
}

// Report collects the results of a batch in input order.
type Report[T any] struct {
	Kind    string
	Results []Result[T]
	Elapsed time.Duration
}

// Failures returns the results that carry an error.
func (r *Report[T]) Failures() []Result[T] {
	var out []Result[T]
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Succeeded returns the number of jobs without error.
func (r *Report[T]) Succeeded() int {
	return len(r.Results) - len(r.Failures())
}

// Err joins every failure, each prefixed with its input name. It is nil
// when all jobs succeeded.
func (r *Report[T]) Err() error {
	var errs []error
	for _, res := range r.Failures() {
		errs = append(errs, fmt.Errorf("%s: %w", res.Name, res.Err))
	}
	return errors.Join(errs...)
}

// Option configures a Pool.
type Option func(*Pool)

// WithProgress logs a progress line every n completed jobs.
func WithProgress(n int) Option {
	return func(p *Pool) {
		p.progressEvery = n
	}
}

// Pool runs batches with bounded concurrency.
type Pool struct {
	limit         int
	progressEvery int
	logger        Logger

	// OTEL metrics
	completed metric.Int64Counter
	failed    metric.Int64Counter
	duration  metric.Float64Histogram
}

// New creates a pool running at most limit jobs at once.
// Uses the global OTel meter for metrics (no-op if not configured).
func New(limit int, logger Logger, opts ...Option) (*Pool, error) {
	if limit < 1 {
		limit = 1
	}
	p := &Pool{limit: limit, logger: logger}
	for _, opt := range opts {
		opt(p)
	}

	m := meter()

	var err error

	p.completed, err = m.Int64Counter(
		"worker.jobs.completed",
		metric.WithDescription("Total jobs finished, successful or not"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating completed counter: %w", err)
	}

	p.failed, err = m.Int64Counter(
		"worker.jobs.failed",
		metric.WithDescription("Total jobs that returned an error"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating failed counter: %w", err)
	}

	p.duration, err = m.Float64Histogram(
		"worker.job.duration",
		metric.WithDescription("Job run time"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	return p, nil
}

// Limit returns the concurrency limit.
func (p *Pool) Limit() int {
	return p.limit
}

// Run calls job once per name and waits for all of them. Once ctx is done
// no further jobs are started; those are reported with ErrNotScheduled.
// Jobs already running receive ctx and decide for themselves.
func Run[T any](ctx context.Context, p *Pool, kind string, names []string, job JobFunc[T]) *Report[T] {
	start := time.Now()
	report := &Report[T]{Kind: kind, Results: make([]Result[T], len(names))}
	kindAttr := metric.WithAttributes(attribute.String("kind", kind))

	var done atomic.Int64
	var g errgroup.Group
	g.SetLimit(p.limit)

	for i, name := range names {
		report.Results[i].Name = name
		if ctx.Err() != nil {
			report.Results[i].Err = fmt.Errorf("%w: %w", ErrNotScheduled, ctx.Err())
			continue
		}

		g.Go(func() error {
			res := &report.Results[i]
			jobStart := time.Now()
			res.Value, res.Err = runJob(ctx, job, name)
			res.Duration = time.Since(jobStart)

			p.completed.Add(ctx, 1, kindAttr)
			p.duration.Record(ctx, res.Duration.Seconds(), kindAttr)
			if res.Err != nil {
				p.failed.Add(ctx, 1, kindAttr)
			}

			n := done.Add(1)
			if p.progressEvery > 0 && n%int64(p.progressEvery) == 0 {
				p.logger.Info("Batch progress", "kind", kind, "processed", n, "total", len(names))
			}
			return nil
		})
	}
	_ = g.Wait()

	report.Elapsed = time.Since(start)
	p.logReport(report.Kind, len(names), report.Succeeded(), report.Elapsed)
	for _, res := range report.Failures() {
		p.logger.Warn("Job failed", "kind", kind, "name", res.Name, "error", res.Err)
	}
	return report
}

func (p *Pool) logReport(kind string, total, ok int, elapsed time.Duration) {
	p.logger.Info("Batch finished",
		"kind", kind,
		"total", total,
		"succeeded", ok,
		"failed", total-ok,
		"elapsed", elapsed.Round(time.Millisecond).String(),
	)
}

// runJob turns a panic inside job into an error for that job alone.
func runJob[T any](ctx context.Context, job JobFunc[T], name string) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return job(ctx, name)
}
