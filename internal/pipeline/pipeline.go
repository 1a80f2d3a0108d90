package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/storm-data-shared/retry"

	"github.com/couchcryptid/workout-locator/internal/domain"
	"github.com/couchcryptid/workout-locator/internal/observability"
	"github.com/couchcryptid/workout-locator/internal/region"
)

// Source loads the full workout feed.
type Source interface {
	Load(ctx context.Context) ([]domain.Workout, error)
}

// ReportBuilder turns a feed into per-region reports.
type ReportBuilder interface {
	BuildAll(workouts []domain.Workout, now time.Time) map[string]region.Report
}

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// Pipeline loads snapshots from a Source, builds every region report and
// publishes the result to a Store.
type Pipeline struct {
	source  Source
	builder ReportBuilder
	store   *Store
	logger  *slog.Logger
	metrics *observability.Metrics
	loc     *time.Location
	ready   atomic.Bool
}

// New creates a Pipeline. Reports are built against the package clock in loc.
func New(source Source, builder ReportBuilder, store *Store, logger *slog.Logger, metrics *observability.Metrics, loc *time.Location) *Pipeline {
	if loc == nil {
		loc = time.Local
	}
	return &Pipeline{
		source:  source,
		builder: builder,
		store:   store,
		logger:  logger,
		metrics: metrics,
		loc:     loc,
	}
}

// CheckReadiness returns nil once a snapshot has been published, or an error
// describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no workout snapshot loaded yet")
	}
	return nil
}

// Ready reports whether a snapshot has been published.
func (p *Pipeline) Ready() bool {
	return p.ready.Load()
}

// Refresh loads the source once and publishes a new snapshot. On error the
// previous snapshot stays in place.
func (p *Pipeline) Refresh(ctx context.Context) error {
	start := time.Now()

	workouts, err := p.source.Load(ctx)
	if err != nil {
		p.metrics.Refreshes.WithLabelValues("error").Inc()
		return err
	}

	now := domain.Now().In(p.loc)
	reports := p.builder.BuildAll(workouts, now)

	p.store.Publish(&Snapshot{
		Workouts: workouts,
		Reports:  reports,
		LoadedAt: now,
	})

	p.metrics.Refreshes.WithLabelValues("success").Inc()
	p.metrics.WorkoutsLoaded.Set(float64(len(workouts)))
	p.metrics.RegionsBuilt.Set(float64(len(reports)))
	p.metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	p.metrics.PipelineReady.Set(1)
	p.ready.Store(true)

	p.logger.Info("snapshot published", "workouts", len(workouts), "regions", len(reports))
	return nil
}

// Run loads the first snapshot, retrying with exponential backoff, then
// refreshes on every signal from changes until the context is cancelled.
// A nil or closed changes channel means no further reloads.
func (p *Pipeline) Run(ctx context.Context, changes <-chan struct{}) error {
	p.logger.Info("pipeline started")

	if !p.initialLoad(ctx) {
		p.logger.Info("pipeline stopping", "reason", ctx.Err())
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		case _, ok := <-changes:
			if !ok {
				changes = nil
				p.logger.Info("feed watch stopped")
				continue
			}
			if err := p.Refresh(ctx); err != nil {
				p.logger.Error("snapshot reload failed, keeping previous", "error", err)
			}
		}
	}
}

// initialLoad retries Refresh until it succeeds. Returns false if the
// context ended first.
func (p *Pipeline) initialLoad(ctx context.Context) bool {
	backoff := initialBackoff
	for {
		err := p.Refresh(ctx)
		if err == nil {
			return true
		}
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("initial snapshot load failed", "error", err, "retry_in", backoff)
		if !retry.SleepWithContext(ctx, backoff) {
			return false
		}
		backoff = retry.NextBackoff(backoff, maxBackoff)
	}
}
