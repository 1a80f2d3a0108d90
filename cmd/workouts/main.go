// Command workouts serves regional workout schedules, or prints one region's
// report or calendar from a feed snapshot.
//
// Usage:
//
//	workouts -serve
//	workouts                                  # list regions
//	workouts -region raleigh -day thu         # ordered report as JSON
//	workouts -region raleigh -format ics      # weekly iCalendar feed
//
// The snapshot location and service settings come from the environment
// (FEED_PATH, FEED_FORMAT, TIMEZONE, HTTP_ADDR, ...).
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/workout-locator/internal/adapter/httpadapter"
	"github.com/couchcryptid/workout-locator/internal/calendar"
	"github.com/couchcryptid/workout-locator/internal/config"
	"github.com/couchcryptid/workout-locator/internal/domain"
	"github.com/couchcryptid/workout-locator/internal/feed"
	"github.com/couchcryptid/workout-locator/internal/observability"
	"github.com/couchcryptid/workout-locator/internal/pipeline"
	"github.com/couchcryptid/workout-locator/internal/region"
	"github.com/couchcryptid/workout-locator/internal/schedule"
	"github.com/couchcryptid/workout-locator/internal/viewport"
)

type options struct {
	serve  bool
	region string
	format string
	day    string
	typ    string
	now    string
}

func main() {
	var opts options
	flag.BoolVar(&opts.serve, "serve", false, "run the HTTP service")
	flag.StringVar(&opts.region, "region", "", "region slug to print; lists regions when empty")
	flag.StringVar(&opts.format, "format", "json", "output format: json or ics")
	flag.StringVar(&opts.day, "day", "", "only workouts on this day")
	flag.StringVar(&opts.typ, "type", "", "only workouts of this type")
	flag.StringVar(&opts.now, "now", "", "order relative to this RFC 3339 time, in its own offset, instead of the clock")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)

	if opts.serve {
		serve(cfg, logger)
		return
	}

	if err := printReport(os.Stdout, cfg, opts, logger); err != nil {
		logger.Error("workouts failed", "error", err)
		os.Exit(1)
	}
}

// newLogger installs the shared structured logger as the slog default.
func newLogger(cfg *config.Config) *slog.Logger {
	return sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
}

func serve(cfg *config.Config, logger *slog.Logger) {
	metrics := observability.NewMetrics()

	source := feed.FileSource{Path: cfg.FeedPath, Format: cfg.FeedFormat, Sheet: cfg.FeedSheet}
	store := pipeline.NewStore()

	// The pipeline's builder reports recoveries; request-time rebuilds of the
	// same snapshot stay silent so each record is counted once per load.
	metered := region.NewBuilder(
		schedule.NewScheduler(logger, metrics),
		viewport.NewFramer(cfg.Viewport, logger, metrics),
		cfg.MapsAPIKey,
		logger,
	)
	quiet := region.NewBuilder(nil, viewport.NewFramer(cfg.Viewport, nil, nil), cfg.MapsAPIKey, logger)

	p := pipeline.New(source, metered, store, logger, metrics, cfg.Location)
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, store, quiet, cfg.Location, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var changes <-chan struct{}
	if cfg.FeedWatch {
		ch, err := pipeline.Watch(ctx, cfg.FeedPath, pipeline.DefaultDebounce, logger)
		if err != nil {
			logger.Warn("feed watch disabled", "error", err)
		} else {
			changes = ch
			logger.Info("watching feed for changes", "path", cfg.FeedPath)
		}
	}

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start snapshot pipeline.
	go func() {
		if err := p.Run(ctx, changes); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}

func printReport(out io.Writer, cfg *config.Config, opts options, logger *slog.Logger) error {
	if err := region.CheckDay(opts.day); err != nil {
		return err
	}
	now, err := resolveNow(opts.now, cfg.Location)
	if err != nil {
		return err
	}

	source := feed.FileSource{Path: cfg.FeedPath, Format: cfg.FeedFormat, Sheet: cfg.FeedSheet}
	workouts, err := source.Load(context.Background())
	if err != nil {
		return err
	}

	builder := region.NewBuilder(
		schedule.NewScheduler(logger, nil),
		viewport.NewFramer(cfg.Viewport, logger, nil),
		cfg.MapsAPIKey,
		logger,
	)

	if opts.region == "" {
		for _, slug := range region.Slugs(workouts) {
			fmt.Fprintln(out, slug)
		}
		return nil
	}

	report, ok := builder.Build(workouts, opts.region, now)
	if !ok {
		return fmt.Errorf("unknown region %q", opts.region)
	}
	report = builder.Refine(report, opts.day, opts.typ)

	switch opts.format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "ics":
		body, err := calendar.NewExporter(report.Name, logger).Export(report.Workouts, now)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, body)
		return err
	default:
		return fmt.Errorf("unknown output format %q (want json or ics)", opts.format)
	}
}

func resolveNow(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return domain.Now().In(loc), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid -now: %w", err)
	}
	return t, nil
}
