package region

import (
	"log/slog"
	"time"

	"github.com/couchcryptid/workout-locator/internal/domain"
	"github.com/couchcryptid/workout-locator/internal/schedule"
	"github.com/couchcryptid/workout-locator/internal/viewport"
)

// Report is the assembled view of one region.
type Report struct {
	Name            string           `json:"name"`
	Slug            string           `json:"slug"`
	Website         string           `json:"website,omitempty"`
	Summary         string           `json:"summary"`
	ServedLocations []string         `json:"served_locations"`
	Types           []string         `json:"types"`
	Workouts        []domain.Workout `json:"workouts"`
	Viewport        domain.Viewport  `json:"viewport"`
	MapURL          string           `json:"map_url,omitempty"`
}

// Builder assembles region reports from a full feed.
type Builder struct {
	scheduler *schedule.Scheduler
	framer    *viewport.Framer
	apiKey    string
	logger    *slog.Logger
}

// NewBuilder creates a Builder. A nil scheduler or framer falls back to the
// silent defaults.
func NewBuilder(scheduler *schedule.Scheduler, framer *viewport.Framer, apiKey string, logger *slog.Logger) *Builder {
	if scheduler == nil {
		scheduler = schedule.NewScheduler(nil, nil)
	}
	if framer == nil {
		framer = viewport.NewFramer(viewport.DefaultConfig(), nil, nil)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Builder{scheduler: scheduler, framer: framer, apiKey: apiKey, logger: logger}
}

// Build assembles the report for slug. It reports false when no workout
// belongs to the region.
func (b *Builder) Build(workouts []domain.Workout, slug string, now time.Time) (Report, bool) {
	selected := Select(workouts, slug)
	if len(selected) == 0 {
		return Report{}, false
	}
	return b.assemble(slug, selected, now), true
}

// BuildAll assembles one report per region slug in the feed.
func (b *Builder) BuildAll(workouts []domain.Workout, now time.Time) map[string]Report {
	out := make(map[string]Report)
	for _, slug := range Slugs(workouts) {
		out[slug] = b.assemble(slug, Select(workouts, slug), now)
	}
	b.logger.Debug("region reports built", "regions", len(out), "workouts", len(workouts))
	return out
}

func (b *Builder) assemble(slug string, selected []domain.Workout, now time.Time) Report {
	ordered := b.scheduler.Order(selected, now)
	vp := b.framer.Frame(domain.Coordinates(selected))
	places := ServedLocations(selected)

	return Report{
		Name:            selected[0].Region,
		Slug:            slug,
		Website:         firstWebsite(selected),
		Summary:         summarize(places),
		ServedLocations: places,
		Types:           Types(selected),
		Workouts:        ordered,
		Viewport:        vp,
		MapURL:          MapURL(vp, b.apiKey),
	}
}

// Refine narrows a report's workouts by day and type and reframes the map to
// the remaining markers. Empty filters return the report unchanged.
func (b *Builder) Refine(r Report, day, typ string) Report {
	if day == "" && typ == "" {
		return r
	}
	filtered := FilterByType(FilterByDay(r.Workouts, day), typ)
	r.Workouts = filtered
	r.Viewport = b.framer.Frame(domain.Coordinates(filtered))
	r.MapURL = MapURL(r.Viewport, b.apiKey)
	return r
}

func firstWebsite(workouts []domain.Workout) string {
	for _, w := range workouts {
		if w.Website != "" {
			return w.Website
		}
	}
	return ""
}
