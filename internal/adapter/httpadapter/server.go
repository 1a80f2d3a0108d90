package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/workout-locator/internal/calendar"
	"github.com/couchcryptid/workout-locator/internal/domain"
	"github.com/couchcryptid/workout-locator/internal/pipeline"
	"github.com/couchcryptid/workout-locator/internal/region"
)

// Catalog exposes the latest published snapshot.
type Catalog interface {
	Current() *pipeline.Snapshot
}

// Server exposes health, readiness, metrics, and the region endpoints.
type Server struct {
	httpServer *http.Server
	catalog    Catalog
	builder    *region.Builder
	loc        *time.Location
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and the
// /regions routes. Region reports are ordered against the package clock in loc.
func NewServer(addr string, ready sharedobs.ReadinessChecker, catalog Catalog, builder *region.Builder, loc *time.Location, logger *slog.Logger) *Server {
	mux := http.NewServeMux()
	if loc == nil {
		loc = time.Local
	}

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		catalog: catalog,
		builder: builder,
		loc:     loc,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /regions", s.handleRegions)
	mux.HandleFunc("GET /regions/{slug}", s.handleReport)
	mux.HandleFunc("GET /regions/{slug}/calendar.ics", s.handleCalendar)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type regionListing struct {
	Slug     string   `json:"slug"`
	Name     string   `json:"name"`
	Summary  string   `json:"summary"`
	Types    []string `json:"types"`
	Workouts int      `json:"workouts"`
}

func (s *Server) handleRegions(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}

	out := make([]regionListing, 0, len(snap.Reports))
	for _, slug := range snap.Slugs() {
		r := snap.Reports[slug]
		out = append(out, regionListing{
			Slug:     r.Slug,
			Name:     r.Name,
			Summary:  r.Summary,
			Types:    r.Types,
			Workouts: len(r.Workouts),
		})
	}
	sharedobs.WriteJSON(w, http.StatusOK, out)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if err := region.CheckDay(q.Get("day")); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	report, ok := s.report(w, r)
	if !ok {
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, s.builder.Refine(report, q.Get("day"), q.Get("type")))
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	report, ok := s.report(w, r)
	if !ok {
		return
	}

	body, err := calendar.NewExporter(report.Name, s.logger).Export(report.Workouts, s.now())
	if err != nil {
		s.logger.Error("calendar export failed", "region", report.Slug, "error", err)
		writeError(w, http.StatusInternalServerError, "calendar export failed")
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.Slug+`.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// report rebuilds the requested region against the current time so the
// order reflects the moment of the request rather than the last reload.
func (s *Server) report(w http.ResponseWriter, r *http.Request) (region.Report, bool) {
	snap, ok := s.snapshot(w)
	if !ok {
		return region.Report{}, false
	}
	slug := r.PathValue("slug")
	report, found := s.builder.Build(snap.Workouts, slug, s.now())
	if !found {
		writeError(w, http.StatusNotFound, "unknown region "+slug)
		return region.Report{}, false
	}
	return report, true
}

func (s *Server) snapshot(w http.ResponseWriter) (*pipeline.Snapshot, bool) {
	snap := s.catalog.Current()
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, "no workout snapshot loaded yet")
		return nil, false
	}
	return snap, true
}

func (s *Server) now() time.Time {
	return domain.Now().In(s.loc)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": msg})
}
