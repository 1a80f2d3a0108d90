package viewport

import (
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/couchcryptid/workout-locator/internal/domain"
)

// Framer computes map viewports for sets of coordinates.
type Framer struct {
	cfg      Config
	logger   *slog.Logger
	recorder domain.AnomalyRecorder
}

// NewFramer creates a Framer. The config is assumed valid (see
// Config.Validate); a nil logger or recorder discards output.
func NewFramer(cfg Config, logger *slog.Logger, recorder domain.AnomalyRecorder) *Framer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if recorder == nil {
		recorder = domain.NopRecorder{}
	}
	return &Framer{cfg: cfg, logger: logger, recorder: recorder}
}

var defaultFramer = NewFramer(DefaultConfig(), nil, nil)

// Frame computes a viewport with DefaultConfig. See [Framer.Frame].
func Frame(points []domain.Coordinate) domain.Viewport {
	return defaultFramer.Frame(points)
}

// Frame centers the map on the arithmetic mean of the valid points and picks
// a zoom from the widest pairwise great-circle distance between them.
// Points whose latitude or longitude is not a finite number are dropped.
// With nothing valid left it returns the default viewport.
func (f *Framer) Frame(points []domain.Coordinate) domain.Viewport {
	markers := make([]domain.Marker, 0, len(points))
	for _, p := range points {
		lat, okLat := parseDegrees(p.Lat)
		lng, okLng := parseDegrees(p.Lng)
		if !okLat || !okLng {
			f.logger.Warn("invalid coordinate, leaving out of viewport",
				"title", p.Title,
				"lat", p.Lat,
				"lng", p.Lng,
			)
			f.recorder.RecordAnomaly(domain.AnomalyInvalidCoordinate)
			continue
		}
		markers = append(markers, domain.Marker{Lat: lat, Lng: lng, Title: p.Title})
	}

	if len(markers) == 0 {
		return f.Default()
	}

	return domain.Viewport{
		Center:  centroid(markers),
		Zoom:    f.clamp(ZoomFor(maxDistanceKm(markers), f.cfg)),
		Markers: markers,
	}
}

// Default is the viewport used when there is nothing to frame.
func (f *Framer) Default() domain.Viewport {
	return domain.Viewport{
		Center:  f.cfg.DefaultCenter,
		Zoom:    f.cfg.MinZoom,
		Markers: []domain.Marker{},
	}
}

// ZoomFor walks the tier table in order and returns the zoom of the first
// tier the distance falls under, or cfg.WideZoom past the last one. It does
// not clamp.
func ZoomFor(distanceKm float64, cfg Config) int {
	for _, t := range cfg.Tiers {
		if distanceKm < t.MaxDistanceKm {
			return t.Zoom
		}
	}
	return cfg.WideZoom
}

// HaversineKm returns the great-circle distance between a and b.
func HaversineKm(a, b domain.LatLng) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng
	// Rounding can push h a hair past 1 for antipodal points.
	h = math.Min(1, h)
	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

func (f *Framer) clamp(zoom int) int {
	return min(max(zoom, f.cfg.MinZoom), f.cfg.MaxZoom)
}

// centroid is the plain mean of latitudes and longitudes. It is not
// geodesically exact and does not handle clusters straddling the
// antimeridian, neither of which matters at regional scale.
func centroid(markers []domain.Marker) domain.LatLng {
	var sumLat, sumLng float64
	for _, m := range markers {
		sumLat += m.Lat
		sumLng += m.Lng
	}
	n := float64(len(markers))
	return domain.LatLng{Lat: sumLat / n, Lng: sumLng / n}
}

func maxDistanceKm(markers []domain.Marker) float64 {
	var widest float64
	for i := range markers {
		a := domain.LatLng{Lat: markers[i].Lat, Lng: markers[i].Lng}
		for j := i + 1; j < len(markers); j++ {
			b := domain.LatLng{Lat: markers[j].Lat, Lng: markers[j].Lng}
			widest = max(widest, HaversineKm(a, b))
		}
	}
	return widest
}

// parseDegrees accepts any finite decimal number.
func parseDegrees(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
