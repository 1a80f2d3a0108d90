package viewport

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/workout-locator/internal/domain"
)

const (
	// EarthRadiusKm is the mean Earth radius used for haversine distances.
	EarthRadiusKm = 6371.0

	// MinZoom and MaxZoom bound every computed zoom level.
	MinZoom = 4
	MaxZoom = 15

	// WideRegionalZoom applies when points spread past the last tier.
	WideRegionalZoom = 8
)

// DefaultCenter is the geographic center of the contiguous United States,
// used when there is nothing valid to frame.
var DefaultCenter = domain.LatLng{Lat: 39.8283, Lng: -98.5795}

// ZoomTier assigns Zoom to clusters whose widest pairwise distance is below
// MaxDistanceKm.
type ZoomTier struct {
	MaxDistanceKm float64 `yaml:"max_distance_km"`
	Zoom          int     `yaml:"zoom"`
}

// DefaultZoomTiers runs from neighborhood to regional scale.
var DefaultZoomTiers = []ZoomTier{
	{MaxDistanceKm: 5, Zoom: 13},  // neighborhood
	{MaxDistanceKm: 15, Zoom: 12}, // small city
	{MaxDistanceKm: 30, Zoom: 11}, // large city
	{MaxDistanceKm: 60, Zoom: 10}, // metropolitan
	{MaxDistanceKm: 100, Zoom: 9}, // regional
}

// Config controls how a Framer maps spread to zoom.
type Config struct {
	Tiers         []ZoomTier    `yaml:"tiers"`
	WideZoom      int           `yaml:"wide_zoom"`
	MinZoom       int           `yaml:"min_zoom"`
	MaxZoom       int           `yaml:"max_zoom"`
	DefaultCenter domain.LatLng `yaml:"default_center"`
}

// DefaultConfig returns the built-in tiers and bounds.
func DefaultConfig() Config {
	return Config{
		Tiers:         append([]ZoomTier(nil), DefaultZoomTiers...),
		WideZoom:      WideRegionalZoom,
		MinZoom:       MinZoom,
		MaxZoom:       MaxZoom,
		DefaultCenter: DefaultCenter,
	}
}

// Validate checks that tiers widen in distance and never zoom in as they
// widen, and that the clamp bounds are ordered.
func (c Config) Validate() error {
	if c.MinZoom > c.MaxZoom {
		return fmt.Errorf("min_zoom %d is greater than max_zoom %d", c.MinZoom, c.MaxZoom)
	}
	prev := ZoomTier{MaxDistanceKm: 0, Zoom: math.MaxInt}
	for i, t := range c.Tiers {
		if t.MaxDistanceKm <= prev.MaxDistanceKm {
			return fmt.Errorf("tier %d: max_distance_km %.2f must exceed the previous tier", i, t.MaxDistanceKm)
		}
		if t.Zoom > prev.Zoom {
			return fmt.Errorf("tier %d: zoom %d is greater than the previous tier", i, t.Zoom)
		}
		prev = t
	}
	if len(c.Tiers) > 0 && c.WideZoom > prev.Zoom {
		return errors.New("wide_zoom must not exceed the last tier's zoom")
	}
	return nil
}

// LoadConfig reads YAML overrides on top of DefaultConfig. Fields absent
// from the document keep their defaults; a tiers list replaces the default
// table wholesale.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode viewport config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("viewport config: %w", err)
	}
	return cfg, nil
}
