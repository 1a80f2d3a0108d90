package viewport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/workout-locator/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultZoomTiers, cfg.Tiers)

	cfg.Tiers[0].Zoom = 1
	assert.Equal(t, 13, DefaultZoomTiers[0].Zoom, "DefaultConfig must copy the tier table")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"inverted bounds", func(c *Config) { c.MinZoom, c.MaxZoom = 15, 4 }, "min_zoom"},
		{"distances out of order", func(c *Config) { c.Tiers[1].MaxDistanceKm = 2 }, "max_distance_km"},
		{"zoom increases", func(c *Config) { c.Tiers[2].Zoom = 14 }, "zoom 14"},
		{"wide zoom too high", func(c *Config) { c.WideZoom = 12 }, "wide_zoom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	doc := `
tiers:
  - max_distance_km: 10
    zoom: 12
  - max_distance_km: 50
    zoom: 10
wide_zoom: 7
min_zoom: 3
default_center:
  lat: 35.5
  lng: -79.2
`
	cfg, err := LoadConfig(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, []ZoomTier{{MaxDistanceKm: 10, Zoom: 12}, {MaxDistanceKm: 50, Zoom: 10}}, cfg.Tiers)
	assert.Equal(t, 7, cfg.WideZoom)
	assert.Equal(t, 3, cfg.MinZoom)
	assert.Equal(t, MaxZoom, cfg.MaxZoom)
	assert.Equal(t, domain.LatLng{Lat: 35.5, Lng: -79.2}, cfg.DefaultCenter)
}

func TestLoadConfig_EmptyKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := LoadConfig(strings.NewReader("zoom_levels: 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode viewport config")

	_, err = LoadConfig(strings.NewReader("min_zoom: 16\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min_zoom")
}
