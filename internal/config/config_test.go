package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/workout-locator/internal/feed"
	"github.com/couchcryptid/workout-locator/internal/viewport"
)

// Pin the host zone so defaults do not depend on the machine running tests.
func TestMain(m *testing.M) {
	os.Setenv("TZ", "America/Chicago")
	os.Exit(m.Run())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/workouts.csv", cfg.FeedPath)
	assert.Equal(t, feed.FormatCSV, cfg.FeedFormat)
	assert.Empty(t, cfg.FeedSheet)
	assert.True(t, cfg.FeedWatch)
	assert.Equal(t, "America/Chicago", cfg.Location.String(), "host zone resolved to its name")
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.MapsAPIKey)
	assert.Equal(t, viewport.DefaultConfig(), cfg.Viewport)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("FEED_PATH", "/srv/feed/regions.xlsx")
	t.Setenv("FEED_SHEET", "Points")
	t.Setenv("FEED_WATCH", "false")
	t.Setenv("TIMEZONE", "America/New_York")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("MAPS_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/feed/regions.xlsx", cfg.FeedPath)
	assert.Equal(t, feed.FormatXLSX, cfg.FeedFormat)
	assert.Equal(t, "Points", cfg.FeedSheet)
	assert.False(t, cfg.FeedWatch)
	assert.Equal(t, "America/New_York", cfg.Location.String())
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "test-key", cfg.MapsAPIKey)
}

func TestLoad_ExplicitFormatOverridesExtension(t *testing.T) {
	t.Setenv("FEED_PATH", "feed.dat")
	t.Setenv("FEED_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, feed.FormatSheetsJSON, cfg.FeedFormat)
}

func TestLoad_InvalidFeedFormat(t *testing.T) {
	t.Setenv("FEED_FORMAT", "parquet")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FEED_FORMAT")
	assert.ErrorIs(t, err, feed.ErrUnknownFormat)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidTimezone(t *testing.T) {
	t.Setenv("TIMEZONE", "Mars/Olympus_Mons")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TIMEZONE")
}

func TestLoad_LocalTimezoneIsNamed(t *testing.T) {
	t.Setenv("TIMEZONE", "Local")
	t.Setenv("TZ", ":America/Denver")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "America/Denver", cfg.Location.String())
}

func TestHostZone(t *testing.T) {
	dir := t.TempDir()
	zoneFile := filepath.Join(dir, "zoneinfo", "America", "New_York")
	require.NoError(t, os.MkdirAll(filepath.Dir(zoneFile), 0o755))
	require.NoError(t, os.WriteFile(zoneFile, []byte("TZif"), 0o600))

	link := filepath.Join(dir, "localtime")
	require.NoError(t, os.Symlink(zoneFile, link))
	copied := filepath.Join(dir, "localtime-copy")
	require.NoError(t, os.WriteFile(copied, []byte("TZif"), 0o600))

	useHostFiles := func(t *testing.T, localtime, timezone string) {
		t.Helper()
		prevLocaltime, prevTimezone := localtimePath, timezonePath
		localtimePath, timezonePath = localtime, timezone
		t.Cleanup(func() { localtimePath, timezonePath = prevLocaltime, prevTimezone })
	}

	t.Run("TZ wins", func(t *testing.T) {
		useHostFiles(t, link, "")
		name, err := hostZone("Europe/Berlin", true)
		require.NoError(t, err)
		assert.Equal(t, "Europe/Berlin", name)
	})

	t.Run("empty TZ is UTC", func(t *testing.T) {
		name, err := hostZone("", true)
		require.NoError(t, err)
		assert.Equal(t, "UTC", name)
	})

	t.Run("TZ as a file path", func(t *testing.T) {
		name, err := hostZone("/usr/share/zoneinfo/posix/Asia/Tokyo", true)
		require.NoError(t, err)
		assert.Equal(t, "Asia/Tokyo", name)
	})

	t.Run("localtime link", func(t *testing.T) {
		useHostFiles(t, link, "")
		name, err := hostZone("", false)
		require.NoError(t, err)
		assert.Equal(t, "America/New_York", name)
	})

	t.Run("no zone information", func(t *testing.T) {
		useHostFiles(t, filepath.Join(dir, "absent"), "")
		name, err := hostZone("", false)
		require.NoError(t, err)
		assert.Equal(t, "UTC", name)
	})

	t.Run("copied localtime falls back to timezone file", func(t *testing.T) {
		timezone := filepath.Join(dir, "timezone")
		require.NoError(t, os.WriteFile(timezone, []byte("America/Phoenix\n"), 0o600))
		useHostFiles(t, copied, timezone)
		name, err := hostZone("", false)
		require.NoError(t, err)
		assert.Equal(t, "America/Phoenix", name)
	})

	t.Run("unnamed host zone", func(t *testing.T) {
		useHostFiles(t, copied, filepath.Join(dir, "absent"))
		_, err := hostZone("", false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "set TIMEZONE")
	})
}

func TestLoad_InvalidFeedWatch(t *testing.T) {
	t.Setenv("FEED_WATCH", "sometimes")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FEED_WATCH")
}

func TestLoad_ViewportConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewport.yaml")
	require.NoError(t, os.WriteFile(path, []byte("min_zoom: 5\nmax_zoom: 14\n"), 0o600))
	t.Setenv("VIEWPORT_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, path, cfg.ViewportConfigPath)
	assert.Equal(t, 5, cfg.Viewport.MinZoom)
	assert.Equal(t, 14, cfg.Viewport.MaxZoom)
	assert.Equal(t, viewport.DefaultZoomTiers, cfg.Viewport.Tiers)
}

func TestLoad_ViewportConfigErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		t.Setenv("VIEWPORT_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "VIEWPORT_CONFIG")
	})

	t.Run("invalid bounds", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "viewport.yaml")
		require.NoError(t, os.WriteFile(path, []byte("min_zoom: 16\n"), 0o600))
		t.Setenv("VIEWPORT_CONFIG", path)
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "min_zoom")
	})
}
