package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // IANA zones on hosts without a zoneinfo database

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/couchcryptid/workout-locator/internal/feed"
	"github.com/couchcryptid/workout-locator/internal/viewport"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	FeedPath   string
	FeedFormat feed.Format
	FeedSheet  string
	FeedWatch  bool
	Location   *time.Location

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Google Maps embed key. Map URLs are omitted when empty.
	MapsAPIKey string

	ViewportConfigPath string
	Viewport           viewport.Config
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	feedPath := sharedcfg.EnvOrDefault("FEED_PATH", "data/workouts.csv")
	if feedPath == "" {
		return nil, errors.New("FEED_PATH is required")
	}

	format, err := feed.ParseFormat(os.Getenv("FEED_FORMAT"), feedPath)
	if err != nil {
		return nil, fmt.Errorf("invalid FEED_FORMAT: %w", err)
	}

	loc, err := loadLocation(os.Getenv("TIMEZONE"))
	if err != nil {
		return nil, err
	}

	watch := true
	if v := os.Getenv("FEED_WATCH"); v != "" {
		watch, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid FEED_WATCH %q: %w", v, err)
		}
	}

	vpPath := os.Getenv("VIEWPORT_CONFIG")
	vpCfg, err := loadViewport(vpPath)
	if err != nil {
		return nil, err
	}

	return &Config{
		FeedPath:   feedPath,
		FeedFormat: format,
		FeedSheet:  os.Getenv("FEED_SHEET"),
		FeedWatch:  watch,
		Location:   loc,

		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		MapsAPIKey: os.Getenv("MAPS_API_KEY"),

		ViewportConfigPath: vpPath,
		Viewport:           vpCfg,
	}, nil
}

// Host zone sources, in the order the Go runtime consults them.
var (
	localtimePath = "/etc/localtime"
	timezonePath  = "/etc/timezone"
)

// loadLocation loads the TIMEZONE zone. Blank or "Local" means the host
// zone, resolved to its IANA name so calendar feeds can reference it.
func loadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		tz, set := os.LookupEnv("TZ")
		host, err := hostZone(tz, set)
		if err != nil {
			return nil, fmt.Errorf("TIMEZONE unset: %w", err)
		}
		name = host
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", name, err)
	}
	return loc, nil
}

// hostZone names the host zone: the TZ variable when set, otherwise the
// zoneinfo file /etc/localtime links to, otherwise /etc/timezone. A host
// with no zone information runs on UTC.
func hostZone(tz string, tzSet bool) (string, error) {
	if tzSet {
		tz = strings.TrimPrefix(tz, ":")
		switch {
		case tz == "":
			return "UTC", nil
		case filepath.IsAbs(tz):
			if name, ok := zoneFromPath(tz); ok {
				return name, nil
			}
			return "", fmt.Errorf("cannot name time zone file %s; set TIMEZONE", tz)
		default:
			return tz, nil
		}
	}

	target, err := filepath.EvalSymlinks(localtimePath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "UTC", nil
	case err != nil:
		return "", fmt.Errorf("reading host time zone: %w", err)
	}
	if name, ok := zoneFromPath(target); ok {
		return name, nil
	}
	if b, err := os.ReadFile(timezonePath); err == nil {
		if name := strings.TrimSpace(string(b)); name != "" {
			return name, nil
		}
	}
	return "", fmt.Errorf("cannot name host time zone %s; set TIMEZONE", localtimePath)
}

// zoneFromPath extracts "America/New_York" from a zoneinfo file path.
func zoneFromPath(path string) (string, bool) {
	path = filepath.ToSlash(path)
	_, name, ok := strings.Cut(path, "zoneinfo/")
	if !ok || name == "" {
		return "", false
	}
	for _, prefix := range []string{"posix/", "right/"} {
		name = strings.TrimPrefix(name, prefix)
	}
	return name, true
}

func loadViewport(path string) (viewport.Config, error) {
	if path == "" {
		return viewport.DefaultConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return viewport.Config{}, fmt.Errorf("open VIEWPORT_CONFIG: %w", err)
	}
	defer f.Close()

	cfg, err := viewport.LoadConfig(f)
	if err != nil {
		return viewport.Config{}, fmt.Errorf("VIEWPORT_CONFIG %s: %w", path, err)
	}
	return cfg, nil
}
