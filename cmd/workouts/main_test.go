package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/workout-locator/internal/config"
	"github.com/couchcryptid/workout-locator/internal/feed"
	"github.com/couchcryptid/workout-locator/internal/region"
	"github.com/couchcryptid/workout-locator/internal/viewport"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workouts.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"Entry ID,Region,Group,Time,Type,Name,Latitude,Longitude\n"+
			"1,Raleigh,Thursday,5:00 AM - 5:45 AM,Bootcamp,The Yard,35.771,-78.655\n"+
			"2,Raleigh,Friday,5:15 AM - 6:00 AM,Run,The Loop,35.779,-78.663\n"+
			"3,Durham,Monday,5:30 AM,Bootcamp,The Bull,35.994,-78.898\n",
	), 0o600))
	return &config.Config{
		FeedPath:   path,
		FeedFormat: feed.FormatCSV,
		Location:   time.UTC,
		Viewport:   viewport.DefaultConfig(),
	}
}

const thursdayMorning = "2024-02-01T10:30:00Z"

func TestPrintReport_ListsRegions(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printReport(&out, testConfig(t), options{format: "json", now: thursdayMorning}, slog.Default()))
	assert.Equal(t, "durham\nraleigh\n", out.String())
}

func TestPrintReport_JSON(t *testing.T) {
	var out bytes.Buffer
	opts := options{region: "raleigh", format: "json", now: thursdayMorning}
	require.NoError(t, printReport(&out, testConfig(t), opts, slog.Default()))

	var report region.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	require.Len(t, report.Workouts, 2)
	assert.Equal(t, "2", report.Workouts[0].ID)
	assert.Equal(t, "1", report.Workouts[1].ID)
}

func TestPrintReport_Filtered(t *testing.T) {
	var out bytes.Buffer
	opts := options{region: "raleigh", format: "json", day: "thu", now: thursdayMorning}
	require.NoError(t, printReport(&out, testConfig(t), opts, slog.Default()))

	var report region.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	require.Len(t, report.Workouts, 1)
	assert.Equal(t, "1", report.Workouts[0].ID)
}

func TestPrintReport_ICS(t *testing.T) {
	var out bytes.Buffer
	opts := options{region: "durham", format: "ics", now: thursdayMorning}
	require.NoError(t, printReport(&out, testConfig(t), opts, slog.Default()))

	assert.Contains(t, out.String(), "DTSTART:20240205T053000Z")
	assert.Contains(t, out.String(), "RRULE:FREQ=WEEKLY;BYDAY=MO")
}

func TestPrintReport_Errors(t *testing.T) {
	cfg := testConfig(t)

	tests := []struct {
		name string
		opts options
	}{
		{"unknown region", options{region: "chapel-hill", format: "json"}},
		{"unknown format", options{region: "raleigh", format: "xml"}},
		{"bad now", options{region: "raleigh", format: "json", now: "yesterday"}},
		{"unknown day", options{region: "raleigh", format: "json", day: "blursday"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, printReport(&bytes.Buffer{}, cfg, tt.opts, slog.Default()))
		})
	}
}

func TestNewLogger_FromConfig(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger := newLogger(&config.Config{LogLevel: "warn", LogFormat: "json"})

	ctx := context.Background()
	assert.False(t, logger.Enabled(ctx, slog.LevelInfo))
	assert.True(t, logger.Enabled(ctx, slog.LevelWarn))
	assert.Same(t, logger, slog.Default())
}
