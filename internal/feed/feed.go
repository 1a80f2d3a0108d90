// Package feed maps a tabular snapshot of the regional workout sheet into
// domain workouts. It does no network I/O: callers hand it the header and
// rows of an export that has already been fetched.
package feed

import (
	"errors"
	"fmt"
	"strings"

	"github.com/couchcryptid/workout-locator/internal/domain"
)

var (
	ErrMissingHeader       = errors.New("snapshot has no header row")
	ErrMissingRegionColumn = errors.New("region column not found")
)

// Column names as they appear in the sheet's header row.
const (
	ColumnRegion = "Region"
	ColumnTime   = "Time"
)

// columns maps known header names to the workout field they fill.
var columns = map[string]func(w *domain.Workout) *string{
	"Entry ID":     func(w *domain.Workout) *string { return &w.ID },
	ColumnRegion:   func(w *domain.Workout) *string { return &w.Region },
	"Location":     func(w *domain.Workout) *string { return &w.Location },
	"Group":        func(w *domain.Workout) *string { return &w.Group },
	"Workout Type": func(w *domain.Workout) *string { return &w.WorkoutType },
	ColumnTime:     func(w *domain.Workout) *string { return &w.Time },
	"Type":         func(w *domain.Workout) *string { return &w.Type },
	"Name":         func(w *domain.Workout) *string { return &w.Name },
	"Description":  func(w *domain.Workout) *string { return &w.Description },
	"Notes":        func(w *domain.Workout) *string { return &w.Notes },
	"Website":      func(w *domain.Workout) *string { return &w.Website },
	"Latitude":     func(w *domain.Workout) *string { return &w.Latitude },
	"Longitude":    func(w *domain.Workout) *string { return &w.Longitude },
	"Marker Icon":  func(w *domain.Workout) *string { return &w.MarkerIcon },
	"Marker Color": func(w *domain.Workout) *string { return &w.MarkerColor },
	"Icon Color":   func(w *domain.Workout) *string { return &w.IconColor },
	"Custom Size":  func(w *domain.Workout) *string { return &w.CustomSize },
	"Image":        func(w *domain.Workout) *string { return &w.Image },
}

// ParseRecords treats the first record as the header. See [Parse].
func ParseRecords(records [][]string) ([]domain.Workout, error) {
	if len(records) == 0 {
		return nil, ErrMissingHeader
	}
	return Parse(records[0], records[1:])
}

// Parse maps rows to workouts by header name. The header must include a
// Region column. Unknown columns land in Workout.Extra, short rows read as
// blank cells, fully blank rows are skipped, and the Time column is
// rewritten with NormalizeTimeRange. Each workout records its sheet row,
// so numbering survives skipped blank rows.
func Parse(header []string, rows [][]string) ([]domain.Workout, error) {
	names := make([]string, len(header))
	hasRegion := false
	for i, h := range header {
		names[i] = strings.TrimSpace(h)
		if names[i] == ColumnRegion {
			hasRegion = true
		}
	}
	if !hasRegion {
		return nil, fmt.Errorf("parse feed: %w (header: %q)", ErrMissingRegionColumn, names)
	}

	out := make([]domain.Workout, 0, len(rows))
	for i, row := range rows {
		if isBlank(row) {
			continue
		}
		w := parseRow(names, row)
		w.Row = i + 2
		out = append(out, w)
	}
	return out, nil
}

func parseRow(names, row []string) domain.Workout {
	var w domain.Workout
	for i, name := range names {
		if name == "" {
			continue
		}
		var value string
		if i < len(row) {
			value = strings.TrimSpace(row[i])
		}

		field, known := columns[name]
		switch {
		case known && name == ColumnTime:
			*field(&w) = NormalizeTimeRange(value)
		case known:
			*field(&w) = value
		case value != "":
			if w.Extra == nil {
				w.Extra = make(map[string]string)
			}
			w.Extra[name] = value
		}
	}
	return w
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
