// Command validate audits a workout feed snapshot before it is published. It
// loads the snapshot the same way the service does and reports, phase by
// phase, every record the scheduler or viewport calculator would have to
// recover: unknown days, unparseable times, missing or out-of-range
// coordinates, and duplicate or missing identifiers.
//
// Usage:
//
//	go run ./cmd/validate -feed data/workouts.csv
//	go run ./cmd/validate -feed data/workouts.xlsx -sheet Points
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/workout-locator/internal/domain"
	"github.com/couchcryptid/workout-locator/internal/feed"
	"github.com/couchcryptid/workout-locator/internal/region"
	"github.com/couchcryptid/workout-locator/internal/schedule"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	path := flag.String("feed", "", "path to the feed snapshot (csv, xlsx or json)")
	format := flag.String("format", "", "snapshot format; inferred from the extension when empty")
	sheet := flag.String("sheet", "", "worksheet name for xlsx snapshots (default: first sheet)")
	flag.Parse()

	if *path == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(os.Stdout, *path, *format, *sheet); code != 0 {
		os.Exit(code)
	}
}

func run(out io.Writer, path, formatName, sheet string) int {
	format, err := feed.ParseFormat(formatName, path)
	if err != nil {
		fmt.Fprintf(out, "FATAL: %v\n", err)
		return 1
	}

	fmt.Fprintln(out, "=== Workout Feed Validation ===")
	fmt.Fprintln(out)

	workouts, err := feed.FileSource{Path: path, Format: format, Sheet: sheet}.Load(context.Background())
	if err != nil {
		fmt.Fprintf(out, "FATAL: %v\n", err)
		return 1
	}

	phases := validate(workouts)
	return report(out, phases, workouts)
}

func validate(workouts []domain.Workout) []*phase {
	return []*phase{
		validateIdentity(workouts),
		validateDays(workouts),
		validateTimes(workouts),
		validateCoordinates(workouts),
		validateRegions(workouts),
	}
}

func report(out io.Writer, phases []*phase, workouts []domain.Workout) int {
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Records: %d workouts across %d regions\n", len(workouts), len(region.Slugs(workouts)))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

// ── Phase 1: Identity ──
// Every workout needs a unique Entry ID for calendar UIDs and stable ordering.

func validateIdentity(workouts []domain.Workout) *phase {
	p := &phase{name: "Phase 1: Identity (Entry ID)"}

	seen := make(map[string]int, len(workouts))
	for _, w := range workouts {
		row := w.Row
		if strings.TrimSpace(w.ID) == "" {
			p.errorf("row %d (%q): missing Entry ID", row, w.Name)
			continue
		}
		if first, ok := seen[w.ID]; ok {
			p.errorf("row %d: Entry ID %q already used on row %d", row, w.ID, first)
			continue
		}
		seen[w.ID] = row
	}
	return p
}

// ── Phase 2: Days ──

func validateDays(workouts []domain.Workout) *phase {
	p := &phase{name: "Phase 2: Days (Group)"}

	for _, w := range workouts {
		if _, ok := schedule.NormalizeDay(w.Group); !ok {
			p.errorf("workout %s: unrecognized day %q", w.ID, w.Group)
		}
	}
	return p
}

// ── Phase 3: Times ──
// Both halves of the range must parse; the end is used for calendar events.

func validateTimes(workouts []domain.Workout) *phase {
	p := &phase{name: "Phase 3: Times (Time)"}

	for _, w := range workouts {
		start, end := schedule.SplitRange(w.Time)
		if _, err := schedule.ParseTime(start); err != nil {
			p.errorf("workout %s: start: %v", w.ID, err)
		}
		if end == "" {
			continue
		}
		if _, err := schedule.ParseTime(end); err != nil {
			p.errorf("workout %s: end: %v", w.ID, err)
		}
	}
	return p
}

// ── Phase 4: Coordinates ──

func validateCoordinates(workouts []domain.Workout) *phase {
	p := &phase{name: "Phase 4: Coordinates (Latitude/Longitude)"}

	for _, w := range workouts {
		checkDegrees(p, w.ID, "latitude", w.Latitude, 90)
		checkDegrees(p, w.ID, "longitude", w.Longitude, 180)
	}
	return p
}

func checkDegrees(p *phase, id, field, raw string, limit float64) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		p.errorf("workout %s: %s %q is not a number", id, field, raw)
		return
	}
	if math.Abs(v) > limit {
		p.errorf("workout %s: %s %v out of range ±%v", id, field, v, limit)
	}
}

// ── Phase 5: Regions ──
// A region name must survive slugging, and one slug must not merge regions
// spelled differently.

func validateRegions(workouts []domain.Workout) *phase {
	p := &phase{name: "Phase 5: Regions (Region)"}

	names := make(map[string]string)
	for _, w := range workouts {
		slug := region.Slug(w.Region)
		if slug == "" {
			p.errorf("workout %s: region %q has an empty slug", w.ID, w.Region)
			continue
		}
		if prev, ok := names[slug]; ok && prev != w.Region {
			p.errorf("workout %s: region %q collides with %q on slug %q", w.ID, w.Region, prev, slug)
			continue
		}
		names[slug] = w.Region
	}
	return p
}
