// Package region groups workouts by region and assembles the per-region
// view: ordered schedule, map viewport and the places the region serves.
package region

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/couchcryptid/workout-locator/internal/domain"
	"github.com/couchcryptid/workout-locator/internal/schedule"
)

// ErrUnknownDay is returned by CheckDay for a day filter no weekday matches.
var ErrUnknownDay = errors.New("unknown day")

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	slugStripRe  = regexp.MustCompile(`[^a-z0-9-]`)
)

// Slug converts a region name to its URL form: lowercase, whitespace runs
// become hyphens, everything else outside [a-z0-9-] is dropped.
// "Raleigh / Wake Forest" -> "raleigh-/-wake-forest" -> "raleigh--wake-forest".
func Slug(name string) string {
	s := whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	return slugStripRe.ReplaceAllString(s, "")
}

// Slugs returns the distinct non-empty region slugs, sorted.
func Slugs(workouts []domain.Workout) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, w := range workouts {
		s := Slug(w.Region)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// Select returns the workouts whose region slugs to slug, in input order.
func Select(workouts []domain.Workout, slug string) []domain.Workout {
	out := make([]domain.Workout, 0)
	for _, w := range workouts {
		if Slug(w.Region) == slug {
			out = append(out, w)
		}
	}
	return out
}

// CheckDay reports whether day is usable as a day filter. Blank means no
// filter and is accepted.
func CheckDay(day string) error {
	if strings.TrimSpace(day) == "" {
		return nil
	}
	if _, ok := schedule.NormalizeDay(day); !ok {
		return fmt.Errorf("%w %q", ErrUnknownDay, day)
	}
	return nil
}

// FilterByDay keeps workouts held on the given day. Both sides are
// normalized, so "thu" matches "Thursday". A blank day keeps everything;
// an unrecognised one keeps nothing.
func FilterByDay(workouts []domain.Workout, day string) []domain.Workout {
	if strings.TrimSpace(day) == "" {
		return workouts
	}
	want, ok := schedule.NormalizeDay(day)
	if !ok {
		return []domain.Workout{}
	}
	out := make([]domain.Workout, 0, len(workouts))
	for _, w := range workouts {
		if got, ok := schedule.NormalizeDay(w.Group); ok && got == want {
			out = append(out, w)
		}
	}
	return out
}

// FilterByType keeps workouts whose Type matches typ case-insensitively.
// An empty typ keeps everything.
func FilterByType(workouts []domain.Workout, typ string) []domain.Workout {
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return workouts
	}
	out := make([]domain.Workout, 0, len(workouts))
	for _, w := range workouts {
		if strings.EqualFold(strings.TrimSpace(w.Type), typ) {
			out = append(out, w)
		}
	}
	return out
}

// Types lists the distinct non-empty workout types, sorted.
func Types(workouts []domain.Workout) []string {
	out := make([]string, 0)
	for _, w := range workouts {
		if w.Type != "" && !slices.Contains(out, w.Type) {
			out = append(out, w.Type)
		}
	}
	slices.Sort(out)
	return out
}
