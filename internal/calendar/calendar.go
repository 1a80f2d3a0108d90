// Package calendar renders workouts as an iCalendar feed of weekly
// recurring events.
package calendar

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/couchcryptid/workout-locator/internal/domain"
	"github.com/couchcryptid/workout-locator/internal/schedule"
)

const (
	DefaultProductID = "-//workout-locator//EN"
	DefaultDuration  = time.Hour
	uidDomain        = "workout-locator"
	localTimeLayout  = "20060102T150405"
)

var weekdays = [...]rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

// Exporter converts workouts to iCalendar.
type Exporter struct {
	ProductID string
	Name      string
	// Duration is used when a workout's time has no parseable end.
	Duration time.Duration
	logger   *slog.Logger
}

// NewExporter creates an Exporter with the default product ID and duration.
func NewExporter(name string, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Exporter{
		ProductID: DefaultProductID,
		Name:      name,
		Duration:  DefaultDuration,
		logger:    logger,
	}
}

// Result is a built calendar plus the number of workouts left out of it.
type Result struct {
	Calendar *ical.Calendar
	Events   int
	Skipped  int
}

// Build adds one weekly recurring event per workout. The first occurrence is
// the next one after now, in now's location. When that location is a named
// zone, times are written as wall-clock times against a VTIMEZONE so the
// events keep their local hour across DST changes. Workouts with an unknown
// day or an unparseable start time are skipped.
func (e *Exporter) Build(workouts []domain.Workout, now time.Time) (Result, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(e.ProductID)
	if e.Name != "" {
		cal.SetXWRCalName(e.Name)
	}
	tzid := tzidOf(now.Location())
	if tzid != "" {
		cal.SetXWRTimezone(tzid)
		if err := addTimezone(cal, tzid, now.Location(), now); err != nil {
			return Result{}, err
		}
	}

	res := Result{Calendar: cal}
	for i, w := range workouts {
		day, ok := schedule.NormalizeDay(w.Group)
		if !ok {
			e.logger.Warn("skipping workout with unknown day", "workout_id", w.ID, "day", w.Group)
			res.Skipped++
			continue
		}
		startText, endText := schedule.SplitRange(w.Time)
		start, err := schedule.ParseTime(startText)
		if err != nil {
			e.logger.Warn("skipping workout with unparseable time", "workout_id", w.ID, "time", w.Time, "error", err)
			res.Skipped++
			continue
		}

		begin := schedule.NextOccurrence(day, start, now)
		end := e.endOf(begin, start, endText)

		if err := e.addEvent(cal, uid(w, i), w, begin, end, now, tzid); err != nil {
			return Result{}, fmt.Errorf("workout %q: %w", w.ID, err)
		}
		res.Events++
	}

	e.logger.Debug("calendar built", "events", res.Events, "skipped", res.Skipped)
	return res, nil
}

// Export builds the calendar and serializes it.
func (e *Exporter) Export(workouts []domain.Workout, now time.Time) (string, error) {
	res, err := e.Build(workouts, now)
	if err != nil {
		return "", err
	}
	return res.Calendar.Serialize(), nil
}

func (e *Exporter) addEvent(cal *ical.Calendar, id string, w domain.Workout, begin, end, now time.Time, tzid string) error {
	// BYDAY has to agree with the weekday DTSTART is written in.
	weekday := begin.UTC().Weekday()
	if tzid != "" {
		weekday = begin.Weekday()
	}
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{weekdays[weekday]},
	})
	if err != nil {
		return fmt.Errorf("weekly rule: %w", err)
	}

	ev := cal.AddEvent(id)
	ev.SetDtStampTime(now.UTC())
	if tzid != "" {
		param := &ical.KeyValues{Key: string(ical.ParameterTzid), Value: []string{tzid}}
		ev.SetProperty(ical.ComponentPropertyDtStart, begin.Format(localTimeLayout), param)
		ev.SetProperty(ical.ComponentPropertyDtEnd, end.Format(localTimeLayout), param)
	} else {
		ev.SetStartAt(begin)
		ev.SetEndAt(end)
	}
	ev.AddRrule(rule.OrigOptions.RRuleString())
	ev.SetSummary(summaryOf(w))
	if w.Location != "" {
		ev.SetLocation(w.Location)
	}
	if d := descriptionOf(w); d != "" {
		ev.SetDescription(d)
	}
	if w.Website != "" {
		ev.SetURL(w.Website)
	}
	if lat, lng, ok := geoOf(w); ok {
		ev.SetProperty(ical.ComponentPropertyGeo, formatGeo(lat)+";"+formatGeo(lng))
	}
	return nil
}

// endOf resolves the event end from the range end. A missing or unparseable
// end falls back to the exporter's duration; an end earlier than the start
// is taken to be after midnight.
func (e *Exporter) endOf(begin time.Time, start schedule.ParsedTime, endText string) time.Time {
	end, err := schedule.ParseTime(endText)
	if err != nil || end.TotalMinutes == start.TotalMinutes {
		return begin.Add(e.Duration)
	}
	minutes := end.TotalMinutes - start.TotalMinutes
	if minutes < 0 {
		minutes += 24 * 60
	}
	return begin.Add(time.Duration(minutes) * time.Minute)
}

func uid(w domain.Workout, index int) string {
	if w.ID != "" {
		return w.ID + "@" + uidDomain
	}
	return fmt.Sprintf("row-%d@%s", index, uidDomain)
}

func summaryOf(w domain.Workout) string {
	name := strings.TrimSpace(w.Name)
	if name == "" {
		name = "Workout"
	}
	if w.Type != "" {
		return name + " (" + w.Type + ")"
	}
	return name
}

func descriptionOf(w domain.Workout) string {
	parts := make([]string, 0, 2)
	for _, s := range []string{w.Description, w.Notes} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

func geoOf(w domain.Workout) (lat, lng float64, ok bool) {
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(w.Latitude), 64)
	lng, errLng := strconv.ParseFloat(strings.TrimSpace(w.Longitude), 64)
	if errLat != nil || errLng != nil || !finite(lat) || !finite(lng) {
		return 0, 0, false
	}
	return lat, lng, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func formatGeo(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// tzidOf returns an IANA zone name usable as TZID, or "" when times should be
// written in UTC. "Local" has no portable name; config resolves the host
// zone to a named one before it gets here.
func tzidOf(loc *time.Location) string {
	switch name := loc.String(); name {
	case "", "UTC", "Local":
		return ""
	default:
		return name
	}
}
