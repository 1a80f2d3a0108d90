package calendar

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"
)

// fixedEpoch starts the single observance of a zone without offset changes.
const fixedEpoch = "19700101T000000"

// transition is one change of UTC offset in a zone.
type transition struct {
	at   time.Time
	from int // seconds east of UTC before the change
	to   int
	name string
	dst  bool
}

// wallStart is the local time the change happens at, read on the clock
// that was in effect before it.
func (t transition) wallStart() time.Time {
	return t.at.In(time.FixedZone("", t.from))
}

// addTimezone writes the VTIMEZONE that TZID-qualified times refer to. The
// observances come from the offset changes of the year before now, so they
// start ahead of every event. A change that recurs on the same nth weekday
// the following year gets a yearly rule; anything else is written once.
func addTimezone(cal *ical.Calendar, tzid string, loc *time.Location, now time.Time) error {
	tz := cal.AddTimezone(tzid)
	year := now.In(loc).Year() - 1

	changes := transitions(loc, year)
	if len(changes) == 0 {
		name, offset := time.Date(year, time.January, 1, 0, 0, 0, 0, loc).Zone()
		setObservance(&tz.AddStandard().ComponentBase, fixedEpoch, offset, offset, name)
		return nil
	}

	following := transitions(loc, year+1)
	for _, c := range changes {
		var obs *ical.ComponentBase
		if c.dst {
			d := &ical.Daylight{}
			tz.Components = append(tz.Components, d)
			obs = &d.ComponentBase
		} else {
			obs = &tz.AddStandard().ComponentBase
		}
		setObservance(obs, c.wallStart().Format(localTimeLayout), c.from, c.to, c.name)

		rule, ok, err := yearlyRule(c, following)
		if err != nil {
			return fmt.Errorf("timezone %s: %w", tzid, err)
		}
		if ok {
			obs.AddProperty(ical.ComponentPropertyRrule, rule)
		}
	}
	return nil
}

func setObservance(obs *ical.ComponentBase, start string, from, to int, name string) {
	obs.SetProperty(ical.ComponentPropertyDtStart, start)
	obs.SetProperty(ical.ComponentProperty(ical.PropertyTzoffsetfrom), formatOffset(from))
	obs.SetProperty(ical.ComponentProperty(ical.PropertyTzoffsetto), formatOffset(to))
	if name != "" {
		obs.SetProperty(ical.ComponentProperty(ical.PropertyTzname), name)
	}
}

// transitions lists the offset changes loc makes during year.
func transitions(loc *time.Location, year int) []transition {
	var out []transition
	t := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	limit := time.Date(year+1, time.January, 1, 0, 0, 0, 0, loc)
	for {
		_, end := t.ZoneBounds()
		if end.IsZero() || !end.Before(limit) {
			return out
		}
		_, from := t.Zone()
		name, to := end.Zone()
		if from != to {
			out = append(out, transition{at: end, from: from, to: to, name: name, dst: end.IsDST()})
		}
		t = end
	}
}

// yearlyRule describes c as "the nth (or last) weekday of its month" and
// reports whether that rule lands on the matching change a year later.
func yearlyRule(c transition, following []transition) (string, bool, error) {
	start := c.wallStart()
	nth := (start.Day()-1)/7 + 1
	if start.AddDate(0, 0, 7).Month() != start.Month() {
		nth = -1
	}
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.YEARLY,
		Bymonth:   []int{int(start.Month())},
		Byweekday: []rrule.Weekday{weekdays[start.Weekday()].Nth(nth)},
		Dtstart:   start,
	})
	if err != nil {
		return "", false, fmt.Errorf("yearly rule: %w", err)
	}

	next := rule.After(start, false)
	for _, f := range following {
		if f.dst == c.dst && f.from == c.from && f.to == c.to && f.at.Equal(next) {
			return rule.OrigOptions.RRuleString(), true, nil
		}
	}
	return "", false, nil
}

// formatOffset renders seconds east of UTC as an iCalendar UTC offset,
// e.g. -0500 or +0530.
func formatOffset(seconds int) string {
	sign := '+'
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	minutes := seconds / 60
	return fmt.Sprintf("%c%02d%02d", sign, minutes/60, minutes%60)
}
