package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
	daysPerWeek    = 7
)

// ErrInvalidTime is wrapped by every time parsing failure.
var ErrInvalidTime = errors.New("invalid time")

var (
	// clockRe matches "H:MM AM" with a 1-2 digit hour, 2-digit minute and an
	// optional space before the period.
	clockRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*([AaPp][Mm])$`)

	// rangeSepRe splits "start - end" on a hyphen, en-dash or em-dash.
	rangeSepRe = regexp.MustCompile(`[-\x{2013}\x{2014}]`)
)

// ParsedTime is a wall-clock time within a single day.
type ParsedTime struct {
	Hour24       int
	Minute       int
	TotalMinutes int
}

// SplitRange separates "start - end" into trimmed halves. A string with no
// separator is all start.
func SplitRange(s string) (start, end string) {
	parts := rangeSepRe.Split(s, 2)
	start = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		end = strings.TrimSpace(parts[1])
	}
	return start, end
}

// ParseTime parses a single 12-hour clock time such as "5:30 AM".
func ParseTime(s string) (ParsedTime, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ParsedTime{}, fmt.Errorf("%w: missing time component", ErrInvalidTime)
	}

	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return ParsedTime{}, fmt.Errorf("%w: %q is not H:MM AM/PM", ErrInvalidTime, s)
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour < 1 || hour > 12 || minute > 59 {
		return ParsedTime{}, fmt.Errorf("%w: %q out of range (hour %d, minute %d)", ErrInvalidTime, s, hour, minute)
	}

	hour24 := hour % 12
	if strings.EqualFold(m[3], "PM") {
		hour24 += 12
	}

	return ParsedTime{
		Hour24:       hour24,
		Minute:       minute,
		TotalMinutes: hour24*minutesPerHour + minute,
	}, nil
}

// ParseTimeRange parses the start of a "start - end" range. On failure it
// returns midnight together with the error so callers can keep going.
func ParseTimeRange(s string) (ParsedTime, error) {
	start, _ := SplitRange(s)
	t, err := ParseTime(start)
	if err != nil {
		return ParsedTime{}, err
	}
	return t, nil
}
