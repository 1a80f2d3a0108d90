package feed

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/couchcryptid/workout-locator/internal/schedule"
)

// clock24Re matches a bare 24-hour "HH:MM".
var clock24Re = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// NormalizeTimeRange rewrites "start - end" with both halves in "H:MM AM"
// form and a plain hyphen between them. 24-hour halves are converted,
// 12-hour halves are re-rendered, and anything else is kept as written.
func NormalizeTimeRange(s string) string {
	start, end := schedule.SplitRange(s)
	if end == "" {
		return to12Hour(start)
	}
	return to12Hour(start) + " - " + to12Hour(end)
}

func to12Hour(s string) string {
	if t, err := schedule.ParseTime(s); err == nil {
		return format12Hour(t.Hour24, t.Minute)
	}

	m := clock24Re.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return s
	}
	return format12Hour(hour, minute)
}

func format12Hour(hour24, minute int) string {
	period := "AM"
	if hour24 >= 12 {
		period = "PM"
	}
	hour := hour24 % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, period)
}
