package schedule

import (
	"strings"
	"time"
)

// dayAliases maps standard abbreviations to weekdays. Checked before full
// names and prefixes.
var dayAliases = map[string]time.Weekday{
	"sun":   time.Sunday,
	"mon":   time.Monday,
	"tue":   time.Tuesday,
	"tues":  time.Tuesday,
	"wed":   time.Wednesday,
	"th":    time.Thursday,
	"thu":   time.Thursday,
	"thur":  time.Thursday,
	"thurs": time.Thursday,
	"fri":   time.Friday,
	"sat":   time.Saturday,
}

// NormalizeDay maps free-text day names to a weekday. It accepts full names
// and the abbreviations in dayAliases in any case; otherwise it picks the
// longest weekday name the input is a prefix of ("t" -> Thursday, "s" ->
// Saturday). Empty or unmatched input reports false.
func NormalizeDay(s string) (time.Weekday, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.TrimSuffix(key, ".")
	if key == "" {
		return 0, false
	}

	if d, ok := dayAliases[key]; ok {
		return d, true
	}

	best, bestLen := time.Weekday(0), 0
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if name == key {
			return d, true
		}
		if strings.HasPrefix(name, key) && len(name) > bestLen {
			best, bestLen = d, len(name)
		}
	}
	return best, bestLen > 0
}
