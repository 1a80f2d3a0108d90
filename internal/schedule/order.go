package schedule

import (
	"cmp"
	"log/slog"
	"math"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/couchcryptid/workout-locator/internal/domain"
)

// UnknownDayOffset is assigned to workouts whose day cannot be recognised.
// It exceeds every real offset, which stays below 8*24*60 minutes.
const UnknownDayOffset = math.MaxInt32

// Scheduler orders workouts by their next occurrence and reports records it
// had to recover.
type Scheduler struct {
	logger   *slog.Logger
	recorder domain.AnomalyRecorder
}

// NewScheduler creates a Scheduler. A nil logger or recorder discards output.
func NewScheduler(logger *slog.Logger, recorder domain.AnomalyRecorder) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if recorder == nil {
		recorder = domain.NopRecorder{}
	}
	return &Scheduler{logger: logger, recorder: recorder}
}

var silent = NewScheduler(nil, nil)

// Order returns a copy of workouts sorted by how soon each next occurs after
// now. See [Scheduler.Order].
func Order(workouts []domain.Workout, now time.Time) []domain.Workout {
	return silent.Order(workouts, now)
}

// OrderNow is Order relative to the package clock.
func OrderNow(workouts []domain.Workout) []domain.Workout {
	return silent.Order(workouts, domain.Now())
}

type ranked struct {
	workout domain.Workout
	offset  int
}

// Order returns a copy of workouts sorted by ascending occurrence offset.
// Ties break on the display name (case-insensitive English collation, empty
// first), then on the exact name and ID, so the result does not depend on
// input order. The input slice is not modified.
func (s *Scheduler) Order(workouts []domain.Workout, now time.Time) []domain.Workout {
	items := make([]ranked, len(workouts))
	for i, w := range workouts {
		items[i] = ranked{workout: w, offset: s.offsetOf(w, now)}
	}

	// Collators keep scratch buffers, so each call gets its own.
	col := collate.New(language.English, collate.IgnoreCase)
	slices.SortStableFunc(items, func(a, b ranked) int {
		if c := cmp.Compare(a.offset, b.offset); c != 0 {
			return c
		}
		if c := col.CompareString(a.workout.Name, b.workout.Name); c != 0 {
			return c
		}
		if c := strings.Compare(a.workout.Name, b.workout.Name); c != 0 {
			return c
		}
		return strings.Compare(a.workout.ID, b.workout.ID)
	})

	out := make([]domain.Workout, len(items))
	for i, it := range items {
		out[i] = it.workout
	}
	return out
}

// OffsetOf returns the minutes from now until the workout next starts,
// recording any recovery it makes along the way.
func (s *Scheduler) OffsetOf(w domain.Workout, now time.Time) int {
	return s.offsetOf(w, now)
}

func (s *Scheduler) offsetOf(w domain.Workout, now time.Time) int {
	day, ok := NormalizeDay(w.Group)
	if !ok {
		s.logger.Warn("unrecognized workout day, ordering last",
			"workout_id", w.ID,
			"day", w.Group,
		)
		s.recorder.RecordAnomaly(domain.AnomalyUnknownDay)
		return UnknownDayOffset
	}

	start, err := ParseTimeRange(w.Time)
	if err != nil {
		s.logger.Warn("unparseable workout time, assuming midnight",
			"workout_id", w.ID,
			"time", w.Time,
			"error", err,
		)
		s.recorder.RecordAnomaly(domain.AnomalyUnparseableTime)
	}

	return Offset(day, start.TotalMinutes, now)
}

// Offset returns the minutes from now until the next occurrence of a weekly
// event on day at the given minute of the day. An event earlier today wraps
// to next week and is measured from the start of that day; an event at
// exactly the current minute is still upcoming.
func Offset(day time.Weekday, totalMinutes int, now time.Time) int {
	days, minutes := untilNext(day, totalMinutes, now)
	return days*minutesPerDay + minutes
}

// NextOccurrence returns the wall-clock start of the next occurrence in
// now's location.
func NextOccurrence(day time.Weekday, t ParsedTime, now time.Time) time.Time {
	days, _ := untilNext(day, t.TotalMinutes, now)
	return time.Date(now.Year(), now.Month(), now.Day()+days, t.Hour24, t.Minute, 0, 0, now.Location())
}

func untilNext(day time.Weekday, totalMinutes int, now time.Time) (days, minutes int) {
	current := now.Hour()*minutesPerHour + now.Minute()

	days = (int(day) - int(now.Weekday()) + daysPerWeek) % daysPerWeek
	switch {
	case days == 0 && totalMinutes < current:
		return daysPerWeek, totalMinutes
	case days == 0:
		return 0, totalMinutes - current
	default:
		return days, totalMinutes
	}
}
