package weeks

import (
	"sort"
	"time"
)

// endOfDayNanos is the nanosecond field of 23:59:59.999, the end-of-day
// instant used by the backend's clients.
const endOfDayNanos = 999 * int(time.Millisecond)

// WeekRange is the calendar window of one scheduling week.
type WeekRange struct {
	Week      int       `json:"week"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// Contains reports whether t falls in [StartDate, EndDate+graceDays].
func (r WeekRange) Contains(t time.Time, graceDays int) bool {
	end := r.EndDate
	if graceDays > 0 {
		end = end.AddDate(0, 0, graceDays)
	}
	return !t.Before(r.StartDate) && !t.After(end)
}

// StartOfWeek walks t back to the nearest weekStart (same day included) and
// truncates to local midnight in t's location.
func StartOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	back := (int(t.Weekday()) - int(weekStart) + 7) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-back, 0, 0, 0, 0, t.Location())
}

// EndOfWeek returns the last instant of the sixth day after start.
func EndOfWeek(start time.Time) time.Time {
	y, m, d := start.Date()
	return time.Date(y, m, d+6, 23, 59, 59, endOfDayNanos, start.Location())
}

// Midnight truncates t to local midnight in its own location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Sorted returns ranges ordered by week number.
func Sorted(ranges map[int]WeekRange) []WeekRange {
	out := make([]WeekRange, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out
}
