package leagues

import (
	"fmt"
	"strings"
	"time"
)

const (
	NFL = "nfl"
	NBA = "nba"
)

// League describes how a league's schedule is cut into weeks.
type League struct {
	Name         string
	WeekStart    time.Weekday
	MaxWeek      int
	GraceDays    int
	FallbackWeek int
	Locale       string
	Timezone     string
}

// Builtins returns the default league table.
func Builtins() map[string]League {
	return map[string]League{
		NFL: {
			Name:      NFL,
			WeekStart: time.Tuesday,
			MaxWeek:   18,
			GraceDays: 2,
			Locale:    "en-US",
			Timezone:  "America/New_York",
		},
		NBA: {
			Name:      NBA,
			WeekStart: time.Monday,
			MaxWeek:   25,
			GraceDays: 0,
			Locale:    "en-US",
			Timezone:  "America/New_York",
		},
	}
}

// Fallback is the week reported once every week has passed.
func (l League) Fallback() int {
	w := l.FallbackWeek
	if w <= 0 {
		w = l.MaxWeek
	}
	if w > l.MaxWeek {
		w = l.MaxWeek
	}
	if w < 1 {
		w = 1
	}
	return w
}

// Location resolves the league timezone, defaulting to UTC.
func (l League) Location() *time.Location {
	if l.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(l.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Validate rejects configurations the calculator cannot honor.
func (l League) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("league name is required")
	}
	if l.MaxWeek < 1 {
		return fmt.Errorf("league %s: max_week must be >= 1, got %d", l.Name, l.MaxWeek)
	}
	if l.GraceDays < 0 {
		return fmt.Errorf("league %s: grace_days must be >= 0, got %d", l.Name, l.GraceDays)
	}
	if l.WeekStart < time.Sunday || l.WeekStart > time.Saturday {
		return fmt.Errorf("league %s: invalid week start %d", l.Name, l.WeekStart)
	}
	if l.Timezone != "" {
		if _, err := time.LoadLocation(l.Timezone); err != nil {
			return fmt.Errorf("league %s: %w", l.Name, err)
		}
	}
	return nil
}

// ParseWeekday accepts full or three-letter English weekday names.
func ParseWeekday(raw string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if name == full || name == full[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", raw)
}
