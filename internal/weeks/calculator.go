package weeks

import (
	"time"

	"github.com/preston-bernstein/season-weeks-service/internal/domain/games"
	"github.com/preston-bernstein/season-weeks-service/internal/domain/leagues"
)

// ComputeRanges groups games by week and derives each week's calendar window
// from its earliest game. Unscheduled games and games whose start_time does
// not parse are skipped. Weeks without games are absent from the result.
func ComputeRanges(gs []games.Game, weekStart time.Weekday, loc *time.Location) map[int]WeekRange {
	if loc == nil {
		loc = time.UTC
	}
	earliest := make(map[int]time.Time)
	for _, g := range gs {
		if !g.Scheduled() {
			continue
		}
		start, err := g.StartIn(loc)
		if err != nil {
			continue
		}
		if cur, ok := earliest[g.Week]; !ok || start.Before(cur) {
			earliest[g.Week] = start
		}
	}

	ranges := make(map[int]WeekRange, len(earliest))
	for week, first := range earliest {
		start := StartOfWeek(first, weekStart)
		ranges[week] = WeekRange{
			Week:      week,
			StartDate: start,
			EndDate:   EndOfWeek(start),
		}
	}
	return ranges
}

// Resolution says which rule picked the current week.
type Resolution string

const (
	// InRange means now falls inside a week, grace days included.
	InRange Resolution = "in_range"
	// BetweenWeeks means now precedes the next week's start.
	BetweenWeeks Resolution = "between_weeks"
	// SeasonOver means every week has passed and the fallback applies.
	SeasonOver Resolution = "season_over"
)

// Resolve picks the week containing now from prebuilt ranges and reports the
// rule that applied. The week is always within [1, league.MaxWeek].
func Resolve(ranges map[int]WeekRange, now time.Time, league leagues.League) (int, Resolution) {
	today := Midnight(now)
	for week := 1; week <= league.MaxWeek; week++ {
		r, ok := ranges[week]
		if !ok {
			continue
		}
		if r.Contains(today, league.GraceDays) {
			return week, InRange
		}
		if today.Before(r.StartDate) {
			return max(1, week-1), BetweenWeeks
		}
	}
	return league.Fallback(), SeasonOver
}

// ResolveCurrentWeek is Resolve without the rule.
func ResolveCurrentWeek(ranges map[int]WeekRange, now time.Time, league leagues.League) int {
	week, _ := Resolve(ranges, now, league)
	return week
}

// Option customizes a Calculator.
type Option func(*Calculator)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(c *Calculator) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLocation overrides the league timezone.
func WithLocation(loc *time.Location) Option {
	return func(c *Calculator) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// Calculator binds range math to one league. It holds no mutable state and
// may be shared across goroutines.
type Calculator struct {
	league leagues.League
	loc    *time.Location
	now    func() time.Time
}

// New builds a Calculator for league.
func New(league leagues.League, opts ...Option) *Calculator {
	c := &Calculator{
		league: league,
		loc:    league.Location(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// League returns the league the calculator was built for.
func (c *Calculator) League() leagues.League {
	return c.league
}

// Location returns the timezone ranges are computed in.
func (c *Calculator) Location() *time.Location {
	return c.loc
}

// Ranges maps week number to its calendar window.
func (c *Calculator) Ranges(gs []games.Game) map[int]WeekRange {
	return ComputeRanges(gs, c.league.WeekStart, c.loc)
}

// CurrentWeek resolves the current week against the calculator's clock.
func (c *Calculator) CurrentWeek(gs []games.Game) int {
	return c.CurrentWeekAt(gs, c.now())
}

// CurrentWeekAt resolves the week containing now.
func (c *Calculator) CurrentWeekAt(gs []games.Game, now time.Time) int {
	return ResolveCurrentWeek(c.Ranges(gs), now.In(c.loc), c.league)
}
