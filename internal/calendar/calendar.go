// Package calendar exports week ranges as an iCalendar feed.
package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/gosimple/slug"

	"github.com/preston-bernstein/season-weeks-service/internal/weeks"
)

const productID = "-//season-weeks-service//weeks//EN"

// Feed describes one season's week calendar.
type Feed struct {
	SeasonID  int64
	League    string
	Ranges    []weeks.WeekRange
	Formatter *weeks.Formatter
	// Stamp is written as DTSTAMP on every event.
	Stamp time.Time
}

// Build returns a calendar with one all-day event per week.
func Build(f Feed) *ics.Calendar {
	formatter := f.Formatter
	if formatter == nil {
		formatter = weeks.NewFormatter()
	}
	label := strings.ToUpper(f.League)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(fmt.Sprintf("%s season %d weeks", label, f.SeasonID))

	for _, r := range f.Ranges {
		ev := cal.AddEvent(eventUID(f.League, f.SeasonID, r.Week))
		ev.SetDtStampTime(f.Stamp.UTC())
		ev.SetSummary(fmt.Sprintf("%s Week %d", label, r.Week))
		ev.SetDescription(formatter.FormatRange(r))
		ev.SetAllDayStartAt(r.StartDate)
		// DTEND is exclusive for all-day events.
		ev.SetAllDayEndAt(weeks.Midnight(r.EndDate).AddDate(0, 0, 1))
	}
	return cal
}

// Write serializes the feed to w.
func Write(w io.Writer, f Feed) error {
	_, err := io.WriteString(w, Build(f).Serialize())
	return err
}

// Filename is a download name like "nfl-season-1-weeks.ics".
func Filename(league string, seasonID int64) string {
	return slug.Make(fmt.Sprintf("%s season %d weeks", league, seasonID)) + ".ics"
}

func eventUID(league string, seasonID int64, week int) string {
	return fmt.Sprintf("%s-%d-week-%d@season-weeks", slug.Make(league), seasonID, week)
}
