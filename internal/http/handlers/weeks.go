package handlers

import (
	"bytes"
	"fmt"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/preston-bernstein/season-weeks-service/internal/calendar"
	"github.com/preston-bernstein/season-weeks-service/internal/domain/leagues"
	"github.com/preston-bernstein/season-weeks-service/internal/http/requestutil"
	"github.com/preston-bernstein/season-weeks-service/internal/logging"
	"github.com/preston-bernstein/season-weeks-service/internal/weeks"
)

type weekView struct {
	Week      int       `json:"week"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Label     string    `json:"label"`
	EndsIn    string    `json:"endsIn,omitempty"`
}

type weeksResponse struct {
	SeasonID  int64      `json:"seasonId"`
	League    string     `json:"league"`
	Locale    string     `json:"locale"`
	WeekStart string     `json:"weekStart"`
	MaxWeek   int        `json:"maxWeek"`
	Weeks     []weekView `json:"weeks"`
}

type currentWeekResponse struct {
	SeasonID   int64     `json:"seasonId"`
	League     string    `json:"league"`
	Week       int       `json:"week"`
	Resolution string    `json:"resolution"`
	AsOf       time.Time `json:"asOf"`
	Range      *weekView `json:"range,omitempty"`
}

// Weeks returns every week range of a season with localized labels.
func (h *Handler) Weeks(w nethttp.ResponseWriter, r *nethttp.Request) {
	seasonID, ok := h.seasonParam(w, r)
	if !ok {
		return
	}
	sched, err := h.svc.WeekRanges(r.Context(), seasonID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	formatter := formatterFor(r, sched.League)

	views := make([]weekView, 0, len(sched.Ranges))
	for _, wr := range sched.Ranges {
		views = append(views, weekView{
			Week:      wr.Week,
			StartDate: wr.StartDate,
			EndDate:   wr.EndDate,
			Label:     formatter.FormatRange(wr),
		})
	}
	writeJSON(w, nethttp.StatusOK, weeksResponse{
		SeasonID:  seasonID,
		League:    sched.League.Name,
		Locale:    formatter.Locale(),
		WeekStart: strings.ToLower(sched.League.WeekStart.String()),
		MaxWeek:   sched.League.MaxWeek,
		Weeks:     views,
	}, h.logger)
}

// CurrentWeek resolves the week a season is in right now.
func (h *Handler) CurrentWeek(w nethttp.ResponseWriter, r *nethttp.Request) {
	seasonID, ok := h.seasonParam(w, r)
	if !ok {
		return
	}
	cur, err := h.svc.CurrentWeek(r.Context(), seasonID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	resp := currentWeekResponse{
		SeasonID:   seasonID,
		League:     cur.League.Name,
		Week:       cur.Week,
		Resolution: string(cur.Resolution),
		AsOf:       cur.AsOf,
	}
	if cur.Range != nil {
		formatter := formatterFor(r, cur.League)
		resp.Range = &weekView{
			Week:      cur.Range.Week,
			StartDate: cur.Range.StartDate,
			EndDate:   cur.Range.EndDate,
			Label:     formatter.FormatRange(*cur.Range),
			EndsIn:    humanize.RelTime(cur.AsOf, cur.Range.EndDate, "ago", "from now"),
		}
	}
	logging.Info(loggerFromContext(r, h.logger), "current week served",
		logging.FieldSeasonID, seasonID,
		logging.FieldLeague, cur.League.Name,
		logging.FieldWeek, cur.Week,
	)
	writeJSON(w, nethttp.StatusOK, resp, h.logger)
}

// WeeksICS serves a season's weeks as an iCalendar download.
func (h *Handler) WeeksICS(w nethttp.ResponseWriter, r *nethttp.Request) {
	seasonID, ok := h.seasonParam(w, r)
	if !ok {
		return
	}
	sched, err := h.svc.WeekRanges(r.Context(), seasonID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	var buf bytes.Buffer
	err = calendar.Write(&buf, calendar.Feed{
		SeasonID:  seasonID,
		League:    sched.League.Name,
		Ranges:    sched.Ranges,
		Formatter: formatterFor(r, sched.League),
		Stamp:     h.now(),
	})
	if err != nil {
		logging.Error(loggerFromContext(r, h.logger), "calendar export failed", err, logging.FieldSeasonID, seasonID)
		writeError(w, r, nethttp.StatusInternalServerError, "calendar export failed", h.logger)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", calendar.Filename(sched.League.Name, seasonID)))
	w.WriteHeader(nethttp.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func formatterFor(r *nethttp.Request, league leagues.League) *weeks.Formatter {
	candidates := requestutil.LocaleCandidates(r)
	if league.Locale != "" {
		candidates = append(candidates, league.Locale)
	}
	return weeks.NewFormatter(candidates...)
}
