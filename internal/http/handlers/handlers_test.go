package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/season-weeks-service/internal/app/schedule"
	domaingames "github.com/preston-bernstein/season-weeks-service/internal/domain/games"
	"github.com/preston-bernstein/season-weeks-service/internal/poller"
	"github.com/preston-bernstein/season-weeks-service/internal/testutil"
)

type stubSnapshots struct {
	resp domaingames.SeasonResponse
	err  error
}

func (s *stubSnapshots) LoadSeason(seasonID int64) (domaingames.SeasonResponse, error) {
	_ = seasonID
	return s.resp, s.err
}

var midWeekTwo = time.Date(2025, time.September, 12, 16, 0, 0, 0, time.UTC)

func newTestHandler(snaps *stubSnapshots, statusFn func() poller.Status) *Handler {
	svc := testutil.NewScheduleWithGames(testutil.NFLWeeks(3), schedule.WithClock(testutil.NowAt(midWeekTwo)))
	var h *Handler
	if snaps != nil {
		h = NewHandler(svc, snaps, nil, statusFn)
	} else {
		h = NewHandler(svc, nil, nil, statusFn)
	}
	h.now = testutil.NowAt(midWeekTwo)
	return h
}

func withVars(req *http.Request, vars map[string]string) *http.Request {
	return mux.SetURLVars(req, vars)
}

func TestHealth(t *testing.T) {
	h := newTestHandler(nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Health), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Fatalf("expected status ok, got %s", resp["status"])
	}
}

func TestHealthShuttingDownReturnsServiceUnavailable(t *testing.T) {
	h := newTestHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	rr := testutil.ServeRequest(http.HandlerFunc(h.Health), req.WithContext(ctx))

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["error"] != "shutting down" {
		t.Fatalf("unexpected error %q", resp["error"])
	}
}

func TestReady(t *testing.T) {
	tests := []struct {
		name   string
		status func() poller.Status
		want   int
	}{
		{"no poller", nil, http.StatusOK},
		{"recent success", func() poller.Status { return poller.Status{LastSuccess: midWeekTwo} }, http.StatusOK},
		{"never succeeded", func() poller.Status { return poller.Status{} }, http.StatusServiceUnavailable},
		{"failing", func() poller.Status {
			return poller.Status{LastSuccess: midWeekTwo, ConsecutiveFailures: 3, LastError: "upstream down"}
		}, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(nil, tt.status)
			rr := testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
			testutil.AssertStatus(t, rr, tt.want)
		})
	}
}

func TestGameByID(t *testing.T) {
	h := newTestHandler(nil, nil)

	tests := []struct {
		id   string
		want int
	}{
		{"2", http.StatusOK},
		{"99", http.StatusNotFound},
		{"abc", http.StatusBadRequest},
		{"0", http.StatusBadRequest},
	}
	for _, tt := range tests {
		req := withVars(httptest.NewRequest(http.MethodGet, "/games/"+tt.id, nil), map[string]string{"id": tt.id})
		rr := testutil.ServeRequest(http.HandlerFunc(h.GameByID), req)
		testutil.AssertStatus(t, rr, tt.want)
		if tt.want == http.StatusOK {
			var g domaingames.Game
			testutil.DecodeJSON(t, rr, &g)
			if g.ID != 2 || g.Week != 2 {
				t.Fatalf("expected game 2 in week 2, got %+v", g)
			}
		}
	}
}

func TestSeasonGames(t *testing.T) {
	h := newTestHandler(nil, nil)
	req := withVars(httptest.NewRequest(http.MethodGet, "/seasons/1/games", nil), map[string]string{"seasonId": "1"})
	rr := testutil.ServeRequest(http.HandlerFunc(h.SeasonGames), req)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp domaingames.SeasonResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.SeasonID != 1 || resp.League != "nfl" || len(resp.Games) != 3 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestSeasonGamesFallsBackToSnapshot(t *testing.T) {
	snaps := &stubSnapshots{resp: testutil.SampleSeasonResponse(2, "nba")}
	h := newTestHandler(snaps, nil)
	req := withVars(httptest.NewRequest(http.MethodGet, "/seasons/2/games", nil), map[string]string{"seasonId": "2"})
	rr := testutil.ServeRequest(http.HandlerFunc(h.SeasonGames), req)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp domaingames.SeasonResponse
	testutil.DecodeJSON(t, rr, &resp)
	if len(resp.Games) != 1 || resp.Games[0].SeasonID != 2 {
		t.Fatalf("expected snapshot games, got %+v", resp.Games)
	}
}

func TestSeasonGamesEmptyWhenSnapshotMissing(t *testing.T) {
	snaps := &stubSnapshots{err: errors.New("missing")}
	h := newTestHandler(snaps, nil)
	req := withVars(httptest.NewRequest(http.MethodGet, "/seasons/2/games", nil), map[string]string{"seasonId": "2"})
	rr := testutil.ServeRequest(http.HandlerFunc(h.SeasonGames), req)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp domaingames.SeasonResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Games == nil || len(resp.Games) != 0 {
		t.Fatalf("expected empty games list, got %+v", resp.Games)
	}
}

func TestSeasonEndpointsRejectUnknownSeason(t *testing.T) {
	h := newTestHandler(nil, nil)
	endpoints := map[string]http.HandlerFunc{
		"games":   h.SeasonGames,
		"weeks":   h.Weeks,
		"current": h.CurrentWeek,
		"ics":     h.WeeksICS,
	}
	for name, fn := range endpoints {
		req := withVars(httptest.NewRequest(http.MethodGet, "/seasons/42/"+name, nil), map[string]string{"seasonId": "42"})
		rr := testutil.ServeRequest(fn, req)
		if rr.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", name, rr.Code)
		}
	}
}

func TestWeekGames(t *testing.T) {
	h := newTestHandler(nil, nil)

	tests := []struct {
		week  string
		want  int
		count int
	}{
		{"2", http.StatusOK, 1},
		{"10", http.StatusOK, 0},
		{"0", http.StatusBadRequest, 0},
		{"19", http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		req := withVars(httptest.NewRequest(http.MethodGet, "/seasons/1/weeks/"+tt.week+"/games", nil),
			map[string]string{"seasonId": "1", "week": tt.week})
		rr := testutil.ServeRequest(http.HandlerFunc(h.WeekGames), req)
		testutil.AssertStatus(t, rr, tt.want)
		if tt.want != http.StatusOK {
			continue
		}
		var resp domaingames.SeasonResponse
		testutil.DecodeJSON(t, rr, &resp)
		if len(resp.Games) != tt.count {
			t.Fatalf("week %s: expected %d games, got %d", tt.week, tt.count, len(resp.Games))
		}
	}
}

func TestWeeks(t *testing.T) {
	h := newTestHandler(nil, nil)
	req := withVars(httptest.NewRequest(http.MethodGet, "/seasons/1/weeks", nil), map[string]string{"seasonId": "1"})
	rr := testutil.ServeRequest(http.HandlerFunc(h.Weeks), req)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp weeksResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.League != "nfl" || resp.WeekStart != "tuesday" || resp.MaxWeek != 18 || resp.Locale != "en-US" {
		t.Fatalf("unexpected header fields %+v", resp)
	}
	if len(resp.Weeks) != 3 {
		t.Fatalf("expected 3 weeks, got %d", len(resp.Weeks))
	}
	labels := []string{"Sep 2 - Sep 8", "Sep 9 - Sep 15", "Sep 16 - Sep 22"}
	for i, wk := range resp.Weeks {
		if wk.Week != i+1 {
			t.Fatalf("expected week %d at index %d, got %d", i+1, i, wk.Week)
		}
		if wk.Label != labels[i] {
			t.Fatalf("week %d: expected label %q, got %q", wk.Week, labels[i], wk.Label)
		}
		if wk.StartDate.Weekday() != time.Tuesday {
			t.Fatalf("week %d: expected Tuesday start, got %s", wk.Week, wk.StartDate.Weekday())
		}
	}
}

func TestWeeksHonorsLocale(t *testing.T) {
	h := newTestHandler(nil, nil)

	req := withVars(httptest.NewRequest(http.MethodGet, "/seasons/1/weeks?locale=fr", nil), map[string]string{"seasonId": "1"})
	rr := testutil.ServeRequest(http.HandlerFunc(h.Weeks), req)
	var resp weeksResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Locale != "fr" || resp.Weeks[0].Label != "2 sept. - 8 sept." {
		t.Fatalf("expected french labels, got %s %q", resp.Locale, resp.Weeks[0].Label)
	}

	req = withVars(httptest.NewRequest(http.MethodGet, "/seasons/1/weeks", nil), map[string]string{"seasonId": "1"})
	req.Header.Set("Accept-Language", "de-DE,de;q=0.9")
	rr = testutil.ServeRequest(http.HandlerFunc(h.Weeks), req)
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Weeks[0].Label != "2. Sept. - 8. Sept." {
		t.Fatalf("expected german labels, got %q", resp.Weeks[0].Label)
	}
}

func TestCurrentWeek(t *testing.T) {
	h := newTestHandler(nil, nil)
	req := withVars(httptest.NewRequest(http.MethodGet, "/seasons/1/weeks/current", nil), map[string]string{"seasonId": "1"})
	rr := testutil.ServeRequest(http.HandlerFunc(h.CurrentWeek), req)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp currentWeekResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Week != 2 || resp.Resolution != "in_range" {
		t.Fatalf("expected week 2 in range, got %d %s", resp.Week, resp.Resolution)
	}
	if resp.Range == nil {
		t.Fatalf("expected range for week 2")
	}
	if resp.Range.Label != "Sep 9 - Sep 15" {
		t.Fatalf("unexpected label %q", resp.Range.Label)
	}
	if !strings.HasSuffix(resp.Range.EndsIn, "from now") {
		t.Fatalf("expected future endsIn, got %q", resp.Range.EndsIn)
	}
}

func TestCurrentWeekEmptySeasonUsesFallback(t *testing.T) {
	h := newTestHandler(nil, nil)
	req := withVars(httptest.NewRequest(http.MethodGet, "/seasons/2/weeks/current", nil), map[string]string{"seasonId": "2"})
	rr := testutil.ServeRequest(http.HandlerFunc(h.CurrentWeek), req)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp currentWeekResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.League != "nba" || resp.Week != 25 || resp.Range != nil {
		t.Fatalf("expected NBA fallback week 25 without range, got %+v", resp)
	}
}

func TestWeeksICS(t *testing.T) {
	h := newTestHandler(nil, nil)
	req := withVars(httptest.NewRequest(http.MethodGet, "/seasons/1/weeks.ics", nil), map[string]string{"seasonId": "1"})
	rr := testutil.ServeRequest(http.HandlerFunc(h.WeeksICS), req)
	testutil.AssertStatus(t, rr, http.StatusOK)

	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Fatalf("expected calendar content type, got %s", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "nfl-season-1-weeks.ics") {
		t.Fatalf("unexpected content disposition %s", cd)
	}
	body := rr.Body.String()
	if strings.Count(body, "BEGIN:VEVENT") != 3 {
		t.Fatalf("expected 3 events, got body %s", body)
	}
	if !strings.Contains(body, "NFL Week 2") {
		t.Fatalf("expected week summary in body")
	}
}

func TestBadSeasonID(t *testing.T) {
	h := newTestHandler(nil, nil)
	req := withVars(httptest.NewRequest(http.MethodGet, "/seasons/x/weeks", nil), map[string]string{"seasonId": "x"})
	rr := testutil.ServeRequest(http.HandlerFunc(h.Weeks), req)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}
