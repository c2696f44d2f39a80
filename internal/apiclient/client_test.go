package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newTestClient(t *testing.T, h http.HandlerFunc, cfg Config) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	cfg.BaseURL = srv.URL + "/api/"
	return New(cfg)
}

func TestNormalizeBaseURLDefaultsAndTrims(t *testing.T) {
	if got := normalizeBaseURL(""); got != DefaultBaseURL {
		t.Fatalf("expected default base url, got %q", got)
	}
	if got := normalizeBaseURL(" http://example.com/api/ "); got != "http://example.com/api" {
		t.Fatalf("expected trimmed url, got %q", got)
	}
}

func TestBearerTokenAttachedWhenPresent(t *testing.T) {
	var auth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"id":7,"email":"a@b.co","username":"ann"}`))
	}, Config{TokenSource: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "tok-1"})})

	user, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", auth)
	assert.Equal(t, int64(7), user.ID)
}

type emptySource struct{}

func (emptySource) Token() (*oauth2.Token, error) { return &oauth2.Token{}, nil }

func TestAnonymousWhenTokenEmpty(t *testing.T) {
	var auth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}, Config{TokenSource: emptySource{}})

	_, err := c.Scenarios(context.Background())
	require.NoError(t, err)
	assert.Empty(t, auth)
}

func TestUnauthorizedInvokesHook(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid token"}`))
	}, Config{OnUnauthorized: func() { calls.Add(1) }})

	_, err := c.CurrentUser(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, int32(1), calls.Load())

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "invalid token", apiErr.Message)
	assert.False(t, apiErr.Temporary())
}

func TestErrorBodyDecoding(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		header  string
		message string
		details []string
		retry   time.Duration
		temp    bool
	}{
		{name: "error field", status: http.StatusBadRequest, body: `{"error":"bad"}`, message: "bad"},
		{name: "message field", status: http.StatusConflict, body: `{"message":"taken","errors":["email"]}`, message: "taken", details: []string{"email"}},
		{name: "plain text", status: http.StatusInternalServerError, body: "boom\n", message: "boom", temp: true},
		{name: "retry after", status: http.StatusTooManyRequests, body: `{}`, header: "3", retry: 3 * time.Second, temp: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if tc.header != "" {
					w.Header().Set("Retry-After", tc.header)
				}
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}, Config{})

			_, err := c.Game(context.Background(), 1)
			apiErr, ok := AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tc.status, apiErr.StatusCode)
			assert.Equal(t, tc.message, apiErr.Message)
			assert.Equal(t, tc.details, apiErr.Details)
			assert.Equal(t, tc.retry, apiErr.RetryAfter)
			assert.Equal(t, tc.temp, apiErr.Temporary())
			assert.Equal(t, "/games/1", apiErr.Path)
		})
	}
}

func TestNotFoundWrapsSentinel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}, Config{})
	_, err := c.Team(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestParseRetryAfterHTTPDate(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	got := parseRetryAfter(now.Add(90*time.Second).Format(http.TimeFormat), now)
	if got != 90*time.Second {
		t.Fatalf("expected 90s, got %s", got)
	}
	if got := parseRetryAfter("soon", now); got != 0 {
		t.Fatalf("expected 0 for garbage, got %s", got)
	}
}

func TestEndpointsUseExpectedRoutes(t *testing.T) {
	type call struct {
		method, path string
		body         map[string]any
	}
	responses := map[string]string{
		"GET /api/seasons/1/games":               `[]`,
		"GET /api/seasons/1/weeks/3/games":       `[]`,
		"GET /api/seasons/1/teams":               `[]`,
		"POST /api/scenarios":                    `{"id":5,"name":"mine","sport_id":1,"season_id":1,"is_public":false}`,
		"GET /api/picks/scenarios/5":             `[{"id":1,"scenario_id":5,"game_id":9,"picked_team_id":4,"status":"pending"}]`,
		"POST /api/picks/scenarios/5/games/9":    `{"id":1,"scenario_id":5,"game_id":9,"picked_team_id":4,"status":"pending"}`,
		"PUT /api/picks/scenarios/5/games/9":     `{"id":1,"scenario_id":5,"game_id":9,"picked_team_id":null,"status":"correct"}`,
		"GET /api/playoffs/scenarios/5/rounds/2": `[{"id":3,"round":2,"conference":"AFC","higher_seed":1,"lower_seed":4}]`,
		"POST /api/auth/login":                   `{"user":{"id":7,"email":"a@b.co","username":"ann"},"token":"tok-9"}`,
	}
	var seen []call
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&body)
		}
		seen = append(seen, call{method: r.Method, path: r.URL.Path, body: body})
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if payload, ok := responses[r.Method+" "+r.URL.Path]; ok {
			_, _ = w.Write([]byte(payload))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}, Config{})
	ctx := context.Background()
	team := int64(4)

	games, err := c.SeasonGames(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, games)
	_, err = c.WeekGames(ctx, 1, 3)
	require.NoError(t, err)
	_, err = c.SeasonTeams(ctx, 1)
	require.NoError(t, err)

	scenario, err := c.CreateScenario(ctx, CreateScenarioRequest{Name: "mine", SportID: 1, SeasonID: 1})
	require.NoError(t, err)
	assert.Equal(t, Scenario{ID: 5, Name: "mine", SportID: 1, SeasonID: 1}, scenario)
	require.NoError(t, c.DeleteScenario(ctx, 5))

	picks, err := c.Picks(ctx, 5)
	require.NoError(t, err)
	require.Len(t, picks, 1)
	assert.Equal(t, int64(9), picks[0].GameID)
	require.NotNil(t, picks[0].PickedTeamID)
	assert.Equal(t, int64(4), *picks[0].PickedTeamID)
	assert.Equal(t, PickPending, picks[0].Status)

	created, err := c.CreatePick(ctx, 5, 9, PickRequest{PickedTeamID: &team})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	require.NotNil(t, created.PickedTeamID)
	assert.Equal(t, int64(4), *created.PickedTeamID)

	tie, err := c.UpdatePick(ctx, 5, 9, PickRequest{})
	require.NoError(t, err)
	assert.Nil(t, tie.PickedTeamID)
	assert.Equal(t, PickCorrect, tie.Status)

	matchups, err := c.PlayoffMatchups(ctx, 5, 2)
	require.NoError(t, err)
	require.Len(t, matchups, 1)
	assert.Equal(t, 2, matchups[0].Round)
	require.NotNil(t, matchups[0].HigherSeed)
	require.NotNil(t, matchups[0].LowerSeed)
	assert.Equal(t, 1, *matchups[0].HigherSeed)
	assert.Equal(t, 4, *matchups[0].LowerSeed)
	require.NotNil(t, matchups[0].Conference)
	assert.Equal(t, "AFC", *matchups[0].Conference)

	require.NoError(t, c.EnablePlayoffs(ctx, 5))

	auth, err := c.Login(ctx, LoginRequest{Email: "a@b.co", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "tok-9", auth.Token)
	assert.Equal(t, "ann", auth.User.Username)

	want := []call{
		{method: "GET", path: "/api/seasons/1/games"},
		{method: "GET", path: "/api/seasons/1/weeks/3/games"},
		{method: "GET", path: "/api/seasons/1/teams"},
		{method: "POST", path: "/api/scenarios", body: map[string]any{"name": "mine", "sport_id": float64(1), "season_id": float64(1), "is_public": false}},
		{method: "DELETE", path: "/api/scenarios/5"},
		{method: "GET", path: "/api/picks/scenarios/5"},
		{method: "POST", path: "/api/picks/scenarios/5/games/9", body: map[string]any{"picked_team_id": float64(4)}},
		{method: "PUT", path: "/api/picks/scenarios/5/games/9", body: map[string]any{"picked_team_id": nil}},
		{method: "GET", path: "/api/playoffs/scenarios/5/rounds/2"},
		{method: "POST", path: "/api/playoffs/scenarios/5/enable"},
		{method: "POST", path: "/api/auth/login", body: map[string]any{"email": "a@b.co", "password": "x"}},
	}
	require.Len(t, seen, len(want))
	for i := range want {
		assert.Equal(t, want[i].method, seen[i].method, "call %d", i)
		assert.Equal(t, want[i].path, seen[i].path, "call %d", i)
		if want[i].body != nil {
			assert.Equal(t, want[i].body, seen[i].body, "call %d", i)
		}
	}
}

func TestNFLStandingsDecodes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"afc":{"divisions":{"AFC East":[{"rank":1,"team_id":3,"team_abbr":"BUF","wins":11}]},"playoff_seeds":[{"seed":1,"team_id":3}]},"nfc":{},"draft_order":[{"pick":1,"team_id":9}]}`))
	}, Config{})

	st, err := c.NFLStandings(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, st.AFC.Divisions["AFC East"], 1)
	assert.Equal(t, "BUF", st.AFC.Divisions["AFC East"][0].TeamAbbr)
	assert.Equal(t, 1, st.AFC.PlayoffSeeds[0].Seed)
	assert.Equal(t, int64(9), st.DraftOrder[0].TeamID)

	raw, err := c.Standings(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, json.Valid(raw))
}
