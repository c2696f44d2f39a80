package games

import (
	"errors"
	"time"
)

// GameStatus mirrors the backend contract for game lifecycle states.
type GameStatus string

const (
	StatusUpcoming   GameStatus = "upcoming"
	StatusInProgress GameStatus = "in_progress"
	StatusFinal      GameStatus = "final"
)

// ErrNoStartTime is returned when a game carries no start_time.
var ErrNoStartTime = errors.New("game has no start_time")

// Game is the canonical scheduled-game shape shared with the backend API.
type Game struct {
	ID           int64      `json:"id" db:"id"`
	SeasonID     int64      `json:"season_id" db:"season_id"`
	ESPNID       string     `json:"espn_id" db:"espn_id"`
	HomeTeamID   int64      `json:"home_team_id" db:"home_team_id"`
	AwayTeamID   int64      `json:"away_team_id" db:"away_team_id"`
	StartTime    string     `json:"start_time" db:"start_time"`
	DayOfWeek    string     `json:"day_of_week" db:"day_of_week"`
	Week         int        `json:"week" db:"week"`
	Location     string     `json:"location,omitempty" db:"location"`
	Primetime    string     `json:"primetime,omitempty" db:"primetime"`
	Network      string     `json:"network,omitempty" db:"network"`
	HomeScore    *int       `json:"home_score,omitempty" db:"home_score"`
	AwayScore    *int       `json:"away_score,omitempty" db:"away_score"`
	Status       GameStatus `json:"status" db:"status"`
	IsPostseason bool       `json:"is_postseason" db:"is_postseason"`
}

// startLayouts lists accepted start_time encodings, zoned first.
var startLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Scheduled reports whether the game has been assigned a week.
func (g Game) Scheduled() bool {
	return g.Week > 0
}

// StartIn parses start_time. Zoned values are converted to loc; zone-less
// values are interpreted as wall-clock time in loc.
func (g Game) StartIn(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if g.StartTime == "" {
		return time.Time{}, ErrNoStartTime
	}
	t, err := time.Parse(startLayouts[0], g.StartTime)
	if err == nil {
		return t.In(loc), nil
	}
	for _, layout := range startLayouts[1:] {
		if t, perr := time.ParseInLocation(layout, g.StartTime, loc); perr == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// SeasonResponse is the payload returned by /seasons/{id}/games.
type SeasonResponse struct {
	SeasonID int64  `json:"seasonId"`
	League   string `json:"league"`
	Games    []Game `json:"games"`
}

// NewSeasonResponse builds a SeasonResponse payload.
func NewSeasonResponse(seasonID int64, league string, games []Game) SeasonResponse {
	if games == nil {
		games = []Game{}
	}
	return SeasonResponse{
		SeasonID: seasonID,
		League:   league,
		Games:    games,
	}
}
