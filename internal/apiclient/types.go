package apiclient

import "encoding/json"

// RegisterRequest is the /auth/register payload.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the /auth/login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest is the /auth/profile payload; empty fields are omitted.
type UpdateProfileRequest struct {
	Username        string `json:"username,omitempty"`
	Email           string `json:"email,omitempty"`
	CurrentPassword string `json:"current_password,omitempty"`
	NewPassword     string `json:"new_password,omitempty"`
}

// Scenario is a user prediction context bound to one season.
type Scenario struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	SportID         int64  `json:"sport_id"`
	SeasonID        int64  `json:"season_id"`
	SeasonStartYear int    `json:"season_start_year,omitempty"`
	SeasonEndYear   int    `json:"season_end_year,omitempty"`
	IsPublic        bool   `json:"is_public"`
	SportShortName  string `json:"sport_short_name,omitempty"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// CreateScenarioRequest is the POST /scenarios payload.
type CreateScenarioRequest struct {
	Name     string `json:"name"`
	SportID  int64  `json:"sport_id"`
	SeasonID int64  `json:"season_id"`
	IsPublic bool   `json:"is_public"`
}

// UpdateScenarioRequest is the PUT /scenarios/{id} payload.
type UpdateScenarioRequest struct {
	Name     *string `json:"name,omitempty"`
	IsPublic *bool   `json:"is_public,omitempty"`
}

// PickStatus is the grading state of a pick.
type PickStatus string

const (
	PickPending   PickStatus = "pending"
	PickCorrect   PickStatus = "correct"
	PickIncorrect PickStatus = "incorrect"
)

// Pick is a prediction for one game.
type Pick struct {
	ID                 int64      `json:"id"`
	ScenarioID         int64      `json:"scenario_id"`
	GameID             int64      `json:"game_id"`
	PickedTeamID       *int64     `json:"picked_team_id"`
	PredictedHomeScore *int       `json:"predicted_home_score"`
	PredictedAwayScore *int       `json:"predicted_away_score"`
	Status             PickStatus `json:"status"`
	CreatedAt          string     `json:"created_at"`
	UpdatedAt          string     `json:"updated_at"`
}

// PickRequest creates or updates a pick. A nil PickedTeamID is sent as null,
// which the backend treats as a tie pick.
type PickRequest struct {
	PickedTeamID       *int64 `json:"picked_team_id"`
	PredictedHomeScore *int   `json:"predicted_home_score,omitempty"`
	PredictedAwayScore *int   `json:"predicted_away_score,omitempty"`
}

// TeamRecord is one row of a division table.
type TeamRecord struct {
	Rank                int      `json:"rank"`
	TeamID              int64    `json:"team_id"`
	TeamName            string   `json:"team_name"`
	TeamAbbr            string   `json:"team_abbr"`
	Wins                int      `json:"wins"`
	Losses              int      `json:"losses"`
	Ties                int      `json:"ties"`
	WinPct              float64  `json:"win_pct"`
	DivisionRecord      string   `json:"division_record"`
	ConferenceRecord    string   `json:"conference_record"`
	PointsFor           int      `json:"points_for"`
	PointsAgainst       int      `json:"points_against"`
	PointDiff           int      `json:"point_diff"`
	DivisionGamesBack   *float64 `json:"division_games_back,omitempty"`
	ConferenceGamesBack *float64 `json:"conference_games_back,omitempty"`
}

// PlayoffSeed is a seeded playoff team.
type PlayoffSeed struct {
	Seed             int    `json:"seed"`
	TeamID           int64  `json:"team_id"`
	TeamName         string `json:"team_name"`
	TeamAbbr         string `json:"team_abbr"`
	Wins             int    `json:"wins"`
	Losses           int    `json:"losses"`
	Ties             int    `json:"ties"`
	IsDivisionWinner bool   `json:"is_division_winner"`
}

// ConferenceStandings groups division tables and seeds for one conference.
type ConferenceStandings struct {
	Divisions    map[string][]TeamRecord `json:"divisions"`
	PlayoffSeeds []PlayoffSeed           `json:"playoff_seeds"`
	AllSeeds     []PlayoffSeed           `json:"all_seeds"`
}

// DraftPick is one slot of the projected draft order.
type DraftPick struct {
	Pick     int    `json:"pick"`
	TeamID   int64  `json:"team_id"`
	TeamName string `json:"team_name"`
	TeamAbbr string `json:"team_abbr"`
	Record   string `json:"record"`
	Reason   string `json:"reason"`
}

// NFLStandings is the standings payload for an NFL scenario.
type NFLStandings struct {
	AFC        ConferenceStandings `json:"afc"`
	NFC        ConferenceStandings `json:"nfc"`
	DraftOrder []DraftPick         `json:"draft_order"`
}

// RawStandings is the league-specific standings payload, undecoded.
type RawStandings = json.RawMessage

// PlayoffState tracks a scenario's bracket progress.
type PlayoffState struct {
	ID           int64  `json:"id"`
	ScenarioID   int64  `json:"scenario_id"`
	CurrentRound int    `json:"current_round"`
	IsEnabled    bool   `json:"is_enabled"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// PlayoffStateResponse is the GET .../state payload.
type PlayoffStateResponse struct {
	PlayoffState *PlayoffState `json:"playoff_state"`
	CanEnable    bool          `json:"can_enable"`
}

// PlayoffMatchup is one bracket slot.
type PlayoffMatchup struct {
	ID                       int64   `json:"id"`
	PlayoffStateID           int64   `json:"playoff_state_id"`
	PlayoffSeriesID          int64   `json:"playoff_series_id"`
	Round                    int     `json:"round"`
	MatchupOrder             int     `json:"matchup_order"`
	GameNumber               *int    `json:"game_number"`
	Conference               *string `json:"conference"`
	HigherSeedTeamID         *int64  `json:"higher_seed_team_id"`
	LowerSeedTeamID          *int64  `json:"lower_seed_team_id"`
	HigherSeed               *int    `json:"higher_seed"`
	LowerSeed                *int    `json:"lower_seed"`
	PickedTeamID             *int64  `json:"picked_team_id"`
	PredictedHigherSeedScore *int    `json:"predicted_higher_seed_score"`
	PredictedLowerSeedScore  *int    `json:"predicted_lower_seed_score"`
	Status                   *string `json:"status"`
	CreatedAt                string  `json:"created_at"`
	UpdatedAt                string  `json:"updated_at"`
}

// MatchupPickRequest updates a bracket pick.
type MatchupPickRequest struct {
	PickedTeamID             *int64 `json:"picked_team_id"`
	PredictedHigherSeedScore *int   `json:"predicted_higher_seed_score,omitempty"`
	PredictedLowerSeedScore  *int   `json:"predicted_lower_seed_score,omitempty"`
}
