package apiclient

import (
	"context"
	"fmt"
	"net/http"

	domaingames "github.com/preston-bernstein/season-weeks-service/internal/domain/games"
	"github.com/preston-bernstein/season-weeks-service/internal/domain/teams"
)

// SeasonGames lists every game of a season.
func (c *Client) SeasonGames(ctx context.Context, seasonID int64) ([]domaingames.Game, error) {
	out := []domaingames.Game{}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/seasons/%d/games", seasonID), nil, &out)
	return out, err
}

// WeekGames lists the games of one week.
func (c *Client) WeekGames(ctx context.Context, seasonID int64, week int) ([]domaingames.Game, error) {
	out := []domaingames.Game{}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/seasons/%d/weeks/%d/games", seasonID, week), nil, &out)
	return out, err
}

// Game fetches one game.
func (c *Client) Game(ctx context.Context, gameID int64) (domaingames.Game, error) {
	var out domaingames.Game
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/games/%d", gameID), nil, &out)
	return out, err
}

// SeasonTeams lists the teams of a season.
func (c *Client) SeasonTeams(ctx context.Context, seasonID int64) ([]teams.Team, error) {
	out := []teams.Team{}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/seasons/%d/teams", seasonID), nil, &out)
	return out, err
}

// Team fetches one team.
func (c *Client) Team(ctx context.Context, teamID int64) (teams.Team, error) {
	var out teams.Team
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/teams/%d", teamID), nil, &out)
	return out, err
}
