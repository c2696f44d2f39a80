package apiclient

import (
	"context"
	"fmt"
	"net/http"
)

func playoffsPath(scenarioID int64, suffix string) string {
	return fmt.Sprintf("/playoffs/scenarios/%d/%s", scenarioID, suffix)
}

// PlayoffState reports bracket state and whether it can be enabled.
func (c *Client) PlayoffState(ctx context.Context, scenarioID int64) (PlayoffStateResponse, error) {
	var out PlayoffStateResponse
	err := c.do(ctx, http.MethodGet, playoffsPath(scenarioID, "state"), nil, &out)
	return out, err
}

// EnablePlayoffs seeds the bracket for a scenario.
func (c *Client) EnablePlayoffs(ctx context.Context, scenarioID int64) error {
	return c.do(ctx, http.MethodPost, playoffsPath(scenarioID, "enable"), nil, nil)
}

// PlayoffMatchups lists the matchups of one round.
func (c *Client) PlayoffMatchups(ctx context.Context, scenarioID int64, round int) ([]PlayoffMatchup, error) {
	out := []PlayoffMatchup{}
	err := c.do(ctx, http.MethodGet, playoffsPath(scenarioID, fmt.Sprintf("rounds/%d", round)), nil, &out)
	return out, err
}

// UpdateMatchupPick records a bracket pick.
func (c *Client) UpdateMatchupPick(ctx context.Context, scenarioID, matchupID int64, req MatchupPickRequest) (PlayoffMatchup, error) {
	var out PlayoffMatchup
	err := c.do(ctx, http.MethodPut, playoffsPath(scenarioID, fmt.Sprintf("matchups/%d", matchupID)), req, &out)
	return out, err
}

// DeleteMatchupPick clears a bracket pick.
func (c *Client) DeleteMatchupPick(ctx context.Context, scenarioID, matchupID int64) error {
	return c.do(ctx, http.MethodDelete, playoffsPath(scenarioID, fmt.Sprintf("matchups/%d", matchupID)), nil, nil)
}
