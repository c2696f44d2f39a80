package apiclient

import (
	"context"
	"fmt"
	"net/http"
)

func pickPath(scenarioID, gameID int64) string {
	return fmt.Sprintf("/picks/scenarios/%d/games/%d", scenarioID, gameID)
}

// Picks lists a scenario's picks.
func (c *Client) Picks(ctx context.Context, scenarioID int64) ([]Pick, error) {
	out := []Pick{}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/picks/scenarios/%d", scenarioID), nil, &out)
	return out, err
}

// Pick fetches the pick for one game.
func (c *Client) Pick(ctx context.Context, scenarioID, gameID int64) (Pick, error) {
	var out Pick
	err := c.do(ctx, http.MethodGet, pickPath(scenarioID, gameID), nil, &out)
	return out, err
}

// CreatePick records a pick.
func (c *Client) CreatePick(ctx context.Context, scenarioID, gameID int64, req PickRequest) (Pick, error) {
	var out Pick
	err := c.do(ctx, http.MethodPost, pickPath(scenarioID, gameID), req, &out)
	return out, err
}

// UpdatePick changes a pick.
func (c *Client) UpdatePick(ctx context.Context, scenarioID, gameID int64, req PickRequest) (Pick, error) {
	var out Pick
	err := c.do(ctx, http.MethodPut, pickPath(scenarioID, gameID), req, &out)
	return out, err
}

// DeletePick removes a pick.
func (c *Client) DeletePick(ctx context.Context, scenarioID, gameID int64) error {
	return c.do(ctx, http.MethodDelete, pickPath(scenarioID, gameID), nil, nil)
}
