package apiclient

import (
	"context"
	"fmt"
	"net/http"
)

// Scenarios lists the caller's scenarios.
func (c *Client) Scenarios(ctx context.Context) ([]Scenario, error) {
	out := []Scenario{}
	err := c.do(ctx, http.MethodGet, "/scenarios", nil, &out)
	return out, err
}

// Scenario fetches one scenario.
func (c *Client) Scenario(ctx context.Context, id int64) (Scenario, error) {
	var out Scenario
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/scenarios/%d", id), nil, &out)
	return out, err
}

// CreateScenario creates a scenario.
func (c *Client) CreateScenario(ctx context.Context, req CreateScenarioRequest) (Scenario, error) {
	var out Scenario
	err := c.do(ctx, http.MethodPost, "/scenarios", req, &out)
	return out, err
}

// UpdateScenario renames a scenario or changes its visibility.
func (c *Client) UpdateScenario(ctx context.Context, id int64, req UpdateScenarioRequest) (Scenario, error) {
	var out Scenario
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/scenarios/%d", id), req, &out)
	return out, err
}

// DeleteScenario removes a scenario.
func (c *Client) DeleteScenario(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/scenarios/%d", id), nil, nil)
}

// Standings returns the scenario's standings undecoded; the shape depends on the league.
func (c *Client) Standings(ctx context.Context, scenarioID int64) (RawStandings, error) {
	var out RawStandings
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/scenarios/%d/standings", scenarioID), nil, &out)
	return out, err
}

// NFLStandings returns an NFL scenario's standings.
func (c *Client) NFLStandings(ctx context.Context, scenarioID int64) (NFLStandings, error) {
	var out NFLStandings
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/scenarios/%d/standings", scenarioID), nil, &out)
	return out, err
}
