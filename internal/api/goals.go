package api

import (
	"context"
	"fmt"
)

// ListGoals returns savings goals with server-computed progress.
func (c *Client) ListGoals(ctx context.Context) ([]Goal, error) {
	var env listEnvelope[Goal]
	if err := getJSON(ctx, c, "/goals", nil, &env); err != nil {
		return nil, err
	}
	return env.Results, nil
}

// GetGoal fetches a single goal.
func (c *Client) GetGoal(ctx context.Context, id int) (*Goal, error) {
	var goal Goal
	if err := getJSON(ctx, c, fmt.Sprintf("/goals/%d", id), nil, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}
