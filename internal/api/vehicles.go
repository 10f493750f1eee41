package api

import (
	"context"
	"fmt"
)

// ListVehicles returns registered vehicles with SOAT expiry data.
func (c *Client) ListVehicles(ctx context.Context) ([]Vehicle, error) {
	var env listEnvelope[Vehicle]
	if err := getJSON(ctx, c, "/vehicles", nil, &env); err != nil {
		return nil, err
	}
	return env.Results, nil
}

// GetVehicle fetches a single vehicle.
func (c *Client) GetVehicle(ctx context.Context, id int) (*Vehicle, error) {
	var vehicle Vehicle
	if err := getJSON(ctx, c, fmt.Sprintf("/vehicles/%d", id), nil, &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}
