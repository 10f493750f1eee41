package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// AlertFilters narrows the alert list endpoint.
type AlertFilters struct {
	Unread bool
	Type   string // "", "warning", "exceeded", "soat_expiry"
}

func (f AlertFilters) query() url.Values {
	q := url.Values{}
	if f.Unread {
		q.Set("unread", "true")
	}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	return q
}

// ListAlerts returns alerts in server order, newest first.
func (c *Client) ListAlerts(ctx context.Context, filters AlertFilters) ([]BudgetAlert, error) {
	var env listEnvelope[BudgetAlert]
	if err := getJSON(ctx, c, "/alerts", filters.query(), &env); err != nil {
		return nil, err
	}
	return env.Results, nil
}

// MarkAlertRead flags one alert as read and returns the complete updated
// record, which is authoritative for the changed fields.
func (c *Client) MarkAlertRead(ctx context.Context, id int) (*BudgetAlert, error) {
	var updated BudgetAlert
	if err := sendJSON(ctx, c, http.MethodPatch, fmt.Sprintf("/alerts/%d/read", id), nil, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// MarkAllAlertsRead flags every alert as read.
func (c *Client) MarkAllAlertsRead(ctx context.Context) (*ReadAllResult, error) {
	var result ReadAllResult
	if err := sendJSON(ctx, c, http.MethodPost, "/alerts/read-all", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteAlert removes an alert.
func (c *Client) DeleteAlert(ctx context.Context, id int) error {
	return sendJSON(ctx, c, http.MethodDelete, fmt.Sprintf("/alerts/%d/delete", id), nil, nil)
}

// GetAlert fetches a single alert.
func (c *Client) GetAlert(ctx context.Context, id int) (*BudgetAlert, error) {
	var alert BudgetAlert
	if err := getJSON(ctx, c, fmt.Sprintf("/alerts/%d", id), nil, &alert); err != nil {
		return nil, err
	}
	return &alert, nil
}
