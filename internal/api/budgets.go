package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// BudgetFilters narrows the budget list endpoint.
type BudgetFilters struct {
	ActiveOnly bool
	Period     string // "", "weekly", "monthly", "yearly"
}

func (f BudgetFilters) query() url.Values {
	q := url.Values{}
	if f.ActiveOnly {
		q.Set("active_only", "true")
	}
	if f.Period != "" {
		q.Set("period", f.Period)
	}
	return q
}

// ListBudgets returns budgets in server order.
func (c *Client) ListBudgets(ctx context.Context, filters BudgetFilters) ([]BudgetListItem, error) {
	var env listEnvelope[BudgetListItem]
	if err := getJSON(ctx, c, "/budgets", filters.query(), &env); err != nil {
		return nil, err
	}
	return env.Results, nil
}

// CreateBudget creates a budget and returns the server record with its
// computed fields populated.
func (c *Client) CreateBudget(ctx context.Context, payload BudgetPayload) (*BudgetListItem, error) {
	var created BudgetListItem
	if err := sendJSON(ctx, c, http.MethodPost, "/budgets", payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateBudget patches the given fields of a budget.
func (c *Client) UpdateBudget(ctx context.Context, id int, payload BudgetPayload) error {
	return sendJSON(ctx, c, http.MethodPatch, fmt.Sprintf("/budgets/%d", id), payload, nil)
}

// DeleteBudget removes a budget.
func (c *Client) DeleteBudget(ctx context.Context, id int) error {
	return sendJSON(ctx, c, http.MethodDelete, fmt.Sprintf("/budgets/%d", id), nil, nil)
}

// ToggleBudgetActive flips is_active and returns the complete updated budget.
func (c *Client) ToggleBudgetActive(ctx context.Context, id int) (*ToggleResult, error) {
	var result ToggleResult
	if err := sendJSON(ctx, c, http.MethodPost, fmt.Sprintf("/budgets/%d/toggle_active", id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetBudget fetches the detail shape, including the spend projection.
func (c *Client) GetBudget(ctx context.Context, id int) (*BudgetDetail, error) {
	var detail BudgetDetail
	if err := getJSON(ctx, c, fmt.Sprintf("/budgets/%d", id), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// MonthlySummary fetches the current-month aggregate across budgets.
func (c *Client) MonthlySummary(ctx context.Context) (*MonthlySummary, error) {
	var summary MonthlySummary
	if err := getJSON(ctx, c, "/budgets/monthly_summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// CategoriesWithoutBudget lists categories that have no active budget.
func (c *Client) CategoriesWithoutBudget(ctx context.Context) ([]Category, error) {
	var env listEnvelope[Category]
	if err := getJSON(ctx, c, "/budgets/categories_without_budget", nil, &env); err != nil {
		return nil, err
	}
	return env.Results, nil
}
