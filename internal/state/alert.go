package state

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jfmoncada/plata/internal/api"
	"github.com/jfmoncada/plata/internal/session"
)

// AlertAPI is the slice of the resource client the alert container uses.
type AlertAPI interface {
	ListAlerts(ctx context.Context, filters api.AlertFilters) ([]api.BudgetAlert, error)
	MarkAlertRead(ctx context.Context, id int) (*api.BudgetAlert, error)
	MarkAllAlertsRead(ctx context.Context) (*api.ReadAllResult, error)
	DeleteAlert(ctx context.Context, id int) error
	GetAlert(ctx context.Context, id int) (*api.BudgetAlert, error)
}

// AlertSnapshot is an immutable view of the cached alert collection.
type AlertSnapshot struct {
	Items   []api.BudgetAlert
	Loading bool
	Err     string
}

// AlertContainer caches the alert list. is_read is the only field it ever
// changes, and only from the server's echoed records.
type AlertContainer struct {
	api    AlertAPI
	auth   AuthSource
	logger *slog.Logger

	mu      sync.Mutex
	items   []api.BudgetAlert
	loading bool
	errMsg  string
	gen     uint64
	filters api.AlertFilters
}

// NewAlertContainer creates a container bound to the given auth source.
func NewAlertContainer(client AlertAPI, auth AuthSource, defaults api.AlertFilters) *AlertContainer {
	c := &AlertContainer{
		api:     client,
		auth:    auth,
		logger:  slog.Default(),
		filters: defaults,
	}
	auth.Subscribe(func(ev session.Event) {
		if ev.Authenticated {
			c.Refresh(context.Background(), c.lastFilters())
		} else {
			c.clear()
		}
	})
	return c
}

// Snapshot returns a copy of the cached collection.
func (c *AlertContainer) Snapshot() AlertSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]api.BudgetAlert, len(c.items))
	copy(items, c.items)
	return AlertSnapshot{Items: items, Loading: c.loading, Err: c.errMsg}
}

// UnreadCount counts cached alerts with is_read false. It is always
// derived from the live cache on access, never stored, so it cannot
// disagree with the item list.
func (c *AlertContainer) UnreadCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, a := range c.items {
		if !a.IsRead {
			count++
		}
	}
	return count
}

// Refresh reloads the alert list. Same contract as the budget container:
// no network while logged out, wholesale replace on success, Err captured
// on failure, stale responses dropped by generation.
func (c *AlertContainer) Refresh(ctx context.Context, filters api.AlertFilters) {
	if !c.auth.Authenticated() {
		c.clear()
		return
	}

	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.loading = true
	c.errMsg = ""
	c.filters = filters
	c.mu.Unlock()

	items, err := c.api.ListAlerts(ctx, filters)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		c.logger.Debug("dropping stale alert refresh", "gen", gen, "latest", c.gen)
		return
	}
	c.loading = false
	if err != nil {
		c.errMsg = err.Error()
		return
	}
	c.items = items
}

// MarkRead flags one alert as read. The server echoes the complete updated
// record, so it is patched in place; a second call on an already-read
// alert leaves the cache identical.
func (c *AlertContainer) MarkRead(ctx context.Context, id int) error {
	if !c.auth.Authenticated() {
		return api.ErrUnauthorized
	}

	updated, err := c.api.MarkAlertRead(ctx, id)
	if err != nil {
		c.setError(err)
		return err
	}

	c.mu.Lock()
	patchInPlace(c.items, alertID, *updated)
	c.mu.Unlock()
	return nil
}

// MarkAllRead flags every alert as read. The server is authoritative for
// exactly the field being flipped, so cached items are patched without a
// refetch. On rejection the cache stays untouched.
func (c *AlertContainer) MarkAllRead(ctx context.Context) error {
	if !c.auth.Authenticated() {
		return api.ErrUnauthorized
	}

	if _, err := c.api.MarkAllAlertsRead(ctx); err != nil {
		c.setError(err)
		return err
	}

	c.mu.Lock()
	for i := range c.items {
		c.items[i].IsRead = true
	}
	c.mu.Unlock()
	return nil
}

// Delete removes an alert, drops it from the cache, and refetches.
func (c *AlertContainer) Delete(ctx context.Context, id int) error {
	if !c.auth.Authenticated() {
		return api.ErrUnauthorized
	}

	if err := c.api.DeleteAlert(ctx, id); err != nil {
		c.setError(err)
		return err
	}

	c.mu.Lock()
	c.items = removeByID(c.items, alertID, id)
	c.mu.Unlock()

	c.Refresh(ctx, c.lastFilters())
	return nil
}

// Detail fetches a single alert, passthrough.
func (c *AlertContainer) Detail(ctx context.Context, id int) (*api.BudgetAlert, error) {
	if !c.auth.Authenticated() {
		return nil, api.ErrUnauthorized
	}
	return c.api.GetAlert(ctx, id)
}

func (c *AlertContainer) lastFilters() api.AlertFilters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

func (c *AlertContainer) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.items = nil
	c.loading = false
	c.errMsg = ""
}

func (c *AlertContainer) setError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errMsg = err.Error()
}

func alertID(a api.BudgetAlert) int { return a.ID }
