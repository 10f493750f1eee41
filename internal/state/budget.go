package state

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jfmoncada/plata/internal/api"
	"github.com/jfmoncada/plata/internal/session"
)

// AuthSource is the slice of the session a container depends on.
type AuthSource interface {
	Authenticated() bool
	Subscribe(fn func(session.Event))
}

// BudgetAPI is the slice of the resource client the budget container uses.
type BudgetAPI interface {
	ListBudgets(ctx context.Context, filters api.BudgetFilters) ([]api.BudgetListItem, error)
	CreateBudget(ctx context.Context, payload api.BudgetPayload) (*api.BudgetListItem, error)
	UpdateBudget(ctx context.Context, id int, payload api.BudgetPayload) error
	DeleteBudget(ctx context.Context, id int) error
	ToggleBudgetActive(ctx context.Context, id int) (*api.ToggleResult, error)
	GetBudget(ctx context.Context, id int) (*api.BudgetDetail, error)
	MonthlySummary(ctx context.Context) (*api.MonthlySummary, error)
	CategoriesWithoutBudget(ctx context.Context) ([]api.Category, error)
}

// BudgetSnapshot is an immutable view of the cached budget collection.
type BudgetSnapshot struct {
	Items   []api.BudgetListItem
	Loading bool
	Err     string
}

// BudgetContainer caches the budget list and exposes its mutation API.
// The container is the single writer of its cache; consumers read
// snapshots and invoke mutations.
type BudgetContainer struct {
	api    BudgetAPI
	auth   AuthSource
	logger *slog.Logger

	mu      sync.Mutex
	items   []api.BudgetListItem
	loading bool
	errMsg  string
	gen     uint64
	filters api.BudgetFilters // last-used, reused by refetch-after-write
}

// NewBudgetContainer creates a container bound to the given auth source.
// It subscribes to authentication transitions: login triggers an initial
// refresh with the default filters, logout clears the cache immediately.
func NewBudgetContainer(client BudgetAPI, auth AuthSource, defaults api.BudgetFilters) *BudgetContainer {
	c := &BudgetContainer{
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
func (c *BudgetContainer) Snapshot() BudgetSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]api.BudgetListItem, len(c.items))
	copy(items, c.items)
	return BudgetSnapshot{Items: items, Loading: c.loading, Err: c.errMsg}
}

// Refresh reloads the list with the given filters, replacing the cache
// wholesale on success. While logged out it clears the cache and performs
// no network call. Failures are captured on the snapshot's Err, never
// returned: ambient refreshes have no caller to reject to.
//
// A generation counter guards against out-of-order responses: only the
// response matching the latest initiated refresh is applied.
func (c *BudgetContainer) Refresh(ctx context.Context, filters api.BudgetFilters) {
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

	items, err := c.api.ListBudgets(ctx, filters)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		c.logger.Debug("dropping stale budget refresh", "gen", gen, "latest", c.gen)
		return
	}
	c.loading = false
	if err != nil {
		c.errMsg = err.Error()
		return
	}
	c.items = items
}

// Create adds a budget and refetches the list so the new item's
// server-computed fields are authoritative. The created record is
// returned to the caller; on failure Err is set and the error returned.
func (c *BudgetContainer) Create(ctx context.Context, payload api.BudgetPayload) (*api.BudgetListItem, error) {
	if !c.auth.Authenticated() {
		return nil, api.ErrUnauthorized
	}

	created, err := c.api.CreateBudget(ctx, payload)
	if err != nil {
		c.setError(err)
		return nil, err
	}

	c.Refresh(ctx, c.lastFilters())
	return created, nil
}

// Update patches a budget, then refetches.
func (c *BudgetContainer) Update(ctx context.Context, id int, payload api.BudgetPayload) error {
	if !c.auth.Authenticated() {
		return api.ErrUnauthorized
	}

	if err := c.api.UpdateBudget(ctx, id, payload); err != nil {
		c.setError(err)
		return err
	}

	c.Refresh(ctx, c.lastFilters())
	return nil
}

// Delete removes a budget. The item is dropped from the cache immediately,
// then the list is refetched for round-trip consistency.
func (c *BudgetContainer) Delete(ctx context.Context, id int) error {
	if !c.auth.Authenticated() {
		return api.ErrUnauthorized
	}

	if err := c.api.DeleteBudget(ctx, id); err != nil {
		c.setError(err)
		return err
	}

	c.mu.Lock()
	c.items = removeByID(c.items, budgetID, id)
	c.mu.Unlock()

	c.Refresh(ctx, c.lastFilters())
	return nil
}

// ToggleActive flips is_active. The server echoes the complete updated
// budget, so the cached item is patched in place and no refetch is needed.
func (c *BudgetContainer) ToggleActive(ctx context.Context, id int) (*api.ToggleResult, error) {
	if !c.auth.Authenticated() {
		return nil, api.ErrUnauthorized
	}

	result, err := c.api.ToggleBudgetActive(ctx, id)
	if err != nil {
		c.setError(err)
		return nil, err
	}

	c.mu.Lock()
	patchInPlace(c.items, budgetID, result.Budget)
	c.mu.Unlock()
	return result, nil
}

// Detail fetches the richer detail shape on demand. It never touches the
// cached list: the detail view has its own shape and is not cached.
func (c *BudgetContainer) Detail(ctx context.Context, id int) (*api.BudgetDetail, error) {
	if !c.auth.Authenticated() {
		return nil, api.ErrUnauthorized
	}
	return c.api.GetBudget(ctx, id)
}

// Summary fetches the monthly aggregate, passthrough.
func (c *BudgetContainer) Summary(ctx context.Context) (*api.MonthlySummary, error) {
	if !c.auth.Authenticated() {
		return nil, api.ErrUnauthorized
	}
	return c.api.MonthlySummary(ctx)
}

// CategoriesWithoutBudget fetches unbudgeted categories, passthrough.
func (c *BudgetContainer) CategoriesWithoutBudget(ctx context.Context) ([]api.Category, error) {
	if !c.auth.Authenticated() {
		return nil, api.ErrUnauthorized
	}
	return c.api.CategoriesWithoutBudget(ctx)
}

func (c *BudgetContainer) lastFilters() api.BudgetFilters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// clear empties the cache without a network call. Invalidating the
// refresh generation discards any response still in flight, so no stale
// data can reappear for a different user.
func (c *BudgetContainer) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.items = nil
	c.loading = false
	c.errMsg = ""
}

func (c *BudgetContainer) setError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errMsg = err.Error()
}

func budgetID(b api.BudgetListItem) int { return b.ID }
