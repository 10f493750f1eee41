package state

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jfmoncada/plata/internal/api"
	"github.com/jfmoncada/plata/internal/session"
)

type fakeAuth struct {
	authed bool
	subs   []func(session.Event)
}

func (f *fakeAuth) Authenticated() bool { return f.authed }

func (f *fakeAuth) Subscribe(fn func(session.Event)) { f.subs = append(f.subs, fn) }

func (f *fakeAuth) set(authed bool) {
	f.authed = authed
	for _, fn := range f.subs {
		fn(session.Event{Authenticated: authed})
	}
}

type fakeBudgetAPI struct {
	items       []api.BudgetListItem
	listCalls   int
	lastFilters api.BudgetFilters
	listErr     error
	createErr   error
	deleteErr   error
	toggled     *api.BudgetListItem
}

func (f *fakeBudgetAPI) ListBudgets(_ context.Context, filters api.BudgetFilters) ([]api.BudgetListItem, error) {
	f.listCalls++
	f.lastFilters = filters
	if f.listErr != nil {
		return nil, f.listErr
	}
	items := make([]api.BudgetListItem, len(f.items))
	copy(items, f.items)
	return items, nil
}

func (f *fakeBudgetAPI) CreateBudget(_ context.Context, payload api.BudgetPayload) (*api.BudgetListItem, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	item := api.BudgetListItem{ID: 99, Status: api.BudgetStatusGood, IsActive: true}
	if payload.Amount != nil {
		item.Amount = *payload.Amount
	}
	f.items = append(f.items, item)
	return &item, nil
}

func (f *fakeBudgetAPI) UpdateBudget(_ context.Context, id int, _ api.BudgetPayload) error {
	return nil
}

func (f *fakeBudgetAPI) DeleteBudget(_ context.Context, id int) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, b := range f.items {
		if b.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeBudgetAPI) ToggleBudgetActive(_ context.Context, id int) (*api.ToggleResult, error) {
	if f.toggled == nil {
		return nil, errors.New("no toggle fixture")
	}
	return &api.ToggleResult{Budget: *f.toggled, Message: "toggled"}, nil
}

func (f *fakeBudgetAPI) GetBudget(_ context.Context, id int) (*api.BudgetDetail, error) {
	return &api.BudgetDetail{BudgetListItem: api.BudgetListItem{ID: id}}, nil
}

func (f *fakeBudgetAPI) MonthlySummary(_ context.Context) (*api.MonthlySummary, error) {
	return &api.MonthlySummary{}, nil
}

func (f *fakeBudgetAPI) CategoriesWithoutBudget(_ context.Context) ([]api.Category, error) {
	return nil, nil
}

func someBudgets() []api.BudgetListItem {
	return []api.BudgetListItem{
		{ID: 1, CategoryName: "Mercado", Amount: "500000.00", SpentAmount: "350000.00", SpentPercentage: 70, Status: "warning", IsActive: true, Currency: "COP"},
		{ID: 2, CategoryName: "Transporte", Amount: "200000.00", SpentAmount: "50000.00", SpentPercentage: 25, Status: "good", IsActive: true, Currency: "COP"},
	}
}

func TestRefreshWhileLoggedOutMakesNoNetworkCall(t *testing.T) {
	auth := &fakeAuth{authed: false}
	client := &fakeBudgetAPI{items: someBudgets()}
	c := NewBudgetContainer(client, auth, api.BudgetFilters{})

	c.Refresh(context.Background(), api.BudgetFilters{Period: "monthly"})

	if client.listCalls != 0 {
		t.Fatalf("listCalls = %d, want 0 while logged out", client.listCalls)
	}
	snap := c.Snapshot()
	if len(snap.Items) != 0 {
		t.Fatalf("cached items = %d, want 0", len(snap.Items))
	}
}

func TestRefreshReplacesCollectionWholesale(t *testing.T) {
	auth := &fakeAuth{authed: true}
	client := &fakeBudgetAPI{items: someBudgets()}
	c := NewBudgetContainer(client, auth, api.BudgetFilters{})

	c.Refresh(context.Background(), api.BudgetFilters{Period: "monthly"})

	snap := c.Snapshot()
	if len(snap.Items) != 2 {
		t.Fatalf("cached items = %d, want 2", len(snap.Items))
	}
	if snap.Items[0].ID != 1 || snap.Items[1].ID != 2 {
		t.Fatalf("cache order = [%d, %d], want server order [1, 2]", snap.Items[0].ID, snap.Items[1].ID)
	}
	if snap.Loading {
		t.Fatal("loading still set after refresh")
	}

	// Server list shrinks; next refresh must not keep stale items.
	client.items = client.items[:1]
	c.Refresh(context.Background(), api.BudgetFilters{Period: "monthly"})
	if got := len(c.Snapshot().Items); got != 1 {
		t.Fatalf("cached items after shrink = %d, want 1", got)
	}
}

func TestRefreshCapturesErrorAndClearsLoading(t *testing.T) {
	auth := &fakeAuth{authed: true}
	client := &fakeBudgetAPI{listErr: errors.New("cannot reach server")}
	c := NewBudgetContainer(client, auth, api.BudgetFilters{})

	c.Refresh(context.Background(), api.BudgetFilters{})

	snap := c.Snapshot()
	if snap.Err != "cannot reach server" {
		t.Fatalf("Err = %q, want %q", snap.Err, "cannot reach server")
	}
	if snap.Loading {
		t.Fatal("loading still set after failed refresh")
	}
}

func TestCreateTriggersRefetchWithLastFilters(t *testing.T) {
	auth := &fakeAuth{authed: true}
	client := &fakeBudgetAPI{items: someBudgets()}
	defaults := api.BudgetFilters{ActiveOnly: true, Period: "monthly"}
	c := NewBudgetContainer(client, auth, defaults)

	c.Refresh(context.Background(), defaults)
	callsBefore := client.listCalls

	amount := "500000"
	created, err := c.Create(context.Background(), api.BudgetPayload{Amount: &amount})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created == nil || created.ID != 99 {
		t.Fatalf("created = %+v, want record with ID 99", created)
	}

	if client.listCalls != callsBefore+1 {
		t.Fatalf("listCalls = %d, want %d (create must refetch)", client.listCalls, callsBefore+1)
	}
	if !client.lastFilters.ActiveOnly || client.lastFilters.Period != "monthly" {
		t.Fatalf("refetch filters = %+v, want last-used defaults", client.lastFilters)
	}

	// The refetched cache carries the server-computed record, not a guess.
	snap := c.Snapshot()
	if got := len(snap.Items); got != 3 {
		t.Fatalf("cached items = %d, want 3", got)
	}
}

func TestCreateFailureSetsErrorAndReturnsIt(t *testing.T) {
	auth := &fakeAuth{authed: true}
	client := &fakeBudgetAPI{items: someBudgets(), createErr: errors.New("amount: must be positive")}
	c := NewBudgetContainer(client, auth, api.BudgetFilters{})

	amount := "-1"
	_, err := c.Create(context.Background(), api.BudgetPayload{Amount: &amount})
	if err == nil {
		t.Fatal("Create returned nil error")
	}
	if got := c.Snapshot().Err; got != "amount: must be positive" {
		t.Fatalf("Err = %q, want the mutation error message", got)
	}
}

func TestDeleteRemovesItemAndRefetches(t *testing.T) {
	auth := &fakeAuth{authed: true}
	client := &fakeBudgetAPI{items: someBudgets()}
	c := NewBudgetContainer(client, auth, api.BudgetFilters{})

	c.Refresh(context.Background(), api.BudgetFilters{})
	if err := c.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	snap := c.Snapshot()
	for _, b := range snap.Items {
		if b.ID == 1 {
			t.Fatal("deleted budget still cached")
		}
	}

	// Round trip: a fresh refresh also lacks the deleted id.
	c.Refresh(context.Background(), api.BudgetFilters{})
	for _, b := range c.Snapshot().Items {
		if b.ID == 1 {
			t.Fatal("deleted budget returned by refetch")
		}
	}
}

func TestToggleActivePatchesInPlace(t *testing.T) {
	auth := &fakeAuth{authed: true}
	client := &fakeBudgetAPI{items: someBudgets()}
	c := NewBudgetContainer(client, auth, api.BudgetFilters{})

	c.Refresh(context.Background(), api.BudgetFilters{})
	callsBefore := client.listCalls

	updated := someBudgets()[0]
	updated.IsActive = false
	client.toggled = &updated

	result, err := c.ToggleActive(context.Background(), 1)
	if err != nil {
		t.Fatalf("ToggleActive: %v", err)
	}
	if result.Message != "toggled" {
		t.Fatalf("message = %q, want %q", result.Message, "toggled")
	}

	if client.listCalls != callsBefore {
		t.Fatalf("listCalls = %d, want %d (toggle must not refetch)", client.listCalls, callsBefore)
	}

	snap := c.Snapshot()
	if snap.Items[0].IsActive {
		t.Fatal("cached item not patched with server echo")
	}
	if snap.Items[1].ID != 2 || !snap.Items[1].IsActive {
		t.Fatal("untouched item changed by patch")
	}
}

func TestLogoutClearsCacheWithoutNetwork(t *testing.T) {
	auth := &fakeAuth{authed: true}
	client := &fakeBudgetAPI{items: someBudgets()}
	c := NewBudgetContainer(client, auth, api.BudgetFilters{})

	c.Refresh(context.Background(), api.BudgetFilters{})
	if len(c.Snapshot().Items) != 2 {
		t.Fatal("precondition: cache should be populated")
	}
	callsBefore := client.listCalls

	auth.set(false)

	if got := len(c.Snapshot().Items); got != 0 {
		t.Fatalf("cached items after logout = %d, want 0", got)
	}
	if client.listCalls != callsBefore {
		t.Fatalf("listCalls = %d, want %d (logout must not fetch)", client.listCalls, callsBefore)
	}
}

func TestLoginTriggersInitialRefresh(t *testing.T) {
	auth := &fakeAuth{authed: false}
	client := &fakeBudgetAPI{items: someBudgets()}
	defaults := api.BudgetFilters{ActiveOnly: true, Period: "monthly"}
	c := NewBudgetContainer(client, auth, defaults)

	auth.set(true)

	if client.listCalls != 1 {
		t.Fatalf("listCalls = %d, want 1 after login", client.listCalls)
	}
	if client.lastFilters != defaults {
		t.Fatalf("initial refresh filters = %+v, want defaults %+v", client.lastFilters, defaults)
	}
	if got := len(c.Snapshot().Items); got != 2 {
		t.Fatalf("cached items = %d, want 2", got)
	}
}

// gatedBudgetAPI blocks the first ListBudgets call on a channel so a test
// can hold one refresh in flight while others complete.
type gatedBudgetAPI struct {
	fakeBudgetAPI
	firstStarted chan struct{}
	releaseFirst chan struct{}
	firstItems   []api.BudgetListItem
	secondItems  []api.BudgetListItem

	mu    sync.Mutex
	calls int
}

func (g *gatedBudgetAPI) ListBudgets(_ context.Context, _ api.BudgetFilters) ([]api.BudgetListItem, error) {
	g.mu.Lock()
	g.calls++
	n := g.calls
	g.mu.Unlock()
	if n == 1 {
		close(g.firstStarted)
		<-g.releaseFirst
		return g.firstItems, nil
	}
	return g.secondItems, nil
}

func TestRefreshDropsStaleResponse(t *testing.T) {
	auth := &fakeAuth{authed: true}
	client := &gatedBudgetAPI{
		firstStarted: make(chan struct{}),
		releaseFirst: make(chan struct{}),
		firstItems:   []api.BudgetListItem{{ID: 1, CategoryName: "Mercado"}},
		secondItems:  []api.BudgetListItem{{ID: 2, CategoryName: "Transporte"}},
	}
	c := NewBudgetContainer(client, auth, api.BudgetFilters{})

	done := make(chan struct{})
	go func() {
		c.Refresh(context.Background(), api.BudgetFilters{Period: "weekly"})
		close(done)
	}()
	<-client.firstStarted

	// A second refresh starts and resolves while the first is in flight.
	c.Refresh(context.Background(), api.BudgetFilters{Period: "monthly"})

	close(client.releaseFirst)
	<-done

	snap := c.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].ID != 2 {
		t.Fatalf("items = %+v, want only the latest-initiated response", snap.Items)
	}
	if snap.Loading {
		t.Fatal("loading still set after stale response dropped")
	}
}

func TestInFlightResponseDroppedAfterLogout(t *testing.T) {
	auth := &fakeAuth{authed: true}
	client := &gatedBudgetAPI{
		firstStarted: make(chan struct{}),
		releaseFirst: make(chan struct{}),
		firstItems:   someBudgets(),
	}
	c := NewBudgetContainer(client, auth, api.BudgetFilters{})

	done := make(chan struct{})
	go func() {
		c.Refresh(context.Background(), api.BudgetFilters{})
		close(done)
	}()
	<-client.firstStarted

	auth.set(false)

	close(client.releaseFirst)
	<-done

	if got := len(c.Snapshot().Items); got != 0 {
		t.Fatalf("cached items = %d, want 0: the in-flight response must not repopulate the cache", got)
	}
}

func TestMutationsWhileLoggedOutAreRejected(t *testing.T) {
	auth := &fakeAuth{authed: false}
	client := &fakeBudgetAPI{items: someBudgets()}
	c := NewBudgetContainer(client, auth, api.BudgetFilters{})

	amount := "1000"
	if _, err := c.Create(context.Background(), api.BudgetPayload{Amount: &amount}); !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("Create err = %v, want ErrUnauthorized", err)
	}
	if err := c.Delete(context.Background(), 1); !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("Delete err = %v, want ErrUnauthorized", err)
	}
	if client.listCalls != 0 {
		t.Fatalf("listCalls = %d, want 0", client.listCalls)
	}
}
