package session

import (
	"context"
	"errors"
	"testing"

	"github.com/jfmoncada/plata/internal/api"
)

type fakeAuthClient struct {
	result      *api.LoginResult
	loginErr    error
	logoutErr   error
	loginCalls  int
	logoutCalls int
}

func (f *fakeAuthClient) Login(_ context.Context, _, _ string) (*api.LoginResult, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.result, nil
}

func (f *fakeAuthClient) Logout(_ context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func testUser() api.User {
	return api.User{ID: 1, Username: "camila", Email: "camila@example.com"}
}

func TestCheckAuthWithPersistedCredentials(t *testing.T) {
	store := openTestStore(t)
	_ = store.SaveCredentials("tok-1", testUser())

	sess := New(store, &fakeAuthClient{})
	if !sess.Loading() {
		t.Fatal("session should start loading")
	}

	sess.CheckAuth()

	if sess.Loading() {
		t.Fatal("loading still set after CheckAuth")
	}
	if !sess.Authenticated() {
		t.Fatal("session not authenticated with persisted credentials")
	}
	if u := sess.User(); u == nil || u.Username != "camila" {
		t.Fatalf("User = %+v, want persisted user", u)
	}
	if got := sess.TokenFunc()(); got != "tok-1" {
		t.Fatalf("token = %q, want %q", got, "tok-1")
	}
}

func TestCheckAuthClearsStaleFragments(t *testing.T) {
	store := openTestStore(t)
	// Token without user: a dangling fragment that must be cleaned up.
	_ = store.Put(keyToken, "orphan-token")

	sess := New(store, &fakeAuthClient{})
	sess.CheckAuth()

	if sess.Authenticated() {
		t.Fatal("session authenticated from a dangling token")
	}
	token, _ := store.Token()
	if token != "" {
		t.Fatalf("stale token = %q, want removed", token)
	}
}

func TestLoginPersistsAndAuthenticates(t *testing.T) {
	store := openTestStore(t)
	client := &fakeAuthClient{result: &api.LoginResult{Token: "tok-2", User: testUser()}}
	sess := New(store, client)
	sess.CheckAuth()

	if err := sess.Login(context.Background(), "camila", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if !sess.Authenticated() {
		t.Fatal("session not authenticated after login")
	}
	token, _ := store.Token()
	if token != "tok-2" {
		t.Fatalf("persisted token = %q, want %q", token, "tok-2")
	}
	user, _ := store.User()
	if user == nil || user.Username != "camila" {
		t.Fatalf("persisted user = %+v, want login user", user)
	}
}

func TestLoginFailurePersistsNothing(t *testing.T) {
	store := openTestStore(t)
	client := &fakeAuthClient{loginErr: errors.New("username: invalid credentials")}
	sess := New(store, client)
	sess.CheckAuth()

	err := sess.Login(context.Background(), "camila", "wrong")
	if err == nil {
		t.Fatal("Login returned nil error")
	}

	if sess.Authenticated() {
		t.Fatal("session authenticated after failed login")
	}
	token, _ := store.Token()
	user, _ := store.User()
	if token != "" || user != nil {
		t.Fatalf("failed login persisted token=%q user=%+v", token, user)
	}
}

func TestLogoutClearsEverythingEvenWhenRemoteFails(t *testing.T) {
	store := openTestStore(t)
	client := &fakeAuthClient{
		result:    &api.LoginResult{Token: "tok-3", User: testUser()},
		logoutErr: errors.New("cannot reach server"),
	}
	sess := New(store, client)
	sess.CheckAuth()
	if err := sess.Login(context.Background(), "camila", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	sess.Logout(context.Background())

	if client.logoutCalls != 1 {
		t.Fatalf("logoutCalls = %d, want 1", client.logoutCalls)
	}
	if sess.Authenticated() {
		t.Fatal("session still authenticated after logout")
	}
	token, _ := store.Token()
	user, _ := store.User()
	if token != "" || user != nil {
		t.Fatalf("logout left token=%q user=%+v", token, user)
	}
}

func TestSubscribersSeeTransitions(t *testing.T) {
	store := openTestStore(t)
	client := &fakeAuthClient{result: &api.LoginResult{Token: "tok-4", User: testUser()}}
	sess := New(store, client)

	var events []Event
	sess.Subscribe(func(ev Event) { events = append(events, ev) })

	sess.CheckAuth() // no credentials: stays unauthenticated, no transition
	if len(events) != 0 {
		t.Fatalf("events after unauthenticated CheckAuth = %d, want 0", len(events))
	}

	if err := sess.Login(context.Background(), "camila", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if len(events) != 1 || !events[0].Authenticated {
		t.Fatalf("events after login = %+v, want one authenticated event", events)
	}

	sess.Logout(context.Background())
	if len(events) != 2 || events[1].Authenticated {
		t.Fatalf("events after logout = %+v, want unauthenticated event", events)
	}
}

func TestRecheckPicksUpExternalLogout(t *testing.T) {
	store := openTestStore(t)
	_ = store.SaveCredentials("tok-5", testUser())
	sess := New(store, &fakeAuthClient{})
	sess.CheckAuth()
	if !sess.Authenticated() {
		t.Fatal("precondition: authenticated")
	}

	// Another process clears the store.
	_ = store.ClearCredentials()
	sess.Recheck()

	if sess.Authenticated() {
		t.Fatal("session still authenticated after external logout")
	}
}

func TestForceLogout(t *testing.T) {
	store := openTestStore(t)
	_ = store.SaveCredentials("tok-6", testUser())
	sess := New(store, &fakeAuthClient{})
	sess.CheckAuth()

	sess.ForceLogout()

	if sess.Authenticated() {
		t.Fatal("session authenticated after forced logout")
	}
	token, _ := store.Token()
	if token != "" {
		t.Fatalf("token = %q, want cleared", token)
	}
}
