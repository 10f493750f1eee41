package api

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a token and the user record.
// Invalid credentials surface as a *ValidationError from the server.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	payload := map[string]string{
		"username": username,
		"password": password,
	}

	var result LoginResult
	if err := sendJSON(ctx, c, http.MethodPost, "/auth/login", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout invalidates the token server-side. Callers treat failures as
// best-effort: local logout proceeds regardless.
func (c *Client) Logout(ctx context.Context) error {
	return sendJSON(ctx, c, http.MethodPost, "/auth/logout", nil, nil)
}
