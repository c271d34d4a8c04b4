package apiclient

import (
	"context"
	"encoding/json"
	"net/http"

	"alcyxob/fitsocial/internal/domain"
)

// LoginResult is the authenticated user plus the bearer token, when the
// server issues one.
type LoginResult struct {
	Token string
	User  domain.User
}

// loginEnvelope matches servers that wrap the user as {"token": ..., "user": {...}}.
type loginEnvelope struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Me fetches the user behind the ambient credentials (GET /api/user).
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.do(ctx, http.MethodGet, "/api/user", nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login authenticates with email and password. Both a bare user body and a
// token envelope are accepted.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*LoginResult, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/users/login", nil, creds, &raw); err != nil {
		return nil, err
	}

	var env loginEnvelope
	if err := json.Unmarshal(raw, &env); err == nil && env.User != nil {
		return &LoginResult{Token: env.Token, User: *env.User}, nil
	}
	var u domain.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, err
	}
	return &LoginResult{User: u}, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	var u domain.User
	if err := c.do(ctx, http.MethodPost, "/users/register", nil, reg, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Deactivate marks the user inactive on the server (sent on logout).
func (c *Client) Deactivate(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodPost, "/users/"+pathEscape(userID)+"/deactivate", nil, nil, nil)
}
