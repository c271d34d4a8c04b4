package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"alcyxob/fitsocial/internal/domain"
)

// GetUser fetches a user profile.
func (c *Client) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	var u domain.User
	if err := c.do(ctx, http.MethodGet, "/users/"+pathEscape(userID), nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsers fetches every user, or only active ones when activeOnly is set.
func (c *Client) ListUsers(ctx context.Context, activeOnly bool) ([]domain.User, error) {
	path := "/users"
	if activeOnly {
		path = "/users/active"
	}
	var users []domain.User
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser removes the account permanently.
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+pathEscape(userID), nil, nil, nil)
}

// UpdateProfile edits name, email, password or profile image.
func (c *Client) UpdateProfile(ctx context.Context, userID string, upd domain.ProfileUpdate) (*domain.User, error) {
	var u domain.User
	if err := c.do(ctx, http.MethodPut, "/users/"+pathEscape(userID), nil, upd, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Follow toggles userID following followedID. The server decides the new
// state and returns the followed user.
func (c *Client) Follow(ctx context.Context, userID, followedID string) (*domain.User, error) {
	q := url.Values{}
	q.Set("userId", userID)
	q.Set("FollowedUserId", followedID)
	var u domain.User
	if err := c.do(ctx, http.MethodPost, "/users/follow", q, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func pathEscape(s string) string {
	return url.PathEscape(s)
}
