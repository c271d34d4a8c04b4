package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"alcyxob/fitsocial/internal/domain"
)

func (c *Client) ListShares(ctx context.Context) ([]domain.SharedPost, error) {
	var shares []domain.SharedPost
	if err := c.do(ctx, http.MethodGet, "/share", nil, nil, &shares); err != nil {
		return nil, err
	}
	return shares, nil
}

func (c *Client) SharePost(ctx context.Context, req domain.ShareRequest) (*domain.SharedPost, error) {
	var s domain.SharedPost
	if err := c.do(ctx, http.MethodPost, "/share", nil, req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) DeleteShare(ctx context.Context, shareID string) error {
	return c.do(ctx, http.MethodDelete, "/share/"+pathEscape(shareID), nil, nil, nil)
}

// LikeShare toggles a like on a shared post.
func (c *Client) LikeShare(ctx context.Context, shareID, userID string) (*domain.SharedPost, error) {
	q := url.Values{}
	q.Set("shareId", shareID)
	q.Set("userId", userID)
	var s domain.SharedPost
	if err := c.do(ctx, http.MethodPost, "/share/like", q, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
