package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"alcyxob/fitsocial/internal/domain"
)

func (c *Client) ListPosts(ctx context.Context) ([]domain.Post, error) {
	var posts []domain.Post
	if err := c.do(ctx, http.MethodGet, "/posts", nil, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) ListUserPosts(ctx context.Context, userID string) ([]domain.Post, error) {
	var posts []domain.Post
	if err := c.do(ctx, http.MethodGet, "/posts/user/"+pathEscape(userID), nil, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) GetPost(ctx context.Context, postID string) (*domain.Post, error) {
	var p domain.Post
	if err := c.do(ctx, http.MethodGet, "/posts/"+pathEscape(postID), nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreatePost(ctx context.Context, post domain.Post) (*domain.Post, error) {
	var p domain.Post
	if err := c.do(ctx, http.MethodPost, "/posts", nil, post, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePost sends the full post; the id travels in the body.
func (c *Client) UpdatePost(ctx context.Context, post domain.Post) (*domain.Post, error) {
	var p domain.Post
	if err := c.do(ctx, http.MethodPut, "/posts", nil, post, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeletePost(ctx context.Context, postID string) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+pathEscape(postID), nil, nil, nil)
}

// LikePost toggles the like of userID on a post and returns the post as the
// server now has it.
func (c *Client) LikePost(ctx context.Context, postID, userID string) (*domain.Post, error) {
	q := url.Values{}
	q.Set("postId", postID)
	q.Set("userId", userID)
	var p domain.Post
	if err := c.do(ctx, http.MethodPost, "/posts/like", q, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
