package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"alcyxob/fitsocial/internal/domain"
)

func (c *Client) ListComments(ctx context.Context, postID string) ([]domain.Comment, error) {
	var comments []domain.Comment
	if err := c.do(ctx, http.MethodGet, "/api/comments/post/"+pathEscape(postID), nil, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AddComment posts a comment; the fields travel as query parameters.
func (c *Client) AddComment(ctx context.Context, postID string, cm domain.Comment) (*domain.Comment, error) {
	q := url.Values{}
	q.Set("content", cm.Content)
	q.Set("commentBy", cm.CommentBy)
	q.Set("commentById", cm.CommentByID)
	q.Set("commentByProfile", cm.CommentByProfile)
	var out domain.Comment
	if err := c.do(ctx, http.MethodPost, "/api/comments/post/"+pathEscape(postID), q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateComment(ctx context.Context, commentID, content string) (*domain.Comment, error) {
	q := url.Values{}
	q.Set("content", content)
	var out domain.Comment
	if err := c.do(ctx, http.MethodPut, "/api/comments/"+pathEscape(commentID), q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteComment(ctx context.Context, postID, commentID string) error {
	return c.do(ctx, http.MethodDelete, "/api/comments/"+pathEscape(postID)+"/"+pathEscape(commentID), nil, nil, nil)
}
