package service

import (
	"context"
	"log"
	"strings"

	"alcyxob/fitsocial/internal/domain"
	"alcyxob/fitsocial/internal/listsync"
	"alcyxob/fitsocial/internal/validation"
)

// LoadComments loads the comments of a post into its comment list.
func (d *Dispatcher) LoadComments(ctx context.Context, postID string) error {
	comments := d.lists.Comments(postID)
	err := comments.Load(ctx, func(ctx context.Context) ([]domain.Comment, error) {
		return d.api.ListComments(ctx, postID)
	})
	if err != nil {
		log.Printf("ERROR: Failed to fetch comments of post %s: %v", postID, err)
		return err
	}
	d.lists.syncPostComments(postID, comments)
	return nil
}

// AddComment appends a comment by the logged-in user to a post.
func (d *Dispatcher) AddComment(ctx context.Context, postID, content string) (*domain.Comment, error) {
	user, err := d.currentUser()
	if err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		vErr := validation.NewFieldError("content", "Comment cannot be empty")
		d.reject(vErr)
		return nil, vErr
	}

	comments := d.lists.Comments(postID)
	var added *domain.Comment
	err = d.dispatch(ctx, mutation{
		key:        GuardKey(KindCommentCreate, postID),
		successMsg: "Comment added successfully",
		failMsg:    "Failed to process comment",
		request: func(ctx context.Context) error {
			c, err := d.api.AddComment(ctx, postID, domain.Comment{
				PostID:           postID,
				Content:          content,
				CommentBy:        user.Name,
				CommentByID:      user.ID,
				CommentByProfile: user.ProfileImage,
			})
			if err != nil {
				return err
			}
			added = c
			return identified(c)
		},
		apply: func() {
			comments.ApplyInsertion(*added, listsync.Back)
			d.lists.syncPostComments(postID, comments)
		},
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// EditComment changes the text of the caller's own comment.
func (d *Dispatcher) EditComment(ctx context.Context, postID, commentID, content string) (*domain.Comment, error) {
	comments := d.lists.Comments(postID)
	if _, err := d.ownComment(comments, commentID); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		vErr := validation.NewFieldError("content", "Comment cannot be empty")
		d.reject(vErr)
		return nil, vErr
	}

	var edited *domain.Comment
	err := d.dispatch(ctx, mutation{
		key:        GuardKey(KindComment, commentID),
		successMsg: "Comment updated successfully",
		failMsg:    "Failed to process comment",
		request: func(ctx context.Context) error {
			c, err := d.api.UpdateComment(ctx, commentID, content)
			edited = c
			return err
		},
		apply: func() {
			if comments.ApplyUpdate(*edited) {
				d.lists.syncPostComments(postID, comments)
			}
		},
	})
	if err != nil {
		return nil, err
	}
	return edited, nil
}

// DeleteComment removes the caller's own comment right away and puts it
// back at the same position if the server refuses.
func (d *Dispatcher) DeleteComment(ctx context.Context, postID, commentID string) error {
	comments := d.lists.Comments(postID)
	if _, err := d.ownComment(comments, commentID); err != nil {
		return err
	}

	var rollback listsync.Rollback
	return d.dispatch(ctx, mutation{
		key:        GuardKey(KindComment, commentID),
		successMsg: "Comment deleted successfully",
		failMsg:    "Failed to delete comment",
		apply: func() {
			rollback = comments.RemoveOptimistic(commentID)
			d.lists.syncPostComments(postID, comments)
		},
		request: func(ctx context.Context) error {
			return d.api.DeleteComment(ctx, postID, commentID)
		},
		rollback: func() {
			rollback()
			d.lists.syncPostComments(postID, comments)
		},
	})
}

// ownComment checks that the comment is held locally and was written by the
// logged-in user.
func (d *Dispatcher) ownComment(comments *listsync.List[domain.Comment], commentID string) (domain.Comment, error) {
	user, err := d.currentUser()
	if err != nil {
		return domain.Comment{}, err
	}
	c, ok := comments.Get(commentID)
	if !ok {
		d.reject(ErrCommentNotFound)
		return domain.Comment{}, ErrCommentNotFound
	}
	if c.CommentByID != user.ID {
		d.reject(ErrNotOwner)
		return domain.Comment{}, ErrNotOwner
	}
	return c, nil
}
