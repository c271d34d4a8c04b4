package service

import (
	"context"
	"log"

	"alcyxob/fitsocial/internal/domain"
	"alcyxob/fitsocial/internal/listsync"
)

// LoadShares loads every shared post.
func (d *Dispatcher) LoadShares(ctx context.Context) error {
	err := d.lists.Shares.Load(ctx, d.api.ListShares)
	if err != nil {
		log.Printf("ERROR: Failed to fetch shared posts: %v", err)
	}
	return err
}

// SharePost shares a post with an optional description and puts the share
// at the top of the shared list.
func (d *Dispatcher) SharePost(ctx context.Context, postID, description string) (*domain.SharedPost, error) {
	user, err := d.currentUser()
	if err != nil {
		return nil, err
	}
	req := domain.ShareRequest{Description: description, UserID: user.ID, PostID: postID}
	if err := d.validate(req); err != nil {
		return nil, err
	}

	var shared *domain.SharedPost
	err = d.dispatch(ctx, mutation{
		key:        GuardKey(KindShareCreate, postID),
		successMsg: "Post shared successfully",
		failMsg:    "Failed to share post",
		request: func(ctx context.Context) error {
			sp, err := d.api.SharePost(ctx, req)
			if err != nil {
				return err
			}
			shared = sp
			return identified(sp)
		},
		apply: func() {
			d.lists.Shares.ApplyInsertion(*shared, listsync.Front)
		},
	})
	if err != nil {
		return nil, err
	}
	return shared, nil
}

// DeleteShare removes one of the caller's shares. The shared post itself is
// untouched.
func (d *Dispatcher) DeleteShare(ctx context.Context, shareID string) error {
	user, err := d.currentUser()
	if err != nil {
		return err
	}
	if sp, ok := d.lists.Shares.Get(shareID); ok && sp.SharedBy.ID != user.ID {
		d.reject(ErrNotOwner)
		return ErrNotOwner
	}
	return d.dispatch(ctx, mutation{
		key:        GuardKey(KindShare, shareID),
		successMsg: "Post deleted successfully",
		failMsg:    "Failed to delete post",
		request: func(ctx context.Context) error {
			return d.api.DeleteShare(ctx, shareID)
		},
		apply: func() {
			d.lists.Shares.ApplyRemoval(shareID)
			d.lists.ReleaseComments(shareID)
		},
	})
}

// LikeShare toggles the caller's like on a shared post and applies the
// server's answer.
func (d *Dispatcher) LikeShare(ctx context.Context, shareID string) (*domain.SharedPost, error) {
	user, err := d.currentUser()
	if err != nil {
		return nil, err
	}
	var liked *domain.SharedPost
	err = d.dispatch(ctx, mutation{
		key: GuardKey(KindShareLike, shareID),
		request: func(ctx context.Context) error {
			sp, err := d.api.LikeShare(ctx, shareID, user.ID)
			liked = sp
			return err
		},
		success: func() string { return likeMessage(liked.IsLikedBy(user.ID)) },
		apply: func() {
			d.lists.Shares.ApplyUpdate(*liked)
		},
	})
	if err != nil {
		return nil, err
	}
	return liked, nil
}
