package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"alcyxob/fitsocial/internal/domain"
	"alcyxob/fitsocial/internal/listsync"
	"alcyxob/fitsocial/internal/storage"
	"alcyxob/fitsocial/internal/validation"
)

// PostDraft is the input of the create and edit post forms. Media is given
// either as already hosted URLs or as raw files to upload first.
type PostDraft struct {
	Title       string              `json:"title" validate:"required"`
	Description string              `json:"description" validate:"required"`
	Images      []string            `json:"images,omitempty" validate:"omitempty,dive,url"`
	Video       string              `json:"video,omitempty" validate:"omitempty,url"`
	Files       []storage.MediaFile `json:"-"`
}

// checkMedia enforces one content variant: 1 to 3 images, or one video.
// When required is false an empty draft keeps the post's existing media.
func checkMedia(draft PostDraft, required bool) error {
	images, videos := len(draft.Images), 0
	if draft.Video != "" {
		videos++
	}
	for _, f := range draft.Files {
		if f.IsVideo() {
			videos++
		} else {
			images++
		}
	}
	switch {
	case images == 0 && videos == 0 && required:
		return validation.NewFieldError("images", "Please add images or a video")
	case images > 0 && videos > 0:
		return validation.NewFieldError("video", "A post can have images or a video, not both")
	case videos > 1:
		return validation.NewFieldError("video", "Only one video can be uploaded")
	case images > domain.MaxPostImages:
		return validation.NewFieldError("images", fmt.Sprintf("You can upload up to %d images", domain.MaxPostImages))
	}
	return nil
}

// LoadFeed loads every post, newest first as the server returns them.
func (d *Dispatcher) LoadFeed(ctx context.Context) error {
	err := d.lists.Posts.Load(ctx, d.api.ListPosts)
	if err != nil {
		log.Printf("ERROR: Failed to fetch posts: %v", err)
	}
	return err
}

// LoadUserPosts loads the posts shown on a profile page.
func (d *Dispatcher) LoadUserPosts(ctx context.Context, userID string) error {
	d.lists.setProfileOwner(userID)
	err := d.lists.ProfilePosts.Load(ctx, func(ctx context.Context) ([]domain.Post, error) {
		return d.api.ListUserPosts(ctx, userID)
	})
	if err != nil {
		log.Printf("ERROR: Failed to fetch posts of user %s: %v", userID, err)
	}
	return err
}

// GetPost fetches one post and refreshes any local copy of it.
func (d *Dispatcher) GetPost(ctx context.Context, postID string) (*domain.Post, error) {
	p, err := d.api.GetPost(ctx, postID)
	if err != nil {
		log.Printf("ERROR: Failed to fetch post %s: %v", postID, err)
		return nil, err
	}
	d.lists.applyPost(*p)
	return p, nil
}

// CreatePost uploads any raw files, then creates the post and puts it at the
// top of the feed.
func (d *Dispatcher) CreatePost(ctx context.Context, draft PostDraft) (*domain.Post, error) {
	user, err := d.currentUser()
	if err != nil {
		return nil, err
	}
	if err := d.validate(draft); err != nil {
		return nil, err
	}
	if err := checkMedia(draft, true); err != nil {
		d.reject(err)
		return nil, err
	}
	if len(draft.Files) > 0 && d.media == nil {
		d.reject(ErrMediaUnavailable)
		return nil, ErrMediaUnavailable
	}

	var created *domain.Post
	err = d.dispatch(ctx, mutation{
		key:        KindPost,
		successMsg: "Post uploaded successfully",
		failMsg:    "Failed to upload post",
		request: func(ctx context.Context) error {
			post := domain.Post{
				Title:       draft.Title,
				Description: draft.Description,
				UserID:      user.ID,
				Username:    user.Name,
				UserProfile: user.ProfileImage,
			}
			keys, err := d.attachMedia(ctx, &post, draft)
			if err != nil {
				return err
			}
			p, err := d.api.CreatePost(ctx, post)
			if err != nil {
				d.discardMedia(keys)
				return err
			}
			created = p
			return identified(p)
		},
		apply: func() {
			d.lists.Posts.ApplyInsertion(*created, listsync.Front)
			if d.lists.ProfileOwner() == user.ID {
				d.lists.ProfilePosts.ApplyInsertion(*created, listsync.Front)
			}
		},
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdatePost edits the caller's own post. Media is replaced only when the
// draft carries some.
func (d *Dispatcher) UpdatePost(ctx context.Context, postID string, draft PostDraft) (*domain.Post, error) {
	user, err := d.currentUser()
	if err != nil {
		return nil, err
	}
	existing, err := d.ownPost(ctx, postID, user.ID)
	if err != nil {
		return nil, err
	}
	if err := d.validate(draft); err != nil {
		return nil, err
	}
	if err := checkMedia(draft, false); err != nil {
		d.reject(err)
		return nil, err
	}
	if len(draft.Files) > 0 && d.media == nil {
		d.reject(ErrMediaUnavailable)
		return nil, ErrMediaUnavailable
	}

	var updated *domain.Post
	err = d.dispatch(ctx, mutation{
		key:        GuardKey(KindPost, postID),
		successMsg: "Post updated successfully",
		failMsg:    "Failed to update post",
		request: func(ctx context.Context) error {
			post := existing
			post.Title = draft.Title
			post.Description = draft.Description
			var keys []string
			if len(draft.Images) > 0 || draft.Video != "" || len(draft.Files) > 0 {
				post.Images, post.Video = nil, ""
				var err error
				if keys, err = d.attachMedia(ctx, &post, draft); err != nil {
					return err
				}
			}
			p, err := d.api.UpdatePost(ctx, post)
			if err != nil {
				d.discardMedia(keys)
				return err
			}
			updated = p
			return nil
		},
		apply: func() {
			d.lists.applyPost(*updated)
		},
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeletePost removes the caller's own post.
func (d *Dispatcher) DeletePost(ctx context.Context, postID string) error {
	user, err := d.currentUser()
	if err != nil {
		return err
	}
	if _, err := d.ownPost(ctx, postID, user.ID); err != nil {
		return err
	}
	return d.dispatch(ctx, mutation{
		key:        GuardKey(KindPost, postID),
		successMsg: "Post deleted successfully",
		failMsg:    "Failed to delete post",
		request: func(ctx context.Context) error {
			return d.api.DeletePost(ctx, postID)
		},
		apply: func() {
			d.lists.Posts.ApplyRemoval(postID)
			d.lists.ProfilePosts.ApplyRemoval(postID)
			d.lists.ReleaseComments(postID)
		},
	})
}

// LikePost toggles the caller's like. The post returned by the server
// replaces the local one.
func (d *Dispatcher) LikePost(ctx context.Context, postID string) (*domain.Post, error) {
	user, err := d.currentUser()
	if err != nil {
		return nil, err
	}
	var liked *domain.Post
	err = d.dispatch(ctx, mutation{
		key: GuardKey(KindPostLike, postID),
		request: func(ctx context.Context) error {
			p, err := d.api.LikePost(ctx, postID, user.ID)
			liked = p
			return err
		},
		success: func() string { return likeMessage(liked.IsLikedBy(user.ID)) },
		apply: func() {
			d.lists.applyPost(*liked)
		},
	})
	if err != nil {
		return nil, err
	}
	return liked, nil
}

func likeMessage(liked bool) string {
	if liked {
		return "Post liked"
	}
	return "Like removed"
}

// ownPost finds the post locally (or remotely when no list holds it) and
// checks that userID wrote it.
func (d *Dispatcher) ownPost(ctx context.Context, postID, userID string) (domain.Post, error) {
	p, ok := d.lists.Posts.Get(postID)
	if !ok {
		p, ok = d.lists.ProfilePosts.Get(postID)
	}
	if !ok {
		remote, err := d.api.GetPost(ctx, postID)
		if err != nil {
			d.notifier.Error(failureMessage(err, "Post not found"))
			return domain.Post{}, err
		}
		p = *remote
	}
	if p.UserID != userID {
		d.reject(ErrNotOwner)
		return domain.Post{}, ErrNotOwner
	}
	return p, nil
}

// attachMedia copies the draft's URLs onto post and uploads its raw files.
// It returns the keys of the uploaded objects.
func (d *Dispatcher) attachMedia(ctx context.Context, post *domain.Post, draft PostDraft) ([]string, error) {
	post.Images = append(post.Images, draft.Images...)
	if draft.Video != "" {
		post.Video = draft.Video
	}
	var keys []string
	for _, f := range draft.Files {
		up, err := d.media.Upload(ctx, f)
		if err != nil {
			d.discardMedia(keys)
			return nil, fmt.Errorf("upload %s: %w", strings.TrimSpace(f.Name), err)
		}
		keys = append(keys, up.Key)
		if f.IsVideo() {
			post.Video = up.URL
		} else {
			post.Images = append(post.Images, up.URL)
		}
	}
	return keys, nil
}

// discardMedia deletes objects uploaded for a post that was not saved.
func (d *Dispatcher) discardMedia(keys []string) {
	for _, key := range keys {
		// The request context may already be done.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := d.media.Delete(ctx, key); err != nil {
			log.Printf("WARN: Failed to discard uploaded media %s: %v", key, err)
		}
		cancel()
	}
}
