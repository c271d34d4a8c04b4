package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"alcyxob/fitsocial/internal/domain"
	"alcyxob/fitsocial/internal/notify"
	"alcyxob/fitsocial/internal/service"

	"github.com/stretchr/testify/require"
)

func TestSharePostPrepends(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)
	me := env.login(t)
	other := env.otherUser(t)
	posts := seedPosts(env, other, 2)
	env.fake.SeedShare(domain.SharedPost{SharedBy: other, Post: posts[1]})
	require.NoError(t, env.d.LoadShares(ctx))

	sp, err := env.d.SharePost(ctx, posts[0].ID, "Look at this")
	require.NoError(t, err)
	require.Equal(t, me.ID, sp.SharedBy.ID)
	require.Equal(t, posts[0].ID, sp.Post.ID)
	requireNotice(t, env.notices.Drain(), notify.LevelSuccess, "Post shared successfully")

	items := env.lists.Shares.Items()
	require.Len(t, items, 2)
	require.Equal(t, sp.ID, items[0].ID)
}

func TestDeleteShareKeepsOriginalPost(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)
	me := env.login(t)
	posts := seedPosts(env, env.otherUser(t), 1)
	sp := env.fake.SeedShare(domain.SharedPost{SharedBy: me, Post: posts[0]})
	require.NoError(t, env.d.LoadShares(ctx))
	require.NoError(t, env.d.LoadFeed(ctx))

	require.NoError(t, env.d.DeleteShare(ctx, sp.ID))
	require.Zero(t, env.lists.Shares.Len())
	require.Equal(t, 1, env.lists.Posts.Len())
	_, ok := env.fake.Post(posts[0].ID)
	require.True(t, ok)
}

func TestDeleteOthersShareIsRejected(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)
	env.login(t)
	other := env.otherUser(t)
	sp := env.fake.SeedShare(domain.SharedPost{SharedBy: other, Post: seedPosts(env, other, 1)[0]})
	require.NoError(t, env.d.LoadShares(ctx))

	require.ErrorIs(t, env.d.DeleteShare(ctx, sp.ID), service.ErrNotOwner)
	require.Zero(t, env.fake.Calls(http.MethodDelete, "/share/:id"))
}

func TestLikeShareAppliesServerState(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)
	me := env.login(t)
	other := env.otherUser(t)
	sp := env.fake.SeedShare(domain.SharedPost{SharedBy: other, Post: seedPosts(env, other, 1)[0]})
	require.NoError(t, env.d.LoadShares(ctx))

	liked, err := env.d.LikeShare(ctx, sp.ID)
	require.NoError(t, err)
	require.Equal(t, []string{me.ID}, liked.LikedBy)
	local, _ := env.lists.Shares.Get(sp.ID)
	require.Equal(t, 1, local.LikeCount)
	requireNotice(t, env.notices.Drain(), notify.LevelSuccess, "Post liked")
}

func TestShareCreateHasItsOwnGuard(t *testing.T) {
	env := newEnv(t, nil)
	env.login(t)
	posts := seedPosts(env, env.otherUser(t), 1)
	release := env.fake.Hold(http.MethodPost, "/share")
	defer release()

	done := make(chan error, 1)
	go func() {
		_, err := env.d.SharePost(context.Background(), posts[0].ID, "Look")
		done <- err
	}()
	require.Eventually(t, func() bool {
		return env.d.State(service.GuardKey(service.KindShareCreate, posts[0].ID)) == service.StateSubmitting
	}, 2*time.Second, 5*time.Millisecond)
	require.Equal(t, service.StateIdle, env.d.State(service.GuardKey(service.KindShare, posts[0].ID)))

	release()
	require.NoError(t, <-done)
}
