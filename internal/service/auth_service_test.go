package service_test

import (
	"context"
	"net/http"
	"testing"

	"alcyxob/fitsocial/internal/domain"
	"alcyxob/fitsocial/internal/notify"
	"alcyxob/fitsocial/internal/repository"
	"alcyxob/fitsocial/internal/service"
	"alcyxob/fitsocial/internal/session"
	"alcyxob/fitsocial/internal/validation"

	"github.com/stretchr/testify/require"
)

func TestLoginPersistsSession(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)
	reg := newRegistration()
	u, err := env.fake.SeedUser(reg)
	require.NoError(t, err)

	s, err := env.d.Login(ctx, domain.Credentials{Email: reg.Email, Password: password})
	require.NoError(t, err)
	require.Equal(t, u.ID, s.User.ID)
	requireNotice(t, env.notices.Drain(), notify.LevelSuccess, "Login successfully")

	stored, err := env.repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, u.ID, stored.User.ID)
	require.Equal(t, u.ID, env.holder.User().ID)
}

func TestLoginFailureShowsServerMessage(t *testing.T) {
	env := newEnv(t, nil)
	reg := newRegistration()
	_, err := env.fake.SeedUser(reg)
	require.NoError(t, err)

	_, err = env.d.Login(context.Background(), domain.Credentials{Email: reg.Email, Password: "Wr0ng!pass"})
	require.Error(t, err)
	requireNotice(t, env.notices.Drain(), notify.LevelError, "Invalid email or password")
	require.Nil(t, env.holder.Get())
	require.Equal(t, service.StateFailed, env.d.Outcome(service.KindSession))
}

func TestRegisterValidatesBeforeRequest(t *testing.T) {
	env := newEnv(t, nil)
	reg := newRegistration()
	reg.Password = "weakpass"

	_, err := env.d.Register(context.Background(), reg)
	require.True(t, validation.IsValidationError(err))
	require.Zero(t, env.fake.Calls(http.MethodPost, "/users/register"))
	notices := env.notices.Drain()
	require.Len(t, notices, 1)
	require.Equal(t, notify.LevelError, notices[0].Level)
}

func TestRegister(t *testing.T) {
	env := newEnv(t, nil)
	u, err := env.d.Register(context.Background(), newRegistration())
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	requireNotice(t, env.notices.Drain(), notify.LevelSuccess, "User created successfully")
	require.Nil(t, env.holder.Get(), "registering does not log in")
}

func TestLogoutClearsSessionWhenDeactivationFails(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)
	env.login(t)
	env.fake.Fail(http.MethodPost, "/users/:id/deactivate", http.StatusInternalServerError, "Server error")

	require.NoError(t, env.d.Logout(ctx))
	require.Equal(t, 1, env.fake.Calls(http.MethodPost, "/users/:id/deactivate"))
	require.Nil(t, env.holder.Get())
	_, err := env.repo.Get(ctx)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLogoutNotifiesSubscribers(t *testing.T) {
	env := newEnv(t, nil)
	env.login(t)
	ch, cancel := env.holder.Subscribe()
	defer cancel()

	require.NoError(t, env.d.Logout(context.Background()))
	require.Nil(t, <-ch)
}

func TestLoadSessionWithoutRecordAsksServer(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)

	_, err := env.d.LoadSession(ctx)
	require.ErrorIs(t, err, session.ErrUnauthenticated)

	u := env.otherUser(t)
	env.fake.SignIn(u.ID)
	s, err := env.d.LoadSession(ctx)
	require.NoError(t, err)
	require.Equal(t, u.ID, s.User.ID)
	require.Equal(t, 2, env.fake.Calls(http.MethodGet, "/api/user"))
}

func TestUpdateOwnProfileMergesSession(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)
	me := env.login(t)

	upd := domain.ProfileUpdate{Name: "Renamed", ProfileImage: "https://cdn.example.com/me.png"}
	u, err := env.d.UpdateProfile(ctx, "", upd)
	require.NoError(t, err)
	require.Equal(t, "Renamed", u.Name)
	requireNotice(t, env.notices.Drain(), notify.LevelSuccess, "Profile updated successfully")

	s := env.holder.Get()
	require.Equal(t, me.ID, s.User.ID)
	require.Equal(t, "Renamed", s.User.Name)
	require.Equal(t, me.Email, s.User.Email)
	require.Equal(t, upd.ProfileImage, s.User.ProfileImage)

	stored, err := env.repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "Renamed", stored.User.Name)
}

func TestUpdateProfileRejectsShortName(t *testing.T) {
	env := newEnv(t, nil)
	env.login(t)

	_, err := env.d.UpdateProfile(context.Background(), "", domain.ProfileUpdate{Name: "Al"})
	require.True(t, validation.IsValidationError(err))
	require.Zero(t, env.fake.Calls(http.MethodPut, "/users/:id"))
}

func TestFollowUserAppliesServerAnswer(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)
	me := env.login(t)
	other := env.otherUser(t)
	require.NoError(t, env.d.LoadUsers(ctx, false))

	followed, err := env.d.FollowUser(ctx, other.ID)
	require.NoError(t, err)
	require.True(t, followed.IsFollowedBy(me.ID))
	local, ok := env.lists.Users.Get(other.ID)
	require.True(t, ok)
	require.Equal(t, 1, local.FollowersCount)
	requireNotice(t, env.notices.Drain(), notify.LevelSuccess, "You are now following "+other.Name)

	followed, err = env.d.FollowUser(ctx, other.ID)
	require.NoError(t, err)
	require.False(t, followed.IsFollowedBy(me.ID))
	local, _ = env.lists.Users.Get(other.ID)
	require.Zero(t, local.FollowersCount)
	requireNotice(t, env.notices.Drain(), notify.LevelSuccess, "You unfollowed "+other.Name)
	require.Equal(t, 2, env.fake.Calls(http.MethodPost, "/users/follow"))
}

func TestFollowSelfIsRejected(t *testing.T) {
	env := newEnv(t, nil)
	me := env.login(t)

	_, err := env.d.FollowUser(context.Background(), me.ID)
	require.ErrorIs(t, err, service.ErrFollowSelf)
	require.Zero(t, env.fake.Calls(http.MethodPost, "/users/follow"))
}

func TestDeleteAccountEndsSession(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, nil)
	me := env.login(t)

	require.NoError(t, env.d.DeleteAccount(ctx))
	requireNotice(t, env.notices.Drain(), notify.LevelSuccess, "Account deleted successfully")
	require.Nil(t, env.holder.Get())
	_, ok := env.fake.User(me.ID)
	require.False(t, ok)
	require.Zero(t, env.fake.Calls(http.MethodPost, "/users/:id/deactivate"))
}

func TestMutationsRequireLogin(t *testing.T) {
	env := newEnv(t, nil)
	_, err := env.d.CreateWorkoutStatus(context.Background(), domain.WorkoutStatus{})
	require.ErrorIs(t, err, service.ErrNotLoggedIn)
	requireNotice(t, env.notices.Drain(), notify.LevelError, "Please login to continue")
}
