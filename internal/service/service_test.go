package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"alcyxob/fitsocial/internal/apiclient"
	"alcyxob/fitsocial/internal/domain"
	"alcyxob/fitsocial/internal/fakeapi"
	"alcyxob/fitsocial/internal/notify"
	"alcyxob/fitsocial/internal/repository"
	"alcyxob/fitsocial/internal/repository/file"
	"alcyxob/fitsocial/internal/service"
	"alcyxob/fitsocial/internal/session"
	"alcyxob/fitsocial/internal/storage"
	"alcyxob/fitsocial/internal/util"
	"alcyxob/fitsocial/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

const password = "Str0ng!pass"

var today = time.Date(2024, time.May, 10, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	fake    *fakeapi.Server
	client  *apiclient.Client
	clock   *util.StubClock
	repo    repository.SessionRepository
	holder  *session.Holder
	notices *notify.Recorder
	d       *service.Dispatcher
	lists   *service.Lists
}

func newEnv(t *testing.T, media storage.MediaStorage) *testEnv {
	t.Helper()
	fake := fakeapi.New()
	srv := fake.Start()
	t.Cleanup(srv.Close)

	client, err := apiclient.NewClient(srv.URL, 5*time.Second)
	require.NoError(t, err)

	clock := util.NewStubClock(today)
	repo := file.NewFileSessionRepository(filepath.Join(t.TempDir(), "session.json"))
	holder := session.NewHolder(repo, client, clock)
	client.SetTokenSource(holder.Token)

	lists := service.NewLists()
	notices := &notify.Recorder{}
	d := service.NewDispatcher(client, holder, lists, validation.New(clock), notices, media)
	return &testEnv{fake: fake, client: client, clock: clock, repo: repo, holder: holder, notices: notices, d: d, lists: lists}
}

func newRegistration() domain.Registration {
	return domain.Registration{
		Name:         "user" + gofakeit.LetterN(6),
		Email:        gofakeit.Email(),
		Password:     password,
		MobileNumber: "0712345678",
	}
}

// login registers a user on the fake API and logs in through the dispatcher.
func (e *testEnv) login(t *testing.T) domain.User {
	t.Helper()
	reg := newRegistration()
	u, err := e.fake.SeedUser(reg)
	require.NoError(t, err)
	_, err = e.d.Login(context.Background(), domain.Credentials{Email: reg.Email, Password: password})
	require.NoError(t, err)
	e.notices.Drain()
	return u
}

// otherUser registers a second account without logging in.
func (e *testEnv) otherUser(t *testing.T) domain.User {
	t.Helper()
	u, err := e.fake.SeedUser(newRegistration())
	require.NoError(t, err)
	return u
}

func requireNotice(t *testing.T, notices []notify.Notice, level notify.Level, msg string) {
	t.Helper()
	require.Len(t, notices, 1)
	require.Equal(t, level, notices[0].Level)
	require.Equal(t, msg, notices[0].Message)
}

func date(daysFromToday int) domain.Date {
	return domain.NewDate(today.AddDate(0, 0, daysFromToday))
}
