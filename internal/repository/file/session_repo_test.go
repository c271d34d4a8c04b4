package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"alcyxob/fitsocial/internal/domain"
	"alcyxob/fitsocial/internal/repository"
	"alcyxob/fitsocial/internal/repository/file"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := file.NewFileSessionRepository(filepath.Join(t.TempDir(), "profile", "session.json"))

	_, err := repo.Get(ctx)
	require.ErrorIs(t, err, repository.ErrNotFound)

	s := &domain.Session{
		User: domain.User{
			ID:           gofakeit.UUID(),
			Name:         gofakeit.Name(),
			ProfileImage: gofakeit.URL(),
		},
		Token: "tok",
	}
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, s, got)

	require.NoError(t, repo.Delete(ctx))
	_, err = repo.Get(ctx)
	require.ErrorIs(t, err, repository.ErrNotFound)

	// Deleting again is fine.
	require.NoError(t, repo.Delete(ctx))
}

func TestSaveRequiresUser(t *testing.T) {
	repo := file.NewFileSessionRepository(filepath.Join(t.TempDir(), "session.json"))
	require.Error(t, repo.Save(context.Background(), &domain.Session{}))
}

func TestCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := file.NewFileSessionRepository(path).Get(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, repository.ErrNotFound)
}
