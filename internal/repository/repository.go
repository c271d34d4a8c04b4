package repository

import (
	"alcyxob/fitsocial/internal/domain"
	"context"
)

// Error constants for repository layer
var (
	ErrNotFound   = RepositoryError("not found")
	ErrSaveFailed = RepositoryError("save failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// SessionRepository persists the single session record. There is no locking:
// the last writer wins.
type SessionRepository interface {
	// Get returns ErrNotFound when no session is stored.
	Get(ctx context.Context) (*domain.Session, error)
	Save(ctx context.Context, s *domain.Session) error
	// Delete succeeds when nothing is stored.
	Delete(ctx context.Context) error
}
