// internal/repository/file/session_repo.go
package file

import (
	"alcyxob/fitsocial/internal/domain"
	"alcyxob/fitsocial/internal/repository"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// fileSessionRepository keeps the session record in a JSON file, one file per profile.
type fileSessionRepository struct {
	path string
}

// NewFileSessionRepository stores the session record at path. The parent
// directory is created on first save.
func NewFileSessionRepository(path string) repository.SessionRepository {
	return &fileSessionRepository{path: path}
}

func (r *fileSessionRepository) Get(ctx context.Context) (*domain.Session, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	var record map[string]domain.Session
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("corrupt session file %s: %w", r.path, err)
	}
	s, ok := record[domain.SessionKey]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

// Save writes to a temp file and renames it over the record so readers never
// see a partial write.
func (r *fileSessionRepository) Save(ctx context.Context, s *domain.Session) error {
	if s == nil || s.User.ID == "" {
		return errors.New("session with a user id is required")
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return fmt.Errorf("%w: %v", repository.ErrSaveFailed, err)
	}

	raw, err := json.MarshalIndent(map[string]domain.Session{domain.SessionKey: *s}, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".session-*")
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrSaveFailed, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", repository.ErrSaveFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", repository.ErrSaveFailed, err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("%w: %v", repository.ErrSaveFailed, err)
	}
	return nil
}

func (r *fileSessionRepository) Delete(ctx context.Context) error {
	err := os.Remove(r.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
