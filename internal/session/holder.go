// Package session holds the identity of the logged-in user.
package session

import (
	"context"
	"errors"
	"log"
	"sync"

	"alcyxob/fitsocial/internal/apiclient"
	"alcyxob/fitsocial/internal/domain"
	"alcyxob/fitsocial/internal/repository"
	"alcyxob/fitsocial/internal/util"

	"github.com/golang-jwt/jwt/v4"
)

// ErrUnauthenticated means there is no session and the server did not
// recognise the ambient credentials. Callers send the user to login.
var ErrUnauthenticated = errors.New("not authenticated")

// Remote is the part of the API the holder needs.
type Remote interface {
	Me(ctx context.Context) (*domain.User, error)
	Deactivate(ctx context.Context, userID string) error
}

// Holder is the single owner of the session record. Every consumer reads the
// session through it; Subscribe keeps other consumers in sync after Set/Clear.
type Holder struct {
	repo   repository.SessionRepository
	remote Remote
	clock  util.Clock

	mu      sync.RWMutex
	current *domain.Session
	subs    map[int]chan *domain.Session
	nextSub int
}

// NewHolder creates a Holder with no session loaded.
func NewHolder(repo repository.SessionRepository, remote Remote, clock util.Clock) *Holder {
	if clock == nil {
		clock = util.NewRealClock()
	}
	return &Holder{
		repo:   repo,
		remote: remote,
		clock:  clock,
		subs:   map[int]chan *domain.Session{},
	}
}

// Load reads the persisted record. When there is none (or its token has
// expired) the server is asked who the ambient credentials belong to, and the
// answer is persisted. A 401 from the server yields ErrUnauthenticated.
func (h *Holder) Load(ctx context.Context) (*domain.Session, error) {
	s, err := h.repo.Get(ctx)
	switch {
	case err == nil && h.expired(s):
		log.Printf("INFO: Stored session for user %s has an expired token, discarding", s.User.ID)
		if delErr := h.repo.Delete(ctx); delErr != nil {
			log.Printf("WARN: Failed to remove expired session: %v", delErr)
		}
	case err == nil:
		h.publish(s)
		return copySession(s), nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	user, err := h.remote.Me(ctx)
	if err != nil {
		if apiclient.IsUnauthorized(err) {
			h.publish(nil)
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	s = &domain.Session{User: *user}
	if err := h.repo.Save(ctx, s); err != nil {
		log.Printf("WARN: Failed to persist session for user %s: %v", user.ID, err)
	}
	h.publish(s)
	return copySession(s), nil
}

// Get returns the current session, or nil.
func (h *Holder) Get() *domain.Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return copySession(h.current)
}

// User returns the current user, or nil.
func (h *Holder) User() *domain.User {
	s := h.Get()
	if s == nil {
		return nil
	}
	return &s.User
}

// Token returns the bearer token of the current session, or "".
func (h *Holder) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.current == nil {
		return ""
	}
	return h.current.Token
}

// Set persists s and broadcasts it. The in-memory session is updated even
// if persisting fails; the error is returned so the caller can report it.
func (h *Holder) Set(ctx context.Context, s *domain.Session) error {
	if s == nil {
		return errors.New("session is required, use Clear to log out")
	}
	s = copySession(s)
	err := h.repo.Save(ctx, s)
	h.publish(s)
	return err
}

// Clear logs out: the server is told to mark the user inactive, then the
// record is removed. A failed notification is logged and ignored; the local
// session is always cleared.
func (h *Holder) Clear(ctx context.Context) error {
	if u := h.User(); u != nil && h.remote != nil {
		if err := h.remote.Deactivate(ctx, u.ID); err != nil {
			log.Printf("WARN: Failed to deactivate user %s on logout: %v", u.ID, err)
		}
	}
	err := h.repo.Delete(ctx)
	h.publish(nil)
	return err
}

// Forget removes the record without telling the server, e.g. after the
// account itself was deleted.
func (h *Holder) Forget(ctx context.Context) error {
	err := h.repo.Delete(ctx)
	h.publish(nil)
	return err
}

// Subscribe returns a channel receiving every new session value (nil after
// logout) and a func to stop the subscription. Slow readers only see the
// latest value.
func (h *Holder) Subscribe() (<-chan *domain.Session, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextSub
	h.nextSub++
	ch := make(chan *domain.Session, 1)
	h.subs[id] = ch
	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if c, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(c)
		}
	}
}

func (h *Holder) publish(s *domain.Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = s
	for _, ch := range h.subs {
		v := copySession(s)
		select {
		case ch <- v:
		default:
			// Drop the stale value so the latest one is delivered.
			select {
			case <-ch:
			default:
			}
			ch <- v
		}
	}
}

// expired reports whether the session's token is a JWT whose exp claim has
// passed. Opaque tokens never expire locally.
func (h *Holder) expired(s *domain.Session) bool {
	if s.Token == "" {
		return false
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && !claims.ExpiresAt.Time.After(h.clock.NowUtc())
}

func copySession(s *domain.Session) *domain.Session {
	if s == nil {
		return nil
	}
	c := *s
	c.User.Followers = append([]string(nil), s.User.Followers...)
	return &c
}
