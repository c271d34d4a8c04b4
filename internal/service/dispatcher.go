package service

import (
	"context"
	"errors"
	"log"
	"sync"

	"alcyxob/fitsocial/internal/apiclient"
	"alcyxob/fitsocial/internal/domain"
	"alcyxob/fitsocial/internal/listsync"
	"alcyxob/fitsocial/internal/notify"
	"alcyxob/fitsocial/internal/session"
	"alcyxob/fitsocial/internal/storage"
	"alcyxob/fitsocial/internal/validation"
)

// --- Error Definitions ---
var (
	ErrBusy             = errors.New("a request for this item is already in progress")
	ErrNotLoggedIn      = errors.New("please login to continue")
	ErrNotOwner         = errors.New("you can only change your own content")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrMediaUnavailable = errors.New("media upload is not configured")
	ErrMissingID        = errors.New("server answered without an id")
)

// State is the lifecycle of one guarded mutation.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "success"
	StateFailed     State = "failed"
)

// Guard key prefixes, one per mutable entity type.
const (
	KindSession       = "session"
	KindRegistration  = "registration"
	KindProfile       = "profile"
	KindFollow        = "follow"
	KindPost          = "post"
	KindPostLike      = "postLike"
	KindComment       = "comment"
	KindCommentCreate = "commentCreate"
	KindShare         = "share"
	KindShareCreate   = "shareCreate"
	KindShareLike     = "shareLike"
	KindWorkoutStatus = "workoutStatus"
	KindWorkoutPlan   = "workoutPlan"
	KindMealPlan      = "mealPlan"
)

// GuardKey names the state machine for kind, or for one entity of kind when
// id is non-empty. Creates use the bare kind, except comments and shares,
// which are created per post under their own *Create kind.
func GuardKey(kind, id string) string {
	if id == "" {
		return kind
	}
	return kind + "/" + id
}

// Dispatcher turns one user action into exactly one remote request and, on
// success, one local state change plus one confirmation. Failures produce one
// error notice and leave local state as it was.
type Dispatcher struct {
	api       API
	session   *session.Holder
	lists     *Lists
	validator *validation.Validator
	notifier  notify.Notifier
	media     storage.MediaStorage

	mu       sync.Mutex
	inFlight map[string]bool
	outcomes map[string]State
}

// NewDispatcher wires the dispatcher. media may be nil, in which case posts
// can only reference already-hosted media URLs.
func NewDispatcher(api API, holder *session.Holder, lists *Lists, v *validation.Validator, n notify.Notifier, media storage.MediaStorage) *Dispatcher {
	if n == nil {
		n = notify.LogNotifier{}
	}
	return &Dispatcher{
		api:       api,
		session:   holder,
		lists:     lists,
		validator: v,
		notifier:  n,
		media:     media,
		inFlight:  map[string]bool{},
		outcomes:  map[string]State{},
	}
}

// Lists exposes the synchronized collections.
func (d *Dispatcher) Lists() *Lists { return d.lists }

// Session exposes the session holder.
func (d *Dispatcher) Session() *session.Holder { return d.session }

// State returns StateSubmitting while a mutation for key is in flight, and
// StateIdle otherwise.
func (d *Dispatcher) State(key string) State {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.inFlight[key] {
		return StateSubmitting
	}
	return StateIdle
}

// Outcome returns how the last mutation for key settled, or StateIdle if none has.
func (d *Dispatcher) Outcome(key string) State {
	d.mu.Lock()
	defer d.mu.Unlock()
	if s, ok := d.outcomes[key]; ok {
		return s
	}
	return StateIdle
}

func (d *Dispatcher) begin(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.inFlight[key] {
		return false
	}
	d.inFlight[key] = true
	return true
}

func (d *Dispatcher) finish(key string, outcome State) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.inFlight, key)
	d.outcomes[key] = outcome
}

// mutation describes one guarded dispatch.
type mutation struct {
	key        string
	successMsg string
	failMsg    string
	// success, when set, picks the confirmation once the result is known.
	// Toggles use it since the server decides the new state.
	success func() string
	// request performs the remote call(s). It runs in the submitting state.
	request func(ctx context.Context) error
	// apply updates local state after a successful request. May be nil.
	apply func()
	// rollback, when set, marks the mutation optimistic: apply runs before
	// the request and rollback undoes it on failure.
	rollback func()
}

func (d *Dispatcher) dispatch(ctx context.Context, m mutation) error {
	if !d.begin(m.key) {
		log.Printf("INFO: Ignoring duplicate submission for %s", m.key)
		return ErrBusy
	}

	optimistic := m.rollback != nil
	if optimistic && m.apply != nil {
		m.apply()
	}

	if err := m.request(ctx); err != nil {
		if optimistic {
			m.rollback()
		}
		d.finish(m.key, StateFailed)
		log.Printf("ERROR: %s failed: %v", m.key, err)
		d.notifier.Error(failureMessage(err, m.failMsg))
		return err
	}

	if !optimistic && m.apply != nil {
		m.apply()
	}
	d.finish(m.key, StateSucceeded)
	msg := m.successMsg
	if m.success != nil {
		msg = m.success()
	}
	if msg != "" {
		d.notifier.Success(msg)
	}
	return nil
}

// validate runs the struct rules and reports a violation to the user.
func (d *Dispatcher) validate(v interface{}) error {
	if err := d.validator.Struct(v); err != nil {
		d.reject(err)
		return err
	}
	return nil
}

// reject reports an error that stopped a dispatch before any request.
func (d *Dispatcher) reject(err error) {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		d.notifier.Error(vErr.Message)
		return
	}
	d.notifier.Error(capitalize(err.Error()))
}

// currentUser returns the logged-in user or reports ErrNotLoggedIn.
func (d *Dispatcher) currentUser() (*domain.User, error) {
	u := d.session.User()
	if u == nil {
		d.reject(ErrNotLoggedIn)
		return nil, ErrNotLoggedIn
	}
	return u, nil
}

// identified rejects a created or updated entity the server sent back
// without an id, so it never lands in a list.
func identified[T listsync.Keyed](e *T) error {
	if e == nil || (*e).Key() == "" {
		return ErrMissingID
	}
	return nil
}

// failureMessage prefers the server's own message and falls back to the
// action-specific one.
func failureMessage(err error, fallback string) string {
	var reqErr *apiclient.RequestError
	if errors.As(err, &reqErr) && reqErr.StatusCode != 0 && reqErr.Message != "" && reqErr.Message != apiclient.FallbackMessage {
		return reqErr.Message
	}
	if fallback != "" {
		return fallback
	}
	return apiclient.FallbackMessage
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if c := s[0]; c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + s[1:]
	}
	return s
}
