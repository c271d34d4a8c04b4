// Package listsync keeps client-side collections in step with the remote API.
//
// A List holds entities unique by key. It is replaced wholesale by Load/Reload
// and patched in place by the Apply* helpers after a successful mutation, so a
// full refetch is not needed for every change.
package listsync

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"
)

var (
	ErrNoFetcher = errors.New("list has not been loaded yet")
	ErrDetached  = errors.New("list is detached from its view")
)

// Keyed is implemented by every synchronized entity.
type Keyed interface {
	Key() string
}

// Fetcher loads the full collection from the remote API.
type Fetcher[T Keyed] func(ctx context.Context) ([]T, error)

// Position selects where ApplyInsertion places a new entity.
type Position int

const (
	Back Position = iota
	Front
	// Sorted places the entity where the list's sort order puts it, ahead of
	// entities it ties with. Without a sort it behaves like Back.
	Sorted
)

// Option configures a List.
type Option[T Keyed] func(*List[T])

// WithSort re-sorts the collection with a stable sort after every load.
func WithSort[T Keyed](less func(a, b T) bool) Option[T] {
	return func(l *List[T]) { l.less = less }
}

// List is an ordered collection unique by key. It is safe for concurrent use.
type List[T Keyed] struct {
	mu       sync.RWMutex
	items    []T
	fetcher  Fetcher[T]
	less     func(a, b T) bool
	detached bool
	loads    int
}

// New creates an empty List.
func New[T Keyed](opts ...Option[T]) *List[T] {
	l := &List[T]{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load replaces the whole collection with the fetcher's result and remembers
// the fetcher for Reload. Concurrent loads are not coalesced: the last one to
// resolve wins. On error the collection is left as it was.
func (l *List[T]) Load(ctx context.Context, fetch Fetcher[T]) error {
	if fetch == nil {
		return ErrNoFetcher
	}
	l.mu.Lock()
	if l.detached {
		l.mu.Unlock()
		return ErrDetached
	}
	l.fetcher = fetch
	l.mu.Unlock()

	items, err := fetch(ctx)
	if err != nil {
		return err
	}
	items = dedupe(items)
	if l.less != nil {
		sort.SliceStable(items, func(i, j int) bool { return l.less(items[i], items[j]) })
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.detached {
		return ErrDetached
	}
	l.items = items
	l.loads++
	return nil
}

// Reload re-runs the last fetcher passed to Load.
func (l *List[T]) Reload(ctx context.Context) error {
	l.mu.RLock()
	fetch := l.fetcher
	l.mu.RUnlock()
	if fetch == nil {
		return ErrNoFetcher
	}
	return l.Load(ctx, fetch)
}

// Loaded reports whether at least one load has completed.
func (l *List[T]) Loaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loads > 0
}

// Items returns a copy of the collection.
func (l *List[T]) Items() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of entities held.
func (l *List[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Get returns the entity with the given key.
func (l *List[T]) Get(key string) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i := l.indexOf(key); i >= 0 {
		return l.items[i], true
	}
	var zero T
	return zero, false
}

// ApplyUpdate replaces the entity with the same key. It reports false, and
// changes nothing, when no such entity is held.
func (l *List[T]) ApplyUpdate(e T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.detached {
		return false
	}
	i := l.indexOf(e.Key())
	if i < 0 {
		return false
	}
	l.items[i] = e
	return true
}

// ApplyRemoval drops the entity with the given key. It reports false when no
// such entity is held.
func (l *List[T]) ApplyRemoval(key string) bool {
	_, ok := l.remove(key)
	return ok
}

// ApplyInsertion adds e at the front or back. An entity already held under
// the same key is replaced in place instead. Entities without a key are
// dropped.
func (l *List[T]) ApplyInsertion(e T, pos Position) {
	if e.Key() == "" {
		log.Printf("WARN: listsync: refusing to insert %T without a key", e)
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.detached {
		return
	}
	if i := l.indexOf(e.Key()); i >= 0 {
		l.items[i] = e
		return
	}
	switch {
	case pos == Front:
		l.items = append([]T{e}, l.items...)
	case pos == Sorted && l.less != nil:
		i := sort.Search(len(l.items), func(i int) bool { return !l.less(l.items[i], e) })
		l.insertIndex(e, i)
	default:
		l.items = append(l.items, e)
	}
}

// Detach marks the owning view as gone. Loads that resolve afterwards and all
// later mutations leave the collection untouched.
func (l *List[T]) Detach() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.detached = true
}

// Detached reports whether Detach was called.
func (l *List[T]) Detached() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.detached
}

func (l *List[T]) remove(key string) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.detached {
		return -1, false
	}
	i := l.indexOf(key)
	if i < 0 {
		return -1, false
	}
	l.items = append(l.items[:i:i], l.items[i+1:]...)
	return i, true
}

func (l *List[T]) insertAt(e T, index int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.detached || l.indexOf(e.Key()) >= 0 {
		return
	}
	l.insertIndex(e, index)
}

// insertIndex must be called with mu held.
func (l *List[T]) insertIndex(e T, index int) {
	if index < 0 {
		index = 0
	}
	if index > len(l.items) {
		index = len(l.items)
	}
	items := make([]T, 0, len(l.items)+1)
	items = append(items, l.items[:index]...)
	items = append(items, e)
	l.items = append(items, l.items[index:]...)
}

// indexOf must be called with mu held.
func (l *List[T]) indexOf(key string) int {
	for i := range l.items {
		if l.items[i].Key() == key {
			return i
		}
	}
	return -1
}

// dedupe keeps the first entity per key and drops entities without a key.
func dedupe[T Keyed](items []T) []T {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	dropped := 0
	for _, e := range items {
		if e.Key() == "" {
			dropped++
			continue
		}
		if _, dup := seen[e.Key()]; dup {
			continue
		}
		seen[e.Key()] = struct{}{}
		out = append(out, e)
	}
	if dropped > 0 {
		var zero T
		log.Printf("WARN: listsync: dropped %d %T entries without a key", dropped, zero)
	}
	return out
}
