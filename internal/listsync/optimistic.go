package listsync

import "context"

// Rollback undoes a local change applied ahead of server confirmation.
type Rollback func()

// Optimistic applies a local change, issues the request, and runs the
// returned rollback if the request fails. The request error is returned as is.
func Optimistic(ctx context.Context, apply func() Rollback, request func(ctx context.Context) error) error {
	rollback := apply()
	if err := request(ctx); err != nil {
		if rollback != nil {
			rollback()
		}
		return err
	}
	return nil
}

// RemoveOptimistic removes the entity with key and returns a rollback that
// puts it back at its original index (clamped to the current length). The
// rollback does nothing if the entity was not held or has since reappeared.
func (l *List[T]) RemoveOptimistic(key string) Rollback {
	l.mu.RLock()
	i := l.indexOf(key)
	var removed T
	if i >= 0 {
		removed = l.items[i]
	}
	l.mu.RUnlock()
	if i < 0 {
		return func() {}
	}

	index, ok := l.remove(key)
	if !ok {
		return func() {}
	}
	return func() { l.insertAt(removed, index) }
}
