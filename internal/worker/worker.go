// Package worker re-fetches loaded lists on a fixed interval.
package worker

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"alcyxob/fitsocial/internal/listsync"
)

// Reloader is a list that can be refreshed from its last fetcher.
type Reloader interface {
	Reload(ctx context.Context) error
	Loaded() bool
}

type Worker struct {
	targets map[string]Reloader
	timeout time.Duration

	ticker   *time.Ticker
	stopChan chan struct{}
	done     chan struct{}
	mu       sync.Mutex
	running  bool
	active   bool
}

// NewWorker creates a worker over the named lists. timeout bounds one refresh
// round; zero means no bound beyond the HTTP client's own.
func NewWorker(targets map[string]Reloader, timeout time.Duration) *Worker {
	return &Worker{targets: targets, timeout: timeout}
}

func (w *Worker) Start(interval time.Duration) {
	if interval <= 0 {
		log.Println("INFO: Worker: refresh interval not set, periodic refresh disabled")
		return
	}
	w.mu.Lock()
	if w.active {
		w.mu.Unlock()
		log.Println("WARN: Worker: scheduler already active, use Restart to change interval")
		return
	}
	w.active = true
	w.ticker = time.NewTicker(interval)
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})
	ticker, stop, done := w.ticker, w.stopChan, w.done
	w.mu.Unlock()

	go func() {
		defer func() {
			w.mu.Lock()
			w.active = false
			w.mu.Unlock()
			close(done)
		}()
		for {
			select {
			case <-ticker.C:
				w.RefreshAll(context.Background())
			case <-stop:
				ticker.Stop()
				return
			}
		}
	}()
	log.Printf("INFO: Background refresh started with interval: %v", interval)
}

// Stop halts the scheduler and waits for it to exit. A refresh round in
// progress finishes first.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.active {
		w.mu.Unlock()
		return
	}
	stop, done := w.stopChan, w.done
	w.mu.Unlock()

	close(stop)
	<-done
	log.Println("INFO: Background refresh stopped")
}

func (w *Worker) Restart(interval time.Duration) {
	w.Stop()
	w.Start(interval)
}

func (w *Worker) IsActive() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

// RefreshAll reloads every list that has been loaded at least once and
// returns how many were refreshed. A round already in progress makes this a
// no-op.
func (w *Worker) RefreshAll(ctx context.Context) int {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		log.Println("INFO: Worker: refresh already in progress, skipping...")
		return 0
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	refreshed := 0
	for name, list := range w.targets {
		if !list.Loaded() {
			continue
		}
		err := list.Reload(ctx)
		switch {
		case err == nil:
			refreshed++
		case errors.Is(err, listsync.ErrDetached), errors.Is(err, listsync.ErrNoFetcher):
		default:
			log.Printf("ERROR: Worker: failed to refresh %s: %v", name, err)
		}
	}
	return refreshed
}
