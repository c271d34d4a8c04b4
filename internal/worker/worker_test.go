package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"alcyxob/fitsocial/internal/domain"
	"alcyxob/fitsocial/internal/listsync"
	"alcyxob/fitsocial/internal/worker"

	"github.com/stretchr/testify/require"
)

func countingFetcher(calls *int32, err error) listsync.Fetcher[domain.MealPlan] {
	return func(ctx context.Context) ([]domain.MealPlan, error) {
		n := atomic.AddInt32(calls, 1)
		if err != nil && n > 1 {
			return nil, err
		}
		return []domain.MealPlan{{ID: "m1"}}, nil
	}
}

func TestRefreshAllSkipsUnloadedLists(t *testing.T) {
	ctx := context.Background()
	var loadedCalls int32
	loaded := listsync.New[domain.MealPlan]()
	require.NoError(t, loaded.Load(ctx, countingFetcher(&loadedCalls, nil)))
	untouched := listsync.New[domain.MealPlan]()

	w := worker.NewWorker(map[string]worker.Reloader{"meals": loaded, "plans": untouched}, time.Second)
	require.Equal(t, 1, w.RefreshAll(ctx))
	require.EqualValues(t, 2, atomic.LoadInt32(&loadedCalls))
	require.False(t, untouched.Loaded())
}

func TestRefreshAllToleratesFailures(t *testing.T) {
	ctx := context.Background()
	var calls int32
	failing := listsync.New[domain.MealPlan]()
	require.NoError(t, failing.Load(ctx, countingFetcher(&calls, errors.New("server down"))))
	detached := listsync.New[domain.MealPlan]()
	require.NoError(t, detached.Load(ctx, countingFetcher(new(int32), nil)))
	detached.Detach()

	w := worker.NewWorker(map[string]worker.Reloader{"failing": failing, "detached": detached}, 0)
	require.Zero(t, w.RefreshAll(ctx))
	require.Equal(t, 1, failing.Len(), "a failed refresh keeps the previous items")
}

func TestStartRefreshesPeriodically(t *testing.T) {
	ctx := context.Background()
	var calls int32
	list := listsync.New[domain.MealPlan]()
	require.NoError(t, list.Load(ctx, countingFetcher(&calls, nil)))

	w := worker.NewWorker(map[string]worker.Reloader{"meals": list}, time.Second)
	w.Start(10 * time.Millisecond)
	require.True(t, w.IsActive())
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) >= 3 }, 2*time.Second, 5*time.Millisecond)

	w.Stop()
	require.False(t, w.IsActive())
	settled := atomic.LoadInt32(&calls)
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, settled, atomic.LoadInt32(&calls))
}

func TestStartWithoutIntervalIsDisabled(t *testing.T) {
	w := worker.NewWorker(nil, 0)
	w.Start(0)
	require.False(t, w.IsActive())
	w.Stop()
}
