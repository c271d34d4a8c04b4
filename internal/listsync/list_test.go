package listsync_test

import (
	"context"
	"errors"
	"testing"

	"alcyxob/fitsocial/internal/domain"
	"alcyxob/fitsocial/internal/listsync"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

func fetcherOf[T listsync.Keyed](items ...T) listsync.Fetcher[T] {
	return func(ctx context.Context) ([]T, error) {
		out := make([]T, len(items))
		copy(out, items)
		return out, nil
	}
}

func randomComments(n int) []domain.Comment {
	out := make([]domain.Comment, n)
	for i := range out {
		out[i] = domain.Comment{
			ID:        gofakeit.UUID(),
			Content:   gofakeit.Sentence(6),
			CommentBy: gofakeit.Username(),
		}
	}
	return out
}

func TestApplyUpdateReplacesExactlyOne(t *testing.T) {
	ctx := context.Background()
	comments := randomComments(5)
	list := listsync.New[domain.Comment]()
	require.NoError(t, list.Load(ctx, fetcherOf(comments...)))

	for _, c := range comments {
		updated := c
		updated.Content = "edited " + c.ID
		require.True(t, list.ApplyUpdate(updated))
		require.Equal(t, len(comments), list.Len())

		got, ok := list.Get(c.ID)
		require.True(t, ok)
		require.Equal(t, updated.Content, got.Content)
	}
}

func TestApplyUpdateMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	list := listsync.New[domain.Comment]()
	require.NoError(t, list.Load(ctx, fetcherOf(randomComments(2)...)))
	before := list.Items()

	require.False(t, list.ApplyUpdate(domain.Comment{ID: "missing", Content: "x"}))
	require.Equal(t, before, list.Items())
}

func TestApplyRemoval(t *testing.T) {
	ctx := context.Background()
	comments := randomComments(4)
	list := listsync.New[domain.Comment]()
	require.NoError(t, list.Load(ctx, fetcherOf(comments...)))

	require.True(t, list.ApplyRemoval(comments[1].ID))
	require.Equal(t, 3, list.Len())
	_, ok := list.Get(comments[1].ID)
	require.False(t, ok)

	require.False(t, list.ApplyRemoval(comments[1].ID))
	require.Equal(t, 3, list.Len())
}

func TestApplyInsertionPositions(t *testing.T) {
	list := listsync.New[domain.Comment]()
	a, b, c := domain.Comment{ID: "a"}, domain.Comment{ID: "b"}, domain.Comment{ID: "c"}

	list.ApplyInsertion(a, listsync.Back)
	list.ApplyInsertion(b, listsync.Back)
	list.ApplyInsertion(c, listsync.Front)
	require.Equal(t, []domain.Comment{c, a, b}, list.Items())

	// Same key replaces in place rather than duplicating.
	a2 := domain.Comment{ID: "a", Content: "again"}
	list.ApplyInsertion(a2, listsync.Front)
	require.Equal(t, []domain.Comment{c, a2, b}, list.Items())
}

func TestLoadCollapsesDuplicates(t *testing.T) {
	list := listsync.New[domain.Comment]()
	first := domain.Comment{ID: "x", Content: "first"}
	second := domain.Comment{ID: "x", Content: "second"}

	require.NoError(t, list.Load(context.Background(), fetcherOf(first, second, domain.Comment{ID: "y"})))
	require.Equal(t, 2, list.Len())
	got, _ := list.Get("x")
	require.Equal(t, "first", got.Content)
}

func TestMealPlansSortedDescendingAfterLoad(t *testing.T) {
	list := listsync.New(listsync.WithSort(func(a, b domain.MealPlan) bool {
		return a.Date.After(b.Date)
	}))
	plans := []domain.MealPlan{
		{ID: "1", Date: "2024-01-01"},
		{ID: "2", Date: "2024-03-01"},
		{ID: "3", Date: "2024-02-01"},
		{ID: "4", Date: "2024-03-01"},
	}
	require.NoError(t, list.Load(context.Background(), fetcherOf(plans...)))

	var dates []domain.Date
	var ids []string
	for _, p := range list.Items() {
		dates = append(dates, p.Date)
		ids = append(ids, p.ID)
	}
	require.Equal(t, []domain.Date{"2024-03-01", "2024-03-01", "2024-02-01", "2024-01-01"}, dates)
	// Ties keep fetch order.
	require.Equal(t, []string{"2", "4", "3", "1"}, ids)
}

func TestLoadErrorKeepsPreviousItems(t *testing.T) {
	ctx := context.Background()
	comments := randomComments(3)
	list := listsync.New[domain.Comment]()
	require.NoError(t, list.Load(ctx, fetcherOf(comments...)))

	boom := errors.New("boom")
	err := list.Load(ctx, func(ctx context.Context) ([]domain.Comment, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
	require.Equal(t, comments, list.Items())
}

func TestReloadRerunsLastFetcher(t *testing.T) {
	ctx := context.Background()
	list := listsync.New[domain.Comment]()
	require.ErrorIs(t, list.Reload(ctx), listsync.ErrNoFetcher)

	calls := 0
	require.NoError(t, list.Load(ctx, func(ctx context.Context) ([]domain.Comment, error) {
		calls++
		return randomComments(calls), nil
	}))
	require.NoError(t, list.Reload(ctx))
	require.NoError(t, list.Reload(ctx))
	require.Equal(t, 3, calls)
	require.Equal(t, 3, list.Len())
}

func TestDetachedListIgnoresLateResults(t *testing.T) {
	ctx := context.Background()
	list := listsync.New[domain.Comment]()
	require.NoError(t, list.Load(ctx, fetcherOf(randomComments(2)...)))

	release := make(chan struct{})
	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- list.Load(ctx, func(ctx context.Context) ([]domain.Comment, error) {
			close(started)
			<-release
			return randomComments(7), nil
		})
	}()
	<-started

	list.Detach()
	close(release)
	require.ErrorIs(t, <-done, listsync.ErrDetached)
	require.Equal(t, 2, list.Len())

	list.ApplyInsertion(domain.Comment{ID: "late"}, listsync.Back)
	require.False(t, list.ApplyRemoval(list.Items()[0].ID))
	require.Equal(t, 2, list.Len())
}

func TestOptimisticRemovalRollsBackAtOriginalIndex(t *testing.T) {
	ctx := context.Background()
	comments := randomComments(3)
	list := listsync.New[domain.Comment]()
	require.NoError(t, list.Load(ctx, fetcherOf(comments...)))

	var seenDuringRequest int
	boom := errors.New("server said no")
	err := listsync.Optimistic(ctx,
		func() listsync.Rollback { return list.RemoveOptimistic(comments[1].ID) },
		func(ctx context.Context) error {
			seenDuringRequest = list.Len()
			return boom
		})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 2, seenDuringRequest)
	require.Equal(t, comments, list.Items())
}

func TestOptimisticRemovalKeptOnSuccess(t *testing.T) {
	ctx := context.Background()
	comments := randomComments(2)
	list := listsync.New[domain.Comment]()
	require.NoError(t, list.Load(ctx, fetcherOf(comments...)))

	err := listsync.Optimistic(ctx,
		func() listsync.Rollback { return list.RemoveOptimistic(comments[0].ID) },
		func(ctx context.Context) error { return nil })
	require.NoError(t, err)
	require.Equal(t, []domain.Comment{comments[1]}, list.Items())
}

func TestSortedInsertion(t *testing.T) {
	list := listsync.New(listsync.WithSort(func(a, b domain.MealPlan) bool {
		return a.Date.After(b.Date)
	}))
	require.NoError(t, list.Load(context.Background(), fetcherOf(
		domain.MealPlan{ID: "a", Date: "2024-03-01"},
		domain.MealPlan{ID: "b", Date: "2024-01-01"},
	)))

	list.ApplyInsertion(domain.MealPlan{ID: "c", Date: "2024-02-01"}, listsync.Sorted)
	list.ApplyInsertion(domain.MealPlan{ID: "d", Date: "2024-05-01"}, listsync.Sorted)
	list.ApplyInsertion(domain.MealPlan{ID: "e", Date: "2023-12-01"}, listsync.Sorted)

	var ids []string
	for _, p := range list.Items() {
		ids = append(ids, p.ID)
	}
	require.Equal(t, []string{"d", "a", "c", "b", "e"}, ids)
}

func TestEntitiesWithoutKeyAreDropped(t *testing.T) {
	ctx := context.Background()
	meals := []domain.MealPlan{
		{ID: "m1", MealName: "Oats"},
		{MealName: "No id"},
		{ID: "m2", MealName: "Salad"},
		{MealName: "No id either"},
	}
	list := listsync.New[domain.MealPlan]()
	require.NoError(t, list.Load(ctx, fetcherOf(meals...)))
	require.Equal(t, 2, list.Len())

	list.ApplyInsertion(domain.MealPlan{MealName: "Soup"}, listsync.Front)
	require.Equal(t, 2, list.Len())
	_, ok := list.Get("")
	require.False(t, ok)
}
