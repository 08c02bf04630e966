package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-tracker/internal/core/domain"
)

func setupCachedRepo(t *testing.T) (*CachedHabitRepository, *InMemoryHabitRepository, *miniredis.Miniredis) {
	t.Helper()

	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { rdb.Close() })

	next := NewInMemoryHabitRepository()
	return NewCachedHabitRepository(next, rdb), next, s
}

func TestCachedHabitRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Serves the second read from Redis", func(t *testing.T) {
		repo, next, s := setupCachedRepo(t)
		require.NoError(t, next.Create(ctx, &domain.Habit{ID: "h1", UserID: "u1", Name: "Read"}))

		first, err := repo.ListActiveByUserID(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, first, 1)
		assert.True(t, s.Exists("habits:active:u1"))

		// bypass the cache: the stale list must still be served
		require.NoError(t, next.Create(ctx, &domain.Habit{ID: "h2", UserID: "u1", Name: "Run"}))

		second, err := repo.ListActiveByUserID(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, second, 1)
	})

	t.Run("Writes invalidate the user's list", func(t *testing.T) {
		repo, _, s := setupCachedRepo(t)

		_, err := repo.ListActiveByUserID(ctx, "u1")
		require.NoError(t, err)
		require.True(t, s.Exists("habits:active:u1"))

		require.NoError(t, repo.Create(ctx, &domain.Habit{ID: "h1", UserID: "u1", Name: "Read"}))
		assert.False(t, s.Exists("habits:active:u1"))

		habits, err := repo.ListActiveByUserID(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, habits, 1)

		habits[0].Archive()
		require.NoError(t, repo.Update(ctx, habits[0]))
		assert.False(t, s.Exists("habits:active:u1"))

		habits, err = repo.ListActiveByUserID(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, habits)
	})

	t.Run("CreateMany invalidates once per user", func(t *testing.T) {
		repo, _, s := setupCachedRepo(t)

		_, _ = repo.ListActiveByUserID(ctx, "u1")
		require.NoError(t, repo.CreateMany(ctx, []*domain.Habit{
			{ID: "a", UserID: "u1", Name: "A"},
			{ID: "b", UserID: "u1", Name: "B"},
		}))

		assert.False(t, s.Exists("habits:active:u1"))
		habits, _ := repo.ListActiveByUserID(ctx, "u1")
		assert.Len(t, habits, 2)
	})

	t.Run("Corrupted cache entries fall back to the store", func(t *testing.T) {
		repo, next, s := setupCachedRepo(t)
		require.NoError(t, next.Create(ctx, &domain.Habit{ID: "h1", UserID: "u1", Name: "Read"}))
		require.NoError(t, s.Set("habits:active:u1", "{not json"))

		habits, err := repo.ListActiveByUserID(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, habits, 1)
	})

	t.Run("Redis down still serves from the store", func(t *testing.T) {
		repo, next, s := setupCachedRepo(t)
		require.NoError(t, next.Create(ctx, &domain.Habit{ID: "h1", UserID: "u1", Name: "Read"}))
		s.Close()

		habits, err := repo.ListActiveByUserID(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, habits, 1)
	})
}
