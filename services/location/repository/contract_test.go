package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/piresc/gpstracker/services/location"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// runLocationRepoContract exercises the behavior every LocationRepo backend must share
func runLocationRepoContract(t *testing.T, newRepo func(t *testing.T) location.LocationRepo) {
	t.Run("empty store", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Latest(ctx)
		assert.ErrorIs(t, err, location.ErrNoData)

		all, err := repo.All(ctx)
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)

		deleted, err := repo.Trim(ctx, 100)
		require.NoError(t, err)
		assert.Zero(t, deleted)
	})

	t.Run("append assigns increasing ids and defaults timestamp", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		before := time.Now().Add(-time.Second)
		first, err := repo.Append(ctx, 12.34, 56.78, time.Time{})
		require.NoError(t, err)
		second, err := repo.Append(ctx, 1, 2, time.Time{})
		require.NoError(t, err)

		assert.Greater(t, second.ID, first.ID)
		assert.Equal(t, 12.34, first.Latitude)
		assert.Equal(t, 56.78, first.Longitude)
		assert.True(t, first.Timestamp.After(before))
		assert.Equal(t, time.UTC, first.Timestamp.Location())
	})

	t.Run("ordering by timestamp", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		// inserted out of order on purpose
		_, err := repo.Append(ctx, 2, 2, baseTime.Add(2*time.Minute))
		require.NoError(t, err)
		_, err = repo.Append(ctx, 3, 3, baseTime.Add(3*time.Minute))
		require.NoError(t, err)
		_, err = repo.Append(ctx, 1, 1, baseTime.Add(1*time.Minute))
		require.NoError(t, err)

		latest, err := repo.Latest(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3.0, latest.Latitude)
		assert.True(t, latest.Timestamp.Equal(baseTime.Add(3*time.Minute)))

		all, err := repo.All(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []float64{3, 2, 1}, []float64{all[0].Latitude, all[1].Latitude, all[2].Latitude})
	})

	t.Run("equal timestamps are ordered by id", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		a, err := repo.Append(ctx, 1, 1, baseTime)
		require.NoError(t, err)
		b, err := repo.Append(ctx, 2, 2, baseTime)
		require.NoError(t, err)

		latest, err := repo.Latest(ctx)
		require.NoError(t, err)
		assert.Equal(t, b.ID, latest.ID)

		all, err := repo.All(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, b.ID, all[0].ID)
		assert.Equal(t, a.ID, all[1].ID)

		deleted, err := repo.Trim(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		remaining, err := repo.All(ctx)
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.Equal(t, b.ID, remaining[0].ID)
	})

	t.Run("sub-millisecond timestamps keep their order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Append(ctx, 2, 2, baseTime.Add(2*time.Microsecond))
		require.NoError(t, err)
		_, err = repo.Append(ctx, 1, 1, baseTime.Add(1*time.Microsecond))
		require.NoError(t, err)

		latest, err := repo.Latest(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2.0, latest.Latitude)
	})

	t.Run("timestamps outside four-digit years are rejected", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		kept, err := repo.Append(ctx, 1, 1, baseTime)
		require.NoError(t, err)

		for _, ts := range []time.Time{
			time.Unix(253402300800, 0),
			time.Unix(baseTime.UnixMilli(), 0),
			time.Date(-1, 1, 1, 0, 0, 0, 0, time.UTC),
		} {
			_, err := repo.Append(ctx, 2, 2, ts)
			assert.True(t, location.IsValidation(err), "timestamp %v", ts)
			assert.False(t, location.IsStorage(err))
		}

		latest, err := repo.Latest(ctx)
		require.NoError(t, err)
		assert.Equal(t, kept.ID, latest.ID)

		all, err := repo.All(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("year 9999 keeps its place in the order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		late := time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
		far, err := repo.Append(ctx, 9, 9, late)
		require.NoError(t, err)
		_, err = repo.Append(ctx, 1, 1, baseTime)
		require.NoError(t, err)

		latest, err := repo.Latest(ctx)
		require.NoError(t, err)
		assert.Equal(t, far.ID, latest.ID)
		assert.True(t, late.Equal(latest.Timestamp))

		all, err := repo.All(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, far.ID, all[0].ID)
	})

	t.Run("trim keeps the most recent records and is idempotent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for i := 0; i < 150; i++ {
			_, err := repo.Append(ctx, float64(i), float64(-i), baseTime.Add(time.Duration(i)*time.Second))
			require.NoError(t, err)
		}

		deleted, err := repo.Trim(ctx, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(50), deleted)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(100), count)

		all, err := repo.All(ctx)
		require.NoError(t, err)
		require.Len(t, all, 100)
		assert.Equal(t, 149.0, all[0].Latitude)
		assert.Equal(t, 50.0, all[99].Latitude)

		deleted, err = repo.Trim(ctx, 100)
		require.NoError(t, err)
		assert.Zero(t, deleted)
	})

	t.Run("trim to zero empties the store", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			_, err := repo.Append(ctx, 1, 1, baseTime.Add(time.Duration(i)*time.Second))
			require.NoError(t, err)
		}

		deleted, err := repo.Trim(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(5), deleted)

		_, err = repo.Latest(ctx)
		assert.ErrorIs(t, err, location.ErrNoData)
	})

	t.Run("concurrent trims never evict more than the excess", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for i := 0; i < 40; i++ {
			_, err := repo.Append(ctx, float64(i), 0, baseTime.Add(time.Duration(i)*time.Second))
			require.NoError(t, err)
		}

		var (
			wg    sync.WaitGroup
			mu    sync.Mutex
			total int64
		)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				deleted, err := repo.Trim(ctx, 25)
				assert.NoError(t, err)
				mu.Lock()
				total += deleted
				mu.Unlock()
			}()
		}
		wg.Wait()

		assert.Equal(t, int64(15), total)
		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(25), count)
	})

	t.Run("trim after concurrent appends respects the cap", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		var wg sync.WaitGroup
		for i := 0; i < 30; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := repo.Append(ctx, float64(i), float64(i), time.Time{})
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		_, err := repo.Trim(ctx, 10)
		require.NoError(t, err)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(10), count)
	})
}
