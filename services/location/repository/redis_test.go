package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/piresc/gpstracker/services/location"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisRepo(t *testing.T) (*RedisLocationRepo, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := NewRedisLocationRepository(client, "test", 5*time.Second)
	t.Cleanup(func() { repo.Close() })
	return repo, mr
}

func TestRedisLocationRepo(t *testing.T) {
	runLocationRepoContract(t, func(t *testing.T) location.LocationRepo {
		repo, _ := setupRedisRepo(t)
		return repo
	})
}

func TestRedisLocationRepo_Keys(t *testing.T) {
	repo, mr := setupRedisRepo(t)
	ctx := context.Background()

	loc, err := repo.Append(ctx, 1.5, 2.5, baseTime)
	require.NoError(t, err)

	assert.True(t, mr.Exists("test:locations"))
	assert.True(t, mr.Exists("test:locations:data"))

	seq, err := mr.Get("test:locations:seq")
	require.NoError(t, err)
	assert.Equal(t, "1", seq)

	score, err := mr.ZScore("test:locations", memberFor(loc.ID))
	require.NoError(t, err)
	assert.Equal(t, float64(baseTime.UnixMicro()), score)
}

func TestRedisLocationRepo_DefaultPrefix(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	repo := NewRedisLocationRepository(client, "", 0)
	assert.Equal(t, "gps:locations", repo.indexKey)
	assert.Equal(t, "gps:locations:data", repo.dataKey)
	assert.Equal(t, "gps:locations:seq", repo.seqKey)
}

func TestRedisLocationRepo_MissingPayloadIsSkipped(t *testing.T) {
	repo, mr := setupRedisRepo(t)
	ctx := context.Background()

	first, err := repo.Append(ctx, 1, 1, baseTime)
	require.NoError(t, err)
	_, err = repo.Append(ctx, 2, 2, baseTime.Add(time.Second))
	require.NoError(t, err)

	mr.HDel("test:locations:data", memberFor(first.ID))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 2.0, all[0].Latitude)
}

func TestRedisLocationRepo_CorruptPayload(t *testing.T) {
	repo, mr := setupRedisRepo(t)
	ctx := context.Background()

	loc, err := repo.Append(ctx, 1, 1, baseTime)
	require.NoError(t, err)
	mr.HSet("test:locations:data", memberFor(loc.ID), "not-json")

	_, err = repo.Latest(ctx)
	assert.True(t, location.IsStorage(err))
	assert.ErrorIs(t, err, location.ErrCorruptRecord)
	assert.False(t, location.IsRetryable(err))
}

func TestRedisLocationRepo_ServerDown(t *testing.T) {
	repo, mr := setupRedisRepo(t)
	mr.Close()
	ctx := context.Background()

	_, err := repo.Append(ctx, 1, 1, time.Time{})
	assert.True(t, location.IsStorage(err))

	_, err = repo.Latest(ctx)
	assert.True(t, location.IsStorage(err))

	_, err = repo.Trim(ctx, 10)
	assert.True(t, location.IsStorage(err))
}

func TestMemberFor(t *testing.T) {
	assert.Equal(t, "00000000000000000042", memberFor(42))
	assert.Less(t, memberFor(9), memberFor(10))
}
