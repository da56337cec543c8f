package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/piresc/gpstracker/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocationRepository_SQLite(t *testing.T) {
	cfg := &models.Config{
		Store:  models.StoreConfig{Driver: DriverSQLite, Timeout: time.Second},
		SQLite: models.SQLiteConfig{Path: filepath.Join(t.TempDir(), "tracker.db")},
	}

	repo, err := NewLocationRepository(context.Background(), cfg)
	require.NoError(t, err)
	defer repo.Close()

	assert.IsType(t, &SQLLocationRepo{}, repo)

	_, err = repo.Append(context.Background(), 1, 2, time.Time{})
	require.NoError(t, err)
	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestNewLocationRepository_Redis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cfg := &models.Config{
		Store: models.StoreConfig{Driver: DriverRedis, Timeout: time.Second},
		Redis: models.RedisConfig{Host: mr.Host(), Port: mr.Server().Addr().Port, KeyPrefix: "factory"},
	}

	repo, err := NewLocationRepository(context.Background(), cfg)
	require.NoError(t, err)
	defer repo.Close()

	assert.IsType(t, &RedisLocationRepo{}, repo)
}

func TestNewLocationRepository_PostgresWithoutURL(t *testing.T) {
	cfg := &models.Config{Store: models.StoreConfig{Driver: DriverPostgres}}

	repo, err := NewLocationRepository(context.Background(), cfg)
	assert.Error(t, err)
	assert.Nil(t, repo)
}

func TestNewLocationRepository_UnknownDriver(t *testing.T) {
	cfg := &models.Config{Store: models.StoreConfig{Driver: "mongo"}}

	repo, err := NewLocationRepository(context.Background(), cfg)
	assert.EqualError(t, err, `unknown store driver "mongo"`)
	assert.Nil(t, repo)
}
