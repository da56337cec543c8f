package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/piresc/gpstracker/internal/pkg/database"
	"github.com/piresc/gpstracker/internal/pkg/models"
	"github.com/piresc/gpstracker/services/location"
)

// Store drivers accepted in STORE_DRIVER
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
)

// Migrator is implemented by stores that need a schema
type Migrator interface {
	Migrate(ctx context.Context) error
}

// NewLocationRepository connects to the configured backing store and prepares it for use
func NewLocationRepository(ctx context.Context, cfg *models.Config) (location.LocationRepo, error) {
	var repo location.LocationRepo

	switch cfg.Store.Driver {
	case DriverPostgres, "":
		client, err := database.NewPostgresClient(cfg.Database)
		if err != nil {
			return nil, err
		}
		repo = NewSQLLocationRepository(client.GetDB(), DialectPostgres, cfg.Store.Timeout)
	case DriverSQLite:
		db, err := database.NewSQLiteDB(cfg.SQLite)
		if err != nil {
			return nil, err
		}
		repo = NewSQLLocationRepository(db, DialectSQLite, cfg.Store.Timeout)
	case DriverRedis:
		client, err := database.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, err
		}
		repo = NewRedisLocationRepository(client.GetClient(), cfg.Redis.KeyPrefix, cfg.Store.Timeout)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	if m, ok := repo.(Migrator); ok {
		if err := m.Migrate(ctx); err != nil {
			repo.Close()
			return nil, fmt.Errorf("failed to migrate %s store: %w", cfg.Store.Driver, err)
		}
	}
	return repo, nil
}

// checkStorable rejects timestamps whose year does not fit the stores' four-digit layout
func checkStorable(t time.Time) error {
	if !models.StorableTime(t) {
		return &location.ValidationError{Field: "timestamp", Reason: "must be between years 0001 and 9999"}
	}
	return nil
}
