package location

import (
	"context"
	"time"

	"github.com/piresc/gpstracker/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/gpstracker/services/location LocationRepo

// LocationRepo defines the bounded, ordered location store.
// Implementations must be safe for concurrent use.
type LocationRepo interface {
	// Append stores a new record. A zero recordedAt means now.
	Append(ctx context.Context, latitude, longitude float64, recordedAt time.Time) (*models.Location, error)

	// Latest returns the newest record, or ErrNoData when the store is empty
	Latest(ctx context.Context) (*models.Location, error)

	// All returns every retained record, newest first
	All(ctx context.Context) ([]*models.Location, error)

	// Trim evicts the oldest records so that at most cap remain and returns how many were removed
	Trim(ctx context.Context, cap int) (int64, error)

	// Count returns the number of retained records
	Count(ctx context.Context) (int64, error)

	Close() error
}
