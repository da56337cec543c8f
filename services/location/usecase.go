package location

import (
	"context"
	"time"

	"github.com/piresc/gpstracker/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/gpstracker/services/location IngestUC,QueryUC,RetentionUC

// IngestUC validates device reports and records them
type IngestUC interface {
	Report(ctx context.Context, req models.ReportRequest) (*models.Location, error)
}

// QueryUC serves the latest position and the retained trail
type QueryUC interface {
	GetLatest(ctx context.Context) (*models.Location, error)
	GetHistory(ctx context.Context) ([]*models.Location, error)
	Count(ctx context.Context) (int64, error)
}

// RetentionUC enforces the retention cap
type RetentionUC interface {
	// Cleanup trims the store down to cap records and returns how many were evicted
	Cleanup(ctx context.Context, cap int) (int64, error)
	DefaultCap() int
	// Run calls Cleanup every interval until ctx is done
	Run(ctx context.Context, interval time.Duration)
}
