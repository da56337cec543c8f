package usecase

import (
	"context"
	"errors"

	"github.com/piresc/gpstracker/internal/pkg/logger"
	"github.com/piresc/gpstracker/internal/pkg/models"
	"github.com/piresc/gpstracker/internal/pkg/retry"
	"github.com/piresc/gpstracker/services/location"
)

// QueryUC implements the location.QueryUC interface
type QueryUC struct {
	repo    location.LocationRepo
	retrier *retry.Retrier
}

// NewQueryUC creates a new query use case whose reads are retried on storage failures
func NewQueryUC(repo location.LocationRepo, retrier *retry.Retrier) location.QueryUC {
	if retrier == nil {
		retrier = NewStorageRetrier(nil)
	}
	return &QueryUC{
		repo:    repo,
		retrier: retrier,
	}
}

// NewStorageRetrier returns a retrier for transient storage failures.
// Corrupt records are not retried.
func NewStorageRetrier(log *logger.ZapLogger) *retry.Retrier {
	cfg := retry.DefaultConfig()
	cfg.RetryableFunc = location.IsRetryable
	return retry.New(cfg, log)
}

// GetLatest returns the newest location, or the zero placeholder when nothing is stored
func (uc *QueryUC) GetLatest(ctx context.Context) (*models.Location, error) {
	loc, err := retry.Value(ctx, uc.retrier, uc.repo.Latest)
	if errors.Is(err, location.ErrNoData) {
		return models.PlaceholderLocation(), nil
	}
	if err != nil {
		return nil, err
	}
	return loc, nil
}

// GetHistory returns every retained location, newest first
func (uc *QueryUC) GetHistory(ctx context.Context) ([]*models.Location, error) {
	return retry.Value(ctx, uc.retrier, uc.repo.All)
}

// Count returns the number of retained locations
func (uc *QueryUC) Count(ctx context.Context) (int64, error) {
	return retry.Value(ctx, uc.retrier, uc.repo.Count)
}
