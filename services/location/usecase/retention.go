package usecase

import (
	"context"
	"time"

	"github.com/piresc/gpstracker/internal/pkg/logger"
	"github.com/piresc/gpstracker/internal/pkg/retry"
	"github.com/piresc/gpstracker/services/location"
	"github.com/piresc/gpstracker/services/location/retention"
)

// RetentionUC implements the location.RetentionUC interface
type RetentionUC struct {
	repo       location.LocationRepo
	defaultCap int
	retrier    *retry.Retrier
	logger     *logger.ZapLogger
}

// NewRetentionUC creates a new retention use case.
// A negative defaultCap falls back to retention.DefaultCap.
func NewRetentionUC(repo location.LocationRepo, defaultCap int, retrier *retry.Retrier, log *logger.ZapLogger) location.RetentionUC {
	if defaultCap < 0 {
		defaultCap = retention.DefaultCap
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	if retrier == nil {
		retrier = NewStorageRetrier(log)
	}
	return &RetentionUC{
		repo:       repo,
		defaultCap: defaultCap,
		retrier:    retrier,
		logger:     log,
	}
}

// DefaultCap returns the configured retention cap
func (uc *RetentionUC) DefaultCap() int {
	return uc.defaultCap
}

// Cleanup trims the store to cap records.
// Trim is idempotent for a fixed cap so storage failures are retried.
func (uc *RetentionUC) Cleanup(ctx context.Context, cap int) (int64, error) {
	deleted, err := retry.Value(ctx, uc.retrier, func(ctx context.Context) (int64, error) {
		return uc.repo.Trim(ctx, cap)
	})
	if err != nil {
		uc.logger.Error("Retention cleanup failed", logger.Int("cap", cap), logger.Err(err))
		return 0, err
	}

	if deleted > 0 {
		uc.logger.Info("Retention cleanup evicted old locations",
			logger.Int64("deleted", deleted),
			logger.Int("cap", cap))
	}
	return deleted, nil
}

// Run calls Cleanup with the default cap every interval until ctx is done.
// A non-positive interval returns immediately.
func (uc *RetentionUC) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	uc.logger.Info("Retention job started",
		logger.Duration("interval", interval),
		logger.Int("cap", uc.defaultCap))

	for {
		select {
		case <-ctx.Done():
			uc.logger.Info("Retention job stopped")
			return
		case <-ticker.C:
			// errors are logged by Cleanup
			_, _ = uc.Cleanup(ctx, uc.defaultCap)
		}
	}
}
