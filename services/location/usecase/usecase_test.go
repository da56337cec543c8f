package usecase

import (
	"time"

	"github.com/piresc/gpstracker/internal/pkg/retry"
	"github.com/piresc/gpstracker/services/location"
)

func newTestRetrier() *retry.Retrier {
	return retry.New(retry.Config{
		MaxRetries:    2,
		BaseDelay:     time.Millisecond,
		MaxDelay:      time.Millisecond,
		Multiplier:    1,
		RetryableFunc: location.IsRetryable,
	}, nil)
}
