package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lr2immich/core/immich"

	"go.uber.org/zap"
)

// withRetry runs fn up to attempts times with exponential backoff
// between tries. Only immich.ErrUnavailable failures are retried;
// auth rejections and other errors return immediately.
func withRetry(ctx context.Context, logger *zap.Logger, attempts int, delay time.Duration, op string, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err = fn()
		if err == nil {
			return nil
		}
		if !errors.Is(err, immich.ErrUnavailable) {
			return err
		}
		if attempt == attempts {
			break
		}
		logger.Warn("retrying "+op,
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		delay *= 2
	}
	return fmt.Errorf("%s failed after %d attempts: %w", op, attempts, err)
}
