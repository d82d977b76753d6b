package actor

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// retryConstant calls op until it succeeds, returns a permanent error or ctx
// is done, waiting interval between attempts.
func retryConstant(ctx context.Context, interval time.Duration, op backoff.Operation, notify backoff.Notify) error {
	b := backoff.WithContext(backoff.NewConstantBackOff(interval), ctx)
	return backoff.RetryNotify(op, b, notify)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
