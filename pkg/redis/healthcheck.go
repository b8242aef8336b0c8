package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Healthcheck returns a probe that pings client. A positive timeout bounds
// each probe on top of the caller's context.
func Healthcheck(client redis.UniversalClient, timeout time.Duration) func(context.Context) error {
	return func(ctx context.Context) error {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		pong, err := client.Ping(ctx).Result()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrHealthcheckFailed, err)
		}
		if pong != "PONG" {
			return fmt.Errorf("%w: unexpected reply %q", ErrHealthcheckFailed, pong)
		}
		return nil
	}
}
