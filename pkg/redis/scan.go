package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// ScanKeys lists the keys matching pattern with SCAN, never KEYS, so large
// databases are walked without blocking the server. batch is the COUNT hint.
func ScanKeys(ctx context.Context, client redis.UniversalClient, pattern string, batch int64) ([]string, error) {
	if batch <= 0 {
		batch = 500
	}
	var (
		keys   []string
		cursor uint64
	)
	for {
		page, next, err := client.Scan(ctx, cursor, pattern, batch).Result()
		if err != nil {
			return nil, errors.Join(ErrScanFailed, err)
		}
		keys = append(keys, page...)
		if next == 0 {
			return keys, nil
		}
		cursor = next
	}
}

// DeleteMatching removes every key matching pattern and returns how many were
// deleted.
func DeleteMatching(ctx context.Context, client redis.UniversalClient, pattern string, batch int64) (int64, error) {
	keys, err := ScanKeys(ctx, client, pattern, batch)
	if err != nil {
		return 0, err
	}
	var deleted int64
	for start := 0; start < len(keys); start += int(max(batch, 1)) {
		end := min(start+int(max(batch, 1)), len(keys))
		n, err := client.Del(ctx, keys[start:end]...).Result()
		if err != nil {
			return deleted, err
		}
		deleted += n
	}
	return deleted, nil
}
