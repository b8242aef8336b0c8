// Package redis connects to Redis with github.com/redis/go-redis/v9 and adds
// the small helpers the utilkit stores need.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//	client, err := redis.Connect(ctx, cfg, log)
//
// Connect retries the initial ping, Healthcheck wraps a ping for liveness
// probes, and ScanKeys / DeleteMatching walk a key pattern with SCAN.
package redis
