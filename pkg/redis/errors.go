package redis

import "errors"

var (
	ErrFailedToParseRedisConnString = errors.New("invalid redis connection url")
	ErrRedisNotReady                = errors.New("redis server not ready")
	ErrEmptyConnectionURL           = errors.New("redis connection url is empty")
	ErrHealthcheckFailed            = errors.New("redis healthcheck failed")
	ErrScanFailed                   = errors.New("redis key scan failed")
)
