package redis

import "errors"

var (
	ErrEmptyURL          = errors.New("redis: empty connection url")
	ErrInvalidURL        = errors.New("redis: invalid connection url")
	ErrConnectionFailed  = errors.New("redis: failed to connect")
	ErrHealthcheckFailed = errors.New("redis: healthcheck failed")
)
