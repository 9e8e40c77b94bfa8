// Package redis opens the go-redis client used by the Redis user store
// and exposes its readiness probe.
package redis
