package db

import "errors"

var (
	ErrInvalidURL         = errors.New("db: invalid database url")
	ErrConnectionFailed   = errors.New("db: failed to connect")
	ErrHealthcheckFailed  = errors.New("db: healthcheck failed")
	ErrMigrationsFailed   = errors.New("db: failed to apply migrations")
)
