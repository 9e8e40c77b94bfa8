// Package db opens and migrates the PostgreSQL pool behind the user store.
//
// [Connect] builds a [github.com/jackc/pgx/v5/pgxpool] pool from [Config],
// retrying the initial ping. [Migrate] applies embedded
// [github.com/pressly/goose/v3] migrations. [Healthcheck] adapts the pool to
// a readiness probe.
package db
