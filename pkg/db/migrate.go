package db

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
)

// Migrate applies every pending goose migration found at the root of migrations.
func Migrate(ctx context.Context, pool *pgxpool.Pool, migrations fs.FS, table string, log *slog.Logger) error {
	// The sql.DB shares the pool's connections and must not be closed.
	sqlDB := stdlib.OpenDBFromPool(pool)

	if table == "" {
		table = "goose_db_version"
	}
	store, err := database.NewStore(database.DialectPostgres, table)
	if err != nil {
		return errors.Join(ErrMigrationsFailed, err)
	}

	provider, err := goose.NewProvider("", sqlDB, migrations, goose.WithStore(store))
	if err != nil {
		return errors.Join(ErrMigrationsFailed, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return errors.Join(ErrMigrationsFailed, err)
	}
	for _, r := range results {
		log.InfoContext(ctx, "migration applied",
			slog.Int64("version", r.Source.Version),
			slog.Duration("duration", r.Duration),
		)
	}
	return nil
}
