// Package pgstore is a PostgreSQL accounts.Store.
package pgstore

import (
	"context"
	"embed"
	"errors"
	"io/fs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/janrain/pkg/accounts"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrations returns the schema migrations rooted at the migrations directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

const uniqueViolation = "23505"

const selectUser = `SELECT id, username, first_name, last_name, email, password,
	is_active, is_staff, is_superuser, created_at
FROM users WHERE username = $1`

const insertUser = `INSERT INTO users (id, username, first_name, last_name, email, password,
	is_active, is_staff, is_superuser, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

// Store implements accounts.Store on a pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

var _ accounts.Store = (*Store)(nil)

// New creates a Store.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) FindByUsername(ctx context.Context, username string) (*accounts.User, error) {
	var u accounts.User
	err := s.pool.QueryRow(ctx, selectUser, username).Scan(
		&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.Password,
		&u.IsActive, &u.IsStaff, &u.IsSuperuser, &u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, accounts.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) Create(ctx context.Context, u *accounts.User) error {
	if u == nil || u.ID == "" || u.Username == "" {
		return accounts.ErrInvalidUser
	}

	_, err := s.pool.Exec(ctx, insertUser,
		u.ID, u.Username, u.FirstName, u.LastName, u.Email, u.Password,
		u.IsActive, u.IsStaff, u.IsSuperuser, u.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return errors.Join(accounts.ErrDuplicateUser, err)
	}
	return err
}
