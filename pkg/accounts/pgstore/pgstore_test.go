//go:build integration

package pgstore_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/janrain/pkg/accounts"
	"github.com/dmitrymomot/janrain/pkg/accounts/pgstore"
	"github.com/dmitrymomot/janrain/pkg/db"
	"github.com/dmitrymomot/janrain/pkg/logger"
)

func TestStore(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.Connect(ctx, db.Config{URL: url, RetryAttempts: 1, RetryInterval: time.Second})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, db.Migrate(ctx, pool, pgstore.Migrations(), "janrain_migrations_test", logger.NewNope()))

	store := pgstore.New(pool)
	username := uuid.NewString()[:30]

	_, err = store.FindByUsername(ctx, username)
	require.ErrorIs(t, err, accounts.ErrNotFound)

	u := &accounts.User{
		ID:        uuid.NewString(),
		Username:  username,
		FirstName: "A",
		LastName:  "B",
		Email:     "a@b.com",
		Password:  accounts.UnusablePassword(),
		IsActive:  true,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, store.Create(ctx, u))

	got, err := store.FindByUsername(ctx, username)
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, "A", got.FirstName)
	require.False(t, got.HasUsablePassword())
	require.True(t, u.CreatedAt.Equal(got.CreatedAt))

	dup := *u
	dup.ID = uuid.NewString()
	require.ErrorIs(t, store.Create(ctx, &dup), accounts.ErrDuplicateUser)

	long := &accounts.User{
		ID:        uuid.NewString(),
		Username:  uuid.NewString()[:30],
		FirstName: strings.Repeat("n", 500),
		LastName:  strings.Repeat("s", 1000),
		Email:     strings.Repeat("e", 300) + "@example.com",
		Password:  accounts.UnusablePassword(),
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Create(ctx, long))

	got, err = store.FindByUsername(ctx, long.Username)
	require.NoError(t, err)
	require.Equal(t, long.FirstName, got.FirstName)
	require.Equal(t, long.LastName, got.LastName)
	require.Equal(t, long.Email, got.Email)
}
