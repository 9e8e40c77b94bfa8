//go:build integration

package redisstore_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/janrain/pkg/accounts"
	"github.com/dmitrymomot/janrain/pkg/accounts/redisstore"
	"github.com/dmitrymomot/janrain/pkg/redis"
)

func TestStore(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := redis.Open(ctx, redis.Config{URL: url, RetryAttempts: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	prefix := "janrain-test:" + uuid.NewString() + ":"
	store := redisstore.New(client, prefix)

	_, err = store.FindByUsername(ctx, "missing")
	require.ErrorIs(t, err, accounts.ErrNotFound)

	u := &accounts.User{ID: uuid.NewString(), Username: "key-1", FirstName: "A", Password: accounts.UnusablePassword()}
	require.NoError(t, store.Create(ctx, u))
	t.Cleanup(func() { client.Del(context.Background(), prefix+"user:key-1") })

	got, err := store.FindByUsername(ctx, "key-1")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, "A", got.FirstName)

	require.ErrorIs(t, store.Create(ctx, u), accounts.ErrDuplicateUser)
}
