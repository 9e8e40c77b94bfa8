// Package redisstore is a Redis accounts.Store keeping one JSON document per user.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/janrain/pkg/accounts"
)

// Store implements accounts.Store on go-redis.
type Store struct {
	client redis.UniversalClient
	prefix string
}

var _ accounts.Store = (*Store)(nil)

// New creates a Store. Keys are "<prefix>user:<username>".
func New(client redis.UniversalClient, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(username string) string {
	return s.prefix + "user:" + username
}

func (s *Store) FindByUsername(ctx context.Context, username string) (*accounts.User, error) {
	data, err := s.client.Get(ctx, s.key(username)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, accounts.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var u accounts.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create writes u only if its key is free.
func (s *Store) Create(ctx context.Context, u *accounts.User) error {
	if u == nil || u.ID == "" || u.Username == "" {
		return accounts.ErrInvalidUser
	}

	data, err := json.Marshal(u)
	if err != nil {
		return err
	}

	ok, err := s.client.SetNX(ctx, s.key(u.Username), data, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return accounts.ErrDuplicateUser
	}
	return nil
}
