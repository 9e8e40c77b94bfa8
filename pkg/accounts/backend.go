package accounts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/janrain/pkg/logger"
	"github.com/dmitrymomot/janrain/pkg/profile"
)

// Backend finds or creates the local user for a Janrain profile.
type Backend struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the backend logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Backend) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBackend creates a Backend on top of store.
func NewBackend(store Store, opts ...Option) *Backend {
	b := &Backend{
		store:  store,
		logger: logger.NewNope(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Authenticate returns the user for raw, an Engage auth_info payload or a
// Capture entity. A user is looked up by the local key of the provider
// identifier and created when missing. Existing users are returned as stored;
// their names and email are not refreshed.
func (b *Backend) Authenticate(ctx context.Context, raw map[string]any) (*User, error) {
	id, err := profile.Normalize(raw)
	if err != nil {
		return nil, err
	}

	u, err := b.FindUser(ctx, id.LocalKey())
	if err != nil {
		return nil, err
	}
	if u != nil {
		b.logger.DebugContext(ctx, "janrain user found",
			slog.String("user_id", u.ID),
			slog.String("kind", string(id.Kind)),
		)
		return u, nil
	}

	return b.CreateUser(ctx, id)
}

// FindUser looks a user up by local key. A missing user yields (nil, nil).
func (b *Backend) FindUser(ctx context.Context, key string) (*User, error) {
	u, err := b.store.FindByUsername(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("accounts: find user: %w", err)
	}
	return u, nil
}

// CreateUser stores a new active, non-staff user for id with an unusable
// password. Names and email are stored exactly as normalized; escaping is
// left to whatever renders them. Store failures, including ErrDuplicateUser,
// are returned as is.
func (b *Backend) CreateUser(ctx context.Context, id profile.Identity) (*User, error) {
	given, family := id.Names()
	u := &User{
		ID:          uuid.NewString(),
		Username:    id.LocalKey(),
		FirstName:   given,
		LastName:    family,
		Email:       id.Email,
		IsActive:    true,
		IsStaff:     false,
		IsSuperuser: false,
		CreatedAt:   b.now().UTC(),
	}
	u.SetUnusablePassword()

	if err := b.store.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("accounts: create user: %w", err)
	}

	b.logger.InfoContext(ctx, "janrain user created",
		slog.String("user_id", u.ID),
		slog.String("kind", string(id.Kind)),
	)
	return u, nil
}
