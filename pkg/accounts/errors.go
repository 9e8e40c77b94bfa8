package accounts

import "errors"

var (
	// ErrNotFound is returned by a Store when no user has the requested username.
	ErrNotFound = errors.New("accounts: user not found")

	// ErrDuplicateUser is returned by a Store when the username is already taken.
	ErrDuplicateUser = errors.New("accounts: username already exists")

	// ErrInvalidUser is returned when a user is missing its ID or username.
	ErrInvalidUser = errors.New("accounts: invalid user")
)
