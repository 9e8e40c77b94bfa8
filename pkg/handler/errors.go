package handler

import "errors"

var (
	ErrNoSession   = errors.New("handler: no session")
	ErrMissingUser = errors.New("handler: authenticator returned no user")
)
