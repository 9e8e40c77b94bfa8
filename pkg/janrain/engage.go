package janrain

import (
	"context"
	"errors"
	"net/http"
	"strconv"
)

// AuthInfo exchanges an Engage sign-in token for the user's auth info.
// A successful payload has stat "ok" and a nested "profile" object.
func (c *Client) AuthInfo(ctx context.Context, token string) (Response, error) {
	if token == "" {
		return nil, errors.Join(ErrAmbiguousInvocation, errors.New("auth_info requires a token"))
	}
	return c.call(ctx, http.MethodGet, "auth_info", Params{"token": token}, nil)
}

// Map associates an Engage identifier with a primary key in the application.
func (c *Client) Map(ctx context.Context, identifier, primaryKey string, overwrite bool) (Response, error) {
	return c.call(ctx, http.MethodPost, "map", Params{
		"identifier": identifier,
		"primaryKey": primaryKey,
		"overwrite":  strconv.FormatBool(overwrite),
	}, nil)
}
