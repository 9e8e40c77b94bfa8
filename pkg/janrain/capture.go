package janrain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mitchellh/mapstructure"
	"golang.org/x/oauth2"
)

// DefaultGrantType is the grant used by OAuthToken unless overridden.
const DefaultGrantType = "authorization_code"

// TokenOption configures an OAuthToken call.
type TokenOption func(*tokenOptions)

type tokenOptions struct {
	grantType string
}

// WithGrantType overrides the OAuth grant type sent to oauth/token.
func WithGrantType(grantType string) TokenOption {
	return func(o *tokenOptions) {
		if grantType != "" {
			o.grantType = grantType
		}
	}
}

// OAuthToken exchanges a Capture authorization code for an access token.
// The full provider payload is available through token.Extra.
// Returns ErrAmbiguousInvocation if the client has no client credentials.
func (c *Client) OAuthToken(ctx context.Context, code, redirectURI string, opts ...TokenOption) (*oauth2.Token, error) {
	o := tokenOptions{grantType: DefaultGrantType}
	for _, opt := range opts {
		opt(&o)
	}

	params, err := c.clientParams("oauth/token")
	if err != nil {
		return nil, err
	}
	params["code"] = code
	params["redirect_uri"] = redirectURI
	params["grant_type"] = o.grantType

	resp, err := c.call(ctx, http.MethodPost, "oauth/token", params, nil)
	if err != nil {
		return nil, err
	}

	access := scalar(resp["access_token"])
	if access == "" {
		return nil, errors.Join(ErrUnexpectedResponse, errors.New("oauth/token: missing access_token"))
	}

	token := &oauth2.Token{
		AccessToken:  access,
		RefreshToken: scalar(resp["refresh_token"]),
		TokenType:    scalar(resp["token_type"]),
	}
	if secs, ok := resp["expires_in"].(float64); ok && secs > 0 {
		token.Expiry = time.Now().Add(time.Duration(secs) * time.Second)
	}
	return token.WithExtra(map[string]any(resp)), nil
}

// EntityQuery selects how an entity is fetched: either with a user's
// access token, or by UUID and entity type using the client credentials.
type EntityQuery struct {
	AccessToken string
	UUID        string
	TypeName    string
}

// EntityResult is a successful entity response.
type EntityResult struct {
	Result map[string]any // the Capture entity (flat profile)
	Stat   string
}

// Entity fetches the entity that owns accessToken.
func (c *Client) Entity(ctx context.Context, accessToken string) (*EntityResult, error) {
	return c.FindEntity(ctx, EntityQuery{AccessToken: accessToken})
}

// FindEntity fetches a Capture entity.
// An access token takes precedence; otherwise UUID, TypeName and client
// credentials are all required, else ErrAmbiguousInvocation is returned.
func (c *Client) FindEntity(ctx context.Context, q EntityQuery) (*EntityResult, error) {
	var (
		resp Response
		err  error
	)

	switch {
	case q.AccessToken != "":
		resp, err = c.call(ctx, http.MethodGet, "entity", nil, map[string]string{
			"Authorization": "OAuth " + q.AccessToken,
		})
	case q.UUID != "" && q.TypeName != "" && c.hasClientCredentials():
		params, _ := c.clientParams("entity")
		params["type_name"] = q.TypeName
		params["uuid"] = q.UUID
		resp, err = c.call(ctx, http.MethodPost, "entity", params, nil)
	default:
		return nil, errors.Join(ErrAmbiguousInvocation,
			errors.New("entity needs either an access token or uuid, type_name and client credentials"))
	}
	if err != nil {
		return nil, err
	}

	result, ok := resp.Object("result")
	if !ok {
		return nil, errors.Join(ErrUnexpectedResponse, errors.New("entity: missing result object"))
	}
	return &EntityResult{Stat: resp.Stat(), Result: result}, nil
}

// EntityUpdate applies a partial update to the entity identified by uuid.
func (c *Client) EntityUpdate(ctx context.Context, uuid, typeName string, update map[string]any) (Response, error) {
	params, err := c.clientParams("entity.update")
	if err != nil {
		return nil, err
	}
	value, err := encodeJSON("entity update", update)
	if err != nil {
		return nil, err
	}
	params["type_name"] = typeName
	params["uuid"] = uuid
	params["value"] = value

	return c.call(ctx, http.MethodPost, "entity.update", params, nil)
}

// APIClient is a Capture API client as returned by clients/list.
type APIClient struct {
	ClientID     string   `mapstructure:"client_id" json:"client_id"`
	ClientSecret string   `mapstructure:"client_secret" json:"client_secret"`
	Description  string   `mapstructure:"description" json:"description"`
	Features     []string `mapstructure:"features" json:"features"`
}

// ClientsList lists the application's API clients, optionally filtered to
// those having all of hasFeatures.
func (c *Client) ClientsList(ctx context.Context, hasFeatures ...string) ([]APIClient, error) {
	params, err := c.clientParams("clients/list")
	if err != nil {
		return nil, err
	}
	if len(hasFeatures) > 0 {
		features, err := encodeJSON("features", hasFeatures)
		if err != nil {
			return nil, err
		}
		params["has_features"] = features
	}

	resp, err := c.call(ctx, http.MethodPost, "clients/list", params, nil)
	if err != nil {
		return nil, err
	}

	var clients []APIClient
	if err := mapstructure.WeakDecode(resp["results"], &clients); err != nil {
		return nil, errors.Join(ErrUnexpectedResponse, fmt.Errorf("clients/list: %w", err))
	}
	return clients, nil
}

// ClientsAdd creates a new API client with the given description and features.
// The returned response carries the new client_id and client_secret.
func (c *Client) ClientsAdd(ctx context.Context, description string, features ...string) (Response, error) {
	params, err := c.clientParams("clients/add")
	if err != nil {
		return nil, err
	}
	params["description"] = description
	if len(features) > 0 {
		encoded, err := encodeJSON("features", features)
		if err != nil {
			return nil, err
		}
		params["features"] = encoded
	}
	return c.call(ctx, http.MethodPost, "clients/add", params, nil)
}

// ClientsDelete removes an API client.
func (c *Client) ClientsDelete(ctx context.Context, clientIDToDelete string) (Response, error) {
	params, err := c.clientParams("clients/delete")
	if err != nil {
		return nil, err
	}
	params["client_id_for_deletion"] = clientIDToDelete
	return c.call(ctx, http.MethodPost, "clients/delete", params, nil)
}

// SettingsSetMulti sets several application settings at once.
// If forClientID is non-empty the settings are scoped to that client.
func (c *Client) SettingsSetMulti(ctx context.Context, items map[string]string, forClientID string) (Response, error) {
	params, err := c.clientParams("settings/set_multi")
	if err != nil {
		return nil, err
	}
	encoded, err := encodeJSON("settings", items)
	if err != nil {
		return nil, err
	}
	params["items"] = encoded
	if forClientID != "" {
		params["for_client_id"] = forClientID
	}
	return c.call(ctx, http.MethodPost, "settings/set_multi", params, nil)
}
