package janrain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/janrain/pkg/logger"
)

const apiKeyParam = "apiKey"

// Params holds request parameters. They are sent in the query string for GET
// requests and as a form-encoded body for POST requests.
type Params map[string]string

// Client talks to the Janrain Engage and Capture REST APIs.
// It holds no mutable state and is safe for concurrent use.
type Client struct {
	baseURL      *url.URL
	httpClient   *http.Client
	logger       *slog.Logger
	apiKey       string
	clientID     string
	clientSecret string
}

// New creates a Janrain API client.
// Returns ErrMissingAPIKey if cfg.APIKey is empty.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	// Relative paths are resolved against the base, so it must end with a slash
	// or the last segment (e.g. "v2") would be replaced.
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}

	base, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.Join(ErrInvalidEndpoint, err)
	}
	if !base.IsAbs() {
		return nil, errors.Join(ErrInvalidEndpoint, fmt.Errorf("endpoint %q is not absolute", endpoint))
	}

	o := options{
		httpClient: http.DefaultClient,
		logger:     logger.NewNope(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Client{
		baseURL:      base,
		httpClient:   o.httpClient,
		logger:       o.logger,
		apiKey:       cfg.APIKey,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
	}, nil
}

// Endpoint returns the API base URL.
func (c *Client) Endpoint() string {
	return c.baseURL.String()
}

// Request sends a GET or POST request to path (relative to the API base URL)
// and returns the decoded JSON body.
//
// The API key is added to the parameters as "apiKey" unless data already
// contains that key. The data map is not modified.
// Method is case-insensitive; anything other than get/post fails with
// ErrInvalidMethod before any network call. Connection failures and non-JSON
// bodies fail with ErrTransport. Nothing is retried.
func (c *Client) Request(ctx context.Context, method, path string, data Params, headers map[string]string) (any, error) {
	method = strings.ToUpper(strings.TrimSpace(method))
	if method != http.MethodGet && method != http.MethodPost {
		return nil, errors.Join(ErrInvalidMethod, fmt.Errorf("method %q is not supported", method))
	}

	ref, err := url.Parse(path)
	if err != nil || ref.IsAbs() {
		return nil, errors.Join(ErrInvalidPath, fmt.Errorf("path %q", path))
	}
	target := c.baseURL.ResolveReference(ref)
	params := c.params(data)

	var body io.Reader
	if method == http.MethodGet {
		q := target.Query()
		for k, v := range params {
			q[k] = v
		}
		target.RawQuery = q.Encode()
	} else {
		body = strings.NewReader(params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, errors.Join(ErrTransport, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Join(ErrTransport, fmt.Errorf("%s %s: %w", method, path, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Join(ErrTransport, fmt.Errorf("read %s response: %w", path, err))
	}

	c.logger.DebugContext(ctx, "janrain api request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errors.Join(ErrTransport, fmt.Errorf("decode %s response (status=%d): %w", path, resp.StatusCode, err))
	}

	return out, nil
}

// params copies data into url.Values and adds the API key unless the caller set one.
func (c *Client) params(data Params) url.Values {
	v := make(url.Values, len(data)+1)
	for k, val := range data {
		v.Set(k, val)
	}
	if _, ok := data[apiKeyParam]; !ok {
		v.Set(apiKeyParam, c.apiKey)
	}
	return v
}

// call performs a request that must return a JSON object and converts
// provider-reported failures into *APIError.
func (c *Client) call(ctx context.Context, method, path string, data Params, headers map[string]string) (Response, error) {
	out, err := c.Request(ctx, method, path, data, headers)
	if err != nil {
		return nil, err
	}

	obj, ok := out.(map[string]any)
	if !ok {
		return nil, errors.Join(ErrUnexpectedResponse, fmt.Errorf("%s: expected JSON object, got %T", path, out))
	}

	resp := Response(obj)
	if err := resp.check(path); err != nil {
		return resp, err
	}
	return resp, nil
}

func (c *Client) hasClientCredentials() bool {
	return c.clientID != "" && c.clientSecret != ""
}

// clientParams returns a parameter set seeded with the Capture client credentials.
func (c *Client) clientParams(op string) (Params, error) {
	if !c.hasClientCredentials() {
		return nil, errors.Join(ErrAmbiguousInvocation, fmt.Errorf("%s requires client_id and client_secret", op))
	}
	return Params{
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
	}, nil
}

func encodeJSON(op string, v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("janrain: encode %s: %w", op, err)
	}
	return string(b), nil
}
