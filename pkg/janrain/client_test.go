package janrain_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/janrain/pkg/janrain"
)

// capturedRequest is what the test server saw for the last request.
type capturedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Form   url.Values
	Header http.Header
}

// newTestClient starts a server that records each request and replies with body.
func newTestClient(t *testing.T, cfg janrain.Config, status int, body string) (*janrain.Client, func() capturedRequest, *atomic.Int32) {
	t.Helper()

	var (
		mu    sync.Mutex
		last  capturedRequest
		calls atomic.Int32
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		req := capturedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
		}
		if r.Method == http.MethodPost {
			_ = r.ParseForm()
			req.Form = r.PostForm
		}
		mu.Lock()
		last = req
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)

	if cfg.APIKey == "" {
		cfg.APIKey = "test_key"
	}
	cfg.Endpoint = ts.URL + "/api/v2/"

	c, err := janrain.New(cfg, janrain.WithHTTPClient(ts.Client()))
	require.NoError(t, err)

	got := func() capturedRequest {
		mu.Lock()
		defer mu.Unlock()
		return last
	}
	return c, got, &calls
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("missing api key", func(t *testing.T) {
		t.Parallel()
		c, err := janrain.New(janrain.Config{})
		require.ErrorIs(t, err, janrain.ErrMissingAPIKey)
		require.Nil(t, c)
	})

	t.Run("default endpoint", func(t *testing.T) {
		t.Parallel()
		c, err := janrain.New(janrain.Config{APIKey: "k"})
		require.NoError(t, err)
		require.Equal(t, janrain.DefaultEndpoint, c.Endpoint())
	})

	t.Run("endpoint without trailing slash", func(t *testing.T) {
		t.Parallel()
		c, err := janrain.New(janrain.Config{APIKey: "k", Endpoint: "https://rpxnow.com/api/v2"})
		require.NoError(t, err)
		require.Equal(t, "https://rpxnow.com/api/v2/", c.Endpoint())
	})

	t.Run("relative endpoint", func(t *testing.T) {
		t.Parallel()
		_, err := janrain.New(janrain.Config{APIKey: "k", Endpoint: "api/v2"})
		require.ErrorIs(t, err, janrain.ErrInvalidEndpoint)
	})
}

func TestClient_Request(t *testing.T) {
	t.Parallel()

	t.Run("get sends params in query string", func(t *testing.T) {
		t.Parallel()
		c, got, _ := newTestClient(t, janrain.Config{}, http.StatusOK, `{"hello":"there"}`)

		out, err := c.Request(context.Background(), "get", "path", janrain.Params{"ohno": "youdidnt"}, nil)
		require.NoError(t, err)
		require.Equal(t, map[string]any{"hello": "there"}, out)

		require.Equal(t, http.MethodGet, got().Method)
		require.Equal(t, "/api/v2/path", got().Path)
		require.Equal(t, "youdidnt", got().Query.Get("ohno"))
		require.Equal(t, "test_key", got().Query.Get("apiKey"))
	})

	t.Run("post sends params in body", func(t *testing.T) {
		t.Parallel()
		c, got, _ := newTestClient(t, janrain.Config{}, http.StatusOK, `{"you":"guys"}`)

		out, err := c.Request(context.Background(), "post", "path", janrain.Params{"ohno": "youdidnt"}, nil)
		require.NoError(t, err)
		require.Equal(t, map[string]any{"you": "guys"}, out)

		require.Equal(t, http.MethodPost, got().Method)
		require.Empty(t, got().Query)
		require.Equal(t, "youdidnt", got().Form.Get("ohno"))
		require.Equal(t, "test_key", got().Form.Get("apiKey"))
		require.Equal(t, "application/x-www-form-urlencoded", got().Header.Get("Content-Type"))
	})

	t.Run("method is case-insensitive", func(t *testing.T) {
		t.Parallel()
		c, got, _ := newTestClient(t, janrain.Config{}, http.StatusOK, `{}`)

		_, err := c.Request(context.Background(), "POST", "path", nil, nil)
		require.NoError(t, err)
		require.Equal(t, http.MethodPost, got().Method)
	})

	t.Run("caller supplied api key is preserved", func(t *testing.T) {
		t.Parallel()
		c, got, _ := newTestClient(t, janrain.Config{}, http.StatusOK, `{}`)

		data := janrain.Params{"apiKey": "other_key"}
		_, err := c.Request(context.Background(), "get", "path", data, nil)
		require.NoError(t, err)
		require.Equal(t, []string{"other_key"}, got().Query["apiKey"])
	})

	t.Run("data is not modified", func(t *testing.T) {
		t.Parallel()
		c, _, _ := newTestClient(t, janrain.Config{}, http.StatusOK, `{}`)

		data := janrain.Params{"a": "b"}
		_, err := c.Request(context.Background(), "post", "path", data, nil)
		require.NoError(t, err)
		require.Equal(t, janrain.Params{"a": "b"}, data)
	})

	t.Run("headers are forwarded", func(t *testing.T) {
		t.Parallel()
		c, got, _ := newTestClient(t, janrain.Config{}, http.StatusOK, `{}`)

		_, err := c.Request(context.Background(), "post", "path", janrain.Params{"ohno": "youdidnt"},
			map[string]string{"Authorization": "oauth"})
		require.NoError(t, err)
		require.Equal(t, "oauth", got().Header.Get("Authorization"))
		require.Equal(t, "test_key", got().Form.Get("apiKey"))
	})

	t.Run("non-object json is returned as is", func(t *testing.T) {
		t.Parallel()
		c, _, _ := newTestClient(t, janrain.Config{}, http.StatusOK, `[1,"two"]`)

		out, err := c.Request(context.Background(), "get", "path", nil, nil)
		require.NoError(t, err)
		require.Equal(t, []any{float64(1), "two"}, out)
	})

	t.Run("error status with json body is decoded", func(t *testing.T) {
		t.Parallel()
		c, _, _ := newTestClient(t, janrain.Config{}, http.StatusBadRequest, `{"stat":"fail"}`)

		out, err := c.Request(context.Background(), "get", "path", nil, nil)
		require.NoError(t, err)
		require.Equal(t, map[string]any{"stat": "fail"}, out)
	})
}

func TestClient_Request_InvalidMethod(t *testing.T) {
	t.Parallel()

	c, _, calls := newTestClient(t, janrain.Config{}, http.StatusOK, `{}`)

	for _, method := range []string{"put", "PUT", "delete", "patch", "foobarbaz", ""} {
		for _, path := range []string{"path", "entity", "oauth/token"} {
			_, err := c.Request(context.Background(), method, path, janrain.Params{"x": "y"}, nil)
			require.ErrorIs(t, err, janrain.ErrInvalidMethod, "method=%q path=%q", method, path)
		}
	}
	require.Zero(t, calls.Load(), "no request must reach the server")
}

func TestClient_Request_TransportFailure(t *testing.T) {
	t.Parallel()

	t.Run("non-json body", func(t *testing.T) {
		t.Parallel()
		c, _, _ := newTestClient(t, janrain.Config{}, http.StatusOK, `<html>oops</html>`)

		_, err := c.Request(context.Background(), "get", "path", nil, nil)
		require.ErrorIs(t, err, janrain.ErrTransport)
	})

	t.Run("connection refused", func(t *testing.T) {
		t.Parallel()
		ts := httptest.NewServer(http.NotFoundHandler())
		endpoint := ts.URL
		ts.Close()

		c, err := janrain.New(janrain.Config{APIKey: "k", Endpoint: endpoint})
		require.NoError(t, err)

		_, err = c.Request(context.Background(), "get", "path", nil, nil)
		require.ErrorIs(t, err, janrain.ErrTransport)
	})

	t.Run("absolute path rejected", func(t *testing.T) {
		t.Parallel()
		c, _, calls := newTestClient(t, janrain.Config{}, http.StatusOK, `{}`)

		_, err := c.Request(context.Background(), "get", "https://evil.example.com/x", nil, nil)
		require.ErrorIs(t, err, janrain.ErrInvalidPath)
		require.Zero(t, calls.Load())
	})
}

func TestAPIError(t *testing.T) {
	t.Parallel()

	t.Run("engage failure", func(t *testing.T) {
		t.Parallel()
		c, _, _ := newTestClient(t, janrain.Config{}, http.StatusOK,
			`{"stat":"fail","err":{"code":2,"msg":"Data not found"}}`)

		_, err := c.AuthInfo(context.Background(), "tok")
		require.ErrorIs(t, err, janrain.ErrProvider)

		var apiErr *janrain.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, "auth_info", apiErr.Op)
		require.Equal(t, "fail", apiErr.Stat)
		require.Equal(t, "2", apiErr.Code)
		require.Equal(t, "Data not found", apiErr.Message)
		require.Contains(t, apiErr.Error(), "auth_info returned error response")
	})

	t.Run("capture error field", func(t *testing.T) {
		t.Parallel()
		c, _, _ := newTestClient(t, janrain.Config{ClientID: "id", ClientSecret: "secret"}, http.StatusOK,
			`{"stat":"error","code":200,"error":"invalid_argument","error_description":"bad code"}`)

		_, err := c.OAuthToken(context.Background(), "code", "https://example.com/cb")
		require.ErrorIs(t, err, janrain.ErrProvider)

		var apiErr *janrain.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, "200", apiErr.Code)
		require.Equal(t, "bad code", apiErr.Message)
	})

	t.Run("error field without stat", func(t *testing.T) {
		t.Parallel()
		c, _, _ := newTestClient(t, janrain.Config{ClientID: "id", ClientSecret: "secret"}, http.StatusOK,
			`{"error":"invalid_grant"}`)

		_, err := c.OAuthToken(context.Background(), "code", "https://example.com/cb")
		require.ErrorIs(t, err, janrain.ErrProvider)
	})

	t.Run("array where object expected", func(t *testing.T) {
		t.Parallel()
		c, _, _ := newTestClient(t, janrain.Config{}, http.StatusOK, `[]`)

		_, err := c.AuthInfo(context.Background(), "tok")
		require.ErrorIs(t, err, janrain.ErrUnexpectedResponse)
		require.NotErrorIs(t, err, janrain.ErrProvider)
	})
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
