package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/janrain/pkg/cookie"
)

const secret = "0123456789abcdef0123456789abcdef"

func roundTrip(t *testing.T, rec *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := cookie.New("short")
	require.ErrorIs(t, err, cookie.ErrBadSecret)

	m, err := cookie.New(secret)
	require.NoError(t, err)
	require.NotNil(t, m)
}

func TestManager_Signed(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		m, err := cookie.New(secret, cookie.WithSecure(true))
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(rec, "sid", "user-1", time.Hour))

		c := rec.Result().Cookies()[0]
		require.True(t, c.HttpOnly)
		require.True(t, c.Secure)
		require.Equal(t, 3600, c.MaxAge)

		got, err := m.GetSigned(roundTrip(t, rec), "sid")
		require.NoError(t, err)
		require.Equal(t, "user-1", got)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		m, err := cookie.New(secret)
		require.NoError(t, err)

		_, err = m.GetSigned(httptest.NewRequest(http.MethodGet, "/", nil), "sid")
		require.ErrorIs(t, err, cookie.ErrNotFound)
	})

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()
		a, _ := cookie.New(secret)
		b, _ := cookie.New("fedcba9876543210fedcba9876543210")

		rec := httptest.NewRecorder()
		require.NoError(t, a.SetSigned(rec, "sid", "user-1", time.Hour))

		_, err := b.GetSigned(roundTrip(t, rec), "sid")
		require.ErrorIs(t, err, cookie.ErrInvalid)
	})

	t.Run("expired", func(t *testing.T) {
		t.Parallel()
		now := time.Now()
		m, _ := cookie.New(secret, cookie.WithClock(func() time.Time { return now }))

		rec := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(rec, "sid", "user-1", time.Minute))

		now = now.Add(2 * time.Minute)
		_, err := m.GetSigned(roundTrip(t, rec), "sid")
		require.ErrorIs(t, err, cookie.ErrInvalid)
	})

	t.Run("tampered", func(t *testing.T) {
		t.Parallel()
		m, _ := cookie.New(secret)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "not.a.token"})
		_, err := m.GetSigned(req, "sid")
		require.ErrorIs(t, err, cookie.ErrInvalid)
	})
}

func TestManager_Delete(t *testing.T) {
	t.Parallel()

	m, _ := cookie.New(secret)
	rec := httptest.NewRecorder()
	m.Delete(rec, "sid")

	c := rec.Result().Cookies()[0]
	require.Equal(t, "sid", c.Name)
	require.Empty(t, c.Value)
	require.Negative(t, c.MaxAge)
}
