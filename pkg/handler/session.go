package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/janrain/pkg/accounts"
	"github.com/dmitrymomot/janrain/pkg/cookie"
)

// Sessions binds an authenticated user to the browser.
type Sessions interface {
	Login(w http.ResponseWriter, r *http.Request, u *accounts.User) error
	Logout(w http.ResponseWriter, r *http.Request)
	// Current returns the username of the signed-in user or ErrNoSession.
	Current(r *http.Request) (string, error)
}

const (
	DefaultSessionCookie = "janrain_session"
	DefaultSessionTTL    = 14 * 24 * time.Hour
)

// CookieSessions keeps the username in a signed cookie.
type CookieSessions struct {
	cookies *cookie.Manager
	name    string
	ttl     time.Duration
}

// NewCookieSessions creates CookieSessions. Zero name or ttl use the defaults.
func NewCookieSessions(cookies *cookie.Manager, name string, ttl time.Duration) *CookieSessions {
	if name == "" {
		name = DefaultSessionCookie
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &CookieSessions{cookies: cookies, name: name, ttl: ttl}
}

func (s *CookieSessions) Login(w http.ResponseWriter, _ *http.Request, u *accounts.User) error {
	return s.cookies.SetSigned(w, s.name, u.Username, s.ttl)
}

func (s *CookieSessions) Logout(w http.ResponseWriter, _ *http.Request) {
	s.cookies.Delete(w, s.name)
}

func (s *CookieSessions) Current(r *http.Request) (string, error) {
	username, err := s.cookies.GetSigned(r, s.name)
	if err != nil {
		return "", errors.Join(ErrNoSession, err)
	}
	return username, nil
}
