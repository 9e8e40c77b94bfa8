package cookie

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNotFound  = errors.New("cookie: not found")
	ErrBadSecret = errors.New("cookie: secret must be at least 32 bytes")
	ErrInvalid   = errors.New("cookie: invalid or expired value")
)

const minSecretLen = 32

// Manager writes and reads HS256-signed cookies.
type Manager struct {
	secret   []byte
	issuer   string
	domain   string
	path     string
	secure   bool
	sameSite http.SameSite
	now      func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

func WithDomain(domain string) Option { return func(m *Manager) { m.domain = domain } }
func WithPath(path string) Option     { return func(m *Manager) { m.path = path } }
func WithSecure(secure bool) Option   { return func(m *Manager) { m.secure = secure } }
func WithIssuer(iss string) Option    { return func(m *Manager) { m.issuer = iss } }

// WithSameSite sets the SameSite attribute. Default: Lax.
func WithSameSite(ss http.SameSite) Option {
	return func(m *Manager) { m.sameSite = ss }
}

// WithClock overrides the time source for issuing and verifying tokens.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// New creates a Manager. The secret must be at least 32 bytes.
func New(secret string, opts ...Option) (*Manager, error) {
	if len(secret) < minSecretLen {
		return nil, ErrBadSecret
	}
	m := &Manager{
		secret:   []byte(secret),
		issuer:   "janrain",
		path:     "/",
		sameSite: http.SameSiteLaxMode,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// SetSigned stores subject in cookie name for ttl.
func (m *Manager) SetSigned(w http.ResponseWriter, name, subject string, ttl time.Duration) error {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    m.issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return err
	}
	http.SetCookie(w, m.cookie(name, signed, int(ttl.Seconds())))
	return nil
}

// GetSigned returns the subject stored in cookie name.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		return "", ErrNotFound
	}

	var claims jwt.RegisteredClaims
	_, err = jwt.ParseWithClaims(c.Value, &claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || claims.Subject == "" {
		return "", errors.Join(ErrInvalid, err)
	}
	return claims.Subject, nil
}

// Delete expires cookie name.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, m.cookie(name, "", -1))
}

func (m *Manager) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     m.path,
		Domain:   m.domain,
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: m.sameSite,
	}
}
