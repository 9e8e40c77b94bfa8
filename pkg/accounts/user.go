package accounts

import (
	"crypto/rand"
	"encoding/base64"
	"strings"
	"time"
)

// UnusablePasswordPrefix marks a password value that can never match any input.
const UnusablePasswordPrefix = "!"

// User is a local account.
type User struct {
	CreatedAt   time.Time `json:"created_at"`
	ID          string    `json:"id"`
	Username    string    `json:"username"` // profile.LocalKey of the provider identifier
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Password    string    `json:"password"`
	IsActive    bool      `json:"is_active"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
}

// SetUnusablePassword replaces the password with a random unusable marker.
func (u *User) SetUnusablePassword() {
	u.Password = UnusablePassword()
}

// HasUsablePassword reports whether the password could ever be checked successfully.
func (u *User) HasUsablePassword() bool {
	return u.Password != "" && !strings.HasPrefix(u.Password, UnusablePasswordPrefix)
}

// UnusablePassword returns "!" followed by 40 random characters.
func UnusablePassword() string {
	b := make([]byte, 30)
	_, _ = rand.Read(b)
	return UnusablePasswordPrefix + base64.RawURLEncoding.EncodeToString(b)
}

func (u *User) validate() error {
	if u == nil || u.ID == "" || u.Username == "" {
		return ErrInvalidUser
	}
	return nil
}
