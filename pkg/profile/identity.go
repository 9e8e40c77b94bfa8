package profile

import (
	"crypto/sha256"
	"encoding/base64"
)

// LocalKeyLength is the length of every key returned by LocalKey.
// Account usernames in the user store are limited to 30 characters.
const LocalKeyLength = 30

// 22 bytes encode to exactly 30 unpadded base64url characters.
const localKeyBytes = 22

// Identity is the normalized view of a provider payload.
type Identity struct {
	Identifier string
	GivenName  string
	FamilyName string
	Email      string
	Kind       Kind
}

// NewIdentity extracts an Identity from a parsed profile.
func NewIdentity(p Profile) Identity {
	given, family := p.Names()
	return Identity{
		Identifier: p.Identifier(),
		GivenName:  given,
		FamilyName: family,
		Email:      p.Email(),
		Kind:       p.Kind(),
	}
}

// Normalize parses raw and returns its Identity.
func Normalize(raw map[string]any) (Identity, error) {
	p, err := Parse(raw)
	if err != nil {
		return Identity{}, err
	}
	return NewIdentity(p), nil
}

// Names returns the given and family name.
func (i Identity) Names() (given, family string) {
	return i.GivenName, i.FamilyName
}

// LocalKey returns the account key for this identity.
func (i Identity) LocalKey() string {
	return LocalKey(i.Identifier)
}

// LocalKey derives a deterministic account key from a provider identifier:
// the first 176 bits of its SHA-256 digest, base64url-encoded without padding.
// The result is always LocalKeyLength characters from [A-Za-z0-9_-].
func LocalKey(identifier string) string {
	sum := sha256.Sum256([]byte(identifier))
	return base64.RawURLEncoding.EncodeToString(sum[:localKeyBytes])
}
