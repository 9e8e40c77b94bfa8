// Package cookie stores a signed subject in an HttpOnly cookie.
//
// Values are HS256 JSON Web Tokens built with [github.com/golang-jwt/jwt/v5],
// carrying the subject, issuer and expiry. A tampered, expired or foreign
// cookie reads back as [ErrInvalid].
package cookie
