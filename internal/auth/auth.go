// Package auth implements the single-user login. Credentials are fixed: the
// app has exactly one user and no registration flow.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// The one and only account.
	username    = "sradha"
	password    = "iloveyou"
	displayName = "Sradha Priyadarshini"

	tokenLifetime = 30 * 24 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// Claims is the JWT payload issued on login.
type Claims struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

// User is the authenticated identity returned to the client.
type User struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Authenticator issues and verifies tokens with an HMAC secret.
type Authenticator struct {
	secret []byte
}

func New(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// Login checks the credentials and issues a signed token. The username match
// ignores case and surrounding whitespace; the password is exact.
func (a *Authenticator) Login(user, pass string) (string, *User, error) {
	if !strings.EqualFold(strings.TrimSpace(user), username) || pass != password {
		return "", nil, ErrInvalidCredentials
	}
	now := time.Now()
	claims := Claims{
		Username: username,
		Name:     displayName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
			Subject:   username,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", nil, err
	}
	return token, &User{Username: username, Name: displayName}, nil
}

// Verify parses and validates a token, returning the identity it carries.
func (a *Authenticator) Verify(token string) (*User, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return a.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return &User{Username: claims.Username, Name: claims.Name}, nil
}
