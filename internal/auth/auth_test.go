package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	a := New("test-secret")

	token, user, err := a.Login("sradha", "iloveyou")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "sradha", user.Username)
	assert.Equal(t, "Sradha Priyadarshini", user.Name)
}

func TestLoginUsernameCaseInsensitive(t *testing.T) {
	a := New("test-secret")

	_, _, err := a.Login("SRADHA", "iloveyou")
	require.NoError(t, err)
	_, _, err = a.Login("  Sradha  ", "iloveyou")
	require.NoError(t, err)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	a := New("test-secret")

	_, _, err := a.Login("sradha", "ILOVEYOU")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "password is case-sensitive")
	_, _, err = a.Login("someone", "iloveyou")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = a.Login("", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyRoundTrip(t *testing.T) {
	a := New("test-secret")

	token, _, err := a.Login("sradha", "iloveyou")
	require.NoError(t, err)

	user, err := a.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "sradha", user.Username)
	assert.Equal(t, "Sradha Priyadarshini", user.Name)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	a := New("test-secret")
	_, err := a.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, _, err := New("secret-a").Login("sradha", "iloveyou")
	require.NoError(t, err)

	_, err = New("secret-b").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	a := New("test-secret")
	claims := Claims{
		Username: "sradha",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = a.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenLifetime(t *testing.T) {
	a := New("test-secret")
	token, _, err := a.Login("sradha", "iloveyou")
	require.NoError(t, err)

	var claims Claims
	_, err = jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, 30*24*time.Hour, lifetime)
}
