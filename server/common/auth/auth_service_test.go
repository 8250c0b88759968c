package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseBearer(t *testing.T) {
	svc := NewService("test-secret", 60)

	token, err := svc.GenerateToken("user-1", "Guest", "Host")
	require.NoError(t, err)

	claims, err := svc.ParseBearer("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.True(t, claims.Roles.Contains("Guest"))
	assert.True(t, claims.Roles.Contains("Host"))
	assert.False(t, claims.Roles.Contains("Admin"))
}

func TestParseBearerRejectsBadCredentials(t *testing.T) {
	svc := NewService("test-secret", 60)
	token, err := svc.GenerateToken("user-1", "Guest")
	require.NoError(t, err)

	cases := []struct {
		name       string
		credential string
		wantErr    error
	}{
		{"empty", "", ErrMissingToken},
		{"whitespace", "   ", ErrMissingToken},
		{"no scheme", token, ErrMalformedToken},
		{"wrong scheme", "Basic " + token, ErrMalformedToken},
		{"scheme only", "Bearer ", ErrMalformedToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ParseBearer(tc.credential)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewService("secret-a", 60)
	verifier := NewService("secret-b", 60)

	token, err := issuer.GenerateToken("user-1", "Guest")
	require.NoError(t, err)

	_, err = verifier.ParseBearer("Bearer " + token)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	svc := NewService("test-secret", 60)

	claims := Claims{
		Roles: RoleList{"Guest"},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ParseBearer("Bearer " + token)
	assert.Error(t, err)
}

func TestRoleClaimAcceptsScalarAndList(t *testing.T) {
	svc := NewService("test-secret", 60)

	// Some issuers encode a single role as a bare string instead of a
	// one-element list.
	scalar := jwt.MapClaims{
		"role": "Guest",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, scalar).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	claims, err := svc.ParseBearer("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, RoleList{"Guest"}, claims.Roles)

	list := jwt.MapClaims{
		"role": []string{"Guest", "Host"},
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, list).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	claims, err = svc.ParseBearer("Bearer " + token)
	require.NoError(t, err)
	assert.True(t, claims.Roles.ContainsAny("Host"))
}

func TestContainsAnyEmptyIntersection(t *testing.T) {
	roles := RoleList{"Guest"}
	assert.False(t, roles.ContainsAny("Host", "Admin"))
	assert.True(t, roles.ContainsAny("Host", "Guest"))
}
