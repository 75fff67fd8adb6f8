package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkswap/internal/config/configs"
	"linkswap/internal/core/domain"
)

func TestIssueAndParse(t *testing.T) {
	a := NewJWTAuthenticator(configs.Auth{Secret: "s3cret", Issuer: "idp", Audience: "linkswap"})
	caller := domain.Caller{UserID: uuid.New(), Role: domain.RoleAdmin, Status: domain.AccountSuspended}

	token, err := a.Issue(caller, time.Hour)
	require.NoError(t, err)

	got, err := a.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, caller, got)
}

func TestParseDefaults(t *testing.T) {
	a := NewJWTAuthenticator(configs.Auth{Secret: "s3cret"})
	id := uuid.New()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": id.String(),
		"exp": time.Now().Add(time.Minute).Unix(),
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	got, err := a.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, domain.Caller{UserID: id, Role: domain.RoleUser, Status: domain.AccountActive}, got)
}

func TestParseRejects(t *testing.T) {
	a := NewJWTAuthenticator(configs.Auth{Secret: "s3cret", Issuer: "idp"})
	sign := func(method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	future := time.Now().Add(time.Hour).Unix()
	id := uuid.NewString()

	tests := map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": sign(jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"sub": id, "iss": "idp", "exp": future}),
		"expired":      sign(jwt.SigningMethodHS256, []byte("s3cret"), jwt.MapClaims{"sub": id, "iss": "idp", "exp": time.Now().Add(-time.Hour).Unix()}),
		"no expiry":    sign(jwt.SigningMethodHS256, []byte("s3cret"), jwt.MapClaims{"sub": id, "iss": "idp"}),
		"wrong issuer": sign(jwt.SigningMethodHS256, []byte("s3cret"), jwt.MapClaims{"sub": id, "iss": "evil", "exp": future}),
		"bad subject":  sign(jwt.SigningMethodHS256, []byte("s3cret"), jwt.MapClaims{"sub": "42", "iss": "idp", "exp": future}),
		"unknown role": sign(jwt.SigningMethodHS256, []byte("s3cret"), jwt.MapClaims{"sub": id, "iss": "idp", "exp": future, "role": "root"}),
		"hs512":        sign(jwt.SigningMethodHS512, []byte("s3cret"), jwt.MapClaims{"sub": id, "iss": "idp", "exp": future}),
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := a.Parse(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
