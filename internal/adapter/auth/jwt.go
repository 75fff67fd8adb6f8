// Package auth verifies the bearer tokens issued by the external identity
// provider and turns them into a domain.Caller.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"linkswap/internal/config/configs"
	"linkswap/internal/core/domain"
)

// ErrInvalidToken is returned for any token that cannot be trusted.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the caller identity. The subject is the user id.
type Claims struct {
	Role   string `json:"role"`
	Status string `json:"status,omitempty"`
	jwt.RegisteredClaims
}

// JWTAuthenticator validates and issues HS256 tokens.
type JWTAuthenticator struct {
	secret []byte
	iss    string
	aud    string
	now    func() time.Time
}

// NewJWTAuthenticator returns an authenticator for the given settings.
func NewJWTAuthenticator(cfg configs.Auth) *JWTAuthenticator {
	return &JWTAuthenticator{
		secret: []byte(cfg.Secret),
		iss:    cfg.Issuer,
		aud:    cfg.Audience,
		now:    time.Now,
	}
}

// Issue signs a token for caller valid for ttl. Used by the token command
// and tests; production tokens come from the identity provider.
func (a *JWTAuthenticator) Issue(caller domain.Caller, ttl time.Duration) (string, error) {
	now := a.now()
	claims := Claims{
		Role:   string(caller.Role),
		Status: string(caller.Status),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   caller.UserID.String(),
			Issuer:    a.iss,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if a.aud != "" {
		claims.Audience = jwt.ClaimStrings{a.aud}
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Parse validates token and returns the caller it identifies. A token
// without a status claim is treated as active; one without a role is a
// regular user.
func (a *JWTAuthenticator) Parse(token string) (domain.Caller, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	}
	if a.iss != "" {
		opts = append(opts, jwt.WithIssuer(a.iss))
	}
	if a.aud != "" {
		opts = append(opts, jwt.WithAudience(a.aud))
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	}, opts...)
	if err != nil {
		return domain.Caller{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.Caller{}, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}
	caller := domain.Caller{
		UserID: id,
		Role:   domain.Role(claims.Role),
		Status: domain.AccountStatus(claims.Status),
	}
	switch caller.Role {
	case "":
		caller.Role = domain.RoleUser
	case domain.RoleUser, domain.RoleAdmin:
	default:
		return domain.Caller{}, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}
	if caller.Status == "" {
		caller.Status = domain.AccountActive
	}
	return caller, nil
}
