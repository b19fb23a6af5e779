// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the verified content of a bearer token.
type Claims struct {
	Subject   string
	Issuer    string
	Audience  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	// Issue signs a token for subject, valid for audience until now+ttl.
	Issue(subject, audience string, ttl time.Duration) (string, error)

	// Verify checks signature and expiry and returns the token's claims.
	// Any failure is KindUnauthenticated.
	Verify(token string) (*Claims, error)
}

// JWTService implements TokenService with HMAC-SHA256 signed JWTs.
type JWTService struct {
	issuer string
	secret []byte
	now    func() time.Time
}

// NewJWTService creates a JWTService. The secret must not be empty.
func NewJWTService(issuer string, secret []byte) (*JWTService, error) {
	if len(secret) == 0 {
		return nil, KindInvalidArgument.Builder().Errorf("token secret is required")
	}
	return &JWTService{issuer: issuer, secret: secret, now: time.Now}, nil
}

// Issue signs a new token.
func (s *JWTService) Issue(subject, audience string, ttl time.Duration) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    s.issuer,
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", KindInternal.Builder().
			With("operation", "sign token").
			Wrapf(err, "failed to encode token")
	}
	return signed, nil
}

// Verify parses and validates a token.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	registered := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, registered, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, KindUnauthenticated.Builder().
			With("operation", "verify token").
			With("cause", tokenError(err).Error()).
			Errorf("expired or invalid JWT token")
	}

	claims := &Claims{
		Subject: registered.Subject,
		Issuer:  registered.Issuer,
	}
	if len(registered.Audience) > 0 {
		claims.Audience = registered.Audience[0]
	}
	if registered.IssuedAt != nil {
		claims.IssuedAt = registered.IssuedAt.Time
	}
	if registered.ExpiresAt != nil {
		claims.ExpiresAt = registered.ExpiresAt.Time
	}
	return claims, nil
}

func tokenError(err error) error {
	if err != nil {
		return err
	}
	return jwt.ErrTokenUnverifiable
}

var _ TokenService = (*JWTService)(nil)
