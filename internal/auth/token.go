// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims is the signed payload of an access token.
type tokenClaims struct {
	AdminID  int64  `json:"adminId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenIssuer issues stateless HS256 bearer tokens.
type TokenIssuer struct {
	admins AdminFinder
	secret []byte

	// Now is the clock used for issuing and validating tokens.
	Now func() time.Time
}

// NewTokenIssuer creates a token issuer signing with secret.
func NewTokenIssuer(admins AdminFinder, secret []byte) *TokenIssuer {
	return &TokenIssuer{admins: admins, secret: secret, Now: time.Now}
}

// Login verifies the credentials and signs a token valid for CredentialLifetime.
func (ti *TokenIssuer) Login(ctx context.Context, username, password string) (Credential, Identity, error) {
	id, err := authenticate(ctx, ti.admins, username, password)
	if err != nil {
		return Credential{}, Identity{}, err
	}

	token, expiresAt, err := ti.Sign(id)
	if err != nil {
		return Credential{}, Identity{}, err
	}
	return Credential{Token: token, ExpiresAt: expiresAt}, id, nil
}

// Sign creates a token for id.
func (ti *TokenIssuer) Sign(id Identity) (string, time.Time, error) {
	issuedAt := ti.Now().Truncate(time.Second)
	expiresAt := issuedAt.Add(CredentialLifetime)

	claims := tokenClaims{
		AdminID:  id.AdminID,
		Username: id.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Logout is a no-op: tokens stay valid until they expire.
func (ti *TokenIssuer) Logout(context.Context) error {
	return nil
}

// Verify validates the bearer token in the Authorization header.
func (ti *TokenIssuer) Verify(r *http.Request) (Identity, error) {
	raw := bearerToken(r)
	if raw == "" {
		return Identity{}, ErrMissingCredential
	}
	return ti.Parse(raw)
}

// Parse validates a raw token. A token expiring at E is accepted up to and
// including E.
func (ti *TokenIssuer) Parse(raw string) (Identity, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var claims tokenClaims
	if _, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return ti.secret, nil
	}); err != nil {
		return Identity{}, ErrInvalidToken
	}

	if claims.ExpiresAt == nil || ti.Now().After(claims.ExpiresAt.Time) {
		return Identity{}, ErrInvalidToken
	}
	if claims.AdminID == 0 {
		return Identity{}, ErrInvalidToken
	}

	return Identity{AdminID: claims.AdminID, Username: claims.Username}, nil
}

// Middleware returns next unchanged; tokens carry all their state.
func (ti *TokenIssuer) Middleware(next http.Handler) http.Handler {
	return next
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
