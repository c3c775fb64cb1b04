// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/shootingzone/studio-cms/internal/apperr"
	"github.com/shootingzone/studio-cms/internal/config"
	"github.com/shootingzone/studio-cms/internal/model"
)

// CredentialLifetime is how long an issued credential stays valid.
const CredentialLifetime = 24 * time.Hour

// Errors returned by issuers. Handlers map them through apperr.
var (
	ErrInvalidCredentials = apperr.New(apperr.KindAuth, "Invalid credentials")
	ErrMissingCredential  = apperr.New(apperr.KindAuth, "Access token required")
	ErrInvalidToken       = apperr.New(apperr.KindForbidden, "Invalid or expired token")
	ErrLogout             = apperr.New(apperr.KindInternal, "Logout failed")
)

// Identity is the authenticated admin attached to a request.
type Identity struct {
	AdminID  int64  `json:"id"`
	Username string `json:"username"`
}

// Credential is what a successful login hands back to the client.
// Token and ExpiresAt are empty for the session variant, which uses a cookie.
type Credential struct {
	Token     string
	ExpiresAt time.Time
}

// Status is the answer to "is this request authenticated".
type Status struct {
	Authenticated bool   `json:"authenticated"`
	AdminID       int64  `json:"adminId,omitempty"`
	Username      string `json:"username,omitempty"`
}

// AdminFinder looks up the admin account. The store satisfies it.
type AdminFinder interface {
	GetAdminByUsername(ctx context.Context, username string) (model.Admin, error)
}

// SessionIssuer authenticates the admin and verifies credentials on later requests.
type SessionIssuer interface {
	// Login checks the username and password and issues a credential.
	Login(ctx context.Context, username, password string) (Credential, Identity, error)
	// Logout invalidates the credential bound to ctx, if the variant keeps state.
	Logout(ctx context.Context) error
	// Verify extracts and validates the credential carried by r.
	Verify(r *http.Request) (Identity, error)
	// Middleware wraps the router with whatever per-request state the variant needs.
	Middleware(next http.Handler) http.Handler
}

// Check reports the authentication status of r. It never fails.
func Check(issuer SessionIssuer, r *http.Request) Status {
	id, err := issuer.Verify(r)
	if err != nil {
		return Status{}
	}
	return Status{Authenticated: true, AdminID: id.AdminID, Username: id.Username}
}

// NewIssuer constructs the variant selected by cfg.AuthMode.
// sm is only used (and must be non-nil) for the session variant.
func NewIssuer(cfg *config.Config, admins AdminFinder, sm *scs.SessionManager) (SessionIssuer, error) {
	switch cfg.AuthMode {
	case config.AuthModeToken:
		return NewTokenIssuer(admins, []byte(cfg.JWTSecret)), nil
	case config.AuthModeSession:
		if sm == nil {
			return nil, errors.New("session auth requires a session manager")
		}
		return NewCookieIssuer(admins, sm), nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.AuthMode)
	}
}

// authenticate resolves username/password to an identity. Unknown usernames
// and wrong passwords produce the same error and comparable latency.
func authenticate(ctx context.Context, admins AdminFinder, username, password string) (Identity, error) {
	admin, err := admins.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			burnPasswordCheck(password)
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, apperr.Internal("looking up admin", err)
	}

	ok, err := CheckPassword(password, admin.PasswordHash)
	if err != nil {
		return Identity{}, apperr.Internal("verifying password", err)
	}
	if !ok {
		return Identity{}, ErrInvalidCredentials
	}

	return Identity{AdminID: admin.ID, Username: admin.Username}, nil
}
