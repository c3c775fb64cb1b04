// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/shootingzone/studio-cms/internal/apperr"
)

// Session keys.
const (
	SessionKeyAdminID  = "admin_id"
	SessionKeyUsername = "username"
)

// CookieIssuer keeps the login in a server-side session referenced by an
// opaque cookie.
type CookieIssuer struct {
	admins AdminFinder
	sm     *scs.SessionManager
}

// NewCookieIssuer creates a session-backed issuer.
func NewCookieIssuer(admins AdminFinder, sm *scs.SessionManager) *CookieIssuer {
	return &CookieIssuer{admins: admins, sm: sm}
}

// Login verifies the credentials and binds the admin to a fresh session.
func (ci *CookieIssuer) Login(ctx context.Context, username, password string) (Credential, Identity, error) {
	id, err := authenticate(ctx, ci.admins, username, password)
	if err != nil {
		return Credential{}, Identity{}, err
	}

	// New token on privilege change to prevent session fixation.
	if err := ci.sm.RenewToken(ctx); err != nil {
		return Credential{}, Identity{}, apperr.Internal("renewing session", err)
	}
	ci.sm.Put(ctx, SessionKeyAdminID, id.AdminID)
	ci.sm.Put(ctx, SessionKeyUsername, id.Username)

	return Credential{}, id, nil
}

// Logout destroys the server-side session.
func (ci *CookieIssuer) Logout(ctx context.Context) error {
	if err := ci.sm.Destroy(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrLogout, err)
	}
	return nil
}

// Verify reads the admin from the session loaded by Middleware.
func (ci *CookieIssuer) Verify(r *http.Request) (Identity, error) {
	if _, err := r.Cookie(ci.sm.Cookie.Name); err != nil {
		return Identity{}, ErrMissingCredential
	}

	ctx := r.Context()
	adminID := ci.sm.GetInt64(ctx, SessionKeyAdminID)
	if adminID == 0 {
		return Identity{}, ErrInvalidToken
	}
	return Identity{AdminID: adminID, Username: ci.sm.GetString(ctx, SessionKeyUsername)}, nil
}

// Middleware loads and saves the session around each request.
func (ci *CookieIssuer) Middleware(next http.Handler) http.Handler {
	return ci.sm.LoadAndSave(next)
}
