// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, and request context handling.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/shootingzone/studio-cms/internal/apperr"
	"github.com/shootingzone/studio-cms/internal/auth"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyAdmin holds the auth.Identity of an authenticated request.
const ContextKeyAdmin ContextKey = "admin"

// RequireAdmin rejects requests that do not carry a valid admin credential.
// A missing credential is 401, an invalid or expired one is 403.
func RequireAdmin(issuer auth.SessionIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := issuer.Verify(r)
			if err != nil {
				appErr, ok := apperr.As(err)
				if !ok {
					appErr = auth.ErrInvalidToken
				}
				slog.Debug("admin credential rejected",
					"path", r.URL.Path,
					"reason", appErr.Message,
				)
				WriteAPIError(w, appErr.Kind.HTTPStatus(), appErr.Message, nil)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyAdmin, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdmin returns the identity attached by RequireAdmin.
func GetAdmin(r *http.Request) (auth.Identity, bool) {
	id, ok := r.Context().Value(ContextKeyAdmin).(auth.Identity)
	return id, ok
}
