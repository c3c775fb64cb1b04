// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shootingzone/studio-cms/internal/auth"
	"github.com/shootingzone/studio-cms/internal/middleware"
)

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after a successful login. Token and ExpiresAt
// are only present for the bearer token variant.
type LoginResponse struct {
	Message   string        `json:"message"`
	Token     string        `json:"token,omitempty"`
	ExpiresAt *time.Time    `json:"expiresAt,omitempty"`
	Admin     auth.Identity `json:"admin"`
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeOrReject(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		middleware.WriteAPIError(w, http.StatusBadRequest, "Username and password required", nil)
		return
	}

	if h.login != nil {
		if locked, remaining := h.login.IsAccountLocked(req.Username); locked {
			writeLocked(w, remaining)
			return
		}
	}

	cred, id, err := h.issuer.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) && h.login != nil {
			if locked, lockFor := h.login.RecordFailedAttempt(req.Username); locked {
				writeLocked(w, lockFor)
				return
			}
		}
		writeServiceError(w, r, err)
		return
	}

	if h.login != nil {
		h.login.RecordSuccessfulLogin(req.Username)
	}
	slog.InfoContext(r.Context(), "admin logged in", "admin_id", id.AdminID, "username", id.Username)

	resp := LoginResponse{Message: "Login successful", Token: cred.Token, Admin: id}
	if !cred.ExpiresAt.IsZero() {
		expiresAt := cred.ExpiresAt.UTC()
		resp.ExpiresAt = &expiresAt
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeLocked(w http.ResponseWriter, d time.Duration) {
	msg := fmt.Sprintf("Too many failed login attempts. Try again in %s", d.Round(time.Second))
	middleware.WriteAPIError(w, http.StatusTooManyRequests, msg, nil)
}

// Logout handles POST /api/auth/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.issuer.Logout(r.Context()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Logout successful"})
}

// Check handles GET /api/auth/check.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, auth.Check(h.issuer, r))
}
