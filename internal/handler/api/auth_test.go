// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shootingzone/studio-cms/internal/auth"
	"github.com/shootingzone/studio-cms/internal/middleware"
	"github.com/shootingzone/studio-cms/internal/testutil"
)

func TestLogin_CheckRoundTrip(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/api/auth/login", LoginRequest{Username: "admin", Password: "admin123"}, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[LoginResponse](t, w)
	assert.Equal(t, "Login successful", resp.Message)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(auth.CredentialLifetime), *resp.ExpiresAt, time.Minute)
	assert.Equal(t, "admin", resp.Admin.Username)

	f.token = resp.Token
	w = f.do(t, http.MethodGet, "/api/auth/check", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	status := decode[auth.Status](t, w)
	assert.True(t, status.Authenticated)
	assert.Equal(t, resp.Admin.AdminID, status.AdminID)
	assert.Equal(t, "admin", status.Username)

	w = f.do(t, http.MethodGet, "/api/auth/check", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[auth.Status](t, w).Authenticated)
}

func TestLogin_InvalidCredentialsAreIndistinguishable(t *testing.T) {
	f := newAPIFixture(t)

	wrongPass := f.do(t, http.MethodPost, "/api/auth/login", LoginRequest{Username: "admin", Password: "nope"}, false)
	unknownUser := f.do(t, http.MethodPost, "/api/auth/login", LoginRequest{Username: "ghost", Password: "admin123"}, false)

	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, wrongPass.Body.String(), unknownUser.Body.String())
	assert.Equal(t, "Invalid credentials", decode[middleware.APIError](t, wrongPass).Error)
}

func TestLogin_MissingFields(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/api/auth/login", LoginRequest{Username: "admin"}, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username and password required", decode[middleware.APIError](t, w).Error)
}

func TestLogin_UsernameIsExact(t *testing.T) {
	f := newAPIFixture(t)

	for _, username := range []string{" admin", "admin ", "Admin"} {
		w := f.do(t, http.MethodPost, "/api/auth/login", LoginRequest{Username: username, Password: "admin123"}, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "username %q", username)
	}
}

func TestLogin_LocksAccountAfterRepeatedFailures(t *testing.T) {
	f := newAPIFixture(t)
	bad := LoginRequest{Username: "admin", Password: "wrong"}

	for i := 0; i < 4; i++ {
		w := f.do(t, http.MethodPost, "/api/auth/login", bad, false)
		require.Equal(t, http.StatusUnauthorized, w.Code, "attempt %d", i+1)
	}

	w := f.do(t, http.MethodPost, "/api/auth/login", bad, false)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, decode[middleware.APIError](t, w).Error, "Too many failed login attempts")
}

func TestLogout(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/api/auth/logout", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Logout successful", decode[MessageResponse](t, w).Message)
}

func TestWriteRoutesRequireAdmin(t *testing.T) {
	f := newAPIFixture(t)
	body := map[string]any{"page": "home", "sectionKey": "hero"}

	w := f.do(t, http.MethodPost, "/api/sections", body, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Access token required", decode[middleware.APIError](t, w).Error)

	f.token = "not-a-token"
	w = f.do(t, http.MethodPost, "/api/sections", body, true)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Invalid or expired token", decode[middleware.APIError](t, w).Error)

	w = f.multipart(t, "/api/images/upload", nil, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// deleteFailingStore is a session store that cannot destroy sessions.
type deleteFailingStore struct {
	*memstore.MemStore
}

func (deleteFailingStore) Delete(string) error {
	return errors.New("session store unavailable")
}

func TestLogout_SessionStoreFailure(t *testing.T) {
	st := testutil.TestStore(t)
	hash, err := auth.HashPassword("admin123")
	require.NoError(t, err)
	_, err = st.CreateAdmin(context.Background(), "admin", hash, time.Now().UTC())
	require.NoError(t, err)

	sm := scs.New()
	sm.Store = deleteFailingStore{memstore.New()}
	issuer := auth.NewCookieIssuer(st, sm)

	r := chi.NewRouter()
	NewHandler(Deps{Issuer: issuer}).Routes(r, RouteOptions{})
	srv := issuer.Middleware(r)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"admin","password":"admin123"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Logout failed", decode[middleware.APIError](t, w).Error)
}
