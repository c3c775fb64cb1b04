// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"
	"net/url"

	"filippo.io/csrf/gorilla"
)

// CSRFConfig holds configuration for cross-origin write protection.
// It is only installed for cookie sessions; bearer tokens are not sent
// automatically by browsers.
type CSRFConfig struct {
	// AuthKey is a 32-byte key. The credential secret is reused.
	AuthKey []byte

	// TrustedOrigins are host[:port] values allowed to send unsafe requests
	// cross-origin.
	TrustedOrigins []string
}

// NewCSRFConfig builds a config trusting the hosts of the CORS origins.
func NewCSRFConfig(authKey []byte, corsOrigins []string) CSRFConfig {
	cfg := CSRFConfig{AuthKey: authKey}
	for _, origin := range corsOrigins {
		u, err := url.Parse(origin)
		if err != nil || u.Host == "" {
			continue
		}
		cfg.TrustedOrigins = append(cfg.TrustedOrigins, u.Host)
	}
	return cfg
}

// CSRF returns a middleware that rejects cross-site unsafe requests using
// Fetch metadata headers.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	opts := []csrf.Option{
		csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler)),
	}
	if len(cfg.TrustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(cfg.TrustedOrigins))
	}
	return csrf.Protect(cfg.AuthKey, opts...)
}

func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	reason := "unknown"
	if err := csrf.FailureReason(r); err != nil {
		reason = err.Error()
	}
	slog.Warn("CSRF validation failed",
		"reason", reason,
		"method", r.Method,
		"path", r.URL.Path,
		"origin", r.Header.Get("Origin"),
		"sec_fetch_site", r.Header.Get("Sec-Fetch-Site"),
	)
	WriteAPIError(w, http.StatusForbidden, "Cross-site request rejected", nil)
}
