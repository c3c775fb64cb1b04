// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler holds HTTP plumbing shared by the API handlers: URL
// parameter parsing and the health endpoint.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ErrInvalidID is returned for a missing or non-positive id parameter.
var ErrInvalidID = errors.New("invalid id")

// ParseURLParamInt64 parses a named chi URL parameter as int64.
func ParseURLParamInt64(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, ErrInvalidID
	}
	return strconv.ParseInt(raw, 10, 64)
}

// ParseIDParam parses the {id} URL parameter. Ids are positive.
func ParseIDParam(r *http.Request) (int64, error) {
	id, err := ParseURLParamInt64(r, "id")
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// PublishedOnly reports whether the request asks for published rows only
// (?published=true). Any other value, or none, lists every row.
func PublishedOnly(r *http.Request) bool {
	return r.URL.Query().Get("published") == "true"
}
