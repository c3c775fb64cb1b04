// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON REST handlers for the studio site.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/shootingzone/studio-cms/internal/apperr"
	"github.com/shootingzone/studio-cms/internal/auth"
	"github.com/shootingzone/studio-cms/internal/handler"
	"github.com/shootingzone/studio-cms/internal/mailer"
	"github.com/shootingzone/studio-cms/internal/middleware"
	"github.com/shootingzone/studio-cms/internal/service"
)

// maxJSONBody caps JSON request bodies.
const maxJSONBody = 1 << 20

// multipartOverhead is the allowance for form fields and boundaries on top
// of the image itself.
const multipartOverhead = 1 << 20

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	content  *service.ContentService
	uploads  *service.UploadService
	mailer   *mailer.Mailer
	issuer   auth.SessionIssuer
	login    *middleware.LoginProtection
	validate *validator.Validate

	maxUpload int64
}

// Deps are the services the handlers are built on.
type Deps struct {
	Content *service.ContentService
	Uploads *service.UploadService
	Mailer  *mailer.Mailer
	Issuer  auth.SessionIssuer
	Login   *middleware.LoginProtection

	// MaxUpload is the largest accepted image in bytes.
	MaxUpload int64
}

// NewHandler creates a new API handler.
func NewHandler(d Deps) *Handler {
	if d.MaxUpload <= 0 {
		d.MaxUpload = service.DefaultMaxUploadSize
	}
	return &Handler{
		content:   d.Content,
		uploads:   d.Uploads,
		mailer:    d.Mailer,
		issuer:    d.Issuer,
		login:     d.Login,
		validate:  newFormValidator(),
		maxUpload: d.MaxUpload,
	}
}

// SuccessResponse acknowledges a write that returns no entity.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// MessageResponse carries a single message.
type MessageResponse struct {
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeServiceError maps err to its HTTP status. Internal details are
// logged and never sent to the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperr.As(err)
	if !ok {
		slog.ErrorContext(r.Context(), "unhandled error",
			"method", r.Method, "path", r.URL.Path, "error", err)
		middleware.WriteAPIError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	status := appErr.Kind.HTTPStatus()
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "kind", appErr.Kind, "error", err)
	}
	middleware.WriteAPIError(w, status, appErr.Message, appErr.Fields)
}

// decodeJSON decodes a bounded JSON request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	return json.NewDecoder(r.Body).Decode(v)
}

// decodeOrReject decodes the body into v and writes a 400 on failure.
func decodeOrReject(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := decodeJSON(w, r, v); err != nil {
		middleware.WriteAPIError(w, http.StatusBadRequest, "Invalid JSON body", nil)
		return false
	}
	return true
}

// requireID parses the {id} URL parameter and writes a 400 when it is invalid.
func requireID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := handler.ParseIDParam(r)
	if err != nil {
		middleware.WriteAPIError(w, http.StatusBadRequest, "Invalid id", nil)
		return 0, false
	}
	return id, true
}

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// formFieldErrors lists the offending fields of a failed form validation.
func formFieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = "is required"
		case "email":
			fields[fe.Field()] = "must be a valid email address"
		default:
			fields[fe.Field()] = "is invalid"
		}
	}
	return fields
}
