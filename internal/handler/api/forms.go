// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"

	"github.com/shootingzone/studio-cms/internal/mailer"
	"github.com/shootingzone/studio-cms/internal/middleware"
)

// Contact handles POST /api/contact.
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	var form mailer.ContactForm
	if !decodeOrReject(w, r, &form) {
		return
	}
	if err := h.validate.Struct(form); err != nil {
		middleware.WriteAPIError(w, http.StatusBadRequest, "Missing required fields", formFieldErrors(err))
		return
	}

	if err := h.mailer.SendContact(r.Context(), form); err != nil {
		slog.ErrorContext(r.Context(), "sending contact email", "error", err)
		middleware.WriteAPIError(w, http.StatusInternalServerError, "Email failed", nil)
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: "Message sent successfully"})
}

// PreRegister handles POST /api/pre-register.
func (h *Handler) PreRegister(w http.ResponseWriter, r *http.Request) {
	var form mailer.PreRegistrationForm
	if !decodeOrReject(w, r, &form) {
		return
	}
	if err := h.validate.Struct(form); err != nil {
		middleware.WriteAPIError(w, http.StatusBadRequest, "Missing required fields", formFieldErrors(err))
		return
	}

	if err := h.mailer.SendPreRegistration(r.Context(), form); err != nil {
		slog.ErrorContext(r.Context(), "sending pre-registration email", "error", err)
		middleware.WriteAPIError(w, http.StatusInternalServerError, "Failed to send email", nil)
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: "Pre-registration email sent"})
}
