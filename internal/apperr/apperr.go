// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package apperr defines the error taxonomy shared by services and HTTP handlers.
// Services return *Error values (or wrap them); handlers translate the Kind
// into an HTTP status exactly once, at the boundary.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Kind classifies an application error.
type Kind int

// Error kinds.
const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindForbidden
	KindNotFound
	KindUpload
	KindTransfer
	KindRateLimited
)

var kindNames = map[Kind]string{
	KindInternal:    "internal",
	KindValidation:  "validation",
	KindAuth:        "auth",
	KindForbidden:   "forbidden",
	KindNotFound:    "not_found",
	KindUpload:      "upload",
	KindTransfer:    "transfer",
	KindRateLimited: "rate_limited",
}

// String returns the kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// HTTPStatus returns the status code used for errors of this kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindUpload:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string            // safe to show to API clients
	Fields  map[string]string // offending fields for KindValidation
	Err     error             // underlying cause, never sent to clients
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an error of the given kind around a cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation creates a validation error listing the offending fields.
// The message names the fields in a stable order.
func Validation(fields map[string]string) *Error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	return &Error{
		Kind:    KindValidation,
		Message: "invalid or missing fields: " + strings.Join(names, ", "),
		Fields:  fields,
	}
}

// NotFound creates a not-found error for the named entity, e.g. "section".
func NotFound(entity string) *Error {
	if entity == "" {
		return New(KindNotFound, "not found")
	}
	return New(KindNotFound, strings.ToUpper(entity[:1])+entity[1:]+" not found")
}

// Internal wraps an unexpected failure.
func Internal(message string, err error) *Error {
	return Wrap(KindInternal, message, err)
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the kind of err. Unclassified errors are internal.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindInternal
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}
