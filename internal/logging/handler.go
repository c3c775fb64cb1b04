// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that masks credentials before
// records reach the underlying handler.
package logging

import (
	"context"
	"log/slog"
	"strings"
)

// Redacted replaces the value of a sensitive attribute.
const Redacted = "[REDACTED]"

// defaultSensitiveKeys are matched case-insensitively as substrings of the
// attribute key.
var defaultSensitiveKeys = []string{
	"password",
	"passwd",
	"secret",
	"token",
	"authorization",
	"cookie",
}

// RedactHandler is a slog.Handler that wraps another handler and masks
// attributes whose key looks like a credential.
type RedactHandler struct {
	inner slog.Handler
	keys  []string
}

// NewRedactHandler wraps inner with the default sensitive key list.
func NewRedactHandler(inner slog.Handler) *RedactHandler {
	return &RedactHandler{inner: inner, keys: defaultSensitiveKeys}
}

// NewRedactHandlerWithKeys wraps inner with a custom key list.
func NewRedactHandlerWithKeys(inner slog.Handler, keys ...string) *RedactHandler {
	lowered := make([]string, len(keys))
	for i, k := range keys {
		lowered[i] = strings.ToLower(k)
	}
	return &RedactHandler{inner: inner, keys: lowered}
}

// Enabled implements slog.Handler.
func (h *RedactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *RedactHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.NumAttrs() == 0 {
		return h.inner.Handle(ctx, r)
	}

	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.redact(a))
		return true
	})
	return h.inner.Handle(ctx, out)
}

// WithAttrs implements slog.Handler.
func (h *RedactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	cleaned := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		cleaned[i] = h.redact(a)
	}
	return &RedactHandler{inner: h.inner.WithAttrs(cleaned), keys: h.keys}
}

// WithGroup implements slog.Handler.
func (h *RedactHandler) WithGroup(name string) slog.Handler {
	return &RedactHandler{inner: h.inner.WithGroup(name), keys: h.keys}
}

func (h *RedactHandler) redact(a slog.Attr) slog.Attr {
	if h.sensitive(a.Key) {
		return slog.String(a.Key, Redacted)
	}

	v := a.Value.Resolve()
	if v.Kind() != slog.KindGroup {
		return slog.Attr{Key: a.Key, Value: v}
	}

	group := v.Group()
	cleaned := make([]any, len(group))
	for i, ga := range group {
		cleaned[i] = h.redact(ga)
	}
	return slog.Group(a.Key, cleaned...)
}

func (h *RedactHandler) sensitive(key string) bool {
	key = strings.ToLower(key)
	for _, k := range h.keys {
		if strings.Contains(key, k) {
			return true
		}
	}
	return false
}
