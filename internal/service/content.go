// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the content collections and the upload pipeline
// on top of the store. Errors returned from here are apperr values the HTTP
// layer maps to status codes.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/shootingzone/studio-cms/internal/apperr"
	"github.com/shootingzone/studio-cms/internal/cache"
	"github.com/shootingzone/studio-cms/internal/imaging"
	"github.com/shootingzone/studio-cms/internal/model"
	"github.com/shootingzone/studio-cms/internal/store"
)

// ContentService provides CRUD over the five content collections.
// Public lists are served from the cache, which every write clears.
type ContentService struct {
	store    *store.Store
	files    *imaging.Processor
	cache    cache.Cacher
	cacheTTL time.Duration
	validate *validator.Validate

	// generation is part of every list key and advances on each write, so a
	// list loaded before a write can never be read back after it.
	generation atomic.Uint64

	// Now is the clock used for createdAt/updatedAt.
	Now func() time.Time
}

// NewContentService creates a content service. c may be nil to disable caching.
func NewContentService(st *store.Store, files *imaging.Processor, c cache.Cacher, cacheTTL time.Duration) *ContentService {
	return &ContentService{
		store:    st,
		files:    files,
		cache:    c,
		cacheTTL: cacheTTL,
		validate: newValidator(),
		Now:      func() time.Time { return time.Now().UTC() },
	}
}

// ListFilter is the public list filter.
type ListFilter struct {
	// PublishedOnly restricts the list to published rows. When false every
	// row is returned, drafts included.
	PublishedOnly bool
}

func (f ListFilter) toStore() store.ListFilter {
	if !f.PublishedOnly {
		return store.ListFilter{}
	}
	published := true
	return store.ListFilter{Published: &published}
}

func (f ListFilter) cacheSuffix() string {
	if f.PublishedOnly {
		return "published"
	}
	return "all"
}

func cachedList[T any](ctx context.Context, s *ContentService, key string, load func() ([]T, error)) ([]T, error) {
	key = fmt.Sprintf("%s@%d", key, s.generation.Load())
	return cache.GetOrLoad(ctx, s.cache, key, s.cacheTTL, load)
}

// invalidate drops every cached list after a write.
func (s *ContentService) invalidate(ctx context.Context) {
	s.generation.Add(1)
	if s.cache == nil {
		return
	}
	if err := s.cache.Clear(ctx); err != nil {
		slog.Warn("failed to clear content cache", "error", err)
	}
}

// logPublishTransition records a draft/published change made by an update.
func logPublishTransition(ctx context.Context, kind model.Kind, id int64, before, after bool) {
	from, to := model.StateOf(before), model.StateOf(after)
	if from == to {
		return
	}
	slog.InfoContext(ctx, "publish state changed", "kind", kind, "id", id, "from", from, "to", to)
}

// readError maps a store read failure for entity.
func readError(entity string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(entity)
	}
	return apperr.Internal("failed to load "+entity, err)
}

// constraintFields maps unique columns to the JSON field reported to clients.
var constraintFields = map[string]string{
	"section_key": "sectionKey",
	"image_key":   "imageKey",
}

// writeError maps a store write failure for entity.
func writeError(entity string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(entity)
	}

	var ce *store.ConstraintError
	if errors.As(err, &ce) {
		switch {
		case errors.Is(ce, store.ErrDuplicate):
			field, ok := constraintFields[ce.Column]
			if !ok {
				field = ce.Column
			}
			return apperr.Validation(map[string]string{field: "already exists"})
		case errors.Is(ce, store.ErrReference):
			return apperr.Validation(map[string]string{"sectionId": "does not exist"})
		}
	}

	return apperr.Internal("failed to save "+entity, err)
}

// deleteError maps a store delete failure for entity.
func deleteError(entity string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(entity)
	}
	return apperr.Internal("failed to delete "+entity, err)
}
