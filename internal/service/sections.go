// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"

	"github.com/shootingzone/studio-cms/internal/apperr"
	"github.com/shootingzone/studio-cms/internal/model"
)

// SectionInput carries client-supplied section fields. Nil fields are left
// unchanged on update and defaulted on create.
type SectionInput struct {
	Page        *string `json:"page"`
	SectionKey  *string `json:"sectionKey"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	IsPublished *bool   `json:"isPublished"`
}

func (in SectionInput) applyTo(sec *model.Section) {
	if in.Page != nil {
		sec.Page = *in.Page
	}
	if in.SectionKey != nil {
		sec.SectionKey = *in.SectionKey
	}
	if in.Title != nil {
		sec.Title = in.Title
	}
	if in.Description != nil {
		sec.Description = sanitizeRich(in.Description)
	}
	if in.Content != nil {
		sec.Content = sanitizeRich(in.Content)
	}
	if in.IsPublished != nil {
		sec.IsPublished = *in.IsPublished
	}
}

// ListSections returns sections ordered by id.
func (s *ContentService) ListSections(ctx context.Context, f ListFilter) ([]model.Section, error) {
	sections, err := cachedList(ctx, s, "sections:"+f.cacheSuffix(), func() ([]model.Section, error) {
		return s.store.ListSections(ctx, f.toStore())
	})
	if err != nil {
		return nil, apperr.Internal("failed to fetch sections", err)
	}
	return sections, nil
}

// GetSection returns a section by id.
func (s *ContentService) GetSection(ctx context.Context, id int64) (model.Section, error) {
	sec, err := s.store.GetSection(ctx, id)
	if err != nil {
		return model.Section{}, readError("section", err)
	}
	return sec, nil
}

// CreateSection validates and inserts a new section.
func (s *ContentService) CreateSection(ctx context.Context, in SectionInput) (model.Section, error) {
	now := s.Now()
	sec := model.Section{
		IsPublished: model.KindSection.DefaultPublished(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	in.applyTo(&sec)

	if err := s.validateStruct(&sec); err != nil {
		return model.Section{}, err
	}
	if err := s.store.CreateSection(ctx, &sec); err != nil {
		return model.Section{}, writeError("section", err)
	}

	s.invalidate(ctx)
	return sec, nil
}

// UpdateSection merges in onto the stored section.
func (s *ContentService) UpdateSection(ctx context.Context, id int64, in SectionInput) (model.Section, error) {
	sec, err := s.store.GetSection(ctx, id)
	if err != nil {
		return model.Section{}, readError("section", err)
	}

	wasPublished := sec.IsPublished
	in.applyTo(&sec)
	sec.UpdatedAt = s.Now()

	if err := s.validateStruct(&sec); err != nil {
		return model.Section{}, err
	}
	if err := s.store.UpdateSection(ctx, &sec); err != nil {
		return model.Section{}, writeError("section", err)
	}

	s.invalidate(ctx)
	logPublishTransition(ctx, model.KindSection, id, wasPublished, sec.IsPublished)
	return sec, nil
}

// DeleteSection removes a section. Images attached to it are kept and lose
// their section reference.
func (s *ContentService) DeleteSection(ctx context.Context, id int64) error {
	if err := s.store.DeleteSection(ctx, id); err != nil {
		return deleteError("section", err)
	}
	s.invalidate(ctx)
	return nil
}
