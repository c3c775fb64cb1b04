// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/shootingzone/studio-cms/internal/model"
)

const sectionColumns = `id, page, section_key, title, description, content, is_published, created_at, updated_at`

// ListSections returns sections ordered by id.
func (s *Store) ListSections(ctx context.Context, f ListFilter) ([]model.Section, error) {
	query, args := buildListQuery(sectionColumns, "sections", f.predicates(), orderFor(model.KindSection))
	out := []model.Section{}
	if err := s.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSection returns a section by id.
func (s *Store) GetSection(ctx context.Context, id int64) (model.Section, error) {
	var sec model.Section
	err := s.db.GetContext(ctx, &sec, `SELECT `+sectionColumns+` FROM sections WHERE id = ?`, id)
	return sec, err
}

// SectionExists reports whether a section with this id exists.
func (s *Store) SectionExists(ctx context.Context, id int64) (bool, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM sections WHERE id = ?`, id); err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateSection inserts sec and sets its id.
func (s *Store) CreateSection(ctx context.Context, sec *model.Section) error {
	id, err := insertID(s.db.NamedExecContext(ctx, `
		INSERT INTO sections (page, section_key, title, description, content, is_published, created_at, updated_at)
		VALUES (:page, :section_key, :title, :description, :content, :is_published, :created_at, :updated_at)`, sec))
	if err != nil {
		return err
	}
	sec.ID = id
	return nil
}

// UpdateSection writes every mutable column of sec. created_at is never touched.
func (s *Store) UpdateSection(ctx context.Context, sec *model.Section) error {
	return execAffectingOne(s.db.NamedExecContext(ctx, `
		UPDATE sections SET page = :page, section_key = :section_key, title = :title,
			description = :description, content = :content, is_published = :is_published,
			updated_at = :updated_at
		WHERE id = :id`, sec))
}

// DeleteSection removes a section. Images referencing it keep existing.
func (s *Store) DeleteSection(ctx context.Context, id int64) error {
	return execAffectingOne(s.db.ExecContext(ctx, `DELETE FROM sections WHERE id = ?`, id))
}
