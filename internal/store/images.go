// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/shootingzone/studio-cms/internal/model"
)

const imageColumns = `id, section_id, image_key, image_path, alt_text, sort_order, is_published, created_at, updated_at`

// ListImages returns images ordered by display order, then id.
func (s *Store) ListImages(ctx context.Context, f ListFilter) ([]model.Image, error) {
	query, args := buildListQuery(imageColumns, "images", f.predicates(), orderFor(model.KindImage))
	out := []model.Image{}
	if err := s.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetImage returns an image by id.
func (s *Store) GetImage(ctx context.Context, id int64) (model.Image, error) {
	var img model.Image
	err := s.db.GetContext(ctx, &img, `SELECT `+imageColumns+` FROM images WHERE id = ?`, id)
	return img, err
}

// CreateImage inserts img and sets its id.
func (s *Store) CreateImage(ctx context.Context, img *model.Image) error {
	id, err := insertID(s.db.NamedExecContext(ctx, `
		INSERT INTO images (section_id, image_key, image_path, alt_text, sort_order, is_published, created_at, updated_at)
		VALUES (:section_id, :image_key, :image_path, :alt_text, :sort_order, :is_published, :created_at, :updated_at)`, img))
	if err != nil {
		return err
	}
	img.ID = id
	return nil
}

// UpdateImage writes every mutable column of img.
func (s *Store) UpdateImage(ctx context.Context, img *model.Image) error {
	return execAffectingOne(s.db.NamedExecContext(ctx, `
		UPDATE images SET section_id = :section_id, image_key = :image_key, image_path = :image_path,
			alt_text = :alt_text, sort_order = :sort_order, is_published = :is_published,
			updated_at = :updated_at
		WHERE id = :id`, img))
}

// DeleteImage removes an image row.
func (s *Store) DeleteImage(ctx context.Context, id int64) error {
	return execAffectingOne(s.db.ExecContext(ctx, `DELETE FROM images WHERE id = ?`, id))
}
