// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/shootingzone/studio-cms/internal/model"
)

const menuPackageColumns = `id, category, title, duration, features, video_details, complimentary_items,
	original_price, price, discount, badge, is_published, sort_order, created_at, updated_at`

// ListMenuPackages returns menu packages ordered by display order, then id.
func (s *Store) ListMenuPackages(ctx context.Context, f MenuPackageFilter) ([]model.MenuPackage, error) {
	query, args := buildListQuery(menuPackageColumns, "menu_packages", f.predicates(), orderFor(model.KindMenuPackage))
	out := []model.MenuPackage{}
	if err := s.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetMenuPackage returns a menu package by id.
func (s *Store) GetMenuPackage(ctx context.Context, id int64) (model.MenuPackage, error) {
	var mp model.MenuPackage
	err := s.db.GetContext(ctx, &mp, `SELECT `+menuPackageColumns+` FROM menu_packages WHERE id = ?`, id)
	return mp, err
}

// CreateMenuPackage inserts mp and sets its id.
func (s *Store) CreateMenuPackage(ctx context.Context, mp *model.MenuPackage) error {
	id, err := insertID(s.db.NamedExecContext(ctx, `
		INSERT INTO menu_packages (category, title, duration, features, video_details, complimentary_items,
			original_price, price, discount, badge, is_published, sort_order, created_at, updated_at)
		VALUES (:category, :title, :duration, :features, :video_details, :complimentary_items,
			:original_price, :price, :discount, :badge, :is_published, :sort_order, :created_at, :updated_at)`, mp))
	if err != nil {
		return err
	}
	mp.ID = id
	return nil
}

// UpdateMenuPackage writes every mutable column of mp.
func (s *Store) UpdateMenuPackage(ctx context.Context, mp *model.MenuPackage) error {
	return execAffectingOne(s.db.NamedExecContext(ctx, `
		UPDATE menu_packages SET category = :category, title = :title, duration = :duration,
			features = :features, video_details = :video_details, complimentary_items = :complimentary_items,
			original_price = :original_price, price = :price, discount = :discount, badge = :badge,
			is_published = :is_published, sort_order = :sort_order, updated_at = :updated_at
		WHERE id = :id`, mp))
}

// DeleteMenuPackage removes a menu package.
func (s *Store) DeleteMenuPackage(ctx context.Context, id int64) error {
	return execAffectingOne(s.db.ExecContext(ctx, `DELETE FROM menu_packages WHERE id = ?`, id))
}
