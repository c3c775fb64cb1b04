// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/shootingzone/studio-cms/internal/model"
)

const packageColumns = `id, discount, title, badge, is_published, sort_order, created_at, updated_at`

// ListPackages returns packages ordered by display order, then id.
func (s *Store) ListPackages(ctx context.Context, f ListFilter) ([]model.Package, error) {
	query, args := buildListQuery(packageColumns, "packages", f.predicates(), orderFor(model.KindPackage))
	out := []model.Package{}
	if err := s.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPackage returns a package by id.
func (s *Store) GetPackage(ctx context.Context, id int64) (model.Package, error) {
	var p model.Package
	err := s.db.GetContext(ctx, &p, `SELECT `+packageColumns+` FROM packages WHERE id = ?`, id)
	return p, err
}

// CreatePackage inserts p and sets its id.
func (s *Store) CreatePackage(ctx context.Context, p *model.Package) error {
	id, err := insertID(s.db.NamedExecContext(ctx, `
		INSERT INTO packages (discount, title, badge, is_published, sort_order, created_at, updated_at)
		VALUES (:discount, :title, :badge, :is_published, :sort_order, :created_at, :updated_at)`, p))
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

// UpdatePackage writes every mutable column of p.
func (s *Store) UpdatePackage(ctx context.Context, p *model.Package) error {
	return execAffectingOne(s.db.NamedExecContext(ctx, `
		UPDATE packages SET discount = :discount, title = :title, badge = :badge,
			is_published = :is_published, sort_order = :sort_order, updated_at = :updated_at
		WHERE id = :id`, p))
}

// DeletePackage removes a package.
func (s *Store) DeletePackage(ctx context.Context, id int64) error {
	return execAffectingOne(s.db.ExecContext(ctx, `DELETE FROM packages WHERE id = ?`, id))
}

// CountPackages returns the number of packages.
func (s *Store) CountPackages(ctx context.Context) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM packages`)
	return n, err
}
