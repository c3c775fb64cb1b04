// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/shootingzone/studio-cms/internal/model"
)

const reviewColumns = `id, name, text, rating, platform, years_ago, is_published, created_at, updated_at`

// ListReviews returns reviews ordered by id.
func (s *Store) ListReviews(ctx context.Context, f ListFilter) ([]model.Review, error) {
	query, args := buildListQuery(reviewColumns, "reviews", f.predicates(), orderFor(model.KindReview))
	out := []model.Review{}
	if err := s.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetReview returns a review by id.
func (s *Store) GetReview(ctx context.Context, id int64) (model.Review, error) {
	var r model.Review
	err := s.db.GetContext(ctx, &r, `SELECT `+reviewColumns+` FROM reviews WHERE id = ?`, id)
	return r, err
}

// CreateReview inserts r and sets its id.
func (s *Store) CreateReview(ctx context.Context, r *model.Review) error {
	id, err := insertID(s.db.NamedExecContext(ctx, `
		INSERT INTO reviews (name, text, rating, platform, years_ago, is_published, created_at, updated_at)
		VALUES (:name, :text, :rating, :platform, :years_ago, :is_published, :created_at, :updated_at)`, r))
	if err != nil {
		return err
	}
	r.ID = id
	return nil
}

// UpdateReview writes every mutable column of r.
func (s *Store) UpdateReview(ctx context.Context, r *model.Review) error {
	return execAffectingOne(s.db.NamedExecContext(ctx, `
		UPDATE reviews SET name = :name, text = :text, rating = :rating, platform = :platform,
			years_ago = :years_ago, is_published = :is_published, updated_at = :updated_at
		WHERE id = :id`, r))
}

// DeleteReview removes a review.
func (s *Store) DeleteReview(ctx context.Context, id int64) error {
	return execAffectingOne(s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id))
}

// CountReviews returns the number of reviews.
func (s *Store) CountReviews(ctx context.Context) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM reviews`)
	return n, err
}
