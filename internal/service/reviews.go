// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"

	"github.com/shootingzone/studio-cms/internal/apperr"
	"github.com/shootingzone/studio-cms/internal/model"
)

// ReviewInput carries client-supplied review fields.
type ReviewInput struct {
	Name        *string `json:"name"`
	Text        *string `json:"text"`
	Rating      *int    `json:"rating"`
	Platform    *string `json:"platform"`
	YearsAgo    *string `json:"yearsAgo"`
	IsPublished *bool   `json:"isPublished"`
}

func (in ReviewInput) applyTo(r *model.Review) {
	if in.Name != nil {
		r.Name = *in.Name
	}
	if in.Text != nil {
		r.Text = plainText(*in.Text)
	}
	if in.Rating != nil {
		r.Rating = *in.Rating
	}
	if in.Platform != nil {
		r.Platform = *in.Platform
	}
	if in.YearsAgo != nil {
		r.YearsAgo = *in.YearsAgo
	}
	if in.IsPublished != nil {
		r.IsPublished = *in.IsPublished
	}
}

// ListReviews returns reviews ordered by id.
func (s *ContentService) ListReviews(ctx context.Context, f ListFilter) ([]model.Review, error) {
	reviews, err := cachedList(ctx, s, "reviews:"+f.cacheSuffix(), func() ([]model.Review, error) {
		return s.store.ListReviews(ctx, f.toStore())
	})
	if err != nil {
		return nil, apperr.Internal("failed to fetch reviews", err)
	}
	return reviews, nil
}

// GetReview returns a review by id.
func (s *ContentService) GetReview(ctx context.Context, id int64) (model.Review, error) {
	r, err := s.store.GetReview(ctx, id)
	if err != nil {
		return model.Review{}, readError("review", err)
	}
	return r, nil
}

// CreateReview validates and inserts a new review.
func (s *ContentService) CreateReview(ctx context.Context, in ReviewInput) (model.Review, error) {
	now := s.Now()
	r := model.Review{
		Rating:      model.DefaultRating,
		Platform:    model.DefaultPlatform,
		YearsAgo:    model.DefaultYearsAgo,
		IsPublished: model.KindReview.DefaultPublished(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	in.applyTo(&r)

	if err := s.validateStruct(&r); err != nil {
		return model.Review{}, err
	}
	if err := s.store.CreateReview(ctx, &r); err != nil {
		return model.Review{}, writeError("review", err)
	}

	s.invalidate(ctx)
	return r, nil
}

// UpdateReview merges in onto the stored review.
func (s *ContentService) UpdateReview(ctx context.Context, id int64, in ReviewInput) (model.Review, error) {
	r, err := s.store.GetReview(ctx, id)
	if err != nil {
		return model.Review{}, readError("review", err)
	}

	wasPublished := r.IsPublished
	in.applyTo(&r)
	r.UpdatedAt = s.Now()

	if err := s.validateStruct(&r); err != nil {
		return model.Review{}, err
	}
	if err := s.store.UpdateReview(ctx, &r); err != nil {
		return model.Review{}, writeError("review", err)
	}

	s.invalidate(ctx)
	logPublishTransition(ctx, model.KindReview, id, wasPublished, r.IsPublished)
	return r, nil
}

// DeleteReview removes a review.
func (s *ContentService) DeleteReview(ctx context.Context, id int64) error {
	if err := s.store.DeleteReview(ctx, id); err != nil {
		return deleteError("review", err)
	}
	s.invalidate(ctx)
	return nil
}
