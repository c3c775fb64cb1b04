// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"

	"github.com/shootingzone/studio-cms/internal/apperr"
	"github.com/shootingzone/studio-cms/internal/model"
)

// PackageInput carries client-supplied package fields.
type PackageInput struct {
	Discount    *string `json:"discount"`
	Title       *string `json:"title"`
	Badge       *string `json:"badge"`
	IsPublished *bool   `json:"isPublished"`
	Order       *int    `json:"order"`
}

func (in PackageInput) applyTo(p *model.Package) {
	if in.Discount != nil {
		p.Discount = *in.Discount
	}
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Badge != nil {
		p.Badge = in.Badge
	}
	if in.IsPublished != nil {
		p.IsPublished = *in.IsPublished
	}
	if in.Order != nil {
		p.Order = *in.Order
	}
}

// ListPackages returns packages ordered by display order, then id.
func (s *ContentService) ListPackages(ctx context.Context, f ListFilter) ([]model.Package, error) {
	packages, err := cachedList(ctx, s, "packages:"+f.cacheSuffix(), func() ([]model.Package, error) {
		return s.store.ListPackages(ctx, f.toStore())
	})
	if err != nil {
		return nil, apperr.Internal("failed to fetch packages", err)
	}
	return packages, nil
}

// GetPackage returns a package by id.
func (s *ContentService) GetPackage(ctx context.Context, id int64) (model.Package, error) {
	p, err := s.store.GetPackage(ctx, id)
	if err != nil {
		return model.Package{}, readError("package", err)
	}
	return p, nil
}

// CreatePackage validates and inserts a new package.
func (s *ContentService) CreatePackage(ctx context.Context, in PackageInput) (model.Package, error) {
	now := s.Now()
	p := model.Package{
		IsPublished: model.KindPackage.DefaultPublished(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	in.applyTo(&p)

	if err := s.validateStruct(&p); err != nil {
		return model.Package{}, err
	}
	if err := s.store.CreatePackage(ctx, &p); err != nil {
		return model.Package{}, writeError("package", err)
	}

	s.invalidate(ctx)
	return p, nil
}

// UpdatePackage merges in onto the stored package.
func (s *ContentService) UpdatePackage(ctx context.Context, id int64, in PackageInput) (model.Package, error) {
	p, err := s.store.GetPackage(ctx, id)
	if err != nil {
		return model.Package{}, readError("package", err)
	}

	wasPublished := p.IsPublished
	in.applyTo(&p)
	p.UpdatedAt = s.Now()

	if err := s.validateStruct(&p); err != nil {
		return model.Package{}, err
	}
	if err := s.store.UpdatePackage(ctx, &p); err != nil {
		return model.Package{}, writeError("package", err)
	}

	s.invalidate(ctx)
	logPublishTransition(ctx, model.KindPackage, id, wasPublished, p.IsPublished)
	return p, nil
}

// DeletePackage removes a package.
func (s *ContentService) DeletePackage(ctx context.Context, id int64) error {
	if err := s.store.DeletePackage(ctx, id); err != nil {
		return deleteError("package", err)
	}
	s.invalidate(ctx)
	return nil
}
