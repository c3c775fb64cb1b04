// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"strconv"

	"github.com/shootingzone/studio-cms/internal/apperr"
	"github.com/shootingzone/studio-cms/internal/model"
	"github.com/shootingzone/studio-cms/internal/store"
)

const menuPackageEntity = "menu package"

// MenuPackageInput carries client-supplied menu package fields.
type MenuPackageInput struct {
	Category           *string          `json:"category"`
	Title              *string          `json:"title"`
	Duration           *string          `json:"duration"`
	Features           model.StringList `json:"features"`
	VideoDetails       model.StringList `json:"videoDetails"`
	ComplimentaryItems model.StringList `json:"complimentaryItems"`
	OriginalPrice      *string          `json:"originalPrice"`
	Price              *string          `json:"price"`
	Discount           *string          `json:"discount"`
	Badge              *string          `json:"badge"`
	IsPublished        *bool            `json:"isPublished"`
	Order              *int             `json:"order"`
}

func (in MenuPackageInput) applyTo(mp *model.MenuPackage) {
	if in.Category != nil {
		mp.Category = *in.Category
	}
	if in.Title != nil {
		mp.Title = *in.Title
	}
	if in.Duration != nil {
		mp.Duration = *in.Duration
	}
	if in.Features != nil {
		mp.Features = in.Features
	}
	if in.VideoDetails != nil {
		mp.VideoDetails = in.VideoDetails
	}
	if in.ComplimentaryItems != nil {
		mp.ComplimentaryItems = in.ComplimentaryItems
	}
	if in.OriginalPrice != nil {
		mp.OriginalPrice = *in.OriginalPrice
	}
	if in.Price != nil {
		mp.Price = *in.Price
	}
	if in.Discount != nil {
		mp.Discount = in.Discount
	}
	if in.Badge != nil {
		mp.Badge = in.Badge
	}
	if in.IsPublished != nil {
		mp.IsPublished = *in.IsPublished
	}
	if in.Order != nil {
		mp.Order = *in.Order
	}
}

// MenuPackageFilter narrows the menu package list.
type MenuPackageFilter struct {
	ListFilter
	// Category, when non-empty, keeps only packages of that exact category.
	Category string
}

func (f MenuPackageFilter) toStore() store.MenuPackageFilter {
	out := store.MenuPackageFilter{ListFilter: f.ListFilter.toStore()}
	if f.Category != "" {
		category := f.Category
		out.Category = &category
	}
	return out
}

// ListMenuPackages returns menu packages ordered by display order, then id.
// An unknown category matches nothing and is answered without a cache entry.
func (s *ContentService) ListMenuPackages(ctx context.Context, f MenuPackageFilter) ([]model.MenuPackage, error) {
	if f.Category != "" && !model.IsValidCategory(f.Category) {
		return []model.MenuPackage{}, nil
	}
	key := "menupackages:" + f.cacheSuffix() + ":" + strconv.Quote(f.Category)
	packages, err := cachedList(ctx, s, key, func() ([]model.MenuPackage, error) {
		return s.store.ListMenuPackages(ctx, f.toStore())
	})
	if err != nil {
		return nil, apperr.Internal("failed to fetch menu packages", err)
	}
	return packages, nil
}

// GetMenuPackage returns a menu package by id.
func (s *ContentService) GetMenuPackage(ctx context.Context, id int64) (model.MenuPackage, error) {
	mp, err := s.store.GetMenuPackage(ctx, id)
	if err != nil {
		return model.MenuPackage{}, readError(menuPackageEntity, err)
	}
	return mp, nil
}

// CreateMenuPackage validates and inserts a new menu package.
func (s *ContentService) CreateMenuPackage(ctx context.Context, in MenuPackageInput) (model.MenuPackage, error) {
	now := s.Now()
	mp := model.MenuPackage{
		IsPublished: model.KindMenuPackage.DefaultPublished(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	in.applyTo(&mp)

	if err := s.validateStruct(&mp); err != nil {
		return model.MenuPackage{}, err
	}
	if err := s.store.CreateMenuPackage(ctx, &mp); err != nil {
		return model.MenuPackage{}, writeError(menuPackageEntity, err)
	}

	s.invalidate(ctx)
	return mp, nil
}

// UpdateMenuPackage merges in onto the stored menu package.
func (s *ContentService) UpdateMenuPackage(ctx context.Context, id int64, in MenuPackageInput) (model.MenuPackage, error) {
	mp, err := s.store.GetMenuPackage(ctx, id)
	if err != nil {
		return model.MenuPackage{}, readError(menuPackageEntity, err)
	}

	wasPublished := mp.IsPublished
	in.applyTo(&mp)
	mp.UpdatedAt = s.Now()

	if err := s.validateStruct(&mp); err != nil {
		return model.MenuPackage{}, err
	}
	if err := s.store.UpdateMenuPackage(ctx, &mp); err != nil {
		return model.MenuPackage{}, writeError(menuPackageEntity, err)
	}

	s.invalidate(ctx)
	logPublishTransition(ctx, model.KindMenuPackage, id, wasPublished, mp.IsPublished)
	return mp, nil
}

// DeleteMenuPackage removes a menu package.
func (s *ContentService) DeleteMenuPackage(ctx context.Context, id int64) error {
	if err := s.store.DeleteMenuPackage(ctx, id); err != nil {
		return deleteError(menuPackageEntity, err)
	}
	s.invalidate(ctx)
	return nil
}
