// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"log/slog"

	"github.com/shootingzone/studio-cms/internal/apperr"
	"github.com/shootingzone/studio-cms/internal/model"
)

// ImageInput carries client-supplied image fields.
type ImageInput struct {
	SectionID   *int64  `json:"sectionId"`
	ImageKey    *string `json:"imageKey"`
	ImagePath   *string `json:"imagePath"`
	AltText     *string `json:"altText"`
	Order       *int    `json:"order"`
	IsPublished *bool   `json:"isPublished"`
}

func (in ImageInput) applyTo(img *model.Image) {
	if in.SectionID != nil {
		img.SectionID = in.SectionID
	}
	if in.ImageKey != nil {
		img.ImageKey = *in.ImageKey
	}
	if in.ImagePath != nil {
		img.ImagePath = *in.ImagePath
	}
	if in.AltText != nil {
		img.AltText = in.AltText
	}
	if in.Order != nil {
		img.Order = *in.Order
	}
	if in.IsPublished != nil {
		img.IsPublished = *in.IsPublished
	}
}

// checkImage validates img and confirms its section exists.
func (s *ContentService) checkImage(ctx context.Context, img *model.Image) error {
	if err := s.validateStruct(img); err != nil {
		return err
	}
	if img.SectionID == nil {
		return nil
	}
	ok, err := s.store.SectionExists(ctx, *img.SectionID)
	if err != nil {
		return apperr.Internal("failed to check section", err)
	}
	if !ok {
		return apperr.Validation(map[string]string{"sectionId": "does not exist"})
	}
	return nil
}

// ListImages returns images ordered by display order, then id.
func (s *ContentService) ListImages(ctx context.Context, f ListFilter) ([]model.Image, error) {
	images, err := cachedList(ctx, s, "images:"+f.cacheSuffix(), func() ([]model.Image, error) {
		return s.store.ListImages(ctx, f.toStore())
	})
	if err != nil {
		return nil, apperr.Internal("failed to fetch images", err)
	}
	return images, nil
}

// GetImage returns an image by id.
func (s *ContentService) GetImage(ctx context.Context, id int64) (model.Image, error) {
	img, err := s.store.GetImage(ctx, id)
	if err != nil {
		return model.Image{}, readError("image", err)
	}
	return img, nil
}

// CreateImage validates and inserts a new image record.
func (s *ContentService) CreateImage(ctx context.Context, in ImageInput) (model.Image, error) {
	now := s.Now()
	img := model.Image{
		IsPublished: model.KindImage.DefaultPublished(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	in.applyTo(&img)

	if err := s.checkImage(ctx, &img); err != nil {
		return model.Image{}, err
	}
	if err := s.store.CreateImage(ctx, &img); err != nil {
		return model.Image{}, writeError("image", err)
	}

	s.invalidate(ctx)
	return img, nil
}

// UpdateImage merges in onto the stored image.
func (s *ContentService) UpdateImage(ctx context.Context, id int64, in ImageInput) (model.Image, error) {
	img, err := s.store.GetImage(ctx, id)
	if err != nil {
		return model.Image{}, readError("image", err)
	}

	wasPublished := img.IsPublished
	in.applyTo(&img)
	img.UpdatedAt = s.Now()

	if err := s.checkImage(ctx, &img); err != nil {
		return model.Image{}, err
	}
	if err := s.store.UpdateImage(ctx, &img); err != nil {
		return model.Image{}, writeError("image", err)
	}

	s.invalidate(ctx)
	logPublishTransition(ctx, model.KindImage, id, wasPublished, img.IsPublished)
	return img, nil
}

// DeleteImage removes the image record and, for locally stored uploads, the
// file behind it. Remote URLs are left alone.
func (s *ContentService) DeleteImage(ctx context.Context, id int64) error {
	img, err := s.store.GetImage(ctx, id)
	if err != nil {
		return readError("image", err)
	}

	if err := s.store.DeleteImage(ctx, id); err != nil {
		return deleteError("image", err)
	}
	s.invalidate(ctx)

	if name := img.LocalFilename(); name != "" && s.files != nil {
		if err := s.files.Remove(name); err != nil {
			slog.Warn("failed to remove image file", "image_id", id, "path", img.ImagePath, "error", err)
		}
	}
	return nil
}
