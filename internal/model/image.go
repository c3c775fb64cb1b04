// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strings"
	"time"
)

// UploadsURLPrefix is the public URL prefix of locally stored uploads.
const UploadsURLPrefix = "/uploads/"

// Image is a displayable picture, optionally attached to a section.
type Image struct {
	ID          int64     `db:"id" json:"id"`
	SectionID   *int64    `db:"section_id" json:"sectionId"`
	ImageKey    string    `db:"image_key" json:"imageKey" validate:"required,max=100"`
	ImagePath   string    `db:"image_path" json:"imagePath" validate:"required"`
	AltText     *string   `db:"alt_text" json:"altText"`
	Order       int       `db:"sort_order" json:"order"`
	IsPublished bool      `db:"is_published" json:"isPublished"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// LocalFilename returns the stored filename when the image lives in the
// local uploads directory, or "" for remote URLs.
func (i *Image) LocalFilename() string {
	if !strings.HasPrefix(i.ImagePath, UploadsURLPrefix) {
		return ""
	}
	return strings.TrimPrefix(i.ImagePath, UploadsURLPrefix)
}
