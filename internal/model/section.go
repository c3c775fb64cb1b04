// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Section is one editable block of marketing copy on a page.
// SectionKey is the stable reference the frontend looks content up by.
type Section struct {
	ID          int64     `db:"id" json:"id"`
	Page        string    `db:"page" json:"page" validate:"required,max=100"`
	SectionKey  string    `db:"section_key" json:"sectionKey" validate:"required,max=100"`
	Title       *string   `db:"title" json:"title" validate:"omitempty,max=255"`
	Description *string   `db:"description" json:"description"`
	Content     *string   `db:"content" json:"content"`
	IsPublished bool      `db:"is_published" json:"isPublished"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
