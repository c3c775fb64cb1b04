// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Package is a simple pricing tile shown on the home page.
type Package struct {
	ID          int64     `db:"id" json:"id"`
	Discount    string    `db:"discount" json:"discount" validate:"required"`
	Title       string    `db:"title" json:"title" validate:"required"`
	Badge       *string   `db:"badge" json:"badge"`
	IsPublished bool      `db:"is_published" json:"isPublished"`
	Order       int       `db:"sort_order" json:"order"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
