// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Review platforms.
const (
	PlatformGoogle    = "google"
	PlatformInstagram = "instagram"
	PlatformWebsite   = "website"
)

// Review defaults.
const (
	DefaultRating   = 5
	DefaultPlatform = PlatformGoogle
	DefaultYearsAgo = "1 year ago"
	MinRating       = 1
	MaxRating       = 5
)

// Review is a customer testimonial.
type Review struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name" validate:"required,max=100"`
	Text        string    `db:"text" json:"text" validate:"required"`
	Rating      int       `db:"rating" json:"rating" validate:"min=1,max=5"`
	Platform    string    `db:"platform" json:"platform" validate:"required,oneof=google instagram website"`
	YearsAgo    string    `db:"years_ago" json:"yearsAgo" validate:"required"`
	IsPublished bool      `db:"is_published" json:"isPublished"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
