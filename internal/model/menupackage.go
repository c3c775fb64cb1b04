// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Menu package categories (shoot types).
const (
	CategoryNewborn   = "newbornshoot"
	CategoryModel     = "modelshoot"
	CategoryMaternity = "maternityshoot"
	CategoryBirthday  = "birthdayshoot"
	CategoryBaby      = "babyshoot"
)

// MenuCategories lists the accepted menu package categories.
var MenuCategories = []string{
	CategoryNewborn,
	CategoryModel,
	CategoryMaternity,
	CategoryBirthday,
	CategoryBaby,
}

// IsValidCategory reports whether c is a known menu package category.
func IsValidCategory(c string) bool {
	for _, known := range MenuCategories {
		if c == known {
			return true
		}
	}
	return false
}

// MenuPackage is one priced offering inside a shoot category.
type MenuPackage struct {
	ID                 int64      `db:"id" json:"id"`
	Category           string     `db:"category" json:"category" validate:"required,oneof=newbornshoot modelshoot maternityshoot birthdayshoot babyshoot"`
	Title              string     `db:"title" json:"title" validate:"required"`
	Duration           string     `db:"duration" json:"duration" validate:"required"`
	Features           StringList `db:"features" json:"features" validate:"required,min=1,dive,required"`
	VideoDetails       StringList `db:"video_details" json:"videoDetails"`
	ComplimentaryItems StringList `db:"complimentary_items" json:"complimentaryItems"`
	OriginalPrice      string     `db:"original_price" json:"originalPrice" validate:"required"`
	Price              string     `db:"price" json:"price" validate:"required"`
	Discount           *string    `db:"discount" json:"discount"`
	Badge              *string    `db:"badge" json:"badge"`
	IsPublished        bool       `db:"is_published" json:"isPublished"`
	Order              int        `db:"sort_order" json:"order"`
	CreatedAt          time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updatedAt"`
}
