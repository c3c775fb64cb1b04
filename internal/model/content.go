// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Kind identifies one of the content collections.
type Kind string

// Content kinds.
const (
	KindSection     Kind = "section"
	KindImage       Kind = "image"
	KindPackage     Kind = "package"
	KindMenuPackage Kind = "menupackage"
	KindReview      Kind = "review"
)

// DefaultPublished returns the isPublished value a new record of this kind gets
// when the client does not set one. Sections and images start as drafts;
// pricing tiles and reviews are visible immediately.
func (k Kind) DefaultPublished() bool {
	switch k {
	case KindSection, KindImage:
		return false
	default:
		return true
	}
}

// HasOrder reports whether records of this kind carry an explicit display order.
func (k Kind) HasOrder() bool {
	switch k {
	case KindImage, KindPackage, KindMenuPackage:
		return true
	default:
		return false
	}
}

// PublishState is the visibility state of a content record.
type PublishState string

// Publish states.
const (
	StateDraft     PublishState = "draft"
	StatePublished PublishState = "published"
)

// StateOf maps the stored flag to a publish state.
func StateOf(isPublished bool) PublishState {
	if isPublished {
		return StatePublished
	}
	return StateDraft
}
