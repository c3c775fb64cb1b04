// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/shootingzone/studio-cms/internal/handler"
	"github.com/shootingzone/studio-cms/internal/service"
)

// listFilter reads ?published=true. Without it anonymous callers see drafts.
// TODO: restrict unfiltered lists to admins once the public site always
// sends published=true.
func listFilter(r *http.Request) service.ListFilter {
	return service.ListFilter{PublishedOnly: handler.PublishedOnly(r)}
}

// writeList writes items as a JSON array, never null.
func writeList[T any](w http.ResponseWriter, r *http.Request, items []T, err error) {
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, items)
}

func writeEntity[T any](w http.ResponseWriter, r *http.Request, status int, entity T, err error) {
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, status, entity)
}

func writeDeleted(w http.ResponseWriter, r *http.Request, message string, err error) {
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: message})
}

// =============================================================================
// SECTIONS
// =============================================================================

// ListSections handles GET /api/sections
func (h *Handler) ListSections(w http.ResponseWriter, r *http.Request) {
	items, err := h.content.ListSections(r.Context(), listFilter(r))
	writeList(w, r, items, err)
}

// GetSection handles GET /api/sections/{id}
func (h *Handler) GetSection(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	sec, err := h.content.GetSection(r.Context(), id)
	writeEntity(w, r, http.StatusOK, sec, err)
}

// CreateSection handles POST /api/sections
func (h *Handler) CreateSection(w http.ResponseWriter, r *http.Request) {
	var in service.SectionInput
	if !decodeOrReject(w, r, &in) {
		return
	}
	sec, err := h.content.CreateSection(r.Context(), in)
	writeEntity(w, r, http.StatusCreated, sec, err)
}

// UpdateSection handles PUT /api/sections/{id}
func (h *Handler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var in service.SectionInput
	if !decodeOrReject(w, r, &in) {
		return
	}
	sec, err := h.content.UpdateSection(r.Context(), id, in)
	writeEntity(w, r, http.StatusOK, sec, err)
}

// DeleteSection handles DELETE /api/sections/{id}
func (h *Handler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	writeDeleted(w, r, "", h.content.DeleteSection(r.Context(), id))
}

// =============================================================================
// IMAGES
// =============================================================================

// ListImages handles GET /api/images
func (h *Handler) ListImages(w http.ResponseWriter, r *http.Request) {
	items, err := h.content.ListImages(r.Context(), listFilter(r))
	writeList(w, r, items, err)
}

// GetImage handles GET /api/images/{id}
func (h *Handler) GetImage(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	img, err := h.content.GetImage(r.Context(), id)
	writeEntity(w, r, http.StatusOK, img, err)
}

// CreateImage handles POST /api/images for images hosted elsewhere.
func (h *Handler) CreateImage(w http.ResponseWriter, r *http.Request) {
	var in service.ImageInput
	if !decodeOrReject(w, r, &in) {
		return
	}
	img, err := h.content.CreateImage(r.Context(), in)
	writeEntity(w, r, http.StatusCreated, img, err)
}

// UpdateImage handles PUT /api/images/{id}
func (h *Handler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var in service.ImageInput
	if !decodeOrReject(w, r, &in) {
		return
	}
	img, err := h.content.UpdateImage(r.Context(), id, in)
	writeEntity(w, r, http.StatusOK, img, err)
}

// DeleteImage handles DELETE /api/images/{id}. A locally stored file is
// removed along with the row.
func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	writeDeleted(w, r, "Image deleted successfully", h.content.DeleteImage(r.Context(), id))
}

// =============================================================================
// PACKAGES
// =============================================================================

// ListPackages handles GET /api/packages
func (h *Handler) ListPackages(w http.ResponseWriter, r *http.Request) {
	items, err := h.content.ListPackages(r.Context(), listFilter(r))
	writeList(w, r, items, err)
}

// GetPackage handles GET /api/packages/{id}
func (h *Handler) GetPackage(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	p, err := h.content.GetPackage(r.Context(), id)
	writeEntity(w, r, http.StatusOK, p, err)
}

// CreatePackage handles POST /api/packages
func (h *Handler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var in service.PackageInput
	if !decodeOrReject(w, r, &in) {
		return
	}
	p, err := h.content.CreatePackage(r.Context(), in)
	writeEntity(w, r, http.StatusCreated, p, err)
}

// UpdatePackage handles PUT /api/packages/{id}
func (h *Handler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var in service.PackageInput
	if !decodeOrReject(w, r, &in) {
		return
	}
	p, err := h.content.UpdatePackage(r.Context(), id, in)
	writeEntity(w, r, http.StatusOK, p, err)
}

// DeletePackage handles DELETE /api/packages/{id}
func (h *Handler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	writeDeleted(w, r, "", h.content.DeletePackage(r.Context(), id))
}

// =============================================================================
// MENU PACKAGES
// =============================================================================

// ListMenuPackages handles GET /api/menupackages?category=&published=
func (h *Handler) ListMenuPackages(w http.ResponseWriter, r *http.Request) {
	f := service.MenuPackageFilter{
		ListFilter: listFilter(r),
		Category:   r.URL.Query().Get("category"),
	}
	items, err := h.content.ListMenuPackages(r.Context(), f)
	writeList(w, r, items, err)
}

// GetMenuPackage handles GET /api/menupackages/{id}
func (h *Handler) GetMenuPackage(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	mp, err := h.content.GetMenuPackage(r.Context(), id)
	writeEntity(w, r, http.StatusOK, mp, err)
}

// CreateMenuPackage handles POST /api/menupackages
func (h *Handler) CreateMenuPackage(w http.ResponseWriter, r *http.Request) {
	var in service.MenuPackageInput
	if !decodeOrReject(w, r, &in) {
		return
	}
	mp, err := h.content.CreateMenuPackage(r.Context(), in)
	writeEntity(w, r, http.StatusCreated, mp, err)
}

// UpdateMenuPackage handles PUT /api/menupackages/{id}
func (h *Handler) UpdateMenuPackage(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var in service.MenuPackageInput
	if !decodeOrReject(w, r, &in) {
		return
	}
	mp, err := h.content.UpdateMenuPackage(r.Context(), id, in)
	writeEntity(w, r, http.StatusOK, mp, err)
}

// DeleteMenuPackage handles DELETE /api/menupackages/{id}
func (h *Handler) DeleteMenuPackage(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	writeDeleted(w, r, "", h.content.DeleteMenuPackage(r.Context(), id))
}

// =============================================================================
// REVIEWS
// =============================================================================

// ListReviews handles GET /api/reviews
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	items, err := h.content.ListReviews(r.Context(), listFilter(r))
	writeList(w, r, items, err)
}

// GetReview handles GET /api/reviews/{id}
func (h *Handler) GetReview(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	rev, err := h.content.GetReview(r.Context(), id)
	writeEntity(w, r, http.StatusOK, rev, err)
}

// CreateReview handles POST /api/reviews
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var in service.ReviewInput
	if !decodeOrReject(w, r, &in) {
		return
	}
	rev, err := h.content.CreateReview(r.Context(), in)
	writeEntity(w, r, http.StatusCreated, rev, err)
}

// UpdateReview handles PUT /api/reviews/{id}
func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var in service.ReviewInput
	if !decodeOrReject(w, r, &in) {
		return
	}
	rev, err := h.content.UpdateReview(r.Context(), id, in)
	writeEntity(w, r, http.StatusOK, rev, err)
}

// DeleteReview handles DELETE /api/reviews/{id}
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	writeDeleted(w, r, "", h.content.DeleteReview(r.Context(), id))
}
