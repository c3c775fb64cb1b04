// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shootingzone/studio-cms/internal/middleware"
)

// RouteOptions tunes the per-route middleware.
type RouteOptions struct {
	// RequestTimeout bounds every route except the two upload routes.
	// Zero disables it.
	RequestTimeout time.Duration

	// FormRequests per FormWindow are allowed per client IP on the
	// public contact and pre-registration forms.
	FormRequests int
	FormWindow   time.Duration
}

// DefaultRouteOptions returns the production settings.
func DefaultRouteOptions() RouteOptions {
	return RouteOptions{
		RequestTimeout: 30 * time.Second,
		FormRequests:   5,
		FormWindow:     time.Minute,
	}
}

type resourceHandlers struct {
	list, get, create, update, remove http.HandlerFunc
}

// mountResource registers the five CRUD routes of a collection. Reads are
// public, writes go through gate.
func mountResource(r chi.Router, pattern string, gate func(http.Handler) http.Handler, rh resourceHandlers) {
	r.Get(pattern, rh.list)
	r.Get(pattern+"/{id}", rh.get)
	r.With(gate).Post(pattern, rh.create)
	r.With(gate).Put(pattern+"/{id}", rh.update)
	r.With(gate).Delete(pattern+"/{id}", rh.remove)
}

// Routes mounts the API under /api.
func (h *Handler) Routes(r chi.Router, opts RouteOptions) {
	requireAdmin := middleware.RequireAdmin(h.issuer)

	r.Route("/api", func(r chi.Router) {
		// Uploads run for as long as the transfer takes.
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/images/upload", h.UploadImage)
			r.Post("/images/replace-ftp", h.ReplaceImage)
		})

		r.Group(func(r chi.Router) {
			if opts.RequestTimeout > 0 {
				r.Use(middleware.Timeout(opts.RequestTimeout))
			}

			r.Route("/auth", func(r chi.Router) {
				if h.login != nil {
					r.With(h.login.Middleware()).Post("/login", h.Login)
				} else {
					r.Post("/login", h.Login)
				}
				r.Post("/logout", h.Logout)
				r.Get("/check", h.Check)
			})

			r.Group(func(r chi.Router) {
				if opts.FormRequests > 0 && opts.FormWindow > 0 {
					r.Use(middleware.FormRateLimit(opts.FormRequests, opts.FormWindow))
				}
				r.Post("/contact", h.Contact)
				r.Post("/pre-register", h.PreRegister)
			})

			mountResource(r, "/sections", requireAdmin, resourceHandlers{
				h.ListSections, h.GetSection, h.CreateSection, h.UpdateSection, h.DeleteSection,
			})
			mountResource(r, "/images", requireAdmin, resourceHandlers{
				h.ListImages, h.GetImage, h.CreateImage, h.UpdateImage, h.DeleteImage,
			})
			mountResource(r, "/packages", requireAdmin, resourceHandlers{
				h.ListPackages, h.GetPackage, h.CreatePackage, h.UpdatePackage, h.DeletePackage,
			})
			mountResource(r, "/menupackages", requireAdmin, resourceHandlers{
				h.ListMenuPackages, h.GetMenuPackage, h.CreateMenuPackage, h.UpdateMenuPackage, h.DeleteMenuPackage,
			})
			mountResource(r, "/reviews", requireAdmin, resourceHandlers{
				h.ListReviews, h.GetReview, h.CreateReview, h.UpdateReview, h.DeleteReview,
			})
		})
	})
}
