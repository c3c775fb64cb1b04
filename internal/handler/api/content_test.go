// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shootingzone/studio-cms/internal/middleware"
	"github.com/shootingzone/studio-cms/internal/model"
)

func TestSections_CRUD(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/api/sections", map[string]any{
		"page":       "home",
		"sectionKey": "hero",
		"title":      "Welcome",
		"content":    "<p>Hello</p><script>alert(1)</script>",
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[model.Section](t, w)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "hero", created.SectionKey)
	require.NotNil(t, created.Content)
	assert.NotContains(t, *created.Content, "<script>")

	path := fmt.Sprintf("/api/sections/%d", created.ID)
	w = f.do(t, http.MethodGet, path, nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.ID, decode[model.Section](t, w).ID)

	w = f.do(t, http.MethodPut, path, map[string]any{"title": "Hello again"}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[model.Section](t, w)
	require.NotNil(t, updated.Title)
	assert.Equal(t, "Hello again", *updated.Title)
	assert.Equal(t, "hero", updated.SectionKey)

	w = f.do(t, http.MethodDelete, path, nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, SuccessResponse{Success: true}, decode[SuccessResponse](t, w))

	w = f.do(t, http.MethodGet, path, nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Section not found", decode[middleware.APIError](t, w).Error)
}

func TestSections_ValidationError(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/api/sections", map[string]any{"title": "No key"}, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	apiErr := decode[middleware.APIError](t, w)
	assert.Contains(t, apiErr.Fields, "page")
	assert.Contains(t, apiErr.Fields, "sectionKey")
}

func TestInvalidJSONBody(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/api/reviews", "not an object", true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid JSON body", decode[middleware.APIError](t, w).Error)
}

func TestInvalidID(t *testing.T) {
	f := newAPIFixture(t)

	for _, path := range []string{"/api/packages/abc", "/api/reviews/0", "/api/images/-3"} {
		w := f.do(t, http.MethodGet, path, nil, false)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestEmptyListIsArray(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodGet, "/api/reviews", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestPackages_PublishedFilter(t *testing.T) {
	f := newAPIFixture(t)

	for i, published := range []bool{true, false, true} {
		w := f.do(t, http.MethodPost, "/api/packages", map[string]any{
			"discount":    fmt.Sprintf("%d%% OFF", (i+1)*10),
			"title":       fmt.Sprintf("Offer %d", i),
			"isPublished": published,
			"order":       i,
		}, true)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	all := decode[[]model.Package](t, f.do(t, http.MethodGet, "/api/packages", nil, false))
	assert.Len(t, all, 3)

	published := decode[[]model.Package](t, f.do(t, http.MethodGet, "/api/packages?published=true", nil, false))
	require.Len(t, published, 2)
	for _, p := range published {
		assert.True(t, p.IsPublished)
	}
}

func TestMenuPackages_CategoryFilter(t *testing.T) {
	f := newAPIFixture(t)

	for _, category := range []string{model.CategoryNewborn, model.CategoryNewborn, model.CategoryMaternity} {
		w := f.do(t, http.MethodPost, "/api/menupackages", map[string]any{
			"category":      category,
			"title":         "Classic",
			"duration":      "2 hours",
			"features":      []string{"10 edited photos"},
			"originalPrice": "₹12,000",
			"price":         "₹9,999",
		}, true)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	newborn := decode[[]model.MenuPackage](t, f.do(t, http.MethodGet, "/api/menupackages?category=newbornshoot", nil, false))
	assert.Len(t, newborn, 2)

	none := decode[[]model.MenuPackage](t, f.do(t, http.MethodGet, "/api/menupackages?category=weddingshoot", nil, false))
	assert.Empty(t, none)

	w := f.do(t, http.MethodPost, "/api/menupackages", map[string]any{
		"category":      "weddingshoot",
		"title":         "Classic",
		"duration":      "2 hours",
		"features":      []string{"x"},
		"originalPrice": "1",
		"price":         "1",
	}, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[middleware.APIError](t, w).Fields, "category")
}

func TestReviews_DefaultsAndNotFound(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/api/reviews", map[string]any{
		"name": "Anitha",
		"text": "Lovely newborn photos",
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	rev := decode[model.Review](t, w)
	assert.Equal(t, 5, rev.Rating)
	assert.Equal(t, "google", rev.Platform)

	w = f.do(t, http.MethodDelete, fmt.Sprintf("/api/reviews/%d", rev.ID+100), nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
