// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shootingzone/studio-cms/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db), mock
}

func TestDelete_ZeroRowsIsNoRows(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM packages WHERE id = ?").
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.DeletePackage(context.Background(), 9)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_PropagatesQueryError(t *testing.T) {
	s, mock := newMockStore(t)
	boom := errors.New("disk I/O error")

	mock.ExpectQuery("SELECT .* FROM reviews").WillReturnError(boom)

	list, err := s.ListReviews(context.Background(), ListFilter{})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, list)
}

func TestCreate_TranslatesUniqueViolation(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO images").
		WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: images.image_key (2067)"))

	err := s.CreateImage(context.Background(), &model.Image{ImageKey: "hero_1", ImagePath: "/uploads/a.png"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicate)

	var ce *ConstraintError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "image_key", ce.Column)
}

func TestOrderFor(t *testing.T) {
	tests := []struct {
		kind model.Kind
		want string
	}{
		{model.KindSection, orderByID},
		{model.KindReview, orderByID},
		{model.KindImage, orderBySortOrderID},
		{model.KindPackage, orderBySortOrderID},
		{model.KindMenuPackage, orderBySortOrderID},
	}
	for _, tt := range tests {
		if got := orderFor(tt.kind); got != tt.want {
			t.Errorf("orderFor(%s) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestBuildListQuery(t *testing.T) {
	tests := []struct {
		name     string
		filter   MenuPackageFilter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "no filter",
			wantSQL: "SELECT id FROM menu_packages ORDER BY sort_order ASC, id ASC",
		},
		{
			name:     "published",
			filter:   MenuPackageFilter{ListFilter: ListFilter{Published: boolPtr(true)}},
			wantSQL:  "SELECT id FROM menu_packages WHERE is_published = ? ORDER BY sort_order ASC, id ASC",
			wantArgs: []any{true},
		},
		{
			name: "published and category",
			filter: MenuPackageFilter{
				ListFilter: ListFilter{Published: boolPtr(true)},
				Category:   strPtr("babyshoot"),
			},
			wantSQL:  "SELECT id FROM menu_packages WHERE is_published = ? AND category = ? ORDER BY sort_order ASC, id ASC",
			wantArgs: []any{true, "babyshoot"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildListQuery("id", "menu_packages", tt.filter.predicates(), orderFor(model.KindMenuPackage))
			assert.Equal(t, tt.wantSQL, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
