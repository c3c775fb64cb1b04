// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"strings"

	"github.com/shootingzone/studio-cms/internal/model"
)

// ListFilter narrows a content list. Nil fields are not applied.
type ListFilter struct {
	// Published, when set, keeps only rows whose is_published matches.
	Published *bool
}

// MenuPackageFilter narrows the menu package list.
type MenuPackageFilter struct {
	ListFilter
	Category *string
}

// predicate renders one WHERE condition with its arguments.
type predicate func() (string, []any)

func publishedIs(v bool) predicate {
	return func() (string, []any) {
		return "is_published = ?", []any{v}
	}
}

func categoryIs(c string) predicate {
	return func() (string, []any) {
		return "category = ?", []any{c}
	}
}

func (f ListFilter) predicates() []predicate {
	var preds []predicate
	if f.Published != nil {
		preds = append(preds, publishedIs(*f.Published))
	}
	return preds
}

func (f MenuPackageFilter) predicates() []predicate {
	preds := f.ListFilter.predicates()
	if f.Category != nil {
		preds = append(preds, categoryIs(*f.Category))
	}
	return preds
}

// buildListQuery composes "SELECT cols FROM table [WHERE ...] ORDER BY orderBy".
func buildListQuery(columns, table string, preds []predicate, orderBy string) (string, []any) {
	var (
		b     strings.Builder
		conds []string
		args  []any
	)

	for _, p := range preds {
		cond, condArgs := p()
		conds = append(conds, cond)
		args = append(args, condArgs...)
	}

	b.WriteString("SELECT ")
	b.WriteString(columns)
	b.WriteString(" FROM ")
	b.WriteString(table)
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}
	if orderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(orderBy)
	}

	return b.String(), args
}

// Order clauses: explicit display order first where the table has one, then id.
const (
	orderByID          = "id ASC"
	orderBySortOrderID = "sort_order ASC, id ASC"
)

// orderFor returns the list ordering for kind.
func orderFor(kind model.Kind) string {
	if kind.HasOrder() {
		return orderBySortOrderID
	}
	return orderByID
}
