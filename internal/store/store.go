// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

const driverName = "sqlite"

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know by name.
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}

// ErrDuplicate is returned when a unique column already holds the value.
var ErrDuplicate = errors.New("duplicate value")

// ErrReference is returned when a foreign key points at a missing row.
var ErrReference = errors.New("referenced row does not exist")

// ConstraintError describes a violated constraint on a column.
type ConstraintError struct {
	Column string
	Err    error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Column)
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// Store provides typed access to the content tables.
type Store struct {
	db *sqlx.DB
}

// New wraps an open database handle.
func New(db *sql.DB) *Store {
	return &Store{db: sqlx.NewDb(db, driverName)}
}

// DB returns the underlying database handle.
func (s *Store) DB() *sql.DB {
	return s.db.DB
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// translateError maps driver constraint failures onto store errors.
// SQLite reports them as "UNIQUE constraint failed: table.column".
func translateError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if idx := strings.Index(msg, "UNIQUE constraint failed: "); idx >= 0 {
		target := msg[idx+len("UNIQUE constraint failed: "):]
		if dot := strings.LastIndex(target, "."); dot >= 0 {
			target = target[dot+1:]
		}
		if end := strings.IndexAny(target, " ,)"); end >= 0 {
			target = target[:end]
		}
		return &ConstraintError{Column: target, Err: ErrDuplicate}
	}
	if strings.Contains(msg, "FOREIGN KEY constraint failed") {
		return &ConstraintError{Err: ErrReference}
	}
	return err
}

// execAffectingOne runs a statement that must touch exactly one row.
// Zero affected rows is reported as sql.ErrNoRows.
func execAffectingOne(result sql.Result, err error) error {
	if err != nil {
		return translateError(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// insertID runs an insert and returns the new row id.
func insertID(result sql.Result, err error) (int64, error) {
	if err != nil {
		return 0, translateError(err)
	}
	return result.LastInsertId()
}
