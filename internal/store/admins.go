// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/shootingzone/studio-cms/internal/model"
)

// GetAdminByUsername returns the admin with exactly this username.
func (s *Store) GetAdminByUsername(ctx context.Context, username string) (model.Admin, error) {
	var a model.Admin
	err := s.db.GetContext(ctx, &a,
		`SELECT id, username, password_hash, created_at FROM admins WHERE username = ?`, username)
	return a, err
}

// CreateAdmin inserts an admin account.
func (s *Store) CreateAdmin(ctx context.Context, username, passwordHash string, now time.Time) (model.Admin, error) {
	id, err := insertID(s.db.ExecContext(ctx,
		`INSERT INTO admins (username, password_hash, created_at) VALUES (?, ?, ?)`,
		username, passwordHash, now))
	if err != nil {
		return model.Admin{}, err
	}
	return model.Admin{ID: id, Username: username, PasswordHash: passwordHash, CreatedAt: now}, nil
}
