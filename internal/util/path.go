// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util holds filesystem path helpers shared by the upload and
// housekeeping code.
package util

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrPathTraversal is returned when a path would escape its base directory.
var ErrPathTraversal = errors.New("path traversal detected")

// BareFilename returns name unchanged if it is a plain file name with no
// directory components.
func BareFilename(name string) (string, error) {
	safe := filepath.Base(name)
	if safe != name || safe == "." || safe == ".." || safe == "" || safe == string(filepath.Separator) {
		return "", fmt.Errorf("invalid filename %q", name)
	}
	return safe, nil
}

// ValidatePathWithinBase ensures that targetPath resolves inside basePath.
func ValidatePathWithinBase(basePath, targetPath string) error {
	absBase, err := filepath.Abs(filepath.Clean(basePath))
	if err != nil {
		return fmt.Errorf("invalid base path: %w", err)
	}

	absTarget, err := filepath.Abs(filepath.Clean(targetPath))
	if err != nil {
		return fmt.Errorf("invalid target path: %w", err)
	}

	// trailing separator so /uploads-evil does not match /uploads
	if absTarget != absBase && !strings.HasPrefix(absTarget, absBase+string(filepath.Separator)) {
		return ErrPathTraversal
	}
	return nil
}

// SafeJoinPath joins components onto basePath and returns the absolute
// result, or ErrPathTraversal if it leaves basePath.
func SafeJoinPath(basePath string, components ...string) (string, error) {
	absBase, err := filepath.Abs(basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	full := filepath.Join(append([]string{absBase}, components...)...)
	if err := ValidatePathWithinBase(absBase, full); err != nil {
		return "", err
	}
	return full, nil
}
