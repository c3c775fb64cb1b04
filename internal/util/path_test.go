// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestBareFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "image.jpg", false},
		{"spaces", "my image.jpg", false},
		{"uuid", "0b6c2a4e-1f0e-4d8e-9f55-1c1b7c3f2d11.png", false},
		{"traversal", "../../../etc/passwd", true},
		{"directory", "uploads/photo.png", true},
		{"absolute", "/etc/passwd", true},
		{"dot", ".", true},
		{"dotdot", "..", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BareFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("BareFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.input {
				t.Errorf("BareFilename(%q) = %q", tt.input, got)
			}
		})
	}
}

func TestValidatePathWithinBase(t *testing.T) {
	base := t.TempDir()

	tests := []struct {
		name    string
		target  string
		wantErr bool
	}{
		{"base itself", base, false},
		{"child", filepath.Join(base, "a.png"), false},
		{"nested", filepath.Join(base, "x", "y.png"), false},
		{"parent", filepath.Dir(base), true},
		{"sibling prefix", base + "-evil/a.png", true},
		{"dotdot", filepath.Join(base, "..", "a.png"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePathWithinBase(base, tt.target)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePathWithinBase(%q) error = %v, wantErr %v", tt.target, err, tt.wantErr)
			}
		})
	}
}

func TestSafeJoinPath(t *testing.T) {
	base := t.TempDir()

	got, err := SafeJoinPath(base, "photo.png")
	if err != nil {
		t.Fatalf("SafeJoinPath() error: %v", err)
	}
	if got != filepath.Join(base, "photo.png") {
		t.Errorf("SafeJoinPath() = %q", got)
	}

	if _, err := SafeJoinPath(base, "..", "escape.png"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("SafeJoinPath(..) error = %v, want ErrPathTraversal", err)
	}
}
