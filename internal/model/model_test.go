// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"testing"
)

func TestKindDefaultPublished(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindSection, false},
		{KindImage, false},
		{KindPackage, true},
		{KindMenuPackage, true},
		{KindReview, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.DefaultPublished(); got != tt.want {
				t.Errorf("DefaultPublished() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindHasOrder(t *testing.T) {
	if KindSection.HasOrder() || KindReview.HasOrder() {
		t.Error("sections and reviews have no order column")
	}
	if !KindImage.HasOrder() || !KindPackage.HasOrder() || !KindMenuPackage.HasOrder() {
		t.Error("images, packages and menu packages are ordered")
	}
}

func TestStateOf(t *testing.T) {
	if StateOf(true) != StatePublished {
		t.Errorf("StateOf(true) = %q", StateOf(true))
	}
	if StateOf(false) != StateDraft {
		t.Errorf("StateOf(false) = %q", StateOf(false))
	}
}

func TestImageLocalFilename(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/uploads/abc.jpg", "abc.jpg"},
		{"https://shootingzonehyderabad.com/public/frame-23.png", ""},
		{"", ""},
	}

	for _, tt := range tests {
		img := Image{ImagePath: tt.path}
		if got := img.LocalFilename(); got != tt.want {
			t.Errorf("LocalFilename(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestIsValidCategory(t *testing.T) {
	for _, c := range MenuCategories {
		if !IsValidCategory(c) {
			t.Errorf("IsValidCategory(%q) = false", c)
		}
	}
	if IsValidCategory("weddingshoot") {
		t.Error("IsValidCategory(weddingshoot) = true")
	}
}

func TestStringListScan(t *testing.T) {
	var l StringList
	if err := l.Scan(`["backdrops","2 themes"]`); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(l) != 2 || l[1] != "2 themes" {
		t.Errorf("Scan result = %v", l)
	}

	if err := l.Scan(nil); err != nil {
		t.Fatalf("Scan(nil): %v", err)
	}
	if l != nil {
		t.Errorf("Scan(nil) = %v, want nil", l)
	}

	if err := l.Scan(42); err == nil {
		t.Error("Scan(int) should fail")
	}
}

func TestStringListValue(t *testing.T) {
	v, err := StringList{"a", "b"}.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != `["a","b"]` {
		t.Errorf("Value = %v", v)
	}

	v, err = StringList(nil).Value()
	if err != nil || v != nil {
		t.Errorf("nil Value = %v, %v", v, err)
	}
}

func TestIsAllowedImageType(t *testing.T) {
	if !IsAllowedImageType(MimeWebP) {
		t.Error("webp should be allowed")
	}
	if IsAllowedImageType("image/svg+xml") {
		t.Error("svg should not be allowed")
	}
}
