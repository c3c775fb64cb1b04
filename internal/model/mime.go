// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Image MIME types accepted by the upload pipeline.
const (
	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"
	MimeGIF  = "image/gif"
	MimeWebP = "image/webp"
)

// ImageExtensions maps each accepted MIME type to the extension used for stored files.
var ImageExtensions = map[string]string{
	MimeJPEG: ".jpg",
	MimePNG:  ".png",
	MimeGIF:  ".gif",
	MimeWebP: ".webp",
}

// IsAllowedImageType reports whether mimeType may be uploaded.
func IsAllowedImageType(mimeType string) bool {
	_, ok := ImageExtensions[mimeType]
	return ok
}
