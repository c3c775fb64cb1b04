// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging verifies uploaded images and writes them to the uploads
// directory.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/shootingzone/studio-cms/internal/model"
	"github.com/shootingzone/studio-cms/internal/util"
)

// JPEGQuality is used when a JPEG is re-encoded.
const JPEGQuality = 95

// MaxPixels caps width*height. A small file can declare a huge canvas, and
// decoding allocates the full canvas up front.
const MaxPixels = 50_000_000

// Errors returned by Process.
var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrCorruptImage      = errors.New("image could not be decoded")
	ErrTooManyPixels     = errors.New("image dimensions too large")
)

// Result is a verified image ready to be written.
type Result struct {
	MimeType string
	Width    int
	Height   int
	Data     []byte
}

// Extension returns the file extension for the detected type.
func (r *Result) Extension() string {
	return model.ImageExtensions[r.MimeType]
}

// Processor handles image verification and storage using pure Go libraries.
type Processor struct {
	uploadDir string
}

// NewProcessor creates a processor writing into uploadDir.
func NewProcessor(uploadDir string) *Processor {
	return &Processor{uploadDir: uploadDir}
}

// Dir returns the uploads directory.
func (p *Processor) Dir() string {
	return p.uploadDir
}

// Process detects the type of data from its content, checks it against the
// allow-list and decodes it. JPEGs are re-encoded upright, which also drops
// their EXIF block (camera serials, GPS). Other formats are kept byte for byte.
func (p *Processor) Process(data []byte) (*Result, error) {
	mimeType := DetectMimeType(data)
	if !model.IsAllowedImageType(mimeType) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mimeType)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: empty canvas", ErrCorruptImage)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptImage, err)
	}

	if mimeType == model.MimeJPEG {
		img = applyOrientation(img, readExifOrientation(bytes.NewReader(data)))
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return nil, fmt.Errorf("failed to encode image: %w", err)
		}
		data = buf.Bytes()
	}

	bounds := img.Bounds()
	return &Result{
		MimeType: mimeType,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Data:     data,
	}, nil
}

// DetectMimeType sniffs the MIME type of data. TIFF is never reported as an
// image type (CVE-2023-36308 in disintegration/imaging).
func DetectMimeType(data []byte) string {
	contentType := http.DetectContentType(data)
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	if strings.Contains(contentType, "tiff") {
		return "application/octet-stream"
	}
	return contentType
}

// Save writes data as filename directly under the uploads directory and
// returns the absolute path.
func (p *Processor) Save(filename string, data []byte) (string, error) {
	path, err := p.resolve(filename)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return path, nil
}

// Remove deletes filename from the uploads directory. A missing file is not
// an error.
func (p *Processor) Remove(filename string) error {
	path, err := p.resolve(filename)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// resolve maps a bare filename to a path inside the uploads directory,
// refusing anything that would land outside it.
func (p *Processor) resolve(filename string) (string, error) {
	safe, err := util.BareFilename(filename)
	if err != nil {
		return "", err
	}
	return util.SafeJoinPath(p.uploadDir, safe)
}

// readExifOrientation reads the EXIF orientation tag from image data.
// Returns 1 (normal) if orientation cannot be determined.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}

	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}

	return orientation
}

// applyOrientation undoes the camera rotation recorded in EXIF:
// 2 flip H, 3 rotate 180, 4 flip V, 5 transpose, 6 rotate 90 CW,
// 7 transverse, 8 rotate 90 CCW.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
