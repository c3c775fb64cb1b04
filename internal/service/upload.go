// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/shootingzone/studio-cms/internal/apperr"
	"github.com/shootingzone/studio-cms/internal/imaging"
	"github.com/shootingzone/studio-cms/internal/mirror"
	"github.com/shootingzone/studio-cms/internal/model"
)

// DefaultMaxUploadSize applies when no limit is configured.
const DefaultMaxUploadSize = 10 * 1024 * 1024 // 10MB

// Upload rejections. Both are reported before anything is written.
var (
	ErrTooLarge        = apperr.New(apperr.KindUpload, "File too large")
	ErrInvalidFileType = apperr.New(apperr.KindUpload, "Only image files are allowed")
	ErrNoFile          = apperr.New(apperr.KindUpload, "No file uploaded")
)

// StoredFile describes an image written to the uploads directory.
type StoredFile struct {
	Filename string `json:"filename"`
	Path     string `json:"path"` // public URL path, /uploads/<filename>
	MimeType string `json:"mimeType"`
	Size     int    `json:"size"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// UploadService accepts image uploads, stores them locally and optionally
// pushes replacements to the remote mirror.
type UploadService struct {
	content    *ContentService
	files      *imaging.Processor
	mirror     mirror.Mirror
	stagingDir string
	maxSize    int64
}

// UploadConfig configures an UploadService.
type UploadConfig struct {
	Files      *imaging.Processor
	Mirror     mirror.Mirror // nil disables replace-remote
	StagingDir string
	MaxSize    int64
}

// NewUploadService creates an upload service.
func NewUploadService(content *ContentService, cfg UploadConfig) *UploadService {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxUploadSize
	}
	if cfg.StagingDir == "" {
		cfg.StagingDir = os.TempDir()
	}
	return &UploadService{
		content:    content,
		files:      cfg.Files,
		mirror:     cfg.Mirror,
		stagingDir: cfg.StagingDir,
		maxSize:    cfg.MaxSize,
	}
}

// MirrorEnabled reports whether replacements can be pushed to the mirror.
func (s *UploadService) MirrorEnabled() bool {
	return s.mirror != nil
}

// readVerified reads at most maxSize bytes from r and verifies the image.
func (s *UploadService) readVerified(r io.Reader, declaredSize int64) (*imaging.Result, error) {
	if r == nil {
		return nil, ErrNoFile
	}
	if declaredSize > s.maxSize {
		return nil, ErrTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpload, "Failed to read uploaded file", err)
	}
	if int64(len(data)) > s.maxSize {
		return nil, ErrTooLarge
	}
	if len(data) == 0 {
		return nil, ErrNoFile
	}

	res, err := s.files.Process(data)
	if err != nil {
		if errors.Is(err, imaging.ErrTooManyPixels) {
			slog.Info("upload rejected", "reason", err)
			return nil, ErrTooLarge
		}
		if errors.Is(err, imaging.ErrUnsupportedFormat) || errors.Is(err, imaging.ErrCorruptImage) {
			slog.Info("upload rejected", "reason", err)
			return nil, ErrInvalidFileType
		}
		return nil, apperr.Internal("failed to process image", err)
	}
	return res, nil
}

// Store verifies an uploaded image and writes it to the uploads directory
// under a fresh UUID filename. declaredSize is the client-reported size, or
// -1 when unknown.
func (s *UploadService) Store(ctx context.Context, r io.Reader, declaredSize int64) (StoredFile, error) {
	res, err := s.readVerified(r, declaredSize)
	if err != nil {
		return StoredFile{}, err
	}

	filename := uuid.NewString() + res.Extension()
	if _, err := s.files.Save(filename, res.Data); err != nil {
		return StoredFile{}, apperr.Internal("failed to save file", err)
	}

	slog.InfoContext(ctx, "image stored", "filename", filename, "mime_type", res.MimeType, "size", len(res.Data))
	return StoredFile{
		Filename: filename,
		Path:     model.UploadsURLPrefix + filename,
		MimeType: res.MimeType,
		Size:     len(res.Data),
		Width:    res.Width,
		Height:   res.Height,
	}, nil
}

// UploadImageInput is the metadata sent alongside an uploaded image.
type UploadImageInput struct {
	ImageKey  string
	SectionID *int64
	AltText   *string
}

// UploadImage stores the file and creates a draft image record pointing at
// it. Metadata is checked before the file is read so a bad request never
// leaves a file behind; if the insert fails the file is removed again.
func (s *UploadService) UploadImage(ctx context.Context, r io.Reader, declaredSize int64, in UploadImageInput) (model.Image, error) {
	placeholder := model.UploadsURLPrefix + "pending"
	input := ImageInput{
		ImageKey:  &in.ImageKey,
		ImagePath: &placeholder,
		SectionID: in.SectionID,
		AltText:   in.AltText,
	}

	probe := model.Image{}
	input.applyTo(&probe)
	if err := s.content.checkImage(ctx, &probe); err != nil {
		return model.Image{}, err
	}

	stored, err := s.Store(ctx, r, declaredSize)
	if err != nil {
		return model.Image{}, err
	}

	input.ImagePath = &stored.Path
	img, err := s.content.CreateImage(ctx, input)
	if err != nil {
		if rmErr := s.files.Remove(stored.Filename); rmErr != nil {
			slog.Warn("failed to remove orphaned upload", "filename", stored.Filename, "error", rmErr)
		}
		return model.Image{}, err
	}
	return img, nil
}

// ReplaceInput identifies the remote image a replacement overwrites.
type ReplaceInput struct {
	ImageKey  string
	ImagePath string // URL or path; its path part is the remote location
	ImageID   *int64
}

// ReplaceResult is returned after a successful remote replacement.
type ReplaceResult struct {
	ImageKey   string
	ImagePath  string
	RemotePath string
}

// ErrMirrorDisabled is returned by ReplaceRemote when no mirror is configured.
var ErrMirrorDisabled = apperr.New(apperr.KindTransfer, "Remote image storage is not configured")

// ReplaceRemote verifies the uploaded image, stages it and pushes it to the
// mirror at the path taken from in.ImagePath. The staged file is removed
// whatever the outcome. The database is not modified.
func (s *UploadService) ReplaceRemote(ctx context.Context, r io.Reader, declaredSize int64, in ReplaceInput) (ReplaceResult, error) {
	if in.ImageKey == "" || in.ImagePath == "" {
		return ReplaceResult{}, apperr.New(apperr.KindValidation, "Missing required fields: imageKey or imagePath")
	}
	remotePath, err := mirror.RemotePath(in.ImagePath)
	if err != nil {
		return ReplaceResult{}, apperr.Validation(map[string]string{"imagePath": "is not a valid file path"})
	}
	if s.mirror == nil {
		return ReplaceResult{}, ErrMirrorDisabled
	}

	res, err := s.readVerified(r, declaredSize)
	if err != nil {
		return ReplaceResult{}, err
	}

	staged, err := s.stage(res)
	if err != nil {
		return ReplaceResult{}, apperr.Internal("failed to stage file", err)
	}
	defer func() {
		if err := os.Remove(staged); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("failed to remove staged file", "path", staged, "error", err)
		}
	}()

	if err := s.mirror.Replicate(ctx, staged, remotePath); err != nil {
		slog.ErrorContext(ctx, "image replacement failed",
			"driver", s.mirror.Name(), "image_key", in.ImageKey, "remote_path", remotePath, "error", err)
		return ReplaceResult{}, apperr.Wrap(apperr.KindTransfer, "Failed to replace image", err)
	}

	attrs := []any{"image_key", in.ImageKey, "remote_path", remotePath}
	if in.ImageID != nil {
		attrs = append(attrs, "image_id", *in.ImageID)
	}
	slog.InfoContext(ctx, "image replaced", attrs...)
	return ReplaceResult{ImageKey: in.ImageKey, ImagePath: in.ImagePath, RemotePath: remotePath}, nil
}

func (s *UploadService) stage(res *imaging.Result) (string, error) {
	if err := os.MkdirAll(s.stagingDir, 0755); err != nil {
		return "", fmt.Errorf("creating staging directory: %w", err)
	}
	f, err := os.CreateTemp(s.stagingDir, "replace-*"+res.Extension())
	if err != nil {
		return "", err
	}
	if _, err := f.Write(res.Data); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
