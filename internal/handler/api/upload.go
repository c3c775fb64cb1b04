// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/shootingzone/studio-cms/internal/apperr"
	"github.com/shootingzone/studio-cms/internal/service"
)

// multipartMemory is how much of a multipart body is buffered in memory
// before parts spill to temporary files.
const multipartMemory = 8 << 20

// ReplaceResponse is the body of POST /api/images/replace-ftp.
type ReplaceResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ImagePath string `json:"imagePath,omitempty"`
	ImageKey  string `json:"imageKey,omitempty"`
}

// parseUpload parses a multipart upload bounded by the configured maximum.
func (h *Handler) parseUpload(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return service.ErrTooLarge
		}
		return apperr.Wrap(apperr.KindUpload, "Invalid multipart form", err)
	}
	return nil
}

// imageFile opens the "image" part of a parsed upload.
func imageFile(r *http.Request) (multipart.File, *multipart.FileHeader, bool) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			slog.DebugContext(r.Context(), "reading image part", "error", err)
		}
		return nil, nil, false
	}
	return file, header, true
}

func cleanupForm(r *http.Request) {
	if r.MultipartForm != nil {
		_ = r.MultipartForm.RemoveAll()
	}
}

// formInt64 parses an optional numeric form value.
func formInt64(r *http.Request, name string) (*int64, error) {
	raw := strings.TrimSpace(r.FormValue(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apperr.Validation(map[string]string{name: "must be a number"})
	}
	return &v, nil
}

func formString(r *http.Request, name string) *string {
	v := r.FormValue(name)
	if v == "" {
		return nil
	}
	return &v
}

// UploadImage handles POST /api/images/upload. It stores the image locally
// and creates a draft image record pointing at it.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := h.parseUpload(w, r); err != nil {
		writeServiceError(w, r, err)
		return
	}
	defer cleanupForm(r)

	file, header, ok := imageFile(r)
	if !ok {
		writeServiceError(w, r, service.ErrNoFile)
		return
	}
	defer func() { _ = file.Close() }()

	sectionID, err := formInt64(r, "sectionId")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	img, err := h.uploads.UploadImage(r.Context(), file, header.Size, service.UploadImageInput{
		ImageKey:  strings.TrimSpace(r.FormValue("imageKey")),
		SectionID: sectionID,
		AltText:   formString(r, "altText"),
	})
	writeEntity(w, r, http.StatusCreated, img, err)
}

// ReplaceImage handles POST /api/images/replace-ftp. The uploaded image
// overwrites the file at imagePath on the remote mirror.
func (h *Handler) ReplaceImage(w http.ResponseWriter, r *http.Request) {
	if err := h.parseUpload(w, r); err != nil {
		writeReplaceError(w, r, err)
		return
	}
	defer cleanupForm(r)

	file, header, ok := imageFile(r)
	if !ok {
		writeReplaceError(w, r, apperr.New(apperr.KindUpload, "No image file provided"))
		return
	}
	defer func() { _ = file.Close() }()

	imageID, err := formInt64(r, "imageId")
	if err != nil {
		writeReplaceError(w, r, err)
		return
	}

	res, err := h.uploads.ReplaceRemote(r.Context(), file, header.Size, service.ReplaceInput{
		ImageKey:  strings.TrimSpace(r.FormValue("imageKey")),
		ImagePath: strings.TrimSpace(r.FormValue("imagePath")),
		ImageID:   imageID,
	})
	if err != nil {
		writeReplaceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ReplaceResponse{
		Success:   true,
		Message:   "Image replaced successfully",
		ImagePath: res.ImagePath,
		ImageKey:  res.ImageKey,
	})
}

// writeReplaceError reports a failed replacement in the replace-ftp
// response shape.
func writeReplaceError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "Failed to replace image"
	if appErr, ok := apperr.As(err); ok {
		status = appErr.Kind.HTTPStatus()
		message = appErr.Message
	}
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "image replacement failed", "error", err)
	}
	writeJSON(w, status, ReplaceResponse{Success: false, Message: message})
}
