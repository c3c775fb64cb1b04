// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/shootingzone/studio-cms/internal/auth"
	"github.com/shootingzone/studio-cms/internal/imaging"
	"github.com/shootingzone/studio-cms/internal/mailer"
	"github.com/shootingzone/studio-cms/internal/middleware"
	"github.com/shootingzone/studio-cms/internal/service"
	"github.com/shootingzone/studio-cms/internal/testutil"
)

const testSecret = "test-Secret-key-32-bytes-long!!!"

type recordingSender struct {
	sent []mailer.Message
	err  error
}

func (s *recordingSender) Send(_ context.Context, msg mailer.Message) error {
	s.sent = append(s.sent, msg)
	return s.err
}

type fakeMirror struct {
	remotePath string
	content    []byte
	err        error
}

func (m *fakeMirror) Name() string { return "fake" }

func (m *fakeMirror) Replicate(_ context.Context, localPath, remotePath string) error {
	m.remotePath = remotePath
	m.content, _ = os.ReadFile(localPath)
	return m.err
}

type apiFixture struct {
	router    http.Handler
	issuer    *auth.TokenIssuer
	sender    *recordingSender
	mirror    *fakeMirror
	uploadDir string
	token     string
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	ctx := context.Background()

	st := testutil.TestStore(t)
	hash, err := auth.HashPassword("admin123")
	require.NoError(t, err)
	_, err = st.CreateAdmin(ctx, "admin", hash, time.Now().UTC())
	require.NoError(t, err)

	uploadDir := t.TempDir()
	files := imaging.NewProcessor(uploadDir)
	content := service.NewContentService(st, files, nil, 0)
	m := &fakeMirror{}
	uploads := service.NewUploadService(content, service.UploadConfig{
		Files:      files,
		Mirror:     m,
		StagingDir: t.TempDir(),
		MaxSize:    service.DefaultMaxUploadSize,
	})

	sender := &recordingSender{}
	issuer := auth.NewTokenIssuer(st, []byte(testSecret))
	login := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	t.Cleanup(login.Stop)

	h := NewHandler(Deps{
		Content:   content,
		Uploads:   uploads,
		Mailer:    mailer.New(sender, "studio@example.com", "admin@example.com"),
		Issuer:    issuer,
		Login:     login,
		MaxUpload: service.DefaultMaxUploadSize,
	})

	r := chi.NewRouter()
	h.Routes(r, RouteOptions{})

	token, _, err := issuer.Sign(auth.Identity{AdminID: 1, Username: "admin"})
	require.NoError(t, err)

	return &apiFixture{
		router:    r,
		issuer:    issuer,
		sender:    sender,
		mirror:    m,
		uploadDir: uploadDir,
		token:     token,
	}
}

// do sends a JSON request. body may be nil.
func (f *apiFixture) do(t *testing.T, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

// multipartRequest builds an authenticated multipart request. A nil file
// omits the image part.
func (f *apiFixture) multipart(t *testing.T, path string, file []byte, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		part, err := mw.CreateFormFile("image", "photo.png")
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+f.token)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func uploadedFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
