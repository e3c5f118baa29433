package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/identiflora/identiflora/internal/api"
	"github.com/identiflora/identiflora/pkg/lifecycle"
	"github.com/identiflora/identiflora/pkg/storage"
)

type mockStore struct {
	uploadFn   func(ctx context.Context, key string, reader io.Reader, contentType string) error
	downloadFn func(ctx context.Context, key string) (*storage.DownloadResult, error)
	deleteFn   func(ctx context.Context, key string) error
	findFn     func(ctx context.Context, key string) (*storage.Metadata, error)
	listFn     func(ctx context.Context, prefix, marker string, maxResults int32) (*storage.ListResult, error)
}

func (m *mockStore) Start(lc *lifecycle.Coordinator) error { return nil }

func (m *mockStore) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	return m.uploadFn(ctx, key, reader, contentType)
}

func (m *mockStore) Download(ctx context.Context, key string) (*storage.DownloadResult, error) {
	return m.downloadFn(ctx, key)
}

func (m *mockStore) Delete(ctx context.Context, key string) error {
	return m.deleteFn(ctx, key)
}

func (m *mockStore) Find(ctx context.Context, key string) (*storage.Metadata, error) {
	return m.findFn(ctx, key)
}

func (m *mockStore) List(ctx context.Context, prefix, marker string, maxResults int32) (*storage.ListResult, error) {
	return m.listFn(ctx, prefix, marker, maxResults)
}

func imagesMux(store *mockStore) *http.ServeMux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := api.NewImageHandler(store, logger, 1024*1024, 100)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.List)
	mux.HandleFunc("POST /{$}", h.Upload)
	mux.HandleFunc("GET /{key...}", h.Download)
	mux.HandleFunc("HEAD /{key...}", h.Head)
	mux.HandleFunc("DELETE /{key...}", h.Delete)
	return mux
}

func TestDownload(t *testing.T) {
	store := &mockStore{
		downloadFn: func(ctx context.Context, key string) (*storage.DownloadResult, error) {
			if key != "quercus_robur.png" {
				return nil, storage.ErrNotFound
			}
			return &storage.DownloadResult{
				Body:          io.NopCloser(strings.NewReader("image-bytes")),
				ContentType:   "image/png",
				ContentLength: 11,
			}, nil
		},
	}
	mux := imagesMux(store)

	req := httptest.NewRequest("GET", "/quercus_robur.png", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %s, want image/png", ct)
	}
	if cl := w.Header().Get("Content-Length"); cl != "11" {
		t.Errorf("content length = %s, want 11", cl)
	}
	if w.Body.String() != "image-bytes" {
		t.Errorf("body = %q, want image-bytes", w.Body.String())
	}
}

func TestDownloadNotFound(t *testing.T) {
	store := &mockStore{
		downloadFn: func(ctx context.Context, key string) (*storage.DownloadResult, error) {
			return nil, storage.ErrNotFound
		},
	}
	mux := imagesMux(store)

	req := httptest.NewRequest("GET", "/missing.png", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestHead(t *testing.T) {
	modified := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	store := &mockStore{
		findFn: func(ctx context.Context, key string) (*storage.Metadata, error) {
			if key != "quercus_robur.png" {
				return nil, storage.ErrNotFound
			}
			return &storage.Metadata{
				Key:          key,
				Size:         2048,
				ContentType:  "image/png",
				LastModified: modified,
			}, nil
		},
	}
	mux := imagesMux(store)

	req := httptest.NewRequest("HEAD", "/quercus_robur.png", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %s, want image/png", ct)
	}
	if cl := w.Header().Get("Content-Length"); cl != "2048" {
		t.Errorf("content length = %s, want 2048", cl)
	}
	if lm := w.Header().Get("Last-Modified"); lm != modified.Format(http.TimeFormat) {
		t.Errorf("last modified = %s, want %s", lm, modified.Format(http.TimeFormat))
	}
	if w.Body.Len() != 0 {
		t.Errorf("body should be empty, got %q", w.Body.String())
	}
}

func TestHeadNotFound(t *testing.T) {
	store := &mockStore{
		findFn: func(ctx context.Context, key string) (*storage.Metadata, error) {
			return nil, storage.ErrNotFound
		},
	}
	mux := imagesMux(store)

	req := httptest.NewRequest("HEAD", "/missing.png", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestDelete(t *testing.T) {
	var deletedKey string
	store := &mockStore{
		deleteFn: func(ctx context.Context, key string) error {
			deletedKey = key
			return nil
		},
	}
	mux := imagesMux(store)

	req := httptest.NewRequest("DELETE", "/quercus_robur.png", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if deletedKey != "quercus_robur.png" {
		t.Errorf("deleted key = %q, want quercus_robur.png", deletedKey)
	}
}

func TestDeleteNotFound(t *testing.T) {
	store := &mockStore{
		deleteFn: func(ctx context.Context, key string) error {
			return storage.ErrNotFound
		},
	}
	mux := imagesMux(store)

	req := httptest.NewRequest("DELETE", "/missing.png", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestUpload(t *testing.T) {
	var uploadedKey, uploadedType string
	store := &mockStore{
		uploadFn: func(ctx context.Context, key string, reader io.Reader, contentType string) error {
			uploadedKey = key
			uploadedType = contentType
			io.Copy(io.Discard, reader)
			return nil
		},
	}
	mux := imagesMux(store)

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", "oak leaf.png")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("image-bytes"))
	mw.Close()

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}

	if !strings.HasSuffix(uploadedKey, "-oak_leaf.png") {
		t.Errorf("key = %q, want suffix -oak_leaf.png", uploadedKey)
	}
	if uploadedType != "application/octet-stream" {
		t.Errorf("content type = %s, want application/octet-stream", uploadedType)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp["key"] != uploadedKey {
		t.Errorf("response key = %q, want %q", resp["key"], uploadedKey)
	}
}

func TestUploadMissingFile(t *testing.T) {
	mux := imagesMux(&mockStore{})

	req := httptest.NewRequest("POST", "/", strings.NewReader("not multipart"))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestList(t *testing.T) {
	var gotPrefix, gotMarker string
	var gotMax int32
	store := &mockStore{
		listFn: func(ctx context.Context, prefix, marker string, maxResults int32) (*storage.ListResult, error) {
			gotPrefix, gotMarker, gotMax = prefix, marker, maxResults
			return &storage.ListResult{
				Items: []storage.Metadata{
					{Key: "quercus_robur.png", Size: 2048, ContentType: "image/png", LastModified: time.Now()},
				},
				NextMarker: "next",
			}, nil
		},
	}
	mux := imagesMux(store)

	req := httptest.NewRequest("GET", "/?prefix=quercus&marker=abc&max_results=25", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if gotPrefix != "quercus" || gotMarker != "abc" || gotMax != 25 {
		t.Errorf("list called with (%q, %q, %d), want (quercus, abc, 25)", gotPrefix, gotMarker, gotMax)
	}

	var result storage.ListResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].Key != "quercus_robur.png" {
		t.Errorf("unexpected items: %+v", result.Items)
	}
	if result.NextMarker != "next" {
		t.Errorf("next marker = %q, want next", result.NextMarker)
	}
}

func TestListInvalidMaxResults(t *testing.T) {
	mux := imagesMux(&mockStore{})

	req := httptest.NewRequest("GET", "/?max_results=zero", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
