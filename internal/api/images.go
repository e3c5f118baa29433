package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/identiflora/identiflora/internal/config"
	"github.com/identiflora/identiflora/internal/infrastructure"
	"github.com/identiflora/identiflora/pkg/handlers"
	"github.com/identiflora/identiflora/pkg/module"
	"github.com/identiflora/identiflora/pkg/storage"
)

// ImageHandler serves the plant image store: streaming downloads, multipart
// uploads, and metadata listing.
type ImageHandler struct {
	store     storage.System
	logger    *slog.Logger
	maxUpload int64
	maxList   int32
}

func NewImageHandler(store storage.System, logger *slog.Logger, maxUpload int64, maxList int32) *ImageHandler {
	return &ImageHandler{
		store:     store,
		logger:    logger.With("system", "images"),
		maxUpload: maxUpload,
		maxList:   maxList,
	}
}

// NewImagesModule builds the image store module, mounted at the storage
// container name (e.g. "/plant-images").
func NewImagesModule(cfg *config.Config, infra *infrastructure.Infrastructure) *module.Module {
	h := NewImageHandler(
		infra.Storage,
		infra.Logger,
		cfg.API.MaxUploadSizeBytes(),
		cfg.Storage.MaxListSize,
	)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.List)
	mux.HandleFunc("POST /{$}", h.Upload)
	mux.HandleFunc("GET /{key...}", h.Download)
	mux.HandleFunc("HEAD /{key...}", h.Head)
	mux.HandleFunc("DELETE /{key...}", h.Delete)

	m := module.New("/"+cfg.Storage.ContainerName, mux)
	applyMiddleware(m, cfg, infra)
	return m
}

func (h *ImageHandler) Download(w http.ResponseWriter, r *http.Request) {
	result, err := h.store.Download(r.Context(), r.PathValue("key"))
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	defer result.Body.Close()

	w.Header().Set("Content-Type", result.ContentType)
	if result.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(result.ContentLength, 10))
	}
	w.WriteHeader(http.StatusOK)
	io.Copy(w, result.Body)
}

// Head serves image metadata as response headers without a body.
func (h *ImageHandler) Head(w http.ResponseWriter, r *http.Request) {
	meta, err := h.store.Find(r.Context(), r.PathValue("key"))
	if err != nil {
		w.WriteHeader(storage.MapHTTPStatus(err))
		return
	}

	w.Header().Set("Content-Type", meta.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(meta.Size, 10))
	w.Header().Set("Last-Modified", meta.LastModified.UTC().Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
}

func (h *ImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	if err := h.store.Delete(r.Context(), key); err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}

	h.logger.Info("image deleted", "key", key)
	w.WriteHeader(http.StatusNoContent)
}

func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("invalid multipart upload: %w", err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := uuid.New().String() + "-" + sanitizeFilename(header.Filename)

	if err := h.store.Upload(r.Context(), key, file, contentType); err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}

	h.logger.Info("image uploaded", "key", key, "content_type", contentType)
	handlers.RespondJSON(w, http.StatusCreated, map[string]string{"key": key})
}

func (h *ImageHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	maxResults, err := storage.ParseMaxResults(q.Get("max_results"), h.maxList)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.store.List(r.Context(), q.Get("prefix"), q.Get("marker"), maxResults)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "." || name == "/" || name == "" {
		return "image"
	}
	return name
}
