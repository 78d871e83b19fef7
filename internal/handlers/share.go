// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"futureshot/internal/cache"
	"futureshot/internal/config"
	"futureshot/internal/models"
	"futureshot/internal/payload"
	"futureshot/internal/storage"
	"futureshot/internal/store"
)

// Share groups the handlers for creating and viewing shared results. It
// also satisfies session.Sharer so the session state machine can persist
// results through the same path the HTTP API uses. storageClient and
// pageCache may be nil when S3 or Valkey is not configured.
type Share struct {
	shares        *store.ShareStore
	storageClient *storage.Client
	pageCache     *cache.ShareCache
	cfg           *config.Config
}

// NewShare creates a new Share handler group.
func NewShare(shares *store.ShareStore, storageClient *storage.Client, pageCache *cache.ShareCache, cfg *config.Config) *Share {
	return &Share{
		shares:        shares,
		storageClient: storageClient,
		pageCache:     pageCache,
		cfg:           cfg,
	}
}

// CreateShare validates an image payload and persists it as a new share,
// returning the share id. When object storage is configured the decoded
// bytes are offloaded to S3 and only the key is kept in PostgreSQL;
// otherwise the full data URI is stored inline.
func (h *Share) CreateShare(ctx context.Context, image string) (string, error) {
	mimeType, data, err := payload.Parse(image)
	if err != nil {
		return "", err
	}

	share := &models.Share{ID: uuid.New()}

	if h.storageClient != nil {
		key := "shares/" + share.ID.String()
		if err := h.storageClient.Upload(ctx, key, mimeType, data); err != nil {
			return "", fmt.Errorf("offload share payload: %w", err)
		}
		share.S3Key = &key
		share.ContentType = &mimeType
	} else {
		share.Image = image
	}

	created, err := h.shares.Create(share)
	if err != nil {
		return "", err
	}
	return created.ID.String(), nil
}

// createRequest is the JSON body of POST /api/share.
type createRequest struct {
	Image string `json:"image"`
}

// createResponse is the JSON body returned on a successful share.
type createResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Create handles POST /api/share. Accepts a JSON body with a base64 data
// URI and returns the new share's id and public URL. Invalid payloads are
// rejected before anything touches the store.
func (h *Share) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if strings.TrimSpace(req.Image) == "" {
		writeJSONError(w, http.StatusBadRequest, "An image payload is required.")
		return
	}
	if _, _, err := payload.Parse(req.Image); err != nil {
		if errors.Is(err, payload.ErrTooLarge) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "The image is too large to share.")
			return
		}
		writeJSONError(w, http.StatusBadRequest, "The image payload could not be read.")
		return
	}

	id, err := h.CreateShare(r.Context(), req.Image)
	if err != nil {
		slog.Error("create share failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Could not save the share. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, createResponse{ID: id, URL: h.cfg.ShareURL(id)})
}

// View handles GET /share/{id}: the public viewer page for a shared
// result. Unknown and malformed ids both read as "not found"; the id
// space is opaque to visitors.
func (h *Share) View(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idParam := chi.URLParam(r, "id")

	id, err := uuid.Parse(idParam)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	// Check the Valkey page cache first. Shares never change, so a hit is
	// always current.
	if cached, ok := h.pageCache.Get(ctx, id.String()); ok {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(cached)
		return
	}

	share, err := h.shares.FindByID(id)
	if err != nil {
		slog.Error("find share failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if share == nil {
		http.NotFound(w, r)
		return
	}

	image := share.Image
	if share.Offloaded() {
		data, err := h.storageClient.Download(ctx, *share.S3Key)
		if err != nil {
			slog.Error("download share payload failed", "error", err, "id", id)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		image = payload.Format(*share.ContentType, data)
	}

	page := renderViewer(image)
	h.pageCache.Set(ctx, id.String(), page)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// QR handles GET /share/{id}/qr: a PNG QR code pointing at the share's
// viewer URL, suitable for scanning off a kiosk screen.
func (h *Share) QR(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")

	id, err := uuid.Parse(idParam)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	share, err := h.shares.FindByID(id)
	if err != nil {
		slog.Error("find share failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if share == nil {
		http.NotFound(w, r)
		return
	}

	png, err := qrcode.Encode(h.cfg.ShareURL(id.String()), qrcode.Medium, 256)
	if err != nil {
		slog.Error("encode share qr failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(png)
}

// renderViewer builds the static viewer page for a share. The image is a
// data URI, which attribute-escapes cleanly; no template engine needed
// for a single fixed page.
func renderViewer(image string) []byte {
	src := html.EscapeString(image)
	return []byte(`<!DOCTYPE html>
<html><head><title>FutureShot</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<script src="https://cdn.tailwindcss.com"></script></head>
<body class="bg-gray-900 flex items-center justify-center min-h-screen p-4">
<div class="text-center max-w-2xl">
<h1 class="text-3xl font-bold text-white">Future<span class="text-amber-400">Shot</span></h1>
<img src="` + src + `" alt="Transformed portrait" class="mt-6 rounded-xl shadow-2xl mx-auto max-h-[70vh]">
<div class="mt-6 flex items-center justify-center gap-4">
<a href="` + src + `" download="futureshot.png" class="px-4 py-2 bg-amber-400 text-gray-900 rounded-lg font-semibold hover:bg-amber-300">Download</a>
<a href="/" class="px-4 py-2 text-amber-400 hover:text-amber-300">Create your own</a>
</div>
</div></body></html>`)
}
