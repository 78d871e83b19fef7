// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"futureshot/internal/payload"
	"futureshot/internal/session"
)

// SessionAPI exposes the transformation session over HTTP. Every mutating
// endpoint applies one state machine operation and answers with the
// post-transition snapshot, so the client never tracks state itself.
type SessionAPI struct {
	manager *session.Manager
}

// NewSessionAPI creates a new SessionAPI handler group.
func NewSessionAPI(manager *session.Manager) *SessionAPI {
	return &SessionAPI{manager: manager}
}

// Get handles GET /api/session: the current snapshot.
func (h *SessionAPI) Get(w http.ResponseWriter, r *http.Request) {
	sess := h.manager.FromRequest(w, r)
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// themeRequest is the JSON body of POST /api/session/theme.
type themeRequest struct {
	Theme string `json:"theme"`
}

// SelectTheme handles POST /api/session/theme. Unknown theme ids leave
// the selection unchanged rather than erroring; the snapshot tells the
// client what actually applied.
func (h *SessionAPI) SelectTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	sess := h.manager.FromRequest(w, r)
	sess.SelectTheme(req.Theme)
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// sourceRequest is the JSON body of POST /api/session/source.
type sourceRequest struct {
	Image string `json:"image"`
}

// SetSource handles POST /api/session/source: a new upload. The payload
// is validated up front so a corrupt file fails here, not mid-transform,
// and an in-flight transformation for the old image is superseded.
func (h *SessionAPI) SetSource(w http.ResponseWriter, r *http.Request) {
	var req sourceRequest
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
			writeJSONError(w, http.StatusRequestEntityTooLarge, "The image is too large. Please pick a smaller one.")
			return
		}
		writeJSONError(w, http.StatusBadRequest, "The image could not be read. Please upload a photo.")
		return
	}

	sess := h.manager.FromRequest(w, r)
	sess.SetSource(req.Image)
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// Submit handles POST /api/session/submit: start a transformation. A
// submit with no source uploaded yet is rejected; a submit while one is
// already running is absorbed and answered with the current snapshot.
func (h *SessionAPI) Submit(w http.ResponseWriter, r *http.Request) {
	sess := h.manager.FromRequest(w, r)
	snap := sess.Snapshot()
	if !snap.HasSource {
		writeJSONError(w, http.StatusBadRequest, "Upload a photo before submitting.")
		return
	}
	sess.Submit()
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// Retry handles POST /api/session/retry: re-run the failed transformation
// with the same photo and theme. Only legal after a failure.
func (h *SessionAPI) Retry(w http.ResponseWriter, r *http.Request) {
	sess := h.manager.FromRequest(w, r)
	if !sess.Retry() {
		writeJSONError(w, http.StatusConflict, "There is no failed transformation to retry.")
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// Share handles POST /api/session/share: mint a fresh share for the
// current result. Used when the automatic share after a transformation
// did not go through, or to get a brand-new link.
func (h *SessionAPI) Share(w http.ResponseWriter, r *http.Request) {
	sess := h.manager.FromRequest(w, r)
	if !sess.ManualShare() {
		writeJSONError(w, http.StatusConflict, "There is no result to share yet.")
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeJSONError writes a JSON error body with the given status code.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
