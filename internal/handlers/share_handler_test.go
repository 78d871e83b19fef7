// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"futureshot/internal/store"
)

// newShareHandler wires a Share handler against the test database with
// S3 and Valkey disabled.
func newShareHandler(t *testing.T) (*Share, *store.ShareStore) {
	t.Helper()
	shares := store.NewShareStore(testDB(t))
	return NewShare(shares, nil, nil, testConfig()), shares
}

// shareRouter mounts the share routes the way the real router does, so
// chi URL params resolve in tests.
func shareRouter(h *Share) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/share", h.Create)
	r.Get("/share/{id}", h.View)
	r.Get("/share/{id}/qr", h.QR)
	return r
}

func postShare(t *testing.T, router http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/share", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestShareCreateAndView(t *testing.T) {
	h, _ := newShareHandler(t)
	router := shareRouter(h)

	image := testImage()
	rec := postShare(t, router, createRequest{Image: image})
	if rec.Code != http.StatusOK {
		t.Fatalf("create status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp createResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, err := uuid.Parse(resp.ID); err != nil {
		t.Errorf("id %q is not a UUID: %v", resp.ID, err)
	}
	if want := "http://localhost:8080/share/" + resp.ID; resp.URL != want {
		t.Errorf("url = %q, want %q", resp.URL, want)
	}

	view := httptest.NewRecorder()
	router.ServeHTTP(view, httptest.NewRequest(http.MethodGet, "/share/"+resp.ID, nil))
	if view.Code != http.StatusOK {
		t.Fatalf("view status = %d, want 200", view.Code)
	}
	if ct := view.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q, want text/html", ct)
	}
	if !strings.Contains(view.Body.String(), image) {
		t.Error("viewer page does not embed the shared image")
	}
}

func TestShareCreateMintsDistinctIDs(t *testing.T) {
	h, _ := newShareHandler(t)
	router := shareRouter(h)

	image := testImage()
	var ids []string
	for i := 0; i < 2; i++ {
		rec := postShare(t, router, createRequest{Image: image})
		if rec.Code != http.StatusOK {
			t.Fatalf("create status = %d", rec.Code)
		}
		var resp createResponse
		json.Unmarshal(rec.Body.Bytes(), &resp)
		ids = append(ids, resp.ID)
	}
	if ids[0] == ids[1] {
		t.Errorf("identical payloads shared the id %q", ids[0])
	}
}

func TestShareCreateRejectsInvalidPayloads(t *testing.T) {
	h, shares := newShareHandler(t)
	router := shareRouter(h)

	before, err := shares.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}

	cases := []struct {
		name   string
		image  string
		status int
	}{
		{"empty", "", http.StatusBadRequest},
		{"whitespace", "   ", http.StatusBadRequest},
		{"not a data uri", "hello world", http.StatusBadRequest},
		{"bad base64", "data:image/png;base64,!!!", http.StatusBadRequest},
		{"too large", oversizedImage(), http.StatusRequestEntityTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postShare(t, router, createRequest{Image: tc.image})
			if rec.Code != tc.status {
				t.Errorf("status = %d, want %d", rec.Code, tc.status)
			}
		})
	}

	after, err := shares.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if after != before {
		t.Errorf("rejected payloads wrote %d rows", after-before)
	}
}

func TestShareViewNotFound(t *testing.T) {
	h, _ := newShareHandler(t)
	router := shareRouter(h)

	for _, path := range []string{
		"/share/" + uuid.New().String(), // unknown id
		"/share/not-a-uuid",             // malformed id
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want 404", path, rec.Code)
		}
	}
}

func TestShareQR(t *testing.T) {
	h, _ := newShareHandler(t)
	router := shareRouter(h)

	rec := postShare(t, router, createRequest{Image: testImage()})
	var resp createResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)

	qr := httptest.NewRecorder()
	router.ServeHTTP(qr, httptest.NewRequest(http.MethodGet, "/share/"+resp.ID+"/qr", nil))
	if qr.Code != http.StatusOK {
		t.Fatalf("qr status = %d, want 200", qr.Code)
	}
	if ct := qr.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q, want image/png", ct)
	}
	if !bytes.HasPrefix(qr.Body.Bytes(), []byte("\x89PNG")) {
		t.Error("qr body is not a PNG")
	}

	missing := httptest.NewRecorder()
	router.ServeHTTP(missing, httptest.NewRequest(http.MethodGet, "/share/"+uuid.New().String()+"/qr", nil))
	if missing.Code != http.StatusNotFound {
		t.Errorf("qr for unknown share status = %d, want 404", missing.Code)
	}
}

func TestCreateShareStoresInlineWithoutS3(t *testing.T) {
	h, shares := newShareHandler(t)

	image := testImage()
	id, err := h.CreateShare(t.Context(), image)
	if err != nil {
		t.Fatalf("create share: %v", err)
	}

	share, err := shares.FindByID(uuid.MustParse(id))
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if share == nil {
		t.Fatal("share not persisted")
	}
	if share.Image != image {
		t.Error("inline payload does not round-trip")
	}
	if share.Offloaded() {
		t.Error("share marked offloaded with no storage configured")
	}
}
