// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package session

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "fs_session"

	// DefaultIdleTTL is how long an untouched session survives before the
	// background sweep drops it.
	DefaultIdleTTL = 2 * time.Hour

	// tokenLength is the byte length of the random session token
	// (32 bytes = 64 hex chars).
	tokenLength = 32
)

// Manager keeps one live Session per browser, keyed by a random cookie
// token. Sessions hold in-flight goroutine state, so they live in process
// memory rather than an external store.
type Manager struct {
	transformer Transformer
	sharer      Sharer
	secure      bool

	mu       sync.Mutex
	sessions map[string]*Session

	idleTTL time.Duration
	stopCh  chan struct{}
}

// NewManager creates a session manager and starts its idle sweep.
// secure marks issued cookies HTTPS-only.
func NewManager(transformer Transformer, sharer Sharer, secure bool) *Manager {
	m := &Manager{
		transformer: transformer,
		sharer:      sharer,
		secure:      secure,
		sessions:    make(map[string]*Session),
		idleTTL:     DefaultIdleTTL,
		stopCh:      make(chan struct{}),
	}

	// Periodic cleanup of idle sessions.
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.sweep()
			case <-m.stopCh:
				return
			}
		}
	}()

	return m
}

// Stop terminates the background sweep goroutine.
func (m *Manager) Stop() {
	close(m.stopCh)
}

// FromRequest returns the caller's session, creating one (and setting the
// cookie) when the request carries no valid token.
func (m *Manager) FromRequest(w http.ResponseWriter, r *http.Request) *Session {
	if cookie, err := r.Cookie(CookieName); err == nil {
		m.mu.Lock()
		sess, ok := m.sessions[cookie.Value]
		m.mu.Unlock()
		if ok {
			return sess
		}
	}

	token := newToken()
	sess := New(m.transformer, m.sharer)

	m.mu.Lock()
	m.sessions[token] = sess
	m.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return sess
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// sweep drops sessions idle for longer than the TTL.
func (m *Manager) sweep() {
	cutoff := time.Now().Add(-m.idleTTL)

	m.mu.Lock()
	defer m.mu.Unlock()
	for token, sess := range m.sessions {
		if sess.idleSince().Before(cutoff) {
			delete(m.sessions, token)
		}
	}
}

// newToken generates a cryptographically random session token.
func newToken() string {
	b := make([]byte, tokenLength)
	rand.Read(b)
	return hex.EncodeToString(b)
}
