// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package session implements the transformation session: the per-visitor
// state machine that sequences upload, transformation, and the chained
// best-effort share. Sessions are ephemeral and in-memory; a process
// restart discards them.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"futureshot/internal/ai"
	"futureshot/internal/catalog"
	"futureshot/internal/payload"
)

// State is the explicit lifecycle tag of a session. Result and error are
// never populated together; the tag makes that structural rather than
// conventional.
type State int

const (
	StateIdle State = iota
	StateProcessing
	StateReady
	StateFailed
)

// String returns the wire name of the state.
func (s State) String() string {
	switch s {
	case StateProcessing:
		return "processing"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Transformer runs one image transformation. *ai.Registry satisfies this.
type Transformer interface {
	Transform(ctx context.Context, mimeType string, image []byte, prompt string) ([]byte, string, error)
}

// Sharer persists a result payload and returns the new share id.
type Sharer interface {
	CreateShare(ctx context.Context, image string) (string, error)
}

// genericFailure is shown when the provider error carries no message.
const genericFailure = "The transformation failed. Please try again."

// noImageFailure is shown when the provider answered but produced no image.
const noImageFailure = "The model didn't return an image. Please try again."

// Session drives one visitor's upload-to-result journey. All exported
// methods are safe for concurrent use. Transform and share calls run on a
// detached goroutine; their outcome is merged back only while the
// submission sequence number still matches, so a stale response can never
// clobber a newer source image.
type Session struct {
	transformer Transformer
	sharer      Sharer

	mu         sync.Mutex
	state      State
	theme      catalog.Theme
	source     string // data URI, empty until upload
	result     string // data URI, only in Ready
	shareID    string // only in Ready, and only after a successful share
	errMsg     string // only in Failed
	seq        uint64 // submission sequence, bumped by Submit/Retry/SetSource
	lastActive time.Time

	// settled receives one token each time a detached task finishes
	// merging (or discarding) its outcome. Buffered so tasks never block.
	settled chan struct{}
}

// New creates an idle session with the default theme selected.
func New(transformer Transformer, sharer Sharer) *Session {
	return &Session{
		transformer: transformer,
		sharer:      sharer,
		state:       StateIdle,
		theme:       catalog.Default(),
		lastActive:  time.Now(),
		settled:     make(chan struct{}, 16),
	}
}

// Snapshot is a point-in-time, JSON-ready view of the session.
type Snapshot struct {
	State       string `json:"state"`
	Theme       string `json:"theme"`
	HasSource   bool   `json:"has_source"`
	ResultImage string `json:"result_image,omitempty"`
	ShareID     string `json:"share_id,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Snapshot returns the current session view.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		State:       s.state.String(),
		Theme:       s.theme.ID,
		HasSource:   s.source != "",
		ResultImage: s.result,
		ShareID:     s.shareID,
		Error:       s.errMsg,
	}
}

// SelectTheme switches the theme used by future submissions. Legal in any
// state; it never clears a result or changes the state by itself. Unknown
// ids are ignored.
func (s *Session) SelectTheme(id string) {
	theme, ok := catalog.Find(id)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.theme = theme
}

// SetSource replaces the source image and resets the session to Idle,
// clearing any previous result, share id, and error. Bumping the sequence
// number here supersedes any transform still in flight.
func (s *Session) SetSource(image string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.seq++
	s.state = StateIdle
	s.source = image
	s.result = ""
	s.shareID = ""
	s.errMsg = ""
}

// Submit starts a transformation with the current source and theme.
// A submit with no source, or while a transform is already outstanding,
// is a no-op; the state machine is defensive even though the UI disables
// the action. Returns true when a transformation was started.
func (s *Session) Submit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.source == "" || s.state == StateProcessing {
		return false
	}
	return s.startLocked()
}

// Retry re-issues the transform with the same source and theme after a
// failure. Equivalent to Submit but only meaningful from Failed.
func (s *Session) Retry() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateFailed || s.source == "" {
		return false
	}
	return s.startLocked()
}

// startLocked begins a submission. Caller holds s.mu.
func (s *Session) startLocked() bool {
	s.touch()
	s.seq++
	s.state = StateProcessing
	s.result = ""
	s.shareID = ""
	s.errMsg = ""

	seq := s.seq
	source := s.source
	prompt := s.theme.Prompt

	// Detached: no cancellation once issued. The request context that
	// triggered the submit dies with the HTTP response, so the task runs
	// on a background context.
	go s.run(seq, source, prompt)
	return true
}

// run executes one transformation attempt plus the chained share on a
// detached goroutine.
func (s *Session) run(seq uint64, source, prompt string) {
	defer s.settle()

	ctx := context.Background()

	mimeType, data, err := payload.Parse(source)
	if err != nil {
		s.fail(seq, "That image could not be read. Please upload it again.")
		return
	}

	out, outMime, err := s.transformer.Transform(ctx, mimeType, data, prompt)
	if err != nil {
		s.fail(seq, failureMessage(err))
		return
	}

	result := payload.Format(outMime, out)
	if !s.succeed(seq, result) {
		return // superseded while transforming; discard
	}

	// Chained auto-share: best effort. A failure here only means no share
	// link; it never invalidates the result the user is looking at.
	id, err := s.sharer.CreateShare(ctx, result)
	if err != nil {
		slog.Warn("auto-share failed", "error", err)
		return
	}
	s.setShareID(seq, id)
}

// ManualShare re-shares the current result, minting a fresh share record
// and overwriting the share id. The superseded record stays in the store;
// nothing revisits it. Legal only in Ready. Returns true when a share
// attempt was started.
func (s *Session) ManualShare() bool {
	s.mu.Lock()
	if s.state != StateReady || s.result == "" {
		s.mu.Unlock()
		return false
	}
	s.touch()
	seq := s.seq
	result := s.result
	s.mu.Unlock()

	go func() {
		defer s.settle()
		id, err := s.sharer.CreateShare(context.Background(), result)
		if err != nil {
			slog.Warn("manual share failed", "error", err)
			return
		}
		s.setShareID(seq, id)
	}()
	return true
}

// fail moves a still-current submission to Failed.
func (s *Session) fail(seq uint64, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq || s.state != StateProcessing {
		return
	}
	s.state = StateFailed
	s.errMsg = msg
}

// succeed moves a still-current submission to Ready and reports whether
// the outcome was accepted.
func (s *Session) succeed(seq uint64, result string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq || s.state != StateProcessing {
		return false
	}
	s.state = StateReady
	s.result = result
	return true
}

// setShareID records a share id if the submission that produced it is
// still current.
func (s *Session) setShareID(seq uint64, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq || s.state != StateReady {
		return
	}
	s.shareID = id
}

// Settled exposes completion signals for detached tasks. Consumers (and
// tests) receive one token per settled task.
func (s *Session) Settled() <-chan struct{} {
	return s.settled
}

func (s *Session) settle() {
	select {
	case s.settled <- struct{}{}:
	default:
	}
}

// touch records activity for the manager's idle sweep. Caller holds s.mu.
func (s *Session) touch() {
	s.lastActive = time.Now()
}

// idleSince reports the last activity timestamp.
func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// failureMessage maps a transform error onto the user-facing wording.
func failureMessage(err error) string {
	if errors.Is(err, ai.ErrNoImage) {
		return noImageFailure
	}
	if msg := err.Error(); msg != "" {
		return "Transformation failed: " + msg
	}
	return genericFailure
}
