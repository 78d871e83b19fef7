// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai provides a unified interface for generative image
// transformation across multiple providers (Google Gemini, OpenAI).
// Each provider implements the Transformer interface, and the Registry
// selects the active one by name.
package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
)

// ErrNoImage is returned when the provider call itself succeeded but the
// response contained no usable image. Callers distinguish this from a
// transport or API failure because the user-facing wording differs.
var ErrNoImage = errors.New("ai: provider returned no image")

// Transformer is the interface all image providers implement. Transform
// sends the source image plus an instruction prompt and returns the
// transformed image bytes with their MIME type. Exactly one attempt per
// invocation, except for a single automatic retry on transport errors.
type Transformer interface {
	Transform(ctx context.Context, mimeType string, image []byte, prompt string) ([]byte, string, error)

	// Name returns the provider identifier (e.g., "gemini", "openai").
	Name() string
}

// ProviderConfig holds the credentials and settings for a single provider.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Registry manages available providers and selects the active one.
// All methods are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Transformer
	active    string
}

// NewRegistry creates a registry and initialises providers for every config
// that has a non-empty API key. Providers without keys are silently skipped.
func NewRegistry(active string, configs map[string]ProviderConfig) *Registry {
	r := &Registry{
		providers: make(map[string]Transformer),
		active:    active,
	}

	for name, cfg := range configs {
		if cfg.APIKey == "" {
			continue
		}
		switch name {
		case "gemini":
			r.providers[name] = newGemini(cfg)
		case "openai":
			r.providers[name] = newOpenAI(cfg)
		}
	}

	return r
}

// Transform calls the active provider's Transform method.
func (r *Registry) Transform(ctx context.Context, mimeType string, image []byte, prompt string) ([]byte, string, error) {
	p, err := r.Active()
	if err != nil {
		return nil, "", err
	}
	return p.Transform(ctx, mimeType, image, prompt)
}

// Active returns the currently active provider.
func (r *Registry) Active() (Transformer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[r.active]
	if !ok {
		return nil, fmt.Errorf("ai: no provider configured for %q", r.active)
	}
	return p, nil
}

// SetActive switches the active provider at runtime. Returns an error if
// the named provider has no API key configured.
func (r *Registry) SetActive(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[name]; !ok {
		return fmt.Errorf("ai: provider %q is not available (no API key?)", name)
	}
	r.active = name
	return nil
}

// ActiveName returns the name of the currently active provider.
func (r *Registry) ActiveName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.active
}

// Available returns the names of all providers that have valid API keys.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}

// Register adds or replaces a provider in the registry. This allows
// injecting custom providers at runtime (e.g. for testing).
func (r *Registry) Register(name string, p Transformer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = p
}

// doWithRetry performs an HTTP request, retrying exactly once when the
// transport itself fails (connection refused, reset, DNS). HTTP error
// statuses are not transport failures and are never retried here; neither
// is a response that simply carries no image. newReq must build a fresh
// request each call so the body can be re-sent.
func doWithRetry(ctx context.Context, client *http.Client, newReq func() (*http.Request, error)) (*http.Response, error) {
	req, err := newReq()
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err == nil {
		return resp, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	retryReq, reqErr := newReq()
	if reqErr != nil {
		return nil, err
	}
	return client.Do(retryReq)
}
