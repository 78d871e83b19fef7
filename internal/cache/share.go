// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// share.go provides a Valkey-backed cache of rendered share viewer pages.
// Shares are immutable, so a cached page never needs invalidation; the TTL
// only bounds memory use. All methods are nil-safe so the app runs without
// Valkey configured.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// shareKeyPrefix is the Valkey key prefix for cached viewer pages.
	shareKeyPrefix = "share:"

	// DefaultShareTTL is how long a rendered viewer page stays cached.
	DefaultShareTTL = 15 * time.Minute
)

// ShareCache manages viewer page HTML caching in Valkey.
type ShareCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewShareCache creates a viewer page cache backed by the given Valkey
// client. A nil client yields a cache that always misses.
func NewShareCache(client *redis.Client, ttl time.Duration) *ShareCache {
	if ttl == 0 {
		ttl = DefaultShareTTL
	}
	return &ShareCache{client: client, ttl: ttl}
}

// Get retrieves the cached viewer page for a share id.
func (sc *ShareCache) Get(ctx context.Context, id string) ([]byte, bool) {
	if sc == nil || sc.client == nil {
		return nil, false
	}
	val, err := sc.client.Get(ctx, shareKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("share cache get error", "id", id, "error", err)
		return nil, false
	}
	slog.Debug("share cache hit", "id", id)
	return val, true
}

// Set stores a rendered viewer page for a share id with the configured TTL.
func (sc *ShareCache) Set(ctx context.Context, id string, html []byte) {
	if sc == nil || sc.client == nil {
		return
	}
	if err := sc.client.Set(ctx, shareKeyPrefix+id, html, sc.ttl).Err(); err != nil {
		slog.Warn("share cache set error", "id", id, "error", err)
	}
}
