// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Store-backed tests are skipped when PostgreSQL is unavailable; session
// endpoint tests run fully in memory.
package handlers

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"os"
	"sync"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"futureshot/internal/config"
	"futureshot/internal/database"
	"futureshot/internal/payload"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "futureshot")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "futureshot")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() {
		db.Exec(`DELETE FROM shares`)
		db.Close()
	})
	return db
}

// testConfig returns a config suitable for handler tests.
func testConfig() *config.Config {
	return &config.Config{
		Env:           "testing",
		PublicBaseURL: "http://localhost:8080",
	}
}

// testImage returns a small valid data URI payload.
func testImage() string {
	return payload.Format("image/png", []byte("not-really-a-png"))
}

// errTransform and errShare are canned failures for the fakes below.
var (
	errTransform = errors.New("provider exploded")
	errShare     = errors.New("store unavailable")
)

// fakeTransformer returns fixed bytes for any input, or a canned error.
// Guarded by a mutex so tests can flip the outcome while session
// goroutines are in flight.
type fakeTransformer struct {
	mu  sync.Mutex
	out []byte
	err error
}

func (f *fakeTransformer) Transform(_ context.Context, _ string, _ []byte, _ string) ([]byte, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, "", f.err
	}
	return f.out, "image/png", nil
}

func (f *fakeTransformer) set(out []byte, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.out, f.err = out, err
}

// fakeSharer hands out a fixed share id and counts attempts. Guarded
// for the same reason as fakeTransformer.
type fakeSharer struct {
	mu    sync.Mutex
	id    string
	err   error
	calls int
}

func (f *fakeSharer) CreateShare(_ context.Context, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.id, nil
}

func (f *fakeSharer) set(id string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.id, f.err = id, err
}

func (f *fakeSharer) attempts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// oversizedImage returns a data URI whose decoded payload exceeds the
// size ceiling.
func oversizedImage() string {
	data := make([]byte, payload.MaxBytes+1)
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}
