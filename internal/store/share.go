// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides PostgreSQL persistence for shares. The shares
// table is append-only: Create and FindByID are the only write and read
// paths, there is no update or delete.
package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"futureshot/internal/models"
)

// ShareStore handles all share-related database operations.
type ShareStore struct {
	db *sql.DB
}

// NewShareStore creates a new ShareStore with the given database connection.
func NewShareStore(db *sql.DB) *ShareStore {
	return &ShareStore{db: db}
}

// shareColumns lists the columns selected in share queries.
const shareColumns = `id, image, s3_key, content_type, created_at`

// scanShare scans a share row from the result set.
func scanShare(scanner interface{ Scan(...any) error }) (*models.Share, error) {
	var s models.Share
	err := scanner.Scan(&s.ID, &s.Image, &s.S3Key, &s.ContentType, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new share record and returns it with the database
// timestamp filled in. A fresh 128-bit random id is generated here unless
// the caller already set one; every call mints a new row, even for
// identical payloads.
func (s *ShareStore) Create(share *models.Share) (*models.Share, error) {
	if share.ID == uuid.Nil {
		share.ID = uuid.New()
	}

	err := s.db.QueryRow(`
		INSERT INTO shares (id, image, s3_key, content_type)
		VALUES ($1, $2, $3, $4)
		RETURNING `+shareColumns,
		share.ID, share.Image, share.S3Key, share.ContentType,
	).Scan(&share.ID, &share.Image, &share.S3Key, &share.ContentType, &share.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create share: %w", err)
	}
	return share, nil
}

// FindByID retrieves a single share by its UUID. Exact match only;
// returns (nil, nil) when the id is unknown.
func (s *ShareStore) FindByID(id uuid.UUID) (*models.Share, error) {
	row := s.db.QueryRow(`SELECT `+shareColumns+` FROM shares WHERE id = $1`, id)
	share, err := scanShare(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find share by id: %w", err)
	}
	return share, nil
}

// Count returns the total number of shares.
func (s *ShareStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM shares`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count shares: %w", err)
	}
	return count, nil
}
