// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the persistent data structures of the application.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Share pairs an opaque identifier with a transformed image payload.
// Shares are anonymous and immutable: there is no owner, no update and
// no delete — only create and read. The id doubles as the public
// share-path segment.
type Share struct {
	ID uuid.UUID `json:"id"`

	// Image is the self-describing payload ("data:<mime>;base64,<bytes>").
	// Empty when the bytes have been offloaded to object storage.
	Image string `json:"image,omitempty"`

	// S3Key and ContentType are set only for offloaded shares. The raw
	// bytes live in the bucket under S3Key; ContentType is needed to
	// reassemble the original data URI on read.
	S3Key       *string `json:"s3_key,omitempty"`
	ContentType *string `json:"content_type,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Offloaded reports whether the image bytes live in object storage
// instead of the database row.
func (s *Share) Offloaded() bool {
	return s.S3Key != nil && *s.S3Key != ""
}

// IsImage returns true if the inline payload carries an image MIME type.
// Offloaded shares are checked via ContentType.
func (s *Share) IsImage() bool {
	if s.Offloaded() {
		return s.ContentType != nil && strings.HasPrefix(*s.ContentType, "image/")
	}
	return strings.HasPrefix(s.Image, "data:image/")
}
