// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package payload encodes and decodes the self-describing image payloads
// that flow through the pipeline ("data:<mime>;base64,<bytes>"). Providers
// need the MIME type and raw bytes separately, so every inbound payload is
// decomposed here before it crosses a component boundary.
package payload

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// MaxBytes is the ceiling on a decoded image payload. Anything larger is
// rejected before it reaches a provider or the store.
const MaxBytes = 10 << 20 // 10 MiB

// ErrTooLarge is returned when a decoded payload exceeds MaxBytes.
var ErrTooLarge = errors.New("payload: image exceeds size ceiling")

const prefix = "data:"

// Parse splits a data URI into its MIME type and decoded bytes.
// Only base64-encoded URIs are accepted; that is the only form the
// browser's FileReader and the providers produce.
func Parse(uri string) (mimeType string, data []byte, err error) {
	if !strings.HasPrefix(uri, prefix) {
		return "", nil, fmt.Errorf("payload: not a data URI")
	}

	meta, encoded, ok := strings.Cut(uri[len(prefix):], ",")
	if !ok {
		return "", nil, fmt.Errorf("payload: missing data separator")
	}

	mimeType, enc, ok := strings.Cut(meta, ";")
	if !ok || enc != "base64" {
		return "", nil, fmt.Errorf("payload: only base64 data URIs are supported")
	}
	if mimeType == "" {
		return "", nil, fmt.Errorf("payload: missing MIME type")
	}

	data, err = base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, fmt.Errorf("payload: decode base64: %w", err)
	}
	if len(data) > MaxBytes {
		return "", nil, ErrTooLarge
	}

	return mimeType, data, nil
}

// Format assembles a data URI from a MIME type and raw bytes. It is the
// exact inverse of Parse.
func Format(mimeType string, data []byte) string {
	return prefix + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
