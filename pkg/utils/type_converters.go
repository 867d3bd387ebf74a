// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package utils provides utility functions for the MailChimp proxy service.
package utils

import (
	"bytes"
	"encoding/json"
	"strings"
)

// StringPtr returns a pointer to the provided string.
func StringPtr(s string) *string {
	return &s
}

// BoolPtr returns a pointer to the provided bool.
func BoolPtr(b bool) *bool {
	return &b
}

// CoerceBool interprets a loosely-typed JSON value as a boolean.
// Booleans pass through. Numbers are false only when zero. Strings are
// false when empty or "0", "false" (case-insensitive), true otherwise.
// Null and absent values are reported as not present.
func CoerceBool(raw json.RawMessage) (value bool, present bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false, false
	}

	var b bool
	if err := json.Unmarshal(trimmed, &b); err == nil {
		return b, true
	}

	var n float64
	if err := json.Unmarshal(trimmed, &n); err == nil {
		return n != 0, true
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "", "0", "false":
			return false, true
		default:
			return true, true
		}
	}

	// Arrays and objects are treated as truthy presence.
	return true, true
}
