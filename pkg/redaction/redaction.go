// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package redaction provides helpers for masking sensitive values in logs.
package redaction

import "strings"

// RedactEmail masks the local part of an email address for logging.
// "jane.doe@example.com" becomes "j*******@example.com". Values without
// an "@" are fully masked.
func RedactEmail(email string) string {
	if email == "" {
		return ""
	}

	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return strings.Repeat("*", len(email))
	}

	local := email[:at]
	domain := email[at:]

	if len(local) == 1 {
		return "*" + domain
	}

	return local[:1] + strings.Repeat("*", len(local)-1) + domain
}

// Redact fully masks a value for logging, preserving only its length.
func Redact(value string) string {
	return strings.Repeat("*", len(value))
}
