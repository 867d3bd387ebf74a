// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	errs "github.com/mailsync-io/mailchimp-proxy-service/pkg/errors"
)

// errorResponse is the JSON body returned for any failed request. Errors is
// only populated for validation failures, keyed by field name.
type errorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.ErrorContext(ctx, "failed to encode response body", "error", err)
	}
}

// writeError maps service errors onto HTTP statuses and renders the error
// envelope. Validation errors carry their per-field messages.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	body := errorResponse{Message: err.Error()}

	var validationErr errs.Validation
	if errors.As(err, &validationErr) {
		body.Errors = validationErr.Fields()
	}

	writeJSON(ctx, w, statusForError(err), body)
}

func statusForError(err error) int {
	var (
		notFoundErr           errs.NotFound
		unauthorizedErr       errs.Unauthorized
		unexpectedErr         errs.Unexpected
		serviceUnavailableErr errs.ServiceUnavailable
	)

	switch {
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &unauthorizedErr):
		return http.StatusUnauthorized
	case errors.As(err, &serviceUnavailableErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &unexpectedErr):
		return http.StatusInternalServerError
	default:
		// Validation, Conflict, NotAllowedChange, NotSynced and Remote all
		// surface as client errors.
		return http.StatusBadRequest
	}
}

// decodeBody parses a JSON request body into dst, rejecting unparseable input.
func decodeBody(ctx context.Context, w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.WarnContext(ctx, "failed to decode request body", "error", err)
		writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return false
	}
	return true
}
