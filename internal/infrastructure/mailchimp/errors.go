// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mailchimp

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mailsync-io/mailchimp-proxy-service/pkg/errors"
	"github.com/mailsync-io/mailchimp-proxy-service/pkg/httpclient"
)

// MapHTTPError maps httpclient errors to domain errors with proper context
// logging. Failed MailChimp calls surface as Remote errors carrying the
// message from the API response, so callers can pass it through unchanged.
func MapHTTPError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	// Check if it's a retryable error from httpclient
	if retryableErr, ok := err.(*httpclient.RetryableError); ok {
		message := problemMessage(retryableErr.Message)

		slog.WarnContext(ctx, "MailChimp HTTP error occurred",
			"status_code", retryableErr.StatusCode,
			"message", message,
			"body", retryableErr.Message,
		)

		// The cause is deliberately not wrapped: the API message must reach
		// the caller unchanged, without the raw response body appended.
		return errors.NewRemote(message)
	}

	// Handle other error types (network, timeout, etc.)
	slog.ErrorContext(ctx, "MailChimp request failed with non-HTTP error",
		"error", err.Error(),
	)
	return errors.NewRemote("MailChimp request failed", err)
}

// problemMessage extracts the most specific message from a MailChimp
// problem document, falling back to the raw body.
func problemMessage(body string) string {
	var problem ProblemObject
	if err := json.Unmarshal([]byte(body), &problem); err == nil {
		if problem.Detail != "" {
			return problem.Detail
		}
		if problem.Title != "" {
			return problem.Title
		}
	}

	if body == "" {
		return "MailChimp API error"
	}
	return body
}
