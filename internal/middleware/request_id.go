// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package middleware provides HTTP middleware shared by the API server.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/mailsync-io/mailchimp-proxy-service/pkg/constants"
	"github.com/mailsync-io/mailchimp-proxy-service/pkg/log"
)

// RequestIDMiddleware propagates the request ID from the X-Request-Id header,
// generating one when absent. The ID is echoed on the response and attached
// to the request context so every log record carries it.
func RequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(constants.RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}

			w.Header().Set(constants.RequestIDHeader, requestID)

			ctx := log.AppendCtx(r.Context(), slog.String("request_id", requestID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
