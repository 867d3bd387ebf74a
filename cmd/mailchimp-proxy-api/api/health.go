// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"log/slog"
	"net/http"
)

// ReadinessChecker is implemented by dependencies the service cannot run
// without, such as the storage backend and the MailChimp client.
type ReadinessChecker interface {
	IsReady(ctx context.Context) error
}

// livez reports process liveness. It always succeeds.
func (s *Server) livez(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK\n"))
}

// readyz probes every registered dependency and fails if any is unreachable.
func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	for _, checker := range s.checkers {
		if err := checker.IsReady(ctx); err != nil {
			slog.ErrorContext(ctx, "readiness check failed", "error", err)
			w.Header().Set("Content-Type", "text/plain")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("NOT READY\n"))
			return
		}
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK\n"))
}
