// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package api exposes the list and member operations over HTTP.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mailsync-io/mailchimp-proxy-service/internal/middleware"
	"github.com/mailsync-io/mailchimp-proxy-service/internal/service"
)

// Server holds the handlers for the list and member endpoints.
type Server struct {
	reader   service.Reader
	writer   service.Writer
	checkers []ReadinessChecker
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithReadinessCheckers registers the dependencies probed by /readyz.
func WithReadinessCheckers(checkers ...ReadinessChecker) ServerOption {
	return func(s *Server) {
		s.checkers = append(s.checkers, checkers...)
	}
}

// NewServer builds the HTTP router with all routes and middleware attached.
func NewServer(reader service.Reader, writer service.Writer, opts ...ServerOption) *chi.Mux {
	s := &Server{
		reader: reader,
		writer: writer,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RequestLoggerMiddleware())
	r.Use(chimiddleware.Recoverer)

	r.Route("/mailchimp/lists", func(r chi.Router) {
		r.Post("/", s.createList)
		r.Get("/", s.getLists)

		r.Route("/{listID}", func(r chi.Router) {
			r.Get("/", s.getList)
			r.Put("/", s.updateList)
			r.Delete("/", s.deleteList)

			r.Route("/members", func(r chi.Router) {
				r.Post("/", s.createMember)
				r.Get("/", s.getMembers)

				r.Route("/{memberID}", func(r chi.Router) {
					r.Get("/", s.getMember)
					r.Put("/", s.updateMember)
					r.Delete("/", s.deleteMember)
				})
			})
		})
	})

	r.Get("/livez", s.livez)
	r.Get("/readyz", s.readyz)

	return r
}
