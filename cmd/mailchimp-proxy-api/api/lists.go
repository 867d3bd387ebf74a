// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// createList handles POST /mailchimp/lists.
func (s *Server) createList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload ListPayload
	if !decodeBody(ctx, w, r, &payload) {
		return
	}

	list, revision, err := s.writer.CreateList(ctx, payload.toList())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("ETag", fmt.Sprintf("%d", revision))
	writeJSON(ctx, w, http.StatusOK, list)
}

// getLists handles GET /mailchimp/lists.
func (s *Server) getLists(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	lists, err := s.reader.ListLists(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, lists)
}

// getList handles GET /mailchimp/lists/{listID}.
func (s *Server) getList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	list, revision, err := s.reader.GetList(ctx, chi.URLParam(r, "listID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("ETag", fmt.Sprintf("%d", revision))
	writeJSON(ctx, w, http.StatusOK, list)
}

// updateList handles PUT /mailchimp/lists/{listID}.
func (s *Server) updateList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload ListPayload
	if !decodeBody(ctx, w, r, &payload) {
		return
	}

	list, revision, err := s.writer.UpdateList(ctx, chi.URLParam(r, "listID"), payload.toPatch())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("ETag", fmt.Sprintf("%d", revision))
	writeJSON(ctx, w, http.StatusOK, list)
}

// deleteList handles DELETE /mailchimp/lists/{listID}.
func (s *Server) deleteList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := s.writer.DeleteList(ctx, chi.URLParam(r, "listID")); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, []any{})
}
