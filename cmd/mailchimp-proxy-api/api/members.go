// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// createMember handles POST /mailchimp/lists/{listID}/members. The parent
// list always comes from the route, never from the body.
func (s *Server) createMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload MemberPayload
	if !decodeBody(ctx, w, r, &payload) {
		return
	}

	member, revision, err := s.writer.CreateMember(ctx, chi.URLParam(r, "listID"), payload.toMember())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("ETag", fmt.Sprintf("%d", revision))
	writeJSON(ctx, w, http.StatusOK, member)
}

// getMembers handles GET /mailchimp/lists/{listID}/members.
func (s *Server) getMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	members, err := s.reader.ListMembers(ctx, chi.URLParam(r, "listID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, members)
}

// getMember handles GET /mailchimp/lists/{listID}/members/{memberID}.
func (s *Server) getMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	member, revision, err := s.reader.GetMember(ctx, chi.URLParam(r, "listID"), chi.URLParam(r, "memberID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("ETag", fmt.Sprintf("%d", revision))
	writeJSON(ctx, w, http.StatusOK, member)
}

// updateMember handles PUT /mailchimp/lists/{listID}/members/{memberID}.
func (s *Server) updateMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload MemberPayload
	if !decodeBody(ctx, w, r, &payload) {
		return
	}

	member, revision, err := s.writer.UpdateMember(
		ctx, chi.URLParam(r, "listID"), chi.URLParam(r, "memberID"), payload.toPatch())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("ETag", fmt.Sprintf("%d", revision))
	writeJSON(ctx, w, http.StatusOK, member)
}

// deleteMember handles DELETE /mailchimp/lists/{listID}/members/{memberID}.
func (s *Server) deleteMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := s.writer.DeleteMember(ctx, chi.URLParam(r, "listID"), chi.URLParam(r, "memberID")); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, []any{})
}
