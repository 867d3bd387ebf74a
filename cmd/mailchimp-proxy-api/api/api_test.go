// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailsync-io/mailchimp-proxy-service/internal/domain/model"
	"github.com/mailsync-io/mailchimp-proxy-service/internal/infrastructure/mock"
	"github.com/mailsync-io/mailchimp-proxy-service/internal/service"
	"github.com/mailsync-io/mailchimp-proxy-service/internal/validation"
	"github.com/mailsync-io/mailchimp-proxy-service/pkg/utils"
)

func newTestServer(t *testing.T) (http.Handler, *mock.MockRepository, *mock.MockMailChimpClient) {
	t.Helper()

	repo := mock.NewMockRepository()
	repo.ClearAll()
	mcClient := mock.NewMockMailChimpClient()

	reader := service.NewReaderOrchestrator(
		service.WithStorageReader(repo),
	)
	writer := service.NewWriterOrchestrator(
		service.WithStorageWriter(repo),
		service.WithWriterStorageReader(repo),
		service.WithEntityValidator(validation.NewValidator()),
		service.WithMailChimpClient(mcClient),
	)

	return NewServer(reader, writer, WithReadinessCheckers(repo, mcClient)), repo, mcClient
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func validListBody() map[string]any {
	return map[string]any{
		"name":                "Product Updates",
		"permission_reminder": "You subscribed on our website.",
		"email_type_option":   true,
		"contact": map[string]any{
			"company":  "Acme Corp",
			"address1": "1 Main St",
			"city":     "Springfield",
			"state":    "IL",
			"zip":      "62701",
			"country":  "US",
		},
		"campaign_defaults": map[string]any{
			"from_name":  "Acme",
			"from_email": "news@acme.example",
			"subject":    "News",
			"language":   "en",
		},
	}
}

func seedSyncedList(repo *mock.MockRepository, uid, mailChimpID string) {
	repo.AddList(&model.List{
		UID:                uid,
		MailChimpID:        mailChimpID,
		Name:               "Product Updates",
		PermissionReminder: "You subscribed on our website.",
		EmailTypeOption:    utils.BoolPtr(true),
		Contact: model.ListContact{
			Company:  "Acme Corp",
			Address1: "1 Main St",
			City:     "Springfield",
			State:    "IL",
			Zip:      "62701",
			Country:  "US",
		},
		CampaignDefaults: model.ListCampaignDefaults{
			FromName:  "Acme",
			FromEmail: "news@acme.example",
			Subject:   "News",
			Language:  "en",
		},
	})
}

func seedMember(repo *mock.MockRepository, uid, listUID, mailChimpID, email string) {
	repo.AddMember(&model.Member{
		UID:          uid,
		ListUID:      listUID,
		MailChimpID:  mailChimpID,
		EmailAddress: email,
		Status:       "subscribed",
	})
}

func TestListEndpoints(t *testing.T) {
	t.Run("create list returns created entity with remote ID", func(t *testing.T) {
		handler, _, _ := newTestServer(t)

		rec := doRequest(t, handler, http.MethodPost, "/mailchimp/lists", validListBody())
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("ETag"))

		var created model.List
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.NotEmpty(t, created.UID)
		assert.Equal(t, "mc-list-1", created.MailChimpID)
		assert.Equal(t, "Product Updates", created.Name)
	})

	t.Run("create list with missing fields returns field errors", func(t *testing.T) {
		handler, _, _ := newTestServer(t)

		rec := doRequest(t, handler, http.MethodPost, "/mailchimp/lists", map[string]any{
			"name": "Incomplete",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Invalid data given", resp.Message)
		assert.Contains(t, resp.Errors, "permission_reminder")
		assert.Contains(t, resp.Errors, "email_type_option")
	})

	t.Run("malformed body returns bad request", func(t *testing.T) {
		handler, _, _ := newTestServer(t)

		req := httptest.NewRequest(http.MethodPost, "/mailchimp/lists", bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "invalid request body", resp.Message)
	})

	t.Run("get unknown list returns not found", func(t *testing.T) {
		handler, _, _ := newTestServer(t)

		rec := doRequest(t, handler, http.MethodGet, "/mailchimp/lists/missing", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "MailChimpList not found [List Id:missing]", resp.Message)
	})

	t.Run("list index returns stored lists", func(t *testing.T) {
		handler, repo, _ := newTestServer(t)
		seedSyncedList(repo, "list-1", "mc-list-1")

		rec := doRequest(t, handler, http.MethodGet, "/mailchimp/lists", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var lists []*model.List
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lists))
		require.Len(t, lists, 1)
		assert.Equal(t, "list-1", lists[0].UID)
	})

	t.Run("update list propagates change and bumps revision", func(t *testing.T) {
		handler, repo, mcClient := newTestServer(t)
		seedSyncedList(repo, "list-1", "mc-list-1")

		rec := doRequest(t, handler, http.MethodPut, "/mailchimp/lists/list-1", map[string]any{
			"name": "Renamed Updates",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var updated model.List
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		assert.Equal(t, "Renamed Updates", updated.Name)

		calls := mcClient.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, "UpdateList", calls[0].Operation)
		assert.Equal(t, "mc-list-1", calls[0].ListID)
	})

	t.Run("delete unsynced list is rejected", func(t *testing.T) {
		handler, repo, _ := newTestServer(t)
		repo.AddList(&model.List{
			UID:                "list-2",
			Name:               "Draft",
			PermissionReminder: "You subscribed.",
			EmailTypeOption:    utils.BoolPtr(false),
		})

		rec := doRequest(t, handler, http.MethodDelete, "/mailchimp/lists/list-2", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "MailChimp Id not found [List Id:list-2]", resp.Message)
		assert.Equal(t, 1, repo.GetListCount())
	})

	t.Run("delete list removes it", func(t *testing.T) {
		handler, repo, _ := newTestServer(t)
		seedSyncedList(repo, "list-1", "mc-list-1")

		rec := doRequest(t, handler, http.MethodDelete, "/mailchimp/lists/list-1", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
		assert.Equal(t, 0, repo.GetListCount())
	})
}

func TestMemberEndpoints(t *testing.T) {
	t.Run("create member stores and syncs", func(t *testing.T) {
		handler, repo, _ := newTestServer(t)
		seedSyncedList(repo, "list-1", "mc-list-1")

		rec := doRequest(t, handler, http.MethodPost, "/mailchimp/lists/list-1/members", map[string]any{
			"email_address": "ada@acme.example",
			"status":        "subscribed",
			"vip":           "1",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var created model.Member
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, "list-1", created.ListUID)
		assert.Equal(t, "mc-member-1", created.MailChimpID)
		require.NotNil(t, created.VIP)
		assert.True(t, *created.VIP)
	})

	t.Run("duplicate email is rejected before any side effect", func(t *testing.T) {
		handler, repo, mcClient := newTestServer(t)
		seedSyncedList(repo, "list-1", "mc-list-1")
		seedMember(repo, "member-1", "list-1", "mc-member-1", "ada@acme.example")

		rec := doRequest(t, handler, http.MethodPost, "/mailchimp/lists/list-1/members", map[string]any{
			"email_address": "ADA@acme.example",
			"status":        "subscribed",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t,
			"A list cannot have duplicate Emails address. [Email: ADA@acme.example] [List ID: list-1]",
			resp.Message)
		assert.Empty(t, mcClient.Calls())
		assert.Equal(t, 1, repo.GetMemberCount())
	})

	t.Run("member create on unknown list returns not found", func(t *testing.T) {
		handler, _, _ := newTestServer(t)

		rec := doRequest(t, handler, http.MethodPost, "/mailchimp/lists/missing/members", map[string]any{
			"email_address": "ada@acme.example",
			"status":        "subscribed",
		})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("email change is not allowed", func(t *testing.T) {
		handler, repo, _ := newTestServer(t)
		seedSyncedList(repo, "list-1", "mc-list-1")
		seedMember(repo, "member-1", "list-1", "mc-member-1", "ada@acme.example")

		rec := doRequest(t, handler, http.MethodPut, "/mailchimp/lists/list-1/members/member-1", map[string]any{
			"email_address": "grace@acme.example",
			"status":        "subscribed",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t,
			"Member Email address is not allowed to change by this endpoint. Original: ada@acme.example; New: grace@acme.example",
			resp.Message)
	})

	t.Run("member lookup is scoped to its list", func(t *testing.T) {
		handler, repo, _ := newTestServer(t)
		seedSyncedList(repo, "list-1", "mc-list-1")
		seedSyncedList(repo, "list-2", "mc-list-2")
		seedMember(repo, "member-1", "list-2", "mc-member-1", "ada@acme.example")

		rec := doRequest(t, handler, http.MethodGet, "/mailchimp/lists/list-1/members/member-1", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "MailChimpMember not found [List Id:list-1|Member Id:member-1]", resp.Message)
	})

	t.Run("delete member removes it and frees the email", func(t *testing.T) {
		handler, repo, _ := newTestServer(t)
		seedSyncedList(repo, "list-1", "mc-list-1")
		seedMember(repo, "member-1", "list-1", "mc-member-1", "ada@acme.example")

		rec := doRequest(t, handler, http.MethodDelete, "/mailchimp/lists/list-1/members/member-1", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doRequest(t, handler, http.MethodGet, "/mailchimp/lists/list-1/members/member-1", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = doRequest(t, handler, http.MethodPost, "/mailchimp/lists/list-1/members", map[string]any{
			"email_address": "ada@acme.example",
			"status":        "subscribed",
		})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("member list returns all members of the list", func(t *testing.T) {
		handler, repo, _ := newTestServer(t)
		seedSyncedList(repo, "list-1", "mc-list-1")
		seedMember(repo, "member-1", "list-1", "mc-member-1", "ada@acme.example")
		seedMember(repo, "member-2", "list-1", "mc-member-2", "grace@acme.example")

		rec := doRequest(t, handler, http.MethodGet, "/mailchimp/lists/list-1/members", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var members []*model.Member
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &members))
		assert.Len(t, members, 2)
	})
}

type failingChecker struct{}

func (failingChecker) IsReady(context.Context) error {
	return fmt.Errorf("dependency unreachable")
}

func TestHealthEndpoints(t *testing.T) {
	t.Run("livez always succeeds", func(t *testing.T) {
		handler, _, _ := newTestServer(t)

		rec := doRequest(t, handler, http.MethodGet, "/livez", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("readyz succeeds when all dependencies are ready", func(t *testing.T) {
		handler, _, _ := newTestServer(t)

		rec := doRequest(t, handler, http.MethodGet, "/readyz", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("readyz fails when a dependency is down", func(t *testing.T) {
		repo := mock.NewMockRepository()
		repo.ClearAll()
		reader := service.NewReaderOrchestrator(service.WithStorageReader(repo))
		writer := service.NewWriterOrchestrator(
			service.WithStorageWriter(repo),
			service.WithWriterStorageReader(repo),
			service.WithEntityValidator(validation.NewValidator()),
		)
		handler := NewServer(reader, writer, WithReadinessCheckers(repo, failingChecker{}))

		rec := doRequest(t, handler, http.MethodGet, "/readyz", nil)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
