// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailsync-io/mailchimp-proxy-service/internal/domain/model"
	"github.com/mailsync-io/mailchimp-proxy-service/internal/infrastructure/mock"
	"github.com/mailsync-io/mailchimp-proxy-service/internal/validation"
	"github.com/mailsync-io/mailchimp-proxy-service/pkg/constants"
	errs "github.com/mailsync-io/mailchimp-proxy-service/pkg/errors"
	"github.com/mailsync-io/mailchimp-proxy-service/pkg/utils"
)

func sampleMember(uid, listUID, mailChimpID, email string) *model.Member {
	return &model.Member{
		UID:          uid,
		ListUID:      listUID,
		MailChimpID:  mailChimpID,
		EmailAddress: email,
		Status:       constants.MemberStatusSubscribed,
	}
}

func TestCreateMember(t *testing.T) {
	ctx := context.Background()
	repo := mock.NewMockRepository()

	tests := []struct {
		name      string
		listUID   string
		member    *model.Member
		seed      func()
		setupMock func(*mock.MockMailChimpClient)
		validate  func(*testing.T, *mock.MockMailChimpClient, *model.Member, error)
	}{
		{
			name:    "creates member locally and on MailChimp",
			listUID: "list-1",
			member:  sampleMember("", "", "", "ada@acme.example"),
			seed: func() {
				repo.AddList(sampleList("list-1", "mc-list-1"))
			},
			validate: func(t *testing.T, client *mock.MockMailChimpClient, member *model.Member, err error) {
				require.NoError(t, err)
				assert.NotEmpty(t, member.UID)
				assert.NotEmpty(t, member.MailChimpID)
				assert.NotEmpty(t, member.EmailID)
				assert.NotEmpty(t, member.UniqueEmailID)
				require.Len(t, client.Calls(), 1)
				assert.Equal(t, "CreateMember", client.Calls()[0].Operation)
				assert.Equal(t, "mc-list-1", client.Calls()[0].ListID)

				stored, _, getErr := repo.GetMember(ctx, member.UID)
				require.NoError(t, getErr)
				assert.Equal(t, member.MailChimpID, stored.MailChimpID)
			},
		},
		{
			name:    "duplicate email is rejected with zero side effects",
			listUID: "list-1",
			member:  sampleMember("", "", "", "ADA@acme.example"),
			seed: func() {
				repo.AddList(sampleList("list-1", "mc-list-1"))
				repo.AddMember(sampleMember("member-1", "list-1", "mc-member-1", "ada@acme.example"))
			},
			validate: func(t *testing.T, client *mock.MockMailChimpClient, member *model.Member, err error) {
				require.Error(t, err)
				var conflictErr errs.Conflict
				require.ErrorAs(t, err, &conflictErr)
				assert.Equal(t, "A list cannot have duplicate Emails address. [Email: ADA@acme.example] [List ID: list-1]", err.Error())
				assert.Empty(t, client.Calls())
				assert.Equal(t, 1, repo.GetMemberCount())
			},
		},
		{
			name:    "unknown list is rejected",
			listUID: "missing",
			member:  sampleMember("", "", "", "ada@acme.example"),
			seed:    func() {},
			validate: func(t *testing.T, client *mock.MockMailChimpClient, member *model.Member, err error) {
				require.Error(t, err)
				var notFoundErr errs.NotFound
				require.ErrorAs(t, err, &notFoundErr)
				assert.Equal(t, "MailChimpList not found [List Id:missing]", err.Error())
				assert.Empty(t, client.Calls())
			},
		},
		{
			name:    "unsynced parent list blocks member creation",
			listUID: "list-1",
			member:  sampleMember("", "", "", "ada@acme.example"),
			seed: func() {
				repo.AddList(sampleList("list-1", ""))
			},
			validate: func(t *testing.T, client *mock.MockMailChimpClient, member *model.Member, err error) {
				require.Error(t, err)
				var notSyncedErr errs.NotSynced
				require.ErrorAs(t, err, &notSyncedErr)
				assert.Empty(t, client.Calls())
				assert.Equal(t, 0, repo.GetMemberCount())
			},
		},
		{
			name:    "invalid member is rejected before persistence",
			listUID: "list-1",
			member: func() *model.Member {
				member := sampleMember("", "", "", "ada@acme.example")
				member.Status = "lurking"
				return member
			}(),
			seed: func() {
				repo.AddList(sampleList("list-1", "mc-list-1"))
			},
			validate: func(t *testing.T, client *mock.MockMailChimpClient, member *model.Member, err error) {
				require.Error(t, err)
				var validationErr errs.Validation
				require.ErrorAs(t, err, &validationErr)
				assert.Contains(t, validationErr.Fields(), "status")
				assert.Empty(t, client.Calls())
				assert.Equal(t, 0, repo.GetMemberCount())
			},
		},
		{
			name:    "remote failure leaves the local member unsynced",
			listUID: "list-1",
			member:  sampleMember("", "", "", "ada@acme.example"),
			seed: func() {
				repo.AddList(sampleList("list-1", "mc-list-1"))
			},
			setupMock: func(client *mock.MockMailChimpClient) {
				client.SetError("CreateMember", errs.NewRemote("MailChimp API error"))
			},
			validate: func(t *testing.T, client *mock.MockMailChimpClient, member *model.Member, err error) {
				require.Error(t, err)
				var remoteErr errs.Remote
				require.ErrorAs(t, err, &remoteErr)

				members, listErr := repo.ListMembers(ctx, "list-1")
				require.NoError(t, listErr)
				require.Len(t, members, 1)
				assert.Empty(t, members[0].MailChimpID)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo.ClearAll()
			tc.seed()
			client := mock.NewMockMailChimpClient()
			if tc.setupMock != nil {
				tc.setupMock(client)
			}
			writer := newTestWriter(repo, client)

			created, _, err := writer.CreateMember(ctx, tc.listUID, tc.member)
			tc.validate(t, client, created, err)
		})
	}
}

func TestUpdateMember(t *testing.T) {
	ctx := context.Background()
	repo := mock.NewMockRepository()

	seedSynced := func() {
		repo.AddList(sampleList("list-1", "mc-list-1"))
		repo.AddMember(sampleMember("member-1", "list-1", "mc-member-1", "ada@acme.example"))
	}

	tests := []struct {
		name      string
		listUID   string
		memberUID string
		patch     *model.MemberPatch
		seed      func()
		setupMock func(*mock.MockMailChimpClient)
		validate  func(*testing.T, *mock.MockMailChimpClient, *model.Member, error)
	}{
		{
			name:      "updates member locally after remote success",
			listUID:   "list-1",
			memberUID: "member-1",
			patch:     &model.MemberPatch{Status: utils.StringPtr(constants.MemberStatusUnsubscribed)},
			seed:      seedSynced,
			validate: func(t *testing.T, client *mock.MockMailChimpClient, member *model.Member, err error) {
				require.NoError(t, err)
				assert.Equal(t, constants.MemberStatusUnsubscribed, member.Status)
				require.Len(t, client.Calls(), 1)
				assert.Equal(t, "UpdateMember", client.Calls()[0].Operation)
				assert.Equal(t, "mc-member-1", client.Calls()[0].MemberID)

				stored, _, getErr := repo.GetMember(ctx, "member-1")
				require.NoError(t, getErr)
				assert.Equal(t, constants.MemberStatusUnsubscribed, stored.Status)
			},
		},
		{
			name:      "same email in different case is accepted",
			listUID:   "list-1",
			memberUID: "member-1",
			patch: &model.MemberPatch{
				EmailAddress: utils.StringPtr("ADA@Acme.example"),
				Status:       utils.StringPtr(constants.MemberStatusUnsubscribed),
			},
			seed: seedSynced,
			validate: func(t *testing.T, client *mock.MockMailChimpClient, member *model.Member, err error) {
				require.NoError(t, err)
				assert.Equal(t, "ada@acme.example", member.EmailAddress)
			},
		},
		{
			name:      "email change is rejected without touching state",
			listUID:   "list-1",
			memberUID: "member-1",
			patch:     &model.MemberPatch{EmailAddress: utils.StringPtr("grace@acme.example")},
			seed:      seedSynced,
			validate: func(t *testing.T, client *mock.MockMailChimpClient, member *model.Member, err error) {
				require.Error(t, err)
				var notAllowedErr errs.NotAllowedChange
				require.ErrorAs(t, err, &notAllowedErr)
				assert.Equal(t, "Member Email address is not allowed to change by this endpoint. Original: ada@acme.example; New: grace@acme.example", err.Error())
				assert.Empty(t, client.Calls())

				stored, _, getErr := repo.GetMember(ctx, "member-1")
				require.NoError(t, getErr)
				assert.Equal(t, "ada@acme.example", stored.EmailAddress)
			},
		},
		{
			name:      "member of a different list is not found",
			listUID:   "list-1",
			memberUID: "member-2",
			patch:     &model.MemberPatch{Status: utils.StringPtr(constants.MemberStatusUnsubscribed)},
			seed: func() {
				seedSynced()
				repo.AddList(sampleList("list-2", "mc-list-2"))
				repo.AddMember(sampleMember("member-2", "list-2", "mc-member-2", "grace@acme.example"))
			},
			validate: func(t *testing.T, client *mock.MockMailChimpClient, member *model.Member, err error) {
				require.Error(t, err)
				var notFoundErr errs.NotFound
				require.ErrorAs(t, err, &notFoundErr)
				assert.Equal(t, "MailChimpMember not found [List Id:list-1|Member Id:member-2]", err.Error())
			},
		},
		{
			name:      "unsynced member cannot be updated",
			listUID:   "list-1",
			memberUID: "member-1",
			patch:     &model.MemberPatch{Status: utils.StringPtr(constants.MemberStatusUnsubscribed)},
			seed: func() {
				repo.AddList(sampleList("list-1", "mc-list-1"))
				repo.AddMember(sampleMember("member-1", "list-1", "", "ada@acme.example"))
			},
			validate: func(t *testing.T, client *mock.MockMailChimpClient, member *model.Member, err error) {
				require.Error(t, err)
				var notSyncedErr errs.NotSynced
				require.ErrorAs(t, err, &notSyncedErr)
				assert.Equal(t, "MailChimp Id not found [List Id:list-1|Member Id:member-1]", err.Error())
				assert.Empty(t, client.Calls())
			},
		},
		{
			name:      "remote failure leaves local member untouched",
			listUID:   "list-1",
			memberUID: "member-1",
			patch:     &model.MemberPatch{Status: utils.StringPtr(constants.MemberStatusUnsubscribed)},
			seed:      seedSynced,
			setupMock: func(client *mock.MockMailChimpClient) {
				client.SetError("UpdateMember", errs.NewRemote("MailChimp API error"))
			},
			validate: func(t *testing.T, client *mock.MockMailChimpClient, member *model.Member, err error) {
				require.Error(t, err)

				stored, _, getErr := repo.GetMember(ctx, "member-1")
				require.NoError(t, getErr)
				assert.Equal(t, constants.MemberStatusSubscribed, stored.Status)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo.ClearAll()
			tc.seed()
			client := mock.NewMockMailChimpClient()
			if tc.setupMock != nil {
				tc.setupMock(client)
			}
			writer := newTestWriter(repo, client)

			updated, _, err := writer.UpdateMember(ctx, tc.listUID, tc.memberUID, tc.patch)
			tc.validate(t, client, updated, err)
		})
	}
}

func TestDeleteMember(t *testing.T) {
	ctx := context.Background()
	repo := mock.NewMockRepository()

	tests := []struct {
		name      string
		listUID   string
		memberUID string
		seed      func()
		setupMock func(*mock.MockMailChimpClient)
		validate  func(*testing.T, *mock.MockMailChimpClient, error)
	}{
		{
			name:      "deletes remotely then locally and frees the email",
			listUID:   "list-1",
			memberUID: "member-1",
			seed: func() {
				repo.AddList(sampleList("list-1", "mc-list-1"))
				repo.AddMember(sampleMember("member-1", "list-1", "mc-member-1", "ada@acme.example"))
			},
			validate: func(t *testing.T, client *mock.MockMailChimpClient, err error) {
				require.NoError(t, err)
				require.Len(t, client.Calls(), 1)
				assert.Equal(t, "DeleteMember", client.Calls()[0].Operation)
				assert.Equal(t, 0, repo.GetMemberCount())

				// email can be registered again
				writer := newTestWriter(repo, client)
				_, _, createErr := writer.CreateMember(ctx, "list-1", sampleMember("", "", "", "ada@acme.example"))
				require.NoError(t, createErr)
			},
		},
		{
			name:      "unsynced member cannot be deleted",
			listUID:   "list-1",
			memberUID: "member-1",
			seed: func() {
				repo.AddList(sampleList("list-1", "mc-list-1"))
				repo.AddMember(sampleMember("member-1", "list-1", "", "ada@acme.example"))
			},
			validate: func(t *testing.T, client *mock.MockMailChimpClient, err error) {
				require.Error(t, err)
				var notSyncedErr errs.NotSynced
				require.ErrorAs(t, err, &notSyncedErr)
				assert.Empty(t, client.Calls())
				assert.Equal(t, 1, repo.GetMemberCount())
			},
		},
		{
			name:      "remote failure keeps the local member",
			listUID:   "list-1",
			memberUID: "member-1",
			seed: func() {
				repo.AddList(sampleList("list-1", "mc-list-1"))
				repo.AddMember(sampleMember("member-1", "list-1", "mc-member-1", "ada@acme.example"))
			},
			setupMock: func(client *mock.MockMailChimpClient) {
				client.SetError("DeleteMember", errs.NewRemote("MailChimp API error"))
			},
			validate: func(t *testing.T, client *mock.MockMailChimpClient, err error) {
				require.Error(t, err)
				assert.Equal(t, 1, repo.GetMemberCount())
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo.ClearAll()
			tc.seed()
			client := mock.NewMockMailChimpClient()
			if tc.setupMock != nil {
				tc.setupMock(client)
			}
			writer := newTestWriter(repo, client)

			err := writer.DeleteMember(ctx, tc.listUID, tc.memberUID)
			tc.validate(t, client, err)
		})
	}
}

// panickingMemberStorage simulates a storage layer that panics mid-write,
// after the email constraint has already been reserved.
type panickingMemberStorage struct {
	*mock.MockRepository
}

func (panickingMemberStorage) CreateMember(context.Context, *model.Member) (*model.Member, uint64, error) {
	panic("kv write failed")
}

func TestCreateMemberPanicRollsBackReservedKeys(t *testing.T) {
	ctx := context.Background()
	repo := mock.NewMockRepository()
	repo.ClearAll()
	repo.AddList(sampleList("list-1", "mc-list-1"))

	writer := NewWriterOrchestrator(
		WithStorageWriter(panickingMemberStorage{repo}),
		WithWriterStorageReader(repo),
		WithEntityValidator(validation.NewValidator()),
		WithMailChimpClient(mock.NewMockMailChimpClient()),
	)

	require.PanicsWithValue(t, "kv write failed", func() {
		_, _, _ = writer.CreateMember(ctx, "list-1", sampleMember("", "", "", "ada@acme.example"))
	})

	// The constraint reservation is rolled back, so the email stays available.
	probe := &model.Member{ListUID: "list-1", EmailAddress: "ada@acme.example"}
	key := fmt.Sprintf(constants.KVLookupMemberConstraintPrefix, probe.BuildIndexKey(ctx))
	assert.False(t, repo.HasConstraint(key))
	assert.Equal(t, 0, repo.GetMemberCount())
}
