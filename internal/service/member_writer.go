// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mailsync-io/mailchimp-proxy-service/internal/domain/model"
	errs "github.com/mailsync-io/mailchimp-proxy-service/pkg/errors"
	"github.com/mailsync-io/mailchimp-proxy-service/pkg/redaction"
)

// CreateMember orchestrates member creation. The duplicate guard runs before
// validation and persistence: a duplicate email must be rejected with zero
// side effects. After the guard passes, the email constraint is reserved,
// the member is persisted locally, then created on MailChimp and persisted
// again with the assigned IDs. Local storage failures roll back the reserved
// keys; a remote failure leaves the member unsynced without rollback so the
// caller can retry via update.
func (o *writerOrchestrator) CreateMember(ctx context.Context, listUID string, member *model.Member) (*model.Member, uint64, error) {
	slog.DebugContext(ctx, "executing create member use case",
		"list_uid", listUID,
		"email", redaction.RedactEmail(member.EmailAddress),
	)

	list, _, err := o.storageReader.GetList(ctx, listUID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get parent list for member creation",
			"error", err,
			"list_uid", listUID,
		)
		return nil, 0, listNotFoundError(listUID, err)
	}

	if !list.IsSynced() {
		slog.WarnContext(ctx, "parent list has no MailChimp ID, member cannot be created remotely",
			"list_uid", listUID,
		)
		return nil, 0, notSyncedError(listUID, "")
	}

	member.ListUID = listUID

	// Duplicate guard runs before validation.
	if existing, _, err := o.storageReader.GetMemberByEmail(ctx, listUID, member.EmailAddress); err == nil {
		slog.WarnContext(ctx, "member email already exists in list",
			"list_uid", listUID,
			"existing_member_uid", existing.UID,
		)
		return nil, 0, duplicateEmailError(member.EmailAddress, listUID)
	} else if handled, err := handleIdempotencyLookupError(ctx, err, "member_email", redaction.RedactEmail(member.EmailAddress)); !handled {
		return nil, 0, err
	}

	if err := o.validateWire(ctx, member.ToWire()); err != nil {
		return nil, 0, err
	}

	if member.UID == "" {
		member.UID = uuid.NewString()
	}
	now := time.Now()
	member.CreatedAt = now
	member.UpdatedAt = now

	// Keys created so far, removed again if a later storage step fails. A
	// panic still rolls back the reserved keys, then propagates so the HTTP
	// recoverer produces the error response.
	var keys []string
	var rollbackRequired bool
	defer func() {
		if r := recover(); r != nil {
			o.deleteKeys(ctx, keys, true)
			panic(r)
		}
		if rollbackRequired {
			o.deleteKeys(ctx, keys, true)
		}
	}()

	constraintKey, err := o.storageWriter.UniqueMember(ctx, member)
	if err != nil {
		slog.WarnContext(ctx, "failed to reserve member email constraint",
			"error", err,
			"list_uid", listUID,
		)
		return nil, 0, err
	}
	keys = append(keys, constraintKey)

	keys = append(keys, member.UID)
	created, revision, err := o.storageWriter.CreateMember(ctx, member)
	if err != nil {
		slog.ErrorContext(ctx, "failed to persist member",
			"error", err,
			"member_uid", member.UID,
		)
		rollbackRequired = true
		return nil, 0, err
	}

	if o.mailchimpClient == nil {
		slog.InfoContext(ctx, "MailChimp integration disabled - member created locally only",
			"member_uid", created.UID,
		)
		return created, revision, nil
	}

	remote, err := o.mailchimpClient.CreateMember(ctx, list.MailChimpID, created.ToWire())
	if err != nil {
		slog.WarnContext(ctx, "MailChimp member creation failed, local member left unsynced",
			"error", err,
			"member_uid", created.UID,
			"list_uid", listUID,
		)
		return nil, 0, err
	}

	created.MailChimpID = remote.ID
	created.EmailID = remote.EmailID
	created.UniqueEmailID = remote.UniqueEmailID
	created.MemberRating = &remote.MemberRating
	created.UpdatedAt = time.Now()

	synced, revision, err := o.storageWriter.UpdateMember(ctx, created.UID, created, revision)
	if err != nil {
		slog.ErrorContext(ctx, "failed to persist MailChimp IDs after remote creation",
			"error", err,
			"member_uid", created.UID,
			"mailchimp_id", created.MailChimpID,
		)
		return nil, 0, err
	}

	slog.DebugContext(ctx, "member created successfully",
		"member_uid", synced.UID,
		"mailchimp_id", synced.MailChimpID,
		"revision", revision,
	)

	return synced, revision, nil
}

// UpdateMember merges the patch onto the stored member, propagates the change
// to MailChimp and persists locally only after remote success. The email
// address is immutable: a patch carrying a different email is rejected before
// any merge.
func (o *writerOrchestrator) UpdateMember(ctx context.Context, listUID, memberUID string, patch *model.MemberPatch) (*model.Member, uint64, error) {
	slog.DebugContext(ctx, "executing update member use case",
		"list_uid", listUID,
		"member_uid", memberUID,
	)

	list, _, err := o.storageReader.GetList(ctx, listUID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get parent list for member update",
			"error", err,
			"list_uid", listUID,
		)
		return nil, 0, listNotFoundError(listUID, err)
	}

	member, revision, err := o.storageReader.GetMember(ctx, memberUID)
	if err != nil || member.ListUID != listUID {
		slog.ErrorContext(ctx, "failed to get member for update",
			"error", err,
			"list_uid", listUID,
			"member_uid", memberUID,
		)
		return nil, 0, memberNotFoundError(listUID, memberUID, err)
	}

	// Email change guard runs before the merge.
	if patch.EmailAddress != nil && *patch.EmailAddress != "" &&
		model.NormalizeEmail(*patch.EmailAddress) != model.NormalizeEmail(member.EmailAddress) {
		slog.WarnContext(ctx, "member email change rejected",
			"member_uid", memberUID,
			"email", redaction.RedactEmail(member.EmailAddress),
		)
		return nil, 0, emailChangeError(member.EmailAddress, *patch.EmailAddress)
	}

	member.ApplyPatch(patch)
	member.UpdatedAt = time.Now()

	if err := o.validateWire(ctx, member.ToWire()); err != nil {
		return nil, 0, err
	}

	if !list.IsSynced() || !member.IsSynced() {
		slog.WarnContext(ctx, "list or member has no MailChimp ID, update cannot be propagated",
			"list_uid", listUID,
			"member_uid", memberUID,
		)
		return nil, 0, notSyncedError(listUID, memberUID)
	}

	if o.mailchimpClient != nil {
		remote, err := o.mailchimpClient.UpdateMember(ctx, list.MailChimpID, member.MailChimpID, member.ToWire())
		if err != nil {
			slog.WarnContext(ctx, "MailChimp member update failed, local state untouched",
				"error", err,
				"member_uid", memberUID,
			)
			return nil, 0, err
		}

		// MailChimp can report a different member ID, adopt it.
		if remote.ID != "" && remote.ID != member.MailChimpID {
			slog.InfoContext(ctx, "MailChimp member ID changed, adopting new ID",
				"member_uid", memberUID,
				"old_mailchimp_id", member.MailChimpID,
				"new_mailchimp_id", remote.ID,
			)
			member.MailChimpID = remote.ID
		}
	}

	updated, revision, err := o.storageWriter.UpdateMember(ctx, memberUID, member, revision)
	if err != nil {
		slog.ErrorContext(ctx, "failed to persist updated member",
			"error", err,
			"member_uid", memberUID,
		)
		return nil, 0, err
	}

	slog.DebugContext(ctx, "member updated successfully",
		"member_uid", memberUID,
		"revision", revision,
	)

	return updated, revision, nil
}

// DeleteMember deletes the member on MailChimp first and removes the local
// copy only on remote success, releasing the email constraint for reuse.
func (o *writerOrchestrator) DeleteMember(ctx context.Context, listUID, memberUID string) error {
	slog.DebugContext(ctx, "executing delete member use case",
		"list_uid", listUID,
		"member_uid", memberUID,
	)

	list, _, err := o.storageReader.GetList(ctx, listUID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get parent list for member deletion",
			"error", err,
			"list_uid", listUID,
		)
		return listNotFoundError(listUID, err)
	}

	member, revision, err := o.storageReader.GetMember(ctx, memberUID)
	if err != nil || member.ListUID != listUID {
		slog.ErrorContext(ctx, "failed to get member for deletion",
			"error", err,
			"list_uid", listUID,
			"member_uid", memberUID,
		)
		return memberNotFoundError(listUID, memberUID, err)
	}

	if !list.IsSynced() || !member.IsSynced() {
		slog.WarnContext(ctx, "list or member has no MailChimp ID, deletion cannot be propagated",
			"list_uid", listUID,
			"member_uid", memberUID,
		)
		return notSyncedError(listUID, memberUID)
	}

	if o.mailchimpClient != nil {
		if err := o.mailchimpClient.DeleteMember(ctx, list.MailChimpID, member.MailChimpID); err != nil {
			slog.WarnContext(ctx, "MailChimp member deletion failed, local member kept",
				"error", err,
				"member_uid", memberUID,
			)
			return err
		}
	}

	if err := o.storageWriter.DeleteMember(ctx, memberUID, revision, member); err != nil {
		slog.ErrorContext(ctx, "failed to delete local member after remote deletion",
			"error", err,
			"member_uid", memberUID,
		)
		return err
	}

	slog.DebugContext(ctx, "member deleted successfully",
		"member_uid", memberUID,
	)

	return nil
}

// duplicateEmailError builds the canonical conflict error for a duplicate
// member email within a list.
func duplicateEmailError(email, listUID string) error {
	return errs.NewConflict(fmt.Sprintf("A list cannot have duplicate Emails address. [Email: %s] [List ID: %s]", email, listUID))
}

// emailChangeError builds the canonical error for an attempted member email
// mutation.
func emailChangeError(original, attempted string) error {
	return errs.NewNotAllowedChange(fmt.Sprintf("Member Email address is not allowed to change by this endpoint. Original: %s; New: %s", original, attempted))
}
