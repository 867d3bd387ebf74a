// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mailsync-io/mailchimp-proxy-service/internal/domain/model"
)

// CreateList orchestrates list creation: validate the MailChimp projection,
// persist locally to obtain a UID, create the list on MailChimp and persist
// the assigned ID. A remote failure leaves the local list without a MailChimp
// ID; no rollback is performed because the unsynced list is a correctable
// state (lists are rarely created and a follow-up update can re-sync).
func (o *writerOrchestrator) CreateList(ctx context.Context, list *model.List) (*model.List, uint64, error) {
	slog.DebugContext(ctx, "executing create list use case",
		"list_name", list.Name,
	)

	if err := o.validateWire(ctx, list.ToWire()); err != nil {
		return nil, 0, err
	}

	if list.UID == "" {
		list.UID = uuid.NewString()
	}
	now := time.Now()
	list.CreatedAt = now
	list.UpdatedAt = now

	created, revision, err := o.storageWriter.CreateList(ctx, list)
	if err != nil {
		slog.ErrorContext(ctx, "failed to persist list",
			"error", err,
			"list_uid", list.UID,
		)
		return nil, 0, err
	}

	if o.mailchimpClient == nil {
		slog.InfoContext(ctx, "MailChimp integration disabled - list created locally only",
			"list_uid", created.UID,
		)
		return created, revision, nil
	}

	remote, err := o.mailchimpClient.CreateList(ctx, created.ToWire())
	if err != nil {
		slog.WarnContext(ctx, "MailChimp list creation failed, local list left unsynced",
			"error", err,
			"list_uid", created.UID,
		)
		return nil, 0, err
	}

	created.MailChimpID = remote.ID
	created.UpdatedAt = time.Now()

	synced, revision, err := o.storageWriter.UpdateList(ctx, created.UID, created, revision)
	if err != nil {
		slog.ErrorContext(ctx, "failed to persist MailChimp ID after remote creation",
			"error", err,
			"list_uid", created.UID,
			"mailchimp_id", created.MailChimpID,
		)
		return nil, 0, err
	}

	slog.DebugContext(ctx, "list created successfully",
		"list_uid", synced.UID,
		"mailchimp_id", synced.MailChimpID,
		"revision", revision,
	)

	return synced, revision, nil
}

// UpdateList merges the patch onto the stored list, propagates the change to
// MailChimp and persists locally only after remote success, so a remote
// failure leaves local state untouched.
func (o *writerOrchestrator) UpdateList(ctx context.Context, uid string, patch *model.ListPatch) (*model.List, uint64, error) {
	slog.DebugContext(ctx, "executing update list use case",
		"list_uid", uid,
	)

	list, revision, err := o.storageReader.GetList(ctx, uid)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get list for update",
			"error", err,
			"list_uid", uid,
		)
		return nil, 0, listNotFoundError(uid, err)
	}

	list.ApplyPatch(patch)
	list.UpdatedAt = time.Now()

	if err := o.validateWire(ctx, list.ToWire()); err != nil {
		return nil, 0, err
	}

	if !list.IsSynced() {
		slog.WarnContext(ctx, "list has no MailChimp ID, update cannot be propagated",
			"list_uid", uid,
		)
		return nil, 0, notSyncedError(uid, "")
	}

	if o.mailchimpClient != nil {
		if _, err := o.mailchimpClient.UpdateList(ctx, list.MailChimpID, list.ToWire()); err != nil {
			slog.WarnContext(ctx, "MailChimp list update failed, local state untouched",
				"error", err,
				"list_uid", uid,
				"mailchimp_id", list.MailChimpID,
			)
			return nil, 0, err
		}
	}

	updated, revision, err := o.storageWriter.UpdateList(ctx, uid, list, revision)
	if err != nil {
		slog.ErrorContext(ctx, "failed to persist updated list",
			"error", err,
			"list_uid", uid,
		)
		return nil, 0, err
	}

	slog.DebugContext(ctx, "list updated successfully",
		"list_uid", uid,
		"revision", revision,
	)

	return updated, revision, nil
}

// DeleteList deletes the list on MailChimp first and removes the local copy
// only on remote success, so no local row ever points at a remote resource
// that was confirmed deleted.
func (o *writerOrchestrator) DeleteList(ctx context.Context, uid string) error {
	slog.DebugContext(ctx, "executing delete list use case",
		"list_uid", uid,
	)

	list, revision, err := o.storageReader.GetList(ctx, uid)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get list for deletion",
			"error", err,
			"list_uid", uid,
		)
		return listNotFoundError(uid, err)
	}

	if !list.IsSynced() {
		slog.WarnContext(ctx, "list has no MailChimp ID, deletion cannot be propagated",
			"list_uid", uid,
		)
		return notSyncedError(uid, "")
	}

	if o.mailchimpClient != nil {
		if err := o.mailchimpClient.DeleteList(ctx, list.MailChimpID); err != nil {
			slog.WarnContext(ctx, "MailChimp list deletion failed, local list kept",
				"error", err,
				"list_uid", uid,
				"mailchimp_id", list.MailChimpID,
			)
			return err
		}
	}

	if err := o.storageWriter.DeleteList(ctx, uid, revision); err != nil {
		slog.ErrorContext(ctx, "failed to delete local list after remote deletion",
			"error", err,
			"list_uid", uid,
		)
		return err
	}

	slog.DebugContext(ctx, "list deleted successfully",
		"list_uid", uid,
	)

	return nil
}
