// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mailsync-io/mailchimp-proxy-service/internal/domain/model"
	errs "github.com/mailsync-io/mailchimp-proxy-service/pkg/errors"
)

// GetMember retrieves a member by UID scoped to its list
func (r *readerOrchestrator) GetMember(ctx context.Context, listUID, memberUID string) (*model.Member, uint64, error) {
	if r.storageReader == nil {
		panic("storageReader dependency is required but was not provided")
	}

	slog.DebugContext(ctx, "executing get member use case",
		"list_uid", listUID,
		"member_uid", memberUID,
	)

	if _, _, err := r.storageReader.GetList(ctx, listUID); err != nil {
		slog.ErrorContext(ctx, "failed to get parent list",
			"error", err,
			"list_uid", listUID,
		)
		return nil, 0, listNotFoundError(listUID, err)
	}

	member, revision, err := r.storageReader.GetMember(ctx, memberUID)
	if err != nil || member.ListUID != listUID {
		slog.ErrorContext(ctx, "failed to get member",
			"error", err,
			"list_uid", listUID,
			"member_uid", memberUID,
		)
		return nil, 0, memberNotFoundError(listUID, memberUID, err)
	}

	slog.DebugContext(ctx, "member retrieved successfully",
		"member_uid", memberUID,
		"revision", revision,
	)

	return member, revision, nil
}

// ListMembers retrieves all members of a list
func (r *readerOrchestrator) ListMembers(ctx context.Context, listUID string) ([]*model.Member, error) {
	if r.storageReader == nil {
		panic("storageReader dependency is required but was not provided")
	}

	slog.DebugContext(ctx, "executing list members use case", "list_uid", listUID)

	if _, _, err := r.storageReader.GetList(ctx, listUID); err != nil {
		slog.ErrorContext(ctx, "failed to get parent list", "error", err, "list_uid", listUID)
		return nil, listNotFoundError(listUID, err)
	}

	members, err := r.storageReader.ListMembers(ctx, listUID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list members", "error", err, "list_uid", listUID)
		return nil, err
	}

	slog.DebugContext(ctx, "members retrieved successfully", "list_uid", listUID, "count", len(members))
	return members, nil
}

// listNotFoundError builds the canonical not-found error for a list, keeping
// infrastructure failures intact. The underlying cause is logged at the call
// site rather than wrapped, so the message stays clean for API responses.
func listNotFoundError(listUID string, err error) error {
	if !isNotFound(err) {
		return err
	}
	return errs.NewNotFound(fmt.Sprintf("MailChimpList not found [%s]", model.IDDescription(listUID, "", "", "")))
}

// memberNotFoundError builds the canonical not-found error for a member.
// A nil err means the member exists but belongs to a different list, which is
// indistinguishable from not-found for the caller.
func memberNotFoundError(listUID, memberUID string, err error) error {
	if err != nil && !isNotFound(err) {
		return err
	}
	return errs.NewNotFound(fmt.Sprintf("MailChimpMember not found [%s]", model.IDDescription(listUID, memberUID, "", "")))
}
