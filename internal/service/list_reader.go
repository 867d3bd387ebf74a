// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/mailsync-io/mailchimp-proxy-service/internal/domain/model"
)

// GetList retrieves a list by UID
func (r *readerOrchestrator) GetList(ctx context.Context, uid string) (*model.List, uint64, error) {
	if r.storageReader == nil {
		panic("storageReader dependency is required but was not provided")
	}

	slog.DebugContext(ctx, "executing get list use case",
		"list_uid", uid,
	)

	list, revision, err := r.storageReader.GetList(ctx, uid)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get list",
			"error", err,
			"list_uid", uid,
		)
		return nil, 0, err
	}

	slog.DebugContext(ctx, "list retrieved successfully",
		"list_uid", uid,
		"revision", revision,
	)

	return list, revision, nil
}

// GetListRevision retrieves only the revision for a given list UID
func (r *readerOrchestrator) GetListRevision(ctx context.Context, uid string) (uint64, error) {
	if r.storageReader == nil {
		panic("storageReader dependency is required but was not provided")
	}

	slog.DebugContext(ctx, "executing get list revision use case", "list_uid", uid)

	revision, err := r.storageReader.GetListRevision(ctx, uid)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get list revision", "error", err, "list_uid", uid)
		return 0, err
	}

	slog.DebugContext(ctx, "list revision retrieved successfully", "list_uid", uid, "revision", revision)
	return revision, nil
}

// ListLists retrieves all stored lists
func (r *readerOrchestrator) ListLists(ctx context.Context) ([]*model.List, error) {
	if r.storageReader == nil {
		panic("storageReader dependency is required but was not provided")
	}

	slog.DebugContext(ctx, "executing list lists use case")

	lists, err := r.storageReader.ListLists(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list lists", "error", err)
		return nil, err
	}

	slog.DebugContext(ctx, "lists retrieved successfully", "count", len(lists))
	return lists, nil
}
