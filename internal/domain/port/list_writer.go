// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/mailsync-io/mailchimp-proxy-service/internal/domain/model"
)

// ListWriter defines the interface for writing list data
type ListWriter interface {
	BaseWriter

	// CreateList creates a new list and returns it with revision
	CreateList(ctx context.Context, list *model.List) (*model.List, uint64, error)

	// UpdateList updates an existing list with optimistic concurrency control
	UpdateList(ctx context.Context, uid string, list *model.List, expectedRevision uint64) (*model.List, uint64, error)

	// DeleteList deletes a list with optimistic concurrency control
	DeleteList(ctx context.Context, uid string, expectedRevision uint64) error
}
