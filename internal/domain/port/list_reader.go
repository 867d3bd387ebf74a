// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package port defines the interfaces for external dependencies and adapters.
package port

import (
	"context"

	"github.com/mailsync-io/mailchimp-proxy-service/internal/domain/model"
)

// ListReader defines the interface for reading list data
type ListReader interface {
	// GetList retrieves a list by UID with revision
	GetList(ctx context.Context, uid string) (*model.List, uint64, error)

	// GetListRevision retrieves only the revision for a given UID
	GetListRevision(ctx context.Context, uid string) (uint64, error)

	// ListLists retrieves all stored lists
	ListLists(ctx context.Context) ([]*model.List, error)
}
