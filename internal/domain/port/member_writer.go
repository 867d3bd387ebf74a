// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/mailsync-io/mailchimp-proxy-service/internal/domain/model"
)

// MemberWriter defines the interface for writing member data
type MemberWriter interface {
	BaseWriter

	// CreateMember creates a new member and returns it with revision
	CreateMember(ctx context.Context, member *model.Member) (*model.Member, uint64, error)

	// UpdateMember updates an existing member with optimistic concurrency control
	UpdateMember(ctx context.Context, uid string, member *model.Member, expectedRevision uint64) (*model.Member, uint64, error)

	// DeleteMember deletes a member with optimistic concurrency control.
	// The member parameter provides the context needed to clean up the
	// email constraint and list index entries.
	DeleteMember(ctx context.Context, uid string, expectedRevision uint64, member *model.Member) error

	// UniqueMember reserves the member email within its list and returns the
	// constraint key. Returns Conflict if the email is already taken.
	UniqueMember(ctx context.Context, member *model.Member) (string, error)
}
