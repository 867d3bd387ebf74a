// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/mailsync-io/mailchimp-proxy-service/internal/domain/model"
)

// MemberReader defines the interface for reading member data
type MemberReader interface {
	// GetMember retrieves a member by UID with revision
	GetMember(ctx context.Context, uid string) (*model.Member, uint64, error)

	// GetMemberRevision retrieves only the revision for a given UID
	GetMemberRevision(ctx context.Context, uid string) (uint64, error)

	// GetMemberByEmail retrieves a member by email within a list
	// Returns NotFound if no member with this email exists in the list
	// Used by the orchestrator for duplicate checks
	GetMemberByEmail(ctx context.Context, listUID, email string) (*model.Member, uint64, error)

	// ListMembers retrieves all members of a list
	ListMembers(ctx context.Context, listUID string) ([]*model.Member, error)
}
