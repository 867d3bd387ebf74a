// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mailsync-io/mailchimp-proxy-service/pkg/redaction"
)

// MemberLocation holds the subscriber location block.
type MemberLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone,omitempty"`

	// Populated by MailChimp from the IP addresses, never sent by clients
	CountryCode string `json:"country_code,omitempty"`
}

// MemberMarketingPermission is a single marketing permission grant.
type MemberMarketingPermission struct {
	MarketingPermissionID string `json:"marketing_permission_id"`
	Enabled               bool   `json:"enabled"`
}

// Member represents a list subscriber mirrored between the local store and MailChimp
type Member struct {
	// Internal IDs (UUIDs)
	UID     string `json:"member_id"` // Primary key
	ListUID string `json:"list_id"`   // FK to list

	// External MailChimp ID, empty until the member is created remotely
	MailChimpID string `json:"mail_chimp_id"`

	// Required attributes. EmailAddress is immutable after creation.
	EmailAddress string `json:"email_address"`
	Status       string `json:"status"` // subscribed, unsubscribed, cleaned, pending

	// Optional attributes
	EmailType            *string                     `json:"email_type,omitempty"` // "html" or "text"
	Language             *string                     `json:"language,omitempty"`
	VIP                  *bool                       `json:"vip,omitempty"`
	Location             *MemberLocation             `json:"location,omitempty"`
	MarketingPermissions []MemberMarketingPermission `json:"marketing_permissions,omitempty"`
	IPSignup             *string                     `json:"ip_signup,omitempty"`
	TimestampSignup      *string                     `json:"timestamp_signup,omitempty"`
	IPOpt                *string                     `json:"ip_opt,omitempty"`
	TimestampOpt         *string                     `json:"timestamp_opt,omitempty"`
	Tags                 []string                    `json:"tags,omitempty"`

	// Attributes assigned by MailChimp on create
	EmailID       string `json:"email_id,omitempty"`
	UniqueEmailID string `json:"unique_email_id,omitempty"`
	MemberRating  *int   `json:"member_rating,omitempty"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsSynced reports whether the member has been created on MailChimp.
func (m *Member) IsSynced() bool {
	return m != nil && m.MailChimpID != ""
}

// NormalizeEmail lowers and trims an email address for equality checks.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// BuildIndexKey generates a SHA-256 hash for use as a NATS KV key.
// This enforces uniqueness for member emails within a list.
func (m *Member) BuildIndexKey(ctx context.Context) string {
	list := strings.TrimSpace(strings.ToLower(m.ListUID))
	email := NormalizeEmail(m.EmailAddress)

	// Combine normalized values with a delimiter
	data := fmt.Sprintf("%s|%s", list, email)

	hash := sha256.Sum256([]byte(data))
	key := hex.EncodeToString(hash[:])

	slog.DebugContext(ctx, "member index key built",
		"list_uid", m.ListUID,
		"email", redaction.RedactEmail(m.EmailAddress),
		"key", key,
	)

	return key
}

// LogTags generates a consistent set of tags for the member.
func (m *Member) LogTags() []string {
	var tags []string

	if m == nil {
		return nil
	}

	if m.UID != "" {
		tags = append(tags, m.UID)
		tags = append(tags, "member_uid:"+m.UID)
	}

	if m.ListUID != "" {
		tags = append(tags, "list_uid:"+m.ListUID)
	}

	if m.MailChimpID != "" {
		tags = append(tags, "mailchimp_id:"+m.MailChimpID)
	}

	if m.Status != "" {
		tags = append(tags, "status:"+m.Status)
	}

	return tags
}

// ToWire builds the wire projection of the member for validation and for
// MailChimp request bodies.
func (m *Member) ToWire() *MemberWire {
	if m == nil {
		return nil
	}

	return &MemberWire{
		EmailAddress:         strPtrOrNil(m.EmailAddress),
		Status:               strPtrOrNil(m.Status),
		EmailType:            m.EmailType,
		Language:             m.Language,
		VIP:                  m.VIP,
		Location:             m.Location,
		MarketingPermissions: m.MarketingPermissions,
		IPSignup:             m.IPSignup,
		TimestampSignup:      m.TimestampSignup,
		IPOpt:                m.IPOpt,
		TimestampOpt:         m.TimestampOpt,
		Tags:                 m.Tags,
	}
}

// MemberWire is the outward shape of a member: the attributes MailChimp
// accepts, with pointer fields so absent values can be told apart from zero
// values. Validation rules are declared on this shape so error keys match
// the wire field names.
type MemberWire struct {
	EmailAddress *string `json:"email_address" validate:"required,email"`
	Status       *string `json:"status" validate:"required,oneof=subscribed unsubscribed cleaned pending"`

	EmailType            *string                     `json:"email_type,omitempty" validate:"omitempty,oneof=html text"`
	Language             *string                     `json:"language,omitempty"`
	VIP                  *bool                       `json:"vip,omitempty"`
	Location             *MemberLocation             `json:"location,omitempty"`
	MarketingPermissions []MemberMarketingPermission `json:"marketing_permissions,omitempty"`
	IPSignup             *string                     `json:"ip_signup,omitempty" validate:"omitempty,ip"`
	TimestampSignup      *string                     `json:"timestamp_signup,omitempty"`
	IPOpt                *string                     `json:"ip_opt,omitempty" validate:"omitempty,ip"`
	TimestampOpt         *string                     `json:"timestamp_opt,omitempty"`
	Tags                 []string                    `json:"tags,omitempty"`
}

// MemberPatch carries the fields of a member update request. Nil fields are
// left untouched by the merge. EmailAddress is present so the writer can
// reject attempts to change it.
type MemberPatch struct {
	EmailAddress *string
	Status       *string

	EmailType            *string
	Language             *string
	VIP                  *bool
	Location             *MemberLocation
	MarketingPermissions []MemberMarketingPermission
	IPSignup             *string
	TimestampSignup      *string
	IPOpt                *string
	TimestampOpt         *string
	Tags                 []string
}

// ApplyPatch merges non-nil patch fields into the member. The email address
// is never merged; callers guard against email changes before applying.
func (m *Member) ApplyPatch(patch *MemberPatch) {
	if m == nil || patch == nil {
		return
	}

	if patch.Status != nil {
		m.Status = *patch.Status
	}
	if patch.EmailType != nil {
		m.EmailType = patch.EmailType
	}
	if patch.Language != nil {
		m.Language = patch.Language
	}
	if patch.VIP != nil {
		m.VIP = patch.VIP
	}
	if patch.Location != nil {
		m.Location = patch.Location
	}
	if patch.MarketingPermissions != nil {
		m.MarketingPermissions = patch.MarketingPermissions
	}
	if patch.IPSignup != nil {
		m.IPSignup = patch.IPSignup
	}
	if patch.TimestampSignup != nil {
		m.TimestampSignup = patch.TimestampSignup
	}
	if patch.IPOpt != nil {
		m.IPOpt = patch.IPOpt
	}
	if patch.TimestampOpt != nil {
		m.TimestampOpt = patch.TimestampOpt
	}
	if patch.Tags != nil {
		m.Tags = patch.Tags
	}
}
