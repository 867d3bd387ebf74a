// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMember_BuildIndexKey(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		member      *Member
		description string
	}{
		{
			name: "member with all fields",
			member: &Member{
				UID:          uuid.New().String(),
				ListUID:      "list-123",
				EmailAddress: "john.doe@example.com",
				Status:       "subscribed",
			},
			description: "Member should use list_uid and email for key generation",
		},
		{
			name: "member with mixed case email",
			member: &Member{
				UID:          uuid.New().String(),
				ListUID:      "LIST-789",
				EmailAddress: "John.Doe@Example.COM",
				Status:       "pending",
			},
			description: "Key generation should normalize case",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			key := tc.member.BuildIndexKey(ctx)
			assert.Len(t, key, 64, "SHA-256 hex key expected")

			// Same inputs produce the same key
			assert.Equal(t, key, tc.member.BuildIndexKey(ctx), tc.description)
		})
	}
}

func TestMember_BuildIndexKey_Normalization(t *testing.T) {
	ctx := context.Background()

	a := &Member{ListUID: "list-1", EmailAddress: "User@Example.com"}
	b := &Member{ListUID: "LIST-1", EmailAddress: "  user@example.com  "}
	c := &Member{ListUID: "list-1", EmailAddress: "other@example.com"}

	assert.Equal(t, a.BuildIndexKey(ctx), b.BuildIndexKey(ctx),
		"case and whitespace variants must map to the same key")
	assert.NotEqual(t, a.BuildIndexKey(ctx), c.BuildIndexKey(ctx),
		"different emails must map to different keys")
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", NormalizeEmail(" User@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("  "))
}

func TestMember_IsSynced(t *testing.T) {
	var nilMember *Member
	assert.False(t, nilMember.IsSynced())

	member := &Member{UID: uuid.New().String()}
	assert.False(t, member.IsSynced())

	member.MailChimpID = "abc123def4"
	assert.True(t, member.IsSynced())
}

func TestMember_ApplyPatch(t *testing.T) {
	status := "unsubscribed"
	language := "de"
	vip := true

	member := &Member{
		UID:          uuid.New().String(),
		ListUID:      "list-1",
		EmailAddress: "user@example.com",
		Status:       "subscribed",
	}

	member.ApplyPatch(&MemberPatch{
		Status:   &status,
		Language: &language,
		VIP:      &vip,
		Tags:     []string{"vip-program"},
	})

	assert.Equal(t, "unsubscribed", member.Status)
	assert.Equal(t, "de", *member.Language)
	assert.True(t, *member.VIP)
	assert.Equal(t, []string{"vip-program"}, member.Tags)

	// Email address is never merged
	newEmail := "new@example.com"
	member.ApplyPatch(&MemberPatch{EmailAddress: &newEmail})
	assert.Equal(t, "user@example.com", member.EmailAddress)

	// Nil patch fields leave values untouched
	member.ApplyPatch(&MemberPatch{})
	assert.Equal(t, "unsubscribed", member.Status)
	assert.Equal(t, "de", *member.Language)
}

func TestMember_ToWire(t *testing.T) {
	emailType := "html"
	member := &Member{
		UID:          uuid.New().String(),
		ListUID:      "list-1",
		EmailAddress: "user@example.com",
		Status:       "subscribed",
		EmailType:    &emailType,
		Tags:         []string{"newsletter"},
	}

	wire := member.ToWire()
	assert.NotNil(t, wire)
	assert.Equal(t, "user@example.com", *wire.EmailAddress)
	assert.Equal(t, "subscribed", *wire.Status)
	assert.Equal(t, "html", *wire.EmailType)
	assert.Nil(t, wire.Language)
	assert.Equal(t, []string{"newsletter"}, wire.Tags)

	// Empty required fields project to nil so validation can flag them
	empty := &Member{}
	wire = empty.ToWire()
	assert.Nil(t, wire.EmailAddress)
	assert.Nil(t, wire.Status)
}
