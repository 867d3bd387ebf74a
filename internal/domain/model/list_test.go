// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestList() *List {
	emailTypeOption := true
	return &List{
		UID:                uuid.New().String(),
		Name:               "Engineering Newsletter",
		PermissionReminder: "You signed up on our site",
		EmailTypeOption:    &emailTypeOption,
		Contact: ListContact{
			Company:  "Acme Corp",
			Address1: "1 Main St",
			City:     "Springfield",
			State:    "IL",
			Zip:      "62701",
			Country:  "US",
		},
		CampaignDefaults: ListCampaignDefaults{
			FromName:  "Acme",
			FromEmail: "news@acme.example",
			Subject:   "Acme News",
			Language:  "en",
		},
	}
}

func TestList_IsSynced(t *testing.T) {
	var nilList *List
	assert.False(t, nilList.IsSynced())

	list := newTestList()
	assert.False(t, list.IsSynced())

	list.MailChimpID = "9f8e7d6c5b"
	assert.True(t, list.IsSynced())
}

func TestList_ToWire(t *testing.T) {
	list := newTestList()
	visibility := "prv"
	list.Visibility = &visibility

	wire := list.ToWire()
	assert.NotNil(t, wire)
	assert.Equal(t, "Engineering Newsletter", *wire.Name)
	assert.Equal(t, "You signed up on our site", *wire.PermissionReminder)
	assert.True(t, *wire.EmailTypeOption)
	assert.Equal(t, "Acme Corp", *wire.Contact.Company)
	assert.Equal(t, "US", *wire.Contact.Country)
	assert.Equal(t, "news@acme.example", *wire.CampaignDefaults.FromEmail)
	assert.Equal(t, "prv", *wire.Visibility)
	assert.Nil(t, wire.UseArchiveBar)

	// Empty required fields project to nil so validation can flag them
	empty := &List{}
	wire = empty.ToWire()
	assert.Nil(t, wire.Name)
	assert.Nil(t, wire.Contact.Company)
	assert.Nil(t, wire.CampaignDefaults.FromName)
	assert.Nil(t, wire.EmailTypeOption)
}

func TestList_ApplyPatch(t *testing.T) {
	list := newTestList()

	name := "Renamed Newsletter"
	city := "Shelbyville"
	fromName := "Acme Updates"
	doubleOptin := true

	list.ApplyPatch(&ListPatch{
		Name:             &name,
		Contact:          &ListContactPatch{City: &city},
		CampaignDefaults: &ListCampaignDefaultsPatch{FromName: &fromName},
		DoubleOptin:      &doubleOptin,
	})

	assert.Equal(t, "Renamed Newsletter", list.Name)
	assert.Equal(t, "Shelbyville", list.Contact.City)
	assert.Equal(t, "Acme Updates", list.CampaignDefaults.FromName)
	assert.True(t, *list.DoubleOptin)

	// Untouched fields keep their values
	assert.Equal(t, "Acme Corp", list.Contact.Company)
	assert.Equal(t, "news@acme.example", list.CampaignDefaults.FromEmail)

	// Nil patch is a no-op
	list.ApplyPatch(nil)
	assert.Equal(t, "Renamed Newsletter", list.Name)
}

func TestList_Tags(t *testing.T) {
	var nilList *List
	assert.Nil(t, nilList.Tags())

	list := newTestList()
	list.MailChimpID = "abc123"

	tags := list.Tags()
	assert.Contains(t, tags, list.UID)
	assert.Contains(t, tags, "list_uid:"+list.UID)
	assert.Contains(t, tags, "mailchimp_id:abc123")
	assert.Contains(t, tags, "name:Engineering Newsletter")
}
