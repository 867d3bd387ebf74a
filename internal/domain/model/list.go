// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package model defines the domain models and entities for the MailChimp proxy service.
package model

import (
	"time"
)

// ListContact is the required postal contact block of a list.
type ListContact struct {
	Company  string  `json:"company"`
	Address1 string  `json:"address1"`
	Address2 *string `json:"address2,omitempty"`
	City     string  `json:"city"`
	State    string  `json:"state"`
	Zip      string  `json:"zip"`
	Country  string  `json:"country"`
	Phone    *string `json:"phone,omitempty"`
}

// ListCampaignDefaults is the required campaign default block of a list.
type ListCampaignDefaults struct {
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	Subject   string `json:"subject"`
	Language  string `json:"language"`
}

// List represents a mailing list mirrored between the local store and MailChimp
type List struct {
	// Internal ID (UUID)
	UID string `json:"list_id"` // Primary key

	// External MailChimp ID, empty until the list is created remotely
	MailChimpID string `json:"mail_chimp_id"`

	// Required attributes
	Name               string               `json:"name"`
	PermissionReminder string               `json:"permission_reminder"`
	EmailTypeOption    *bool                `json:"email_type_option"`
	Contact            ListContact          `json:"contact"`
	CampaignDefaults   ListCampaignDefaults `json:"campaign_defaults"`

	// Optional attributes
	UseArchiveBar        *bool   `json:"use_archive_bar,omitempty"`
	NotifyOnSubscribe    *string `json:"notify_on_subscribe,omitempty"`
	NotifyOnUnsubscribe  *string `json:"notify_on_unsubscribe,omitempty"`
	Visibility           *string `json:"visibility,omitempty"` // "pub" or "prv"
	DoubleOptin          *bool   `json:"double_optin,omitempty"`
	MarketingPermissions *bool   `json:"marketing_permissions,omitempty"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsSynced reports whether the list has been created on MailChimp.
func (l *List) IsSynced() bool {
	return l != nil && l.MailChimpID != ""
}

// Tags generates a consistent set of tags for the list.
func (l *List) Tags() []string {
	var tags []string

	if l == nil {
		return nil
	}

	if l.UID != "" {
		tags = append(tags, l.UID)
		tags = append(tags, "list_uid:"+l.UID)
	}

	if l.MailChimpID != "" {
		tags = append(tags, "mailchimp_id:"+l.MailChimpID)
	}

	if l.Name != "" {
		tags = append(tags, "name:"+l.Name)
	}

	return tags
}

// ToWire builds the wire projection of the list for validation and for
// MailChimp request bodies.
func (l *List) ToWire() *ListWire {
	if l == nil {
		return nil
	}

	wire := &ListWire{
		Name:               strPtrOrNil(l.Name),
		PermissionReminder: strPtrOrNil(l.PermissionReminder),
		EmailTypeOption:    l.EmailTypeOption,
		Contact: ListContactWire{
			Company:  strPtrOrNil(l.Contact.Company),
			Address1: strPtrOrNil(l.Contact.Address1),
			Address2: l.Contact.Address2,
			City:     strPtrOrNil(l.Contact.City),
			State:    strPtrOrNil(l.Contact.State),
			Zip:      strPtrOrNil(l.Contact.Zip),
			Country:  strPtrOrNil(l.Contact.Country),
			Phone:    l.Contact.Phone,
		},
		CampaignDefaults: ListCampaignDefaultsWire{
			FromName:  strPtrOrNil(l.CampaignDefaults.FromName),
			FromEmail: strPtrOrNil(l.CampaignDefaults.FromEmail),
			Subject:   strPtrOrNil(l.CampaignDefaults.Subject),
			Language:  strPtrOrNil(l.CampaignDefaults.Language),
		},
		UseArchiveBar:        l.UseArchiveBar,
		NotifyOnSubscribe:    l.NotifyOnSubscribe,
		NotifyOnUnsubscribe:  l.NotifyOnUnsubscribe,
		Visibility:           l.Visibility,
		DoubleOptin:          l.DoubleOptin,
		MarketingPermissions: l.MarketingPermissions,
	}

	return wire
}

// ListWire is the outward shape of a list: the attributes MailChimp accepts,
// with pointer fields so absent values can be told apart from zero values.
// Validation rules are declared on this shape so error keys match the wire
// field names.
type ListWire struct {
	Name               *string `json:"name" validate:"required"`
	PermissionReminder *string `json:"permission_reminder" validate:"required"`
	EmailTypeOption    *bool   `json:"email_type_option" validate:"required"`

	Contact          ListContactWire          `json:"contact"`
	CampaignDefaults ListCampaignDefaultsWire `json:"campaign_defaults"`

	UseArchiveBar        *bool   `json:"use_archive_bar,omitempty"`
	NotifyOnSubscribe    *string `json:"notify_on_subscribe,omitempty" validate:"omitempty,email"`
	NotifyOnUnsubscribe  *string `json:"notify_on_unsubscribe,omitempty" validate:"omitempty,email"`
	Visibility           *string `json:"visibility,omitempty" validate:"omitempty,oneof=pub prv"`
	DoubleOptin          *bool   `json:"double_optin,omitempty"`
	MarketingPermissions *bool   `json:"marketing_permissions,omitempty"`
}

// ListContactWire is the wire shape of the list contact block.
type ListContactWire struct {
	Company  *string `json:"company" validate:"required"`
	Address1 *string `json:"address1" validate:"required"`
	Address2 *string `json:"address2,omitempty"`
	City     *string `json:"city" validate:"required"`
	State    *string `json:"state" validate:"required"`
	Zip      *string `json:"zip" validate:"required"`
	Country  *string `json:"country" validate:"required,len=2"`
	Phone    *string `json:"phone,omitempty"`
}

// ListCampaignDefaultsWire is the wire shape of the campaign defaults block.
type ListCampaignDefaultsWire struct {
	FromName  *string `json:"from_name" validate:"required"`
	FromEmail *string `json:"from_email" validate:"required,email"`
	Subject   *string `json:"subject" validate:"required"`
	Language  *string `json:"language" validate:"required"`
}

// ListPatch carries the fields of a list update request. Nil fields are
// left untouched by the merge.
type ListPatch struct {
	Name               *string
	PermissionReminder *string
	EmailTypeOption    *bool

	Contact          *ListContactPatch
	CampaignDefaults *ListCampaignDefaultsPatch

	UseArchiveBar        *bool
	NotifyOnSubscribe    *string
	NotifyOnUnsubscribe  *string
	Visibility           *string
	DoubleOptin          *bool
	MarketingPermissions *bool
}

// ListContactPatch carries partial contact updates.
type ListContactPatch struct {
	Company  *string
	Address1 *string
	Address2 *string
	City     *string
	State    *string
	Zip      *string
	Country  *string
	Phone    *string
}

// ListCampaignDefaultsPatch carries partial campaign default updates.
type ListCampaignDefaultsPatch struct {
	FromName  *string
	FromEmail *string
	Subject   *string
	Language  *string
}

// ApplyPatch merges non-nil patch fields into the list.
func (l *List) ApplyPatch(patch *ListPatch) {
	if l == nil || patch == nil {
		return
	}

	if patch.Name != nil {
		l.Name = *patch.Name
	}
	if patch.PermissionReminder != nil {
		l.PermissionReminder = *patch.PermissionReminder
	}
	if patch.EmailTypeOption != nil {
		l.EmailTypeOption = patch.EmailTypeOption
	}

	if patch.Contact != nil {
		c := patch.Contact
		if c.Company != nil {
			l.Contact.Company = *c.Company
		}
		if c.Address1 != nil {
			l.Contact.Address1 = *c.Address1
		}
		if c.Address2 != nil {
			l.Contact.Address2 = c.Address2
		}
		if c.City != nil {
			l.Contact.City = *c.City
		}
		if c.State != nil {
			l.Contact.State = *c.State
		}
		if c.Zip != nil {
			l.Contact.Zip = *c.Zip
		}
		if c.Country != nil {
			l.Contact.Country = *c.Country
		}
		if c.Phone != nil {
			l.Contact.Phone = c.Phone
		}
	}

	if patch.CampaignDefaults != nil {
		d := patch.CampaignDefaults
		if d.FromName != nil {
			l.CampaignDefaults.FromName = *d.FromName
		}
		if d.FromEmail != nil {
			l.CampaignDefaults.FromEmail = *d.FromEmail
		}
		if d.Subject != nil {
			l.CampaignDefaults.Subject = *d.Subject
		}
		if d.Language != nil {
			l.CampaignDefaults.Language = *d.Language
		}
	}

	if patch.UseArchiveBar != nil {
		l.UseArchiveBar = patch.UseArchiveBar
	}
	if patch.NotifyOnSubscribe != nil {
		l.NotifyOnSubscribe = patch.NotifyOnSubscribe
	}
	if patch.NotifyOnUnsubscribe != nil {
		l.NotifyOnUnsubscribe = patch.NotifyOnUnsubscribe
	}
	if patch.Visibility != nil {
		l.Visibility = patch.Visibility
	}
	if patch.DoubleOptin != nil {
		l.DoubleOptin = patch.DoubleOptin
	}
	if patch.MarketingPermissions != nil {
		l.MarketingPermissions = patch.MarketingPermissions
	}
}

func strPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
