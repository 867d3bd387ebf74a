// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"

	"github.com/mailsync-io/mailchimp-proxy-service/internal/domain/model"
	"github.com/mailsync-io/mailchimp-proxy-service/pkg/utils"
)

// ListContactPayload is the contact block of a list request body.
type ListContactPayload struct {
	Company  *string `json:"company"`
	Address1 *string `json:"address1"`
	Address2 *string `json:"address2"`
	City     *string `json:"city"`
	State    *string `json:"state"`
	Zip      *string `json:"zip"`
	Country  *string `json:"country"`
	Phone    *string `json:"phone"`
}

// ListCampaignDefaultsPayload is the campaign defaults block of a list
// request body.
type ListCampaignDefaultsPayload struct {
	FromName  *string `json:"from_name"`
	FromEmail *string `json:"from_email"`
	Subject   *string `json:"subject"`
	Language  *string `json:"language"`
}

// ListPayload is the request body for list create and update. All fields are
// pointers so absent values can be told apart from zero values.
type ListPayload struct {
	Name                 *string                      `json:"name"`
	PermissionReminder   *string                      `json:"permission_reminder"`
	EmailTypeOption      *bool                        `json:"email_type_option"`
	Contact              *ListContactPayload          `json:"contact"`
	CampaignDefaults     *ListCampaignDefaultsPayload `json:"campaign_defaults"`
	UseArchiveBar        *bool                        `json:"use_archive_bar"`
	NotifyOnSubscribe    *string                      `json:"notify_on_subscribe"`
	NotifyOnUnsubscribe  *string                      `json:"notify_on_unsubscribe"`
	Visibility           *string                      `json:"visibility"`
	DoubleOptin          *bool                        `json:"double_optin"`
	MarketingPermissions *bool                        `json:"marketing_permissions"`
}

// toList builds a list entity from the create payload. Absent required
// fields become zero values and are flagged by wire validation.
func (p *ListPayload) toList() *model.List {
	list := &model.List{
		Name:                 deref(p.Name),
		PermissionReminder:   deref(p.PermissionReminder),
		EmailTypeOption:      p.EmailTypeOption,
		UseArchiveBar:        p.UseArchiveBar,
		NotifyOnSubscribe:    p.NotifyOnSubscribe,
		NotifyOnUnsubscribe:  p.NotifyOnUnsubscribe,
		Visibility:           p.Visibility,
		DoubleOptin:          p.DoubleOptin,
		MarketingPermissions: p.MarketingPermissions,
	}

	if p.Contact != nil {
		list.Contact = model.ListContact{
			Company:  deref(p.Contact.Company),
			Address1: deref(p.Contact.Address1),
			Address2: p.Contact.Address2,
			City:     deref(p.Contact.City),
			State:    deref(p.Contact.State),
			Zip:      deref(p.Contact.Zip),
			Country:  deref(p.Contact.Country),
			Phone:    p.Contact.Phone,
		}
	}
	if p.CampaignDefaults != nil {
		list.CampaignDefaults = model.ListCampaignDefaults{
			FromName:  deref(p.CampaignDefaults.FromName),
			FromEmail: deref(p.CampaignDefaults.FromEmail),
			Subject:   deref(p.CampaignDefaults.Subject),
			Language:  deref(p.CampaignDefaults.Language),
		}
	}

	return list
}

// toPatch builds a list patch from the update payload: only fields present
// in the request overwrite stored values.
func (p *ListPayload) toPatch() *model.ListPatch {
	patch := &model.ListPatch{
		Name:                 p.Name,
		PermissionReminder:   p.PermissionReminder,
		EmailTypeOption:      p.EmailTypeOption,
		UseArchiveBar:        p.UseArchiveBar,
		NotifyOnSubscribe:    p.NotifyOnSubscribe,
		NotifyOnUnsubscribe:  p.NotifyOnUnsubscribe,
		Visibility:           p.Visibility,
		DoubleOptin:          p.DoubleOptin,
		MarketingPermissions: p.MarketingPermissions,
	}

	if p.Contact != nil {
		patch.Contact = &model.ListContactPatch{
			Company:  p.Contact.Company,
			Address1: p.Contact.Address1,
			Address2: p.Contact.Address2,
			City:     p.Contact.City,
			State:    p.Contact.State,
			Zip:      p.Contact.Zip,
			Country:  p.Contact.Country,
			Phone:    p.Contact.Phone,
		}
	}
	if p.CampaignDefaults != nil {
		patch.CampaignDefaults = &model.ListCampaignDefaultsPatch{
			FromName:  p.CampaignDefaults.FromName,
			FromEmail: p.CampaignDefaults.FromEmail,
			Subject:   p.CampaignDefaults.Subject,
			Language:  p.CampaignDefaults.Language,
		}
	}

	return patch
}

// MemberPayload is the request body for member create and update. The vip
// flag is loosely typed on the wire (bool, number or string) and coerced to
// a boolean.
type MemberPayload struct {
	EmailAddress         *string                           `json:"email_address"`
	Status               *string                           `json:"status"`
	EmailType            *string                           `json:"email_type"`
	Language             *string                           `json:"language"`
	VIP                  json.RawMessage                   `json:"vip"`
	Location             *model.MemberLocation             `json:"location"`
	MarketingPermissions []model.MemberMarketingPermission `json:"marketing_permissions"`
	IPSignup             *string                           `json:"ip_signup"`
	TimestampSignup      *string                           `json:"timestamp_signup"`
	IPOpt                *string                           `json:"ip_opt"`
	TimestampOpt         *string                           `json:"timestamp_opt"`
	Tags                 []string                          `json:"tags"`
}

// toMember builds a member entity from the create payload.
func (p *MemberPayload) toMember() *model.Member {
	member := &model.Member{
		EmailAddress:         deref(p.EmailAddress),
		Status:               deref(p.Status),
		EmailType:            p.EmailType,
		Language:             p.Language,
		Location:             p.Location,
		MarketingPermissions: p.MarketingPermissions,
		IPSignup:             p.IPSignup,
		TimestampSignup:      p.TimestampSignup,
		IPOpt:                p.IPOpt,
		TimestampOpt:         p.TimestampOpt,
		Tags:                 p.Tags,
	}

	if vip, present := utils.CoerceBool(p.VIP); present {
		member.VIP = &vip
	}

	return member
}

// toPatch builds a member patch from the update payload.
func (p *MemberPayload) toPatch() *model.MemberPatch {
	patch := &model.MemberPatch{
		EmailAddress:         p.EmailAddress,
		Status:               p.Status,
		EmailType:            p.EmailType,
		Language:             p.Language,
		Location:             p.Location,
		MarketingPermissions: p.MarketingPermissions,
		IPSignup:             p.IPSignup,
		TimestampSignup:      p.TimestampSignup,
		IPOpt:                p.IPOpt,
		TimestampOpt:         p.TimestampOpt,
		Tags:                 p.Tags,
	}

	if vip, present := utils.CoerceBool(p.VIP); present {
		patch.VIP = &vip
	}

	return patch
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
