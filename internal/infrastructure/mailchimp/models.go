// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mailchimp

// ListObject represents a MailChimp list resource as returned by the API
type ListObject struct {
	ID                string `json:"id"`
	WebID             uint64 `json:"web_id"`
	Name              string `json:"name"`
	DateCreated       string `json:"date_created"`
	ListRating        int    `json:"list_rating"`
	SubscribeURLShort string `json:"subscribe_url_short"`
	SubscribeURLLong  string `json:"subscribe_url_long"`
	BeamerAddress     string `json:"beamer_address"`
	Visibility        string `json:"visibility"`
}

// MemberObject represents a MailChimp list member resource as returned by the API
type MemberObject struct {
	ID              string `json:"id"`
	EmailAddress    string `json:"email_address"`
	UniqueEmailID   string `json:"unique_email_id"`
	EmailID         string `json:"email_id,omitempty"`
	EmailType       string `json:"email_type"`
	Status          string `json:"status"`
	MemberRating    int    `json:"member_rating"`
	LastChanged     string `json:"last_changed"`
	Language        string `json:"language"`
	VIP             bool   `json:"vip"`
	EmailClient     string `json:"email_client"`
	ListID          string `json:"list_id"`
	TimestampSignup string `json:"timestamp_signup,omitempty"`
	TimestampOpt    string `json:"timestamp_opt,omitempty"`
}

// ProblemObject is the RFC 7807 problem document MailChimp returns on errors
type ProblemObject struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance"`
}
