// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// Subscription statuses for list members
const (
	MemberStatusSubscribed   = "subscribed"
	MemberStatusUnsubscribed = "unsubscribed"
	MemberStatusCleaned      = "cleaned"
	MemberStatusPending      = "pending"
)

// Email format preferences for list members
const (
	EmailTypeHTML = "html"
	EmailTypeText = "text"
)
