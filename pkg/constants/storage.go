// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

const (
	// KVBucketNameMailchimpLists is the name of the KV bucket for lists.
	KVBucketNameMailchimpLists = "mailchimp-lists"

	// KVBucketNameMailchimpMembers is the name of the KV bucket for members.
	KVBucketNameMailchimpMembers = "mailchimp-members"

	// Lookup key patterns for unique constraints
	// KVLookupMemberConstraintPrefix is the key pattern for unique member
	// constraint lookups. The single argument is the constraint hash derived
	// from the list UID and the normalized member email.
	KVLookupMemberConstraintPrefix = "lookup/members/constraint/%s"

	// KVLookupMembersByListPrefix is the key pattern for member-by-list
	// secondary index entries. The arguments are the list UID and the
	// member UID.
	KVLookupMembersByListPrefix = "lookup/members/list/%s/%s"
)
