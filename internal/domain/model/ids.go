// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import "strings"

// IDDescription combines the known identifiers of a list/member pair into a
// human readable description for error messages, skipping empty values.
// Example: "List Id:yxb|Member Id:hnq"
func IDDescription(listUID, memberUID, mailChimpListID, mailChimpMemberID string) string {
	type labeled struct {
		label string
		value string
	}

	ids := []labeled{
		{"List Id", listUID},
		{"Member Id", memberUID},
		{"List Mailchimp Id", mailChimpListID},
		{"Member Mailchimp Id", mailChimpMemberID},
	}

	var parts []string
	for _, id := range ids {
		if id.value == "" {
			continue
		}
		parts = append(parts, id.label+":"+id.value)
	}

	return strings.Join(parts, "|")
}
