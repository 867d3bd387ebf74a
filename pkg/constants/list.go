// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// Visibility values for lists
const (
	ListVisibilityPublic  = "pub"
	ListVisibilityPrivate = "prv"
)
