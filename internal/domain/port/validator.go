// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

// EntityValidator validates wire projections before they are persisted or
// sent to MailChimp. Implementations return a Validation error carrying
// per-field messages.
type EntityValidator interface {
	Validate(entity any) error
}
