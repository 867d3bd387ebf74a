// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package errors

import "errors"

// Validation represents a field validation failure. It optionally carries
// per-field messages keyed by the wire name of the offending field.
type Validation struct {
	base
	fields map[string][]string
}

// Error returns the error message for Validation.
func (v Validation) Error() string {
	return v.error()
}

// Unwrap returns the wrapped error, if any.
func (v Validation) Unwrap() error {
	return v.err
}

// Fields returns the per-field validation messages, if any.
func (v Validation) Fields() map[string][]string {
	return v.fields
}

// NewValidation creates a new Validation error with the provided message.
func NewValidation(message string, err ...error) Validation {
	return Validation{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// NewValidationWithFields creates a Validation error carrying per-field messages.
func NewValidationWithFields(message string, fields map[string][]string) Validation {
	return Validation{
		base:   base{message: message},
		fields: fields,
	}
}

// Conflict represents a uniqueness violation, such as a duplicate member
// email within a list.
type Conflict struct {
	base
}

// Error returns the error message for Conflict.
func (c Conflict) Error() string {
	return c.error()
}

// Unwrap returns the wrapped error, if any.
func (c Conflict) Unwrap() error {
	return c.err
}

// NewConflict creates a new Conflict error with the provided message.
func NewConflict(message string, err ...error) Conflict {
	return Conflict{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// NotFound represents a missing local entity.
type NotFound struct {
	base
}

// Error returns the error message for NotFound.
func (nf NotFound) Error() string {
	return nf.error()
}

// Unwrap returns the wrapped error, if any.
func (nf NotFound) Unwrap() error {
	return nf.err
}

// NewNotFound creates a new NotFound error with the provided message.
func NewNotFound(message string, err ...error) NotFound {
	return NotFound{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// NotAllowedChange represents a rejected mutation of an immutable field,
// such as a member email address.
type NotAllowedChange struct {
	base
}

// Error returns the error message for NotAllowedChange.
func (na NotAllowedChange) Error() string {
	return na.error()
}

// Unwrap returns the wrapped error, if any.
func (na NotAllowedChange) Unwrap() error {
	return na.err
}

// NewNotAllowedChange creates a new NotAllowedChange error with the provided message.
func NewNotAllowedChange(message string, err ...error) NotAllowedChange {
	return NotAllowedChange{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// NotSynced represents an operation that requires a MailChimp id the entity
// does not have, meaning it was never successfully created remotely.
type NotSynced struct {
	base
}

// Error returns the error message for NotSynced.
func (ns NotSynced) Error() string {
	return ns.error()
}

// Unwrap returns the wrapped error, if any.
func (ns NotSynced) Unwrap() error {
	return ns.err
}

// NewNotSynced creates a new NotSynced error with the provided message.
func NewNotSynced(message string, err ...error) NotSynced {
	return NotSynced{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// Remote represents a failed MailChimp API call. The message is passed
// through from the remote response verbatim; transient and permanent
// failures are not distinguished.
type Remote struct {
	base
}

// Error returns the error message for Remote.
func (r Remote) Error() string {
	return r.error()
}

// Unwrap returns the wrapped error, if any.
func (r Remote) Unwrap() error {
	return r.err
}

// NewRemote creates a new Remote error with the provided message.
func NewRemote(message string, err ...error) Remote {
	return Remote{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// Unauthorized represents an authentication failure against the remote system.
type Unauthorized struct {
	base
}

// Error returns the error message for Unauthorized.
func (u Unauthorized) Error() string {
	return u.error()
}

// Unwrap returns the wrapped error, if any.
func (u Unauthorized) Unwrap() error {
	return u.err
}

// NewUnauthorized creates a new Unauthorized error with the provided message.
func NewUnauthorized(message string, err ...error) Unauthorized {
	return Unauthorized{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}
