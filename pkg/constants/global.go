// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package constants defines global constants used throughout the MailChimp proxy service.
package constants

// Service constants
const (
	// ServiceName is the name of this service
	ServiceName = "mailchimp-proxy"
)

// HTTP header constants
const (
	// RequestIDHeader is the HTTP header name for request ID
	RequestIDHeader = "X-Request-Id"
)
