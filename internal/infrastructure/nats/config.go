// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import "time"

// Config holds the NATS connection configuration
type Config struct {
	// URL is the NATS server URL
	URL string

	// Timeout is the connection timeout
	Timeout time.Duration

	// MaxReconnect is the maximum number of reconnect attempts
	MaxReconnect int

	// ReconnectWait is the wait time between reconnect attempts
	ReconnectWait time.Duration
}
