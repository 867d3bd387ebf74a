// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mailchimp

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the configuration for the MailChimp client
type Config struct {
	// APIKey is the MailChimp API key. The datacenter suffix after the last
	// "-" (e.g. "us6") selects the API host.
	APIKey string

	// BaseURL overrides the derived API base URL (mainly for tests)
	BaseURL string

	// Timeout is the HTTP client timeout for requests
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts for failed requests
	MaxRetries int

	// RetryDelay is the delay between retry attempts
	RetryDelay time.Duration

	// MockMode disables real MailChimp API calls (for testing)
	MockMode bool
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		Timeout:    30 * time.Second,
		MaxRetries: 3,
		RetryDelay: 1 * time.Second,
		MockMode:   false,
	}
}

// NewConfigFromEnv creates a Config from environment variables
func NewConfigFromEnv() Config {
	config := DefaultConfig()

	if apiKey := os.Getenv("MAILCHIMP_API_KEY"); apiKey != "" {
		config.APIKey = apiKey
	}

	if baseURL := os.Getenv("MAILCHIMP_BASE_URL"); baseURL != "" {
		config.BaseURL = baseURL
	}

	if timeoutStr := os.Getenv("MAILCHIMP_TIMEOUT"); timeoutStr != "" {
		if timeout, err := time.ParseDuration(timeoutStr); err == nil {
			config.Timeout = timeout
		}
	}

	if retriesStr := os.Getenv("MAILCHIMP_MAX_RETRIES"); retriesStr != "" {
		if retries, err := strconv.Atoi(retriesStr); err == nil {
			config.MaxRetries = retries
		}
	}

	if delayStr := os.Getenv("MAILCHIMP_RETRY_DELAY"); delayStr != "" {
		if delay, err := time.ParseDuration(delayStr); err == nil {
			config.RetryDelay = delay
		}
	}

	// Check for mock mode
	if mockMode := os.Getenv("MAILCHIMP_SOURCE"); mockMode == "mock" {
		config.MockMode = true
	}

	return config
}

// Datacenter extracts the datacenter suffix from the API key.
// Returns an empty string when the key carries no suffix.
func (c Config) Datacenter() string {
	idx := strings.LastIndex(c.APIKey, "-")
	if idx < 0 || idx == len(c.APIKey)-1 {
		return ""
	}
	return c.APIKey[idx+1:]
}

// ResolveBaseURL returns the API base URL, deriving it from the API key
// datacenter when no override is configured.
func (c Config) ResolveBaseURL() (string, error) {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/"), nil
	}

	dc := c.Datacenter()
	if dc == "" {
		return "", fmt.Errorf("MailChimp API key has no datacenter suffix")
	}

	return fmt.Sprintf("https://%s.api.mailchimp.com/3.0", dc), nil
}
