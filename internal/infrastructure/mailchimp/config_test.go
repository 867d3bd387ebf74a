// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mailchimp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Datacenter(t *testing.T) {
	tests := []struct {
		name     string
		apiKey   string
		expected string
	}{
		{
			name:     "key with datacenter",
			apiKey:   "0123456789abcdef0123456789abcdef-us6",
			expected: "us6",
		},
		{
			name:     "key without datacenter",
			apiKey:   "0123456789abcdef0123456789abcdef",
			expected: "",
		},
		{
			name:     "trailing dash",
			apiKey:   "0123456789abcdef-",
			expected: "",
		},
		{
			name:     "empty key",
			apiKey:   "",
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Config{APIKey: tc.apiKey}
			assert.Equal(t, tc.expected, cfg.Datacenter())
		})
	}
}

func TestConfig_ResolveBaseURL(t *testing.T) {
	cfg := Config{APIKey: "key-us6"}
	url, err := cfg.ResolveBaseURL()
	require.NoError(t, err)
	assert.Equal(t, "https://us6.api.mailchimp.com/3.0", url)

	// Explicit override wins and trailing slashes are trimmed
	cfg.BaseURL = "http://localhost:8080/3.0/"
	url, err = cfg.ResolveBaseURL()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/3.0", url)

	// No datacenter and no override is an error
	cfg = Config{APIKey: "keywithoutsuffix"}
	_, err = cfg.ResolveBaseURL()
	assert.Error(t, err)
}

func TestNewClient(t *testing.T) {
	// Mock mode returns a nil client for the orchestrator to handle
	client, err := NewClient(Config{MockMode: true})
	require.NoError(t, err)
	assert.Nil(t, client)

	// Missing API key is rejected
	_, err = NewClient(DefaultConfig())
	assert.Error(t, err)

	cfg := DefaultConfig()
	cfg.APIKey = "0123456789abcdef0123456789abcdef-us6"
	client, err = NewClient(cfg)
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.Equal(t, "https://us6.api.mailchimp.com/3.0", client.baseURL)
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Run("reads settings from the environment", func(t *testing.T) {
		t.Setenv("MAILCHIMP_API_KEY", "0123456789abcdef-us6")
		t.Setenv("MAILCHIMP_BASE_URL", "https://mc.test.example")
		t.Setenv("MAILCHIMP_TIMEOUT", "5s")
		t.Setenv("MAILCHIMP_MAX_RETRIES", "7")
		t.Setenv("MAILCHIMP_SOURCE", "api")

		cfg := NewConfigFromEnv()

		assert.Equal(t, "0123456789abcdef-us6", cfg.APIKey)
		assert.Equal(t, "https://mc.test.example", cfg.BaseURL)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Equal(t, 7, cfg.MaxRetries)
		assert.False(t, cfg.MockMode)
	})

	t.Run("mock source enables mock mode", func(t *testing.T) {
		t.Setenv("MAILCHIMP_SOURCE", "mock")

		cfg := NewConfigFromEnv()

		assert.True(t, cfg.MockMode)
	})

	t.Run("defaults apply when variables are unset", func(t *testing.T) {
		t.Setenv("MAILCHIMP_TIMEOUT", "")
		t.Setenv("MAILCHIMP_MAX_RETRIES", "")

		cfg := NewConfigFromEnv()

		assert.Equal(t, 30*time.Second, cfg.Timeout)
		assert.Equal(t, 3, cfg.MaxRetries)
	})
}
