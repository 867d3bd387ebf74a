// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantValue   bool
		wantPresent bool
	}{
		{
			name:        "true literal",
			raw:         `true`,
			wantValue:   true,
			wantPresent: true,
		},
		{
			name:        "false literal",
			raw:         `false`,
			wantValue:   false,
			wantPresent: true,
		},
		{
			name:        "null is absent",
			raw:         `null`,
			wantValue:   false,
			wantPresent: false,
		},
		{
			name:        "empty raw is absent",
			raw:         ``,
			wantValue:   false,
			wantPresent: false,
		},
		{
			name:        "number zero is false",
			raw:         `0`,
			wantValue:   false,
			wantPresent: true,
		},
		{
			name:        "nonzero number is true",
			raw:         `1`,
			wantValue:   true,
			wantPresent: true,
		},
		{
			name:        "empty string is false",
			raw:         `""`,
			wantValue:   false,
			wantPresent: true,
		},
		{
			name:        "string zero is false",
			raw:         `"0"`,
			wantValue:   false,
			wantPresent: true,
		},
		{
			name:        "string false is false",
			raw:         `"False"`,
			wantValue:   false,
			wantPresent: true,
		},
		{
			name:        "arbitrary string is true",
			raw:         `"yes"`,
			wantValue:   true,
			wantPresent: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			value, present := CoerceBool(json.RawMessage(tc.raw))
			assert.Equal(t, tc.wantValue, value)
			assert.Equal(t, tc.wantPresent, present)
		})
	}
}

func TestPtrHelpers(t *testing.T) {
	s := StringPtr("hello")
	assert.NotNil(t, s)
	assert.Equal(t, "hello", *s)

	b := BoolPtr(true)
	assert.NotNil(t, b)
	assert.True(t, *b)
}
