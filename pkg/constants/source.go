// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

import (
	"fmt"

	"github.com/mailsync-io/mailchimp-proxy-service/pkg/errors"
)

// Source constants define the origin of remote operations
const (
	// SourceAPI indicates operations go to the real MailChimp API
	SourceAPI = "api"

	// SourceMock indicates operations go to mock/test infrastructure
	SourceMock = "mock"
)

// ValidateSource validates that the source is one of the allowed values
func ValidateSource(source string) error {
	switch source {
	case SourceAPI, SourceMock:
		return nil
	case "":
		return errors.NewValidation("source is required")
	default:
		return errors.NewValidation(
			fmt.Sprintf("unsupported source: %s (must be api or mock)", source))
	}
}
