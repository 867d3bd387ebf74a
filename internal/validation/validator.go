// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package validation wraps go-playground/validator to produce field errors
// keyed by wire names.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	errs "github.com/mailsync-io/mailchimp-proxy-service/pkg/errors"
)

// Validator validates wire projections against their declared rules.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator that reports fields by their json names.
func NewValidator() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		tag := field.Tag.Get("json")
		name := strings.SplitN(tag, ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	return &Validator{validate: v}
}

// Validate checks the entity against its validation tags. On failure it
// returns a Validation error with one message list per offending field,
// keyed by the dotted wire name (e.g. "campaign_defaults.from_name").
func (v *Validator) Validate(entity any) error {
	err := v.validate.Struct(entity)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if ok := isInvalidValidation(err, &invalid); ok {
		return errs.NewUnexpected("validation failed", err)
	}

	fields := make(map[string][]string)
	for _, fieldErr := range err.(validator.ValidationErrors) {
		key := wireKey(fieldErr)
		fields[key] = append(fields[key], ruleMessage(key, fieldErr))
	}

	return errs.NewValidationWithFields("Invalid data given", fields)
}

func isInvalidValidation(err error, target **validator.InvalidValidationError) bool {
	if invalid, ok := err.(*validator.InvalidValidationError); ok {
		*target = invalid
		return true
	}
	return false
}

// wireKey strips the leading struct segment from the namespace so nested
// fields come out as "contact.company" rather than "ListWire.contact.company".
func wireKey(fieldErr validator.FieldError) string {
	namespace := fieldErr.Namespace()
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}

// ruleMessage renders a human readable message for a failed rule.
func ruleMessage(key string, fieldErr validator.FieldError) string {
	attribute := strings.ReplaceAll(key, "_", " ")

	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", attribute)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", attribute)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", attribute)
	case "len":
		return fmt.Sprintf("The %s must be %s characters.", attribute, fieldErr.Param())
	case "ip":
		return fmt.Sprintf("The %s must be a valid IP address.", attribute)
	default:
		return fmt.Sprintf("The %s is invalid.", attribute)
	}
}
