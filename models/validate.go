// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate checks a request struct against its validate tags.
func Validate(v interface{}) error {
	return validate.Struct(v)
}
