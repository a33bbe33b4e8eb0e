// Package common defines shared constants and sentinel errors used across
// the storage, service and adapter layers of bookhub. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Input errors.
	ErrorInvalidID  = errors.New("invalid id")
	ErrorValidation = errors.New("validation error")

	// Dispatch errors (unrecognized action, destination or request element).
	ErrorUnknownOperation = errors.New("unknown operation")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")
)
